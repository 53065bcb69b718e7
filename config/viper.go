package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Lang      string `toml:"lang" mapstructure:"lang" json:"lang" yaml:"lang"`
	StartPath string `toml:"start_path" mapstructure:"start_path" json:"start_path" yaml:"start_path"`

	Log    logConfig    `toml:"log" mapstructure:"log" json:"log" yaml:"log"`
	Search searchConfig `toml:"search" mapstructure:"search" json:"search" yaml:"search"`
	Browse browseConfig `toml:"browse" mapstructure:"browse" json:"browse" yaml:"browse"`
	Volume volumeConfig `toml:"volume" mapstructure:"volume" json:"volume" yaml:"volume"`
	DB     dbConfig     `toml:"db" mapstructure:"db" json:"db" yaml:"db"`
	Cache  cacheConfig  `toml:"cache" mapstructure:"cache" json:"cache" yaml:"cache"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level" json:"level" yaml:"level"`
	File  string `toml:"file" mapstructure:"file" json:"file" yaml:"file"`
}

var supportedLangs = []string{"en", "zh-Hans"}

var (
	cfg   *Config
	cfgMu sync.Mutex
)

// C returns the loaded config, or the defaults when Init has not run.
func C() *Config {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if cfg == nil {
		cfg = Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang", "en")
	v.SetDefault("start_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("search.follow_symlinks", false)
	v.SetDefault("search.exclude", []string{})

	v.SetDefault("browse.double_click_ms", 500)
	v.SetDefault("browse.show_summary", true)

	v.SetDefault("volume.retry", 2)
	v.SetDefault("volume.summary", false)

	v.SetDefault("db.path", filepath.Join(dataDir(), "fexp.db"))
	v.SetDefault("db.history_limit", 100)

	v.SetDefault("cache.num_counters", 100_000)
	v.SetDefault("cache.max_cost", 1<<20)
	v.SetDefault("cache.ttl", 3600)
}

// Init loads the config from configFile, or from the first config.toml
// found in the search paths. A missing file is not an error.
func Init(ctx context.Context, configFile string) error {
	logger := log.FromContext(ctx)
	v := viper.GetViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
		v.AddConfigPath("/etc/fexp/")
	}
	v.SetConfigType("toml")
	v.SetEnvPrefix("FEXP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Loaded config", "file", v.ConfigFileUsed())
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}
	cfgMu.Lock()
	cfg = c
	cfgMu.Unlock()
	return nil
}

func (c *Config) validate() error {
	if !slice.Contain(supportedLangs, c.Lang) {
		return fmt.Errorf("unsupported lang %q, expected one of %s", c.Lang, strings.Join(supportedLangs, ", "))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if c.Browse.DoubleClickMS <= 0 {
		return fmt.Errorf("browse.double_click_ms must be greater than 0, got %d", c.Browse.DoubleClickMS)
	}
	if c.Volume.Retry < 0 {
		return fmt.Errorf("volume.retry must not be negative, got %d", c.Volume.Retry)
	}
	if c.DB.HistoryLimit < 0 {
		return fmt.Errorf("db.history_limit must not be negative, got %d", c.DB.HistoryLimit)
	}
	c.Search.Exclude = slice.Compact(c.Search.Exclude)
	return nil
}

// WriteDefault writes the default config to path. An existing file is
// left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if fileutil.IsExist(path) && !force {
		return fmt.Errorf("config file %s already exists", path)
	}
	if dir := filepath.Dir(path); !fileutil.IsExist(dir) {
		if err := fileutil.CreateDir(dir); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		panic(fmt.Sprintf("config: unmarshal defaults: %v", err))
	}
	return c
}

// Marshal encodes c as TOML.
func Marshal(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fexp")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fexp")
	}
	return "."
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "fexp")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "fexp")
	}
	return "data"
}

// DefaultConfigFile is where `config init` writes when no path is given.
func DefaultConfigFile() string {
	return filepath.Join(configDir(), "config.toml")
}
