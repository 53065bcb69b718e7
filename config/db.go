package config

type dbConfig struct {
	Path string `toml:"path" mapstructure:"path" json:"path" yaml:"path"`
	// HistoryLimit is how many search records are kept; 0 disables history.
	HistoryLimit int `toml:"history_limit" mapstructure:"history_limit" json:"history_limit" yaml:"history_limit"`
}
