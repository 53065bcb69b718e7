package config

import "time"

type searchConfig struct {
	FollowSymlinks bool     `toml:"follow_symlinks" mapstructure:"follow_symlinks" json:"follow_symlinks" yaml:"follow_symlinks"`
	Exclude        []string `toml:"exclude" mapstructure:"exclude" json:"exclude" yaml:"exclude"`
}

type browseConfig struct {
	DoubleClickMS int  `toml:"double_click_ms" mapstructure:"double_click_ms" json:"double_click_ms" yaml:"double_click_ms"`
	ShowSummary   bool `toml:"show_summary" mapstructure:"show_summary" json:"show_summary" yaml:"show_summary"`
}

func (b browseConfig) DoubleClick() time.Duration {
	return time.Duration(b.DoubleClickMS) * time.Millisecond
}

type volumeConfig struct {
	Retry   int  `toml:"retry" mapstructure:"retry" json:"retry" yaml:"retry"`
	Summary bool `toml:"summary" mapstructure:"summary" json:"summary" yaml:"summary"`
}
