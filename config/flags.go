package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RegisterFlags adds the persistent flags shared by every command and binds
// them to their config keys.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (en, zh-Hans)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	flags.Bool("follow-symlinks", false, "descend into symlinked directories while searching")
	flags.StringSlice("exclude", nil, "glob patterns to skip while searching, relative to the search root")

	flags.Int("volume-retry", 0, "retries for a failed volume space query")
	flags.Bool("volume-summary", false, "log a one-line summary for each volume")

	flags.String("db-path", "", "database path")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	viper.BindPFlag("lang", flags.Lookup("lang"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.file", flags.Lookup("log-file"))

	viper.BindPFlag("search.follow_symlinks", flags.Lookup("follow-symlinks"))
	viper.BindPFlag("search.exclude", flags.Lookup("exclude"))

	viper.BindPFlag("volume.retry", flags.Lookup("volume-retry"))
	viper.BindPFlag("volume.summary", flags.Lookup("volume-summary"))

	viper.BindPFlag("db.path", flags.Lookup("db-path"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
