package cmd

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile()
		if len(args) > 0 {
			path = args[0]
		}
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		log.FromContext(cmd.Context()).Info(i18n.T(i18nk.ConfigWritten, map[string]any{"Path": path}))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.C()
		return render(cmd, cfg, func(w io.Writer) error {
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		})
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
