package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/pkg/opener"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a file or directory with the system default application",
	Args:  cobra.ExactArgs(1),
	RunE:  Open,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func Open(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path, err := fsutil.ExpandPath(args[0])
	if err != nil {
		return err
	}
	if err := opener.New().Open(ctx, path); err != nil {
		return err
	}
	log.FromContext(ctx).Info(i18n.T(i18nk.OpenedFile, map[string]any{"Path": path}))
	return nil
}
