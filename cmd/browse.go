package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/cmd/browse"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/config"
	"github.com/krau/fexp/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Browse starts the terminal browser at the given path, the configured
// start_path, or the working directory.
func Browse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New(i18n.T(i18nk.NotATerminal))
	}
	cfg := config.C()
	start := cfg.StartPath
	if len(args) > 0 {
		start = args[0]
	}
	start, err := fsutil.ExpandPath(start)
	if err != nil {
		return err
	}
	svc, err := core.New(cfg)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		// stderr output would draw over the alternate screen
		ctx = log.WithContext(ctx, log.New(io.Discard))
	}
	return browse.Run(ctx, browse.Options{
		Services:    svc,
		Start:       start,
		DoubleClick: cfg.Browse.DoubleClick(),
		ShowSummary: cfg.Browse.ShowSummary,
	})
}
