package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/config"
	"github.com/krau/fexp/core"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [root]",
	Short: "Find entries whose name contains query, depth first",
	Long: `Walk the tree under root (default: the working directory) and print the
path of every file or directory whose name contains query. Matching is
case-sensitive. A directory is listed after everything found inside it.`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: needsDB,
	RunE:        Search,
}

func init() {
	searchCmd.Flags().Bool("no-history", false, "do not record this search")
	rootCmd.AddCommand(searchCmd)
}

type searchOutput struct {
	Query   string        `json:"query" yaml:"query"`
	Root    string        `json:"root" yaml:"root"`
	Matches []string      `json:"matches" yaml:"matches"`
	Skipped []skipOutput  `json:"skipped" yaml:"skipped"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

type skipOutput struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

func Search(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var rootArg string
	if len(args) > 1 {
		rootArg = args[1]
	}
	root, err := fsutil.ExpandPath(rootArg)
	if err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}
	cfg := *config.C()
	if noHistory {
		cfg.DB.HistoryLimit = 0
	}
	svc, err := core.New(&cfg)
	if err != nil {
		return err
	}
	res := svc.History.Run(ctx, args[0], root)

	logger := log.FromContext(ctx)
	out := searchOutput{
		Query:   res.Query,
		Root:    res.Root,
		Matches: res.Matches,
		Skipped: make([]skipOutput, 0, len(res.Skipped)),
		Elapsed: res.Elapsed,
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, skipOutput{Path: s.Path, Error: s.Err.Error()})
	}
	return render(cmd, out, func(w io.Writer) error {
		for _, m := range res.Matches {
			if _, err := fmt.Fprintf(w, "%s: %s\n", filepath.Base(m), m); err != nil {
				return err
			}
		}
		logger.Info(i18n.T(i18nk.SearchSummary, map[string]any{
			"Matches": len(res.Matches),
			"Skipped": len(res.Skipped),
			"Elapsed": res.Elapsed.Round(time.Millisecond),
		}))
		return nil
	})
}
