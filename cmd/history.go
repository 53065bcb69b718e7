package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/database"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:         "history",
	Short:       "Show recent searches",
	Args:        cobra.NoArgs,
	Annotations: needsDB,
	RunE:        History,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of records to show, 0 for all")
	historyCmd.Flags().Bool("clear", false, "delete all search records")
	rootCmd.AddCommand(historyCmd)
}

type historyItem struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Time    time.Time     `json:"time" yaml:"time"`
	Query   string        `json:"query" yaml:"query"`
	Root    string        `json:"root" yaml:"root"`
	Matches int           `json:"matches" yaml:"matches"`
	Skipped int           `json:"skipped" yaml:"skipped"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

func History(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}
	if clearAll {
		if err := database.ClearSearchRecords(ctx); err != nil {
			return err
		}
		log.FromContext(ctx).Info(i18n.T(i18nk.HistoryCleared))
		return nil
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	records, err := database.GetSearchRecords(ctx, limit)
	if err != nil {
		return err
	}
	items := make([]historyItem, 0, len(records))
	for _, r := range records {
		items = append(items, historyItem{
			RunID:   r.RunID,
			Time:    r.CreatedAt,
			Query:   r.Query,
			Root:    r.Root,
			Matches: r.Matches,
			Skipped: r.Skipped,
			Elapsed: r.Elapsed,
		})
	}
	return render(cmd, items, func(w io.Writer) error {
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, i18n.T(i18nk.NoHistory))
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				humanize.Time(it.Time),
				strconv.Quote(it.Query),
				it.Root,
				strconv.Itoa(it.Matches),
				strconv.Itoa(it.Skipped),
				it.Elapsed.Round(time.Millisecond).String(),
			})
		}
		return renderTable(w, []string{"WHEN", "QUERY", "ROOT", "MATCHES", "SKIPPED", "TOOK"}, rows)
	})
}
