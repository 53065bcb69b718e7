package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/config"
	"github.com/krau/fexp/pkg/volume"
	"github.com/spf13/cobra"
)

var volumesCmd = &cobra.Command{
	Use:     "volumes",
	Aliases: []string{"vol", "drives"},
	Short:   "List the mounted volumes",
	Args:    cobra.NoArgs,
	RunE:    Volumes,
}

func init() {
	rootCmd.AddCommand(volumesCmd)
}

func Volumes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.C()
	enum := volume.NewEnumerator(volume.DefaultPlatform(),
		volume.WithRetry(cfg.Volume.Retry),
		volume.WithSummary(cfg.Volume.Summary),
	)
	report, err := enum.Enumerate(ctx)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx)
	for _, f := range report.Failures {
		logger.Warn(i18n.T(i18nk.VolumeFailed, map[string]any{"ID": f.ID, "Error": f.Err}))
	}
	return render(cmd, report.Volumes, func(w io.Writer) error {
		if len(report.Volumes) == 0 {
			_, err := fmt.Fprintln(w, i18n.T(i18nk.NoVolumes))
			return err
		}
		rows := make([][]string, 0, len(report.Volumes))
		for _, v := range report.Volumes {
			rows = append(rows, []string{
				v.Name,
				v.Label,
				v.Kind.Label(),
				v.Filesystem,
				humanize.IBytes(v.Free),
				humanize.IBytes(v.Total),
			})
		}
		return renderTable(w, []string{"NAME", "LABEL", "TYPE", "FS", "FREE", "SIZE"}, rows)
	})
}
