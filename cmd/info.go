package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/pkg/fileinfo"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:         "info <path>...",
	Short:       "Show size, mode, modification time and MIME type",
	Args:        cobra.MinimumNArgs(1),
	Annotations: needsCache,
	RunE:        Info,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func Info(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	infos := make([]*fileinfo.Info, 0, len(args))
	for _, arg := range args {
		path, err := fsutil.ExpandPath(arg)
		if err != nil {
			return err
		}
		info, err := fileinfo.Stat(ctx, path)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}
	return render(cmd, infos, func(w io.Writer) error {
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{
				info.Path,
				humanize.IBytes(uint64(max(info.Size, 0))),
				info.Mode,
				info.ModTime.Format("2006-01-02 15:04:05"),
				info.MIME,
			})
		}
		if err := renderTable(w, []string{"PATH", "SIZE", "MODE", "MODIFIED", "TYPE"}, rows); err != nil {
			return fmt.Errorf("render info: %w", err)
		}
		return nil
	})
}
