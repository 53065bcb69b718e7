package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/pkg/dirlist"
	"github.com/krau/fexp/pkg/fileinfo"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:         "ls [path]",
	Short:       "List the entries of a directory in platform order",
	Args:        cobra.MaximumNArgs(1),
	Annotations: needsCache,
	RunE:        List,
}

func init() {
	lsCmd.Flags().BoolP("long", "L", false, "show size, mode, modification time and type")
	rootCmd.AddCommand(lsCmd)
}

func List(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	dir, err := fsutil.ExpandPath(arg)
	if err != nil {
		return err
	}
	long, err := cmd.Flags().GetBool("long")
	if err != nil {
		return err
	}
	lister := dirlist.Default()
	if !long {
		names, err := lister.Names(dir)
		if err != nil {
			return err
		}
		return render(cmd, names, func(w io.Writer) error {
			for _, name := range names {
				if _, err := fmt.Fprintln(w, name); err != nil {
					return err
				}
			}
			return nil
		})
	}

	entries, err := lister.Entries(dir)
	if err != nil {
		return err
	}
	infos := make([]*fileinfo.Info, 0, len(entries))
	for _, entry := range entries {
		info, err := fileinfo.Stat(ctx, entry.Path)
		if err != nil {
			// removed between the listing and the stat
			log.FromContext(ctx).Debug("Failed to stat entry", "path", entry.Path, "error", err)
			continue
		}
		infos = append(infos, info)
	}
	return render(cmd, infos, func(w io.Writer) error {
		for _, info := range infos {
			if _, err := fmt.Fprintln(w, info.String()); err != nil {
				return err
			}
		}
		return nil
	})
}
