package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/database"
	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"bm"},
	Short:   "Manage named paths",
}

var bookmarkAddCmd = &cobra.Command{
	Use:         "add <name> [path]",
	Short:       "Bookmark a path (default: the working directory)",
	Args:        cobra.RangeArgs(1, 2),
	Annotations: needsDB,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var arg string
		if len(args) > 1 {
			arg = args[1]
		}
		path, err := fsutil.ExpandPath(arg)
		if err != nil {
			return err
		}
		if err := database.CreateBookmark(ctx, args[0], path); err != nil {
			return err
		}
		log.FromContext(ctx).Info(i18n.T(i18nk.BookmarkAdded, map[string]any{"Name": args[0], "Path": path}))
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:         "list",
	Aliases:     []string{"ls"},
	Short:       "List bookmarks",
	Args:        cobra.NoArgs,
	Annotations: needsDB,
	RunE: func(cmd *cobra.Command, args []string) error {
		bookmarks, err := database.GetAllBookmarks(cmd.Context())
		if err != nil {
			return err
		}
		type item struct {
			Name string `json:"name" yaml:"name"`
			Path string `json:"path" yaml:"path"`
		}
		items := make([]item, 0, len(bookmarks))
		rows := make([][]string, 0, len(bookmarks))
		for _, bm := range bookmarks {
			items = append(items, item{Name: bm.Name, Path: bm.Path})
			rows = append(rows, []string{bm.Name, bm.Path})
		}
		return render(cmd, items, func(w io.Writer) error {
			if len(rows) == 0 {
				_, err := fmt.Fprintln(w, i18n.T(i18nk.NoBookmarks))
				return err
			}
			return renderTable(w, []string{"NAME", "PATH"}, rows)
		})
	},
}

var bookmarkRmCmd = &cobra.Command{
	Use:         "rm <name>",
	Aliases:     []string{"remove", "del"},
	Short:       "Remove a bookmark",
	Args:        cobra.ExactArgs(1),
	Annotations: needsDB,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := database.DeleteBookmark(ctx, args[0]); err != nil {
			return err
		}
		log.FromContext(ctx).Info(i18n.T(i18nk.BookmarkRemoved, map[string]any{"Name": args[0]}))
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRmCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
