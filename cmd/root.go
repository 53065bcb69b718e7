package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/krau/fexp/bootstrap"
	"github.com/krau/fexp/config"
	"github.com/spf13/cobra"
)

// Command annotations telling bootstrap which stores to open.
const (
	annotationDB    = "fexp/db"
	annotationCache = "fexp/cache"
)

var (
	needsDB    = map[string]string{annotationDB: "true"}
	needsCache = map[string]string{annotationCache: "true"}
)

var cleanup = func() {}

var rootCmd = &cobra.Command{
	Use:           "fexp [path]",
	Short:         "Browse volumes and directories, open files and search by name",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Annotations:   needsDB,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx, done, err := bootstrap.Init(cmd.Context(), bootstrap.Options{
			ConfigFile: config.GetConfigFile(cmd),
			Database:   cmd.Annotations[annotationDB] == "true",
			Cache:      cmd.Annotations[annotationCache] == "true",
			Stderr:     cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		cleanup = done
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cleanup()
	},
	RunE: Browse,
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.PersistentFlags().StringP("output", "o", string(outputText), "output format (text, json, yaml)")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cleanup()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
