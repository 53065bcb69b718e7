package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/cache"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/config"
	"github.com/krau/fexp/database"
	"github.com/krau/fexp/logger"
)

type Options struct {
	ConfigFile string
	// Database opens the bookmark and history store.
	Database bool
	// Cache creates the in-memory cache.
	Cache bool
	// Stderr receives log output when no log file is configured.
	Stderr io.Writer
}

// Init loads the config and sets up logging, i18n and the optional
// stores. The returned context carries the logger; cleanup releases
// everything Init opened.
func Init(ctx context.Context, opts Options) (context.Context, func(), error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	boot := log.NewWithOptions(opts.Stderr, log.Options{Level: log.WarnLevel})
	if err := config.Init(log.WithContext(ctx, boot), opts.ConfigFile); err != nil {
		return ctx, func() {}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.C()

	l, logCloser, err := logger.New(opts.Stderr, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return ctx, func() {}, err
	}
	ctx = log.WithContext(ctx, l)
	i18n.Init(cfg.Lang)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	closers = append(closers, func() { logCloser.Close() })

	if opts.Cache {
		if err := cache.Init(ctx); err != nil {
			cleanup()
			return ctx, func() {}, err
		}
		closers = append(closers, cache.Close)
	}
	if opts.Database {
		if err := database.Init(ctx, cfg.DB.Path); err != nil {
			cleanup()
			return ctx, func() {}, err
		}
		closers = append(closers, func() {
			if err := database.Close(); err != nil {
				l.Warn("Failed to close database", "error", err)
			}
		})
	}
	l.Debug("Initialized", "lang", cfg.Lang, "db", opts.Database, "cache", opts.Cache)
	return ctx, cleanup, nil
}
