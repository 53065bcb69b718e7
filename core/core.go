// Package core wires the filesystem packages together from the loaded
// config for the CLI commands and the browser.
package core

import (
	"context"
	"fmt"

	"github.com/krau/fexp/config"
	"github.com/krau/fexp/pkg/opener"
	"github.com/krau/fexp/pkg/search"
	"github.com/krau/fexp/pkg/session"
	"github.com/krau/fexp/pkg/volume"
)

type Services struct {
	Engine  *search.Engine
	Volumes *volume.Enumerator
	Opener  *opener.Opener
	History *HistorySearch
}

// New builds the services described by cfg.
func New(cfg *config.Config) (*Services, error) {
	engine, err := search.New(
		search.WithFollowSymlinks(cfg.Search.FollowSymlinks),
		search.WithExclude(cfg.Search.Exclude...),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid search settings: %w", err)
	}
	return &Services{
		Engine: engine,
		Volumes: volume.NewEnumerator(volume.DefaultPlatform(),
			volume.WithRetry(cfg.Volume.Retry),
			volume.WithSummary(cfg.Volume.Summary),
		),
		Opener:  opener.New(),
		History: NewHistorySearch(engine, cfg.DB.HistoryLimit),
	}, nil
}

// NewSession starts a navigation session at start using these services.
func (s *Services) NewSession(ctx context.Context, start string, opts ...session.Option) (*session.Session, error) {
	base := []session.Option{
		session.WithVolumes(s.Volumes),
		session.WithSearch(s.History),
		session.WithOpener(s.Opener),
		session.WithDoubleClick(config.C().Browse.DoubleClick()),
	}
	return session.New(ctx, start, append(base, opts...)...)
}
