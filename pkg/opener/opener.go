// Package opener hands files to the operating system's default handler.
package opener

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/pkg/fserr"
	"github.com/pkg/browser"
)

type Opener struct {
	launch func(path string) error
}

// New returns an opener backed by the platform's default handler. The
// helper process output is discarded so it cannot draw over a terminal UI.
func New() *Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{launch: browser.OpenFile}
}

// WithLauncher returns an opener that uses launch instead of the platform
// default.
func WithLauncher(launch func(path string) error) *Opener {
	return &Opener{launch: launch}
}

// Open hands path to the platform open helper (xdg-open, open, or
// rundll32) and returns when the helper exits.
func (o *Opener) Open(ctx context.Context, path string) error {
	if path == "" {
		return fserr.Wrap(fserr.ErrLaunch, "open", path, errors.New("empty path"))
	}
	if _, err := os.Stat(path); err != nil {
		return fserr.Wrap(fserr.ErrLaunch, "open", path, err)
	}
	log.FromContext(ctx).Debug("opening file", "path", path)
	if err := o.launch(path); err != nil {
		return fserr.Wrap(fserr.ErrLaunch, "open", path, err)
	}
	return nil
}
