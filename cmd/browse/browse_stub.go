//go:build no_bubbletea

package browse

import (
	"context"
	"errors"
)

// Run is unavailable in builds without the terminal UI.
func Run(ctx context.Context, opts Options) error {
	return errors.New("fexp was built without the terminal browser, use the ls, search and open commands")
}
