// Package browse is the interactive terminal browser.
package browse

import (
	"time"

	"github.com/krau/fexp/core"
)

type Options struct {
	Services *core.Services
	Start    string
	// DoubleClick is the window in which two clicks on one item activate it.
	DoubleClick time.Duration
	// ShowSummary shows the selected volume's space in the status line.
	ShowSummary bool
}
