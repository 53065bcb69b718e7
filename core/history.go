package core

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/database"
	"github.com/krau/fexp/pkg/search"
)

// HistorySearch runs searches and stores a record of each run. A failure
// to store the record is logged and does not affect the result.
type HistorySearch struct {
	engine *search.Engine
	limit  int

	mu   sync.Mutex
	last *search.Result
}

func NewHistorySearch(engine *search.Engine, limit int) *HistorySearch {
	return &HistorySearch{engine: engine, limit: limit}
}

func (h *HistorySearch) Search(ctx context.Context, query, root string) []string {
	return h.Run(ctx, query, root).Matches
}

func (h *HistorySearch) Run(ctx context.Context, query, root string) *search.Result {
	res := h.engine.Run(ctx, query, root)
	h.mu.Lock()
	h.last = res
	h.mu.Unlock()

	rec := &database.SearchRecord{
		Query:   res.Query,
		Root:    res.Root,
		Matches: len(res.Matches),
		Skipped: len(res.Skipped),
		Elapsed: res.Elapsed,
	}
	if err := database.AddSearchRecord(ctx, rec, h.limit); err != nil {
		log.FromContext(ctx).Warn("Failed to save search history", "error", err)
	}
	return res
}

// Last returns the result of the most recent run, or nil.
func (h *HistorySearch) Last() *search.Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
