// Package search finds entries whose name contains a query string by walking
// a directory subtree depth-first.
//
// For every entry, in the order the directory listing yields them, a
// directory's subtree is walked completely before the directory's own name
// is tested. Siblings come afterwards. The walk keeps its own stack of
// frames, so deep trees do not grow the goroutine stack.
package search

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/krau/fexp/pkg/dirlist"
	"github.com/krau/fexp/pkg/fserr"
	"golang.org/x/time/rate"
)

// Skip records a directory the walk could not read.
type Skip struct {
	Path string
	Err  error
}

type Result struct {
	Query   string
	Root    string
	Matches []string
	Skipped []Skip
	Visited int
	Elapsed time.Duration
}

type Engine struct {
	reader         dirlist.Reader
	followSymlinks bool
	exclude        []string
	reportFirst    int
	reportEvery    time.Duration
}

type Option func(*Engine)

func WithReader(r dirlist.Reader) Option {
	return func(e *Engine) {
		e.reader = r
	}
}

// WithFollowSymlinks descends into symlinked directories. Directories are
// tracked by their resolved path so that link cycles end the descent.
func WithFollowSymlinks(follow bool) Option {
	return func(e *Engine) {
		e.followSymlinks = follow
	}
}

// WithExclude skips entries whose slash-separated path relative to the
// search root matches one of the doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(e *Engine) {
		e.exclude = append(e.exclude, patterns...)
	}
}

// WithReportLimit sets how many unreadable directories are logged before
// further reports are throttled to one per interval.
func WithReportLimit(first int, every time.Duration) Option {
	return func(e *Engine) {
		e.reportFirst = first
		e.reportEvery = every
	}
}

func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		reader:      dirlist.OSReader{},
		reportFirst: 10,
		reportEvery: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.exclude = slice.Unique(slice.Filter(e.exclude, func(_ int, p string) bool {
		return strings.TrimSpace(p) != ""
	}))
	for _, pattern := range e.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}
	return e, nil
}

// Search returns the paths of all entries under root whose name contains
// query. It never fails: unreadable directories are reported and skipped.
func (e *Engine) Search(ctx context.Context, query, root string) []string {
	return e.Run(ctx, query, root).Matches
}

func (e *Engine) Run(ctx context.Context, query, root string) *Result {
	logger := log.FromContext(ctx)
	res := &Result{
		Query:   query,
		Root:    root,
		Matches: []string{},
	}
	w := &walker{
		engine: e,
		query:  query,
		root:   root,
		res:    res,
		logger: logger,
		sometimes: &rate.Sometimes{
			First:    e.reportFirst,
			Interval: e.reportEvery,
		},
	}
	if e.followSymlinks {
		w.visited = make(map[string]struct{})
	}

	start := time.Now()
	w.walk()
	res.Elapsed = time.Since(start)

	logger.Info("search finished",
		"query", query,
		"root", root,
		"matches", len(res.Matches),
		"skipped", len(res.Skipped),
		"took", res.Elapsed.Round(time.Millisecond))
	return res
}

type frame struct {
	dir     string
	entries []fs.DirEntry
	next    int
	// pending is set once the subtree of entries[next] has been pushed; its
	// name is tested when the walk returns to this frame.
	pending bool
}

type walker struct {
	engine    *Engine
	query     string
	root      string
	res       *Result
	logger    *log.Logger
	sometimes *rate.Sometimes
	visited   map[string]struct{}
}

func (w *walker) walk() {
	entries, err := w.engine.reader.ReadDir(w.root)
	if err != nil {
		w.res.Skipped = append(w.res.Skipped, Skip{Path: w.root, Err: fserr.WrapOS("search", w.root, err)})
		w.logger.Warn("search root is not readable", "root", w.root, "error", err)
		return
	}
	w.markVisited(w.root)

	stack := []*frame{{dir: w.root, entries: entries}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		p := filepath.Join(top.dir, entry.Name())

		if !top.pending {
			if w.excluded(p) {
				top.next++
				continue
			}
			if child := w.descend(entry, p); child != nil {
				top.pending = true
				stack = append(stack, child)
				continue
			}
		}

		top.pending = false
		top.next++
		w.test(entry.Name(), p)
	}
}

func (w *walker) test(name, p string) {
	w.res.Visited++
	if strings.Contains(name, w.query) {
		w.logger.Debug("found", "path", p)
		w.res.Matches = append(w.res.Matches, p)
	}
}

// descend returns a frame for p if it is a directory the walk should enter.
func (w *walker) descend(entry fs.DirEntry, p string) *frame {
	if !w.isDir(entry, p) {
		return nil
	}
	if w.visited != nil {
		target, err := filepath.EvalSymlinks(p)
		if err != nil {
			w.skip(p, err)
			return nil
		}
		if _, seen := w.visited[target]; seen {
			w.logger.Debug("directory already visited", "path", p, "target", target)
			return nil
		}
		w.visited[target] = struct{}{}
	}
	children, err := w.engine.reader.ReadDir(p)
	if err != nil {
		w.skip(p, err)
		return nil
	}
	return &frame{dir: p, entries: children}
}

func (w *walker) isDir(entry fs.DirEntry, p string) bool {
	if entry.IsDir() {
		return true
	}
	if !w.engine.followSymlinks || entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func (w *walker) markVisited(p string) {
	if w.visited == nil {
		return
	}
	if target, err := filepath.EvalSymlinks(p); err == nil {
		w.visited[target] = struct{}{}
	}
}

func (w *walker) excluded(p string) bool {
	if len(w.engine.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.engine.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *walker) skip(p string, err error) {
	w.res.Skipped = append(w.res.Skipped, Skip{Path: p, Err: fserr.WrapOS("search", p, err)})
	w.sometimes.Do(func() {
		w.logger.Warn("skipping unreadable directory", "path", p, "error", err)
	})
}
