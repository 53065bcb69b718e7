// Package session keeps the navigation state of one browser: the current
// path, what is listed, and which item was clicked last.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/krau/fexp/common/utils/fsutil"
	"github.com/krau/fexp/pkg/dirlist"
	"github.com/krau/fexp/pkg/volume"
)

type Mode int

const (
	ModeDirectory Mode = iota
	ModeVolumes
	ModeSearchResults
)

func (m Mode) String() string {
	switch m {
	case ModeVolumes:
		return "volumes"
	case ModeSearchResults:
		return "search"
	default:
		return "directory"
	}
}

// Action tells the caller what a click or activation did.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionDescend
	ActionOpen
)

const DefaultDoubleClick = 500 * time.Millisecond

type Item struct {
	Name   string
	Path   string
	IsDir  bool
	Volume *volume.Volume
}

type VolumeSource interface {
	Enumerate(ctx context.Context) (*volume.Report, error)
}

type DirSource interface {
	Entries(path string) ([]dirlist.Entry, error)
}

type SearchSource interface {
	Search(ctx context.Context, query, root string) []string
}

type FileOpener interface {
	Open(ctx context.Context, path string) error
}

// click is the last single click, used to detect a double click.
type click struct {
	index int
	name  string
	at    time.Time
}

type Session struct {
	path      string
	mode      Mode
	items     []Item
	lastQuery string
	last      *click

	volumes     VolumeSource
	dirs        DirSource
	searcher    SearchSource
	opener      FileOpener
	isDir       func(path string) bool
	clock       func() time.Time
	doubleClick time.Duration
}

type Option func(*Session)

func WithVolumes(v VolumeSource) Option    { return func(s *Session) { s.volumes = v } }
func WithDirs(d DirSource) Option          { return func(s *Session) { s.dirs = d } }
func WithSearch(q SearchSource) Option     { return func(s *Session) { s.searcher = q } }
func WithOpener(o FileOpener) Option       { return func(s *Session) { s.opener = o } }
func WithIsDir(f func(string) bool) Option { return func(s *Session) { s.isDir = f } }

// WithClock sets the time source used for double-click detection.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.clock = now }
}

func WithDoubleClick(window time.Duration) Option {
	return func(s *Session) {
		if window > 0 {
			s.doubleClick = window
		}
	}
}

// New creates a session positioned at start and lists it. Sources that are
// not given fall back to the local filesystem.
func New(ctx context.Context, start string, opts ...Option) (*Session, error) {
	s := &Session{
		dirs:        dirlist.Default(),
		isDir:       fileutil.IsDir,
		clock:       time.Now,
		doubleClick: DefaultDoubleClick,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.volumes == nil {
		s.volumes = volume.NewEnumerator(volume.DefaultPlatform())
	}
	if err := s.GoTo(ctx, start); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Path() string  { return s.path }
func (s *Session) Mode() Mode    { return s.mode }
func (s *Session) Items() []Item { return s.items }
func (s *Session) Query() string { return s.lastQuery }

// Labels are the strings shown for the current items. Search results read
// "name: path".
func (s *Session) Labels() []string {
	labels := make([]string, len(s.items))
	for i, item := range s.items {
		if s.mode == ModeSearchResults {
			labels[i] = fmt.Sprintf("%s: %s", item.Name, item.Path)
		} else {
			labels[i] = item.Name
		}
	}
	return labels
}

// Selected returns the index of the item clicked last, if any.
func (s *Session) Selected() (int, bool) {
	if s.last == nil {
		return 0, false
	}
	return s.last.index, true
}

// GoTo lists path and makes it the current directory.
func (s *Session) GoTo(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	entries, err := s.dirs.Entries(path)
	if err != nil {
		return err
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{Name: entry.Name, Path: entry.Path, IsDir: entry.IsDir})
	}
	s.path = path
	s.mode = ModeDirectory
	s.items = items
	s.last = nil
	log.FromContext(ctx).Debug("listed directory", "path", path, "entries", len(items))
	return nil
}

// Up lists the parent of the current directory. At a root the volumes are
// listed instead and the path stays where it is.
func (s *Session) Up(ctx context.Context) error {
	if fsutil.IsRoot(s.path) {
		return s.ShowVolumes(ctx)
	}
	return s.GoTo(ctx, filepath.Dir(s.path))
}

func (s *Session) ShowVolumes(ctx context.Context) error {
	report, err := s.volumes.Enumerate(ctx)
	if err != nil {
		return err
	}
	items := make([]Item, 0, len(report.Volumes))
	for i := range report.Volumes {
		v := report.Volumes[i]
		items = append(items, Item{Name: v.Name, Path: v.Name, IsDir: true, Volume: &v})
	}
	s.mode = ModeVolumes
	s.items = items
	s.last = nil
	return nil
}

// Search replaces the listing with the entries under the current path whose
// name contains query. It blocks until the walk is done.
func (s *Session) Search(ctx context.Context, query string) error {
	if s.searcher == nil {
		return ErrNoSearch
	}
	s.ShowResults(query, s.searcher.Search(ctx, query, s.path))
	return nil
}

// ShowResults replaces the listing with matches of a search for query that
// was run elsewhere, for callers that search off the UI loop.
func (s *Session) ShowResults(query string, matches []string) {
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, Item{Name: filepath.Base(m), Path: m})
	}
	s.mode = ModeSearchResults
	s.items = items
	s.lastQuery = query
	s.last = nil
}

// Refresh lists the current view again.
func (s *Session) Refresh(ctx context.Context) error {
	switch s.mode {
	case ModeVolumes:
		return s.ShowVolumes(ctx)
	case ModeSearchResults:
		return s.Search(ctx, s.lastQuery)
	default:
		return s.GoTo(ctx, s.path)
	}
}

// Click selects the item at index. A second click on the same item within
// the double-click window activates it.
func (s *Session) Click(ctx context.Context, index int) (Action, error) {
	if index < 0 || index >= len(s.items) {
		return ActionNone, fmt.Errorf("%w: %d", ErrNoSuchItem, index)
	}
	now := s.clock()
	name := s.items[index].Name
	if s.last != nil && s.last.index == index && s.last.name == name && now.Sub(s.last.at) < s.doubleClick {
		s.last = nil
		return s.Activate(ctx, index)
	}
	s.last = &click{index: index, name: name, at: now}
	return ActionSelect, nil
}

// Activate descends into the item when it is a directory and hands it to
// the opener otherwise. Opening a file leaves the current path unchanged.
func (s *Session) Activate(ctx context.Context, index int) (Action, error) {
	if index < 0 || index >= len(s.items) {
		return ActionNone, fmt.Errorf("%w: %d", ErrNoSuchItem, index)
	}
	item := s.items[index]
	target := item.Path
	if item.Volume != nil || item.IsDir || s.isDir(target) {
		if err := s.GoTo(ctx, target); err != nil {
			return ActionNone, err
		}
		return ActionDescend, nil
	}
	if s.opener == nil {
		return ActionNone, ErrNoOpener
	}
	if err := s.opener.Open(ctx, target); err != nil {
		return ActionNone, err
	}
	s.last = nil
	return ActionOpen, nil
}
