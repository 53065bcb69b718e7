package session_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/pkg/dirlist"
	"github.com/krau/fexp/pkg/fserr"
	"github.com/krau/fexp/pkg/session"
	"github.com/krau/fexp/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) context.Context {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

var (
	root    = string(filepath.Separator)
	home    = filepath.Join(root, "home")
	docs    = filepath.Join(home, "docs")
	report  = filepath.Join(docs, "report.txt")
	profile = filepath.Join(home, ".profile")
)

type fakeDirs map[string][]string

func (f fakeDirs) Entries(path string) ([]dirlist.Entry, error) {
	names, ok := f[path]
	if !ok {
		return nil, fserr.Wrap(fserr.ErrNotFound, "list", path, errors.New("no such directory"))
	}
	entries := make([]dirlist.Entry, 0, len(names))
	for _, name := range names {
		p := filepath.Join(path, name)
		_, dir := f[p]
		entries = append(entries, dirlist.Entry{Name: name, Path: p, IsDir: dir})
	}
	return entries, nil
}

func (f fakeDirs) isDir(path string) bool {
	_, ok := f[path]
	return ok
}

type fakeVolumes struct{ vols []volume.Volume }

func (f fakeVolumes) Enumerate(context.Context) (*volume.Report, error) {
	return &volume.Report{Volumes: f.vols}, nil
}

type fakeSearch struct {
	matches []string
	roots   []string
}

func (f *fakeSearch) Search(_ context.Context, _ string, root string) []string {
	f.roots = append(f.roots, root)
	return f.matches
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(_ context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, path)
	return nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	dirs   fakeDirs
	search *fakeSearch
	opener *fakeOpener
	clock  *fakeClock
	sess   *session.Session
}

func newFixture(t *testing.T, ctx context.Context, start string) *fixture {
	t.Helper()
	f := &fixture{
		dirs: fakeDirs{
			root: {"home"},
			home: {"docs", ".profile"},
			docs: {"report.txt"},
		},
		search: &fakeSearch{},
		opener: &fakeOpener{},
		clock:  &fakeClock{now: time.Unix(1700000000, 0)},
	}
	sess, err := session.New(ctx, start,
		session.WithDirs(f.dirs),
		session.WithIsDir(f.dirs.isDir),
		session.WithVolumes(fakeVolumes{vols: []volume.Volume{{Name: root, ID: "sda1", Kind: volume.Fixed}}}),
		session.WithSearch(f.search),
		session.WithOpener(f.opener),
		session.WithClock(f.clock.Now),
	)
	require.NoError(t, err)
	f.sess = sess
	return f
}

func TestNewListsStart(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	assert.Equal(t, home, f.sess.Path())
	assert.Equal(t, session.ModeDirectory, f.sess.Mode())
	assert.Equal(t, []string{"docs", ".profile"}, f.sess.Labels())
}

func TestNewMissingStart(t *testing.T) {
	ctx := newTestContext(t)
	_, err := session.New(ctx, filepath.Join(root, "nope"),
		session.WithDirs(fakeDirs{}),
		session.WithVolumes(fakeVolumes{}),
	)
	require.ErrorIs(t, err, fserr.ErrNotFound)
}

func TestUp(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, docs)

	require.NoError(t, f.sess.Up(ctx))
	assert.Equal(t, home, f.sess.Path())

	require.NoError(t, f.sess.Up(ctx))
	assert.Equal(t, root, f.sess.Path())
	assert.Equal(t, session.ModeDirectory, f.sess.Mode())
}

func TestUpAtRootShowsVolumes(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, root)

	require.NoError(t, f.sess.Up(ctx))
	assert.Equal(t, session.ModeVolumes, f.sess.Mode())
	assert.Equal(t, root, f.sess.Path(), "path is unchanged")
	require.Len(t, f.sess.Items(), 1)
	require.NotNil(t, f.sess.Items()[0].Volume)
	assert.Equal(t, "sda1", f.sess.Items()[0].Volume.ID)

	action, err := f.sess.Activate(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, session.ActionDescend, action)
	assert.Equal(t, session.ModeDirectory, f.sess.Mode())
	assert.Equal(t, root, f.sess.Path())
	assert.Equal(t, []string{"home"}, f.sess.Labels())
}

func TestSingleClickSelects(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	action, err := f.sess.Click(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, session.ActionSelect, action)
	assert.Equal(t, home, f.sess.Path())

	idx, ok := f.sess.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestDoubleClick(t *testing.T) {
	tests := []struct {
		name   string
		first  int
		second int
		gap    time.Duration
		want   session.Action
		path   string
		opened []string
	}{
		{"directory within window", 0, 0, 200 * time.Millisecond, session.ActionDescend, docs, nil},
		{"file within window", 1, 1, 499 * time.Millisecond, session.ActionOpen, home, []string{profile}},
		{"too slow", 0, 0, 500 * time.Millisecond, session.ActionSelect, home, nil},
		{"different item", 0, 1, 100 * time.Millisecond, session.ActionSelect, home, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			f := newFixture(t, ctx, home)

			_, err := f.sess.Click(ctx, tt.first)
			require.NoError(t, err)
			f.clock.Advance(tt.gap)
			action, err := f.sess.Click(ctx, tt.second)
			require.NoError(t, err)

			assert.Equal(t, tt.want, action)
			assert.Equal(t, tt.path, f.sess.Path())
			assert.Equal(t, tt.opened, f.opener.opened)
		})
	}
}

func TestTripleClickDoesNotActivateTwice(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	for range 3 {
		_, err := f.sess.Click(ctx, 1)
		require.NoError(t, err)
		f.clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, []string{profile}, f.opener.opened)
}

func TestClickOutOfRange(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	for _, idx := range []int{-1, 2} {
		_, err := f.sess.Click(ctx, idx)
		require.ErrorIs(t, err, session.ErrNoSuchItem)
	}
	_, ok := f.sess.Selected()
	assert.False(t, ok)
}

func TestOpenFailureKeepsState(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)
	f.opener.err = fserr.Wrap(fserr.ErrLaunch, "open", profile, errors.New("no handler"))

	_, err := f.sess.Activate(ctx, 1)
	require.ErrorIs(t, err, fserr.ErrLaunch)
	assert.Equal(t, home, f.sess.Path())
	assert.Equal(t, []string{"docs", ".profile"}, f.sess.Labels())
}

func TestGoToFailureKeepsState(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	err := f.sess.GoTo(ctx, filepath.Join(root, "missing"))
	require.ErrorIs(t, err, fserr.ErrNotFound)
	assert.Equal(t, home, f.sess.Path())
	assert.Equal(t, session.ModeDirectory, f.sess.Mode())
}

func TestSearchResults(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)
	f.search.matches = []string{report, docs}

	require.NoError(t, f.sess.Search(ctx, "r"))
	assert.Equal(t, []string{home}, f.search.roots)
	assert.Equal(t, session.ModeSearchResults, f.sess.Mode())
	assert.Equal(t, "r", f.sess.Query())
	assert.Equal(t, []string{
		"report.txt: " + report,
		"docs: " + docs,
	}, f.sess.Labels())

	action, err := f.sess.Activate(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, session.ActionOpen, action)
	assert.Equal(t, []string{report}, f.opener.opened)
	assert.Equal(t, session.ModeSearchResults, f.sess.Mode())

	action, err = f.sess.Activate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, session.ActionDescend, action)
	assert.Equal(t, docs, f.sess.Path())
}

func TestRefresh(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	f.dirs[home] = append(f.dirs[home], "new.txt")
	require.NoError(t, f.sess.Refresh(ctx))
	assert.Equal(t, []string{"docs", ".profile", "new.txt"}, f.sess.Labels())

	require.NoError(t, f.sess.Search(ctx, "x"))
	require.NoError(t, f.sess.Refresh(ctx))
	assert.Equal(t, []string{home, home}, f.search.roots)
}

func TestSearchWithoutEngine(t *testing.T) {
	ctx := newTestContext(t)
	sess, err := session.New(ctx, home,
		session.WithDirs(fakeDirs{home: {}}),
		session.WithVolumes(fakeVolumes{}),
	)
	require.NoError(t, err)
	require.ErrorIs(t, sess.Search(ctx, "a"), session.ErrNoSearch)
	assert.Equal(t, session.ModeDirectory, sess.Mode())
	assert.Empty(t, sess.Items())
}

func TestShowResults(t *testing.T) {
	ctx := newTestContext(t)
	f := newFixture(t, ctx, home)

	f.sess.ShowResults("rep", []string{report})
	assert.Equal(t, session.ModeSearchResults, f.sess.Mode())
	assert.Equal(t, home, f.sess.Path())
	assert.Equal(t, []string{"report.txt: " + report}, f.sess.Labels())
	assert.Empty(t, f.search.roots, "no search is run")

	require.NoError(t, f.sess.GoTo(ctx, home))
	assert.Equal(t, session.ModeDirectory, f.sess.Mode())
}
