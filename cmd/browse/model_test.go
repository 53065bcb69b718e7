//go:build !no_bubbletea

package browse

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/krau/fexp/config"
	"github.com/krau/fexp/core"
	"github.com/krau/fexp/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type launches struct{ paths []string }

func (l *launches) Open(_ context.Context, path string) error {
	l.paths = append(l.paths, path)
	return nil
}

func newTestModel(t *testing.T) (model, string, *launches) {
	t.Helper()
	ctx := log.WithContext(context.Background(), log.NewWithOptions(io.Discard, log.Options{}))
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "needle.txt"), nil, 0o644))

	cfg := config.Default()
	cfg.DB.HistoryLimit = 0
	svc, err := core.New(cfg)
	require.NoError(t, err)

	opened := &launches{}
	sess, err := svc.NewSession(ctx, root, session.WithOpener(opened))
	require.NoError(t, err)
	m := newModel(ctx, sess, Options{Services: svc, Start: root})
	return m, root, opened
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigateWithKeys(t *testing.T) {
	m, root, opened := newTestModel(t)
	require.Equal(t, []string{"sub"}, m.sess.Labels())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, filepath.Join(root, "sub"), m.sess.Path())
	assert.Equal(t, []string{"needle.txt"}, m.sess.Labels())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{filepath.Join(root, "sub", "needle.txt")}, opened.paths)
	assert.Equal(t, filepath.Join(root, "sub"), m.sess.Path(), "opening a file does not move")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, root, m.sess.Path())
}

func TestSearchRunsInCommand(t *testing.T) {
	m, root, _ := newTestModel(t)

	m, _ = update(t, m, runes("/"))
	require.True(t, m.input.Focused())

	for _, r := range "needle" {
		m, _ = update(t, m, runes(string(r)))
	}
	assert.Equal(t, "needle", m.input.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.False(t, m.input.Focused())

	// navigation is ignored while the search runs
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, root, m.sess.Path())

	match := filepath.Join(root, "sub", "needle.txt")
	m, _ = update(t, m, searchDoneMsg{query: "needle", matches: []string{match}})
	assert.False(t, m.busy)
	assert.Equal(t, session.ModeSearchResults, m.sess.Mode())
	assert.Equal(t, []string{"needle.txt: " + match}, m.sess.Labels())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, session.ModeDirectory, m.sess.Mode())
}

func TestMouseDoubleClick(t *testing.T) {
	m, root, _ := newTestModel(t)
	click := tea.MouseMsg{X: 1, Y: listTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}

	m, _ = update(t, m, click)
	assert.Equal(t, root, m.sess.Path(), "a single click only selects")
	idx, ok := m.sess.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	m, _ = update(t, m, click)
	assert.Equal(t, filepath.Join(root, "sub"), m.sess.Path())
}

func TestClickMovesCursor(t *testing.T) {
	m, root, opened := newTestModel(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "zz.txt"), nil, 0o644))
	require.NoError(t, m.sess.Refresh(m.ctx))
	require.ElementsMatch(t, []string{"sub", "zz.txt"}, m.sess.Labels())
	idx := slices.Index(m.sess.Labels(), "zz.txt")

	click := tea.MouseMsg{X: 1, Y: listTop + idx, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m, _ = update(t, m, click)
	assert.Equal(t, idx, m.cursor)
	assert.Empty(t, opened.paths, "a single click does not open")
}

func TestMouseOutsideList(t *testing.T) {
	m, root, _ := newTestModel(t)
	for _, y := range []int{0, listTop + 5} {
		msg := tea.MouseMsg{Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
		m, _ = update(t, m, msg)
		m, _ = update(t, m, msg)
	}
	assert.Equal(t, root, m.sess.Path())
	_, ok := m.sess.Selected()
	assert.False(t, ok)
}

func TestViewShowsErrors(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	require.NoError(t, os.RemoveAll(filepath.Join(m.sess.Path(), "sub")))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "sub")
}
