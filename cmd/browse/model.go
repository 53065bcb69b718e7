//go:build !no_bubbletea

package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
	"github.com/krau/fexp/pkg/session"
)

// rows above the list: title and search line
const listTop = 2

// rows below the list: status and help
const footerRows = 2

// searchDoneMsg carries the matches of a search run by a tea.Cmd.
type searchDoneMsg struct {
	query   string
	matches []string
}

type model struct {
	ctx  context.Context
	opts Options
	sess *session.Session

	cursor int
	offset int
	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	busy   bool
	status string
	err    error
}

func newModel(ctx context.Context, sess *session.Session, opts Options) model {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = i18n.T(i18nk.BrowsePrompt)
	input.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		ctx:     ctx,
		opts:    opts,
		sess:    sess,
		input:   input,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
		height:  24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.scroll()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		m.busy = false
		m.sess.ShowResults(msg.query, msg.matches)
		m.resetCursor()
		return m, nil

	case tea.MouseMsg:
		if m.busy || m.input.Focused() {
			return m, nil
		}
		return m.mouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.input.Focused()) {
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.searchKey(msg)
		}
		if m.busy {
			return m, nil
		}
		return m.navKey(msg)
	}
	return m, nil
}

func (m model) navKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.sess.Items())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activate(m.cursor)
	case key.Matches(msg, m.keys.Parent):
		m.setErr(m.sess.Up(m.ctx))
		m.resetCursor()
	case key.Matches(msg, m.keys.Volumes):
		m.setErr(m.sess.ShowVolumes(m.ctx))
		m.resetCursor()
	case key.Matches(msg, m.keys.Refresh):
		if m.sess.Mode() == session.ModeSearchResults {
			return m.startSearch(m.sess.Query())
		}
		m.setErr(m.sess.Refresh(m.ctx))
		m.clampCursor()
	case key.Matches(msg, m.keys.Search):
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Cancel):
		if m.sess.Mode() != session.ModeDirectory {
			m.setErr(m.sess.GoTo(m.ctx, m.sess.Path()))
			m.resetCursor()
		}
	}
	m.scroll()
	return m, nil
}

func (m model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		return m.startSearch(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSearch runs the blocking search in a tea.Cmd so the UI keeps
// drawing the spinner.
func (m model) startSearch(query string) (tea.Model, tea.Cmd) {
	m.busy = true
	m.err = nil
	m.status = i18n.T(i18nk.BrowseSearching, map[string]any{"Root": m.sess.Path(), "Query": query})
	ctx, root, searcher := m.ctx, m.sess.Path(), m.opts.Services.History
	run := func() tea.Msg {
		return searchDoneMsg{query: query, matches: searcher.Search(ctx, query, root)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.scroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.cursor < len(m.sess.Items())-1 {
			m.cursor++
		}
		m.scroll()
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	idx := msg.Y - listTop + m.offset
	if msg.Y < listTop || idx >= len(m.sess.Items()) {
		return m, nil
	}
	action, err := m.sess.Click(m.ctx, idx)
	if err != nil {
		m.setErr(err)
		return m, nil
	}
	m.applyAction(action, idx)
	return m, nil
}

func (m model) activate(idx int) (tea.Model, tea.Cmd) {
	if len(m.sess.Items()) == 0 {
		return m, nil
	}
	action, err := m.sess.Activate(m.ctx, idx)
	if err != nil {
		m.setErr(err)
		return m, nil
	}
	m.applyAction(action, idx)
	return m, nil
}

func (m *model) applyAction(action session.Action, idx int) {
	m.err = nil
	switch action {
	case session.ActionSelect:
		if sel, ok := m.sess.Selected(); ok {
			m.cursor = sel
		}
		m.status = ""
	case session.ActionDescend:
		m.resetCursor()
	case session.ActionOpen:
		m.cursor = idx
		m.status = i18n.T(i18nk.BrowseOpened, map[string]any{"Path": m.sess.Items()[idx].Path})
	}
	m.scroll()
}

func (m *model) setErr(err error) {
	m.err = err
	if err != nil {
		log.FromContext(m.ctx).Debug("Browser action failed", "error", err)
		m.status = ""
	}
}

func (m *model) resetCursor() {
	m.cursor = 0
	m.offset = 0
	m.status = ""
}

func (m *model) clampCursor() {
	if n := len(m.sess.Items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.scroll()
}

func (m model) listRows() int {
	return max(m.height-listTop-footerRows, 1)
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteByte('\n')
	switch {
	case m.input.Focused():
		b.WriteString(m.input.View())
	case m.busy:
		b.WriteString(m.spinner.View() + " " + m.status)
	}
	b.WriteByte('\n')

	items := m.sess.Items()
	labels := m.sess.Labels()
	rows := m.listRows()
	if len(items) == 0 {
		b.WriteString(hintStyle.Render(i18n.T(i18nk.BrowseEmpty)))
		b.WriteByte('\n')
		rows--
	}
	end := min(m.offset+rows, len(items))
	for i := m.offset; i < end; i++ {
		line := labels[i]
		if m.width > 0 {
			line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
		}
		if items[i].IsDir && m.sess.Mode() != session.ModeSearchResults {
			line = dirStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for i := end - m.offset; i < rows; i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) title() string {
	switch m.sess.Mode() {
	case session.ModeVolumes:
		return i18n.T(i18nk.BrowseVolumes)
	case session.ModeSearchResults:
		return i18n.T(i18nk.BrowseResults, map[string]any{"Query": m.sess.Query(), "Root": m.sess.Path()})
	default:
		return m.sess.Path()
	}
}

func (m model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(i18n.T(i18nk.BrowseError, map[string]any{"Error": m.err}))
	}
	if m.status != "" && !m.busy {
		return statusStyle.Render(m.status)
	}
	items := m.sess.Items()
	if m.cursor >= len(items) {
		return ""
	}
	item := items[m.cursor]
	if item.Volume != nil && m.opts.ShowSummary {
		return statusStyle.Render(item.Volume.Summary())
	}
	return statusStyle.Render(fmt.Sprintf("%d/%d  %s", m.cursor+1, len(items), item.Path))
}

// Run starts the browser at opts.Start and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	sess, err := opts.Services.NewSession(ctx, opts.Start, session.WithDoubleClick(opts.DoubleClick))
	if err != nil {
		return err
	}
	p := tea.NewProgram(newModel(ctx, sess, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}
