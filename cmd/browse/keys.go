//go:build !no_bubbletea

package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/krau/fexp/common/i18n"
	"github.com/krau/fexp/common/i18n/i18nk"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Parent   key.Binding
	Search   key.Binding
	Volumes  key.Binding
	Refresh  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Activate: key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", i18n.T(i18nk.HelpActivate))),
		Parent:   key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("⌫", i18n.T(i18nk.HelpUp))),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T(i18nk.HelpSearch))),
		Volumes:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", i18n.T(i18nk.HelpVolumes))),
		Refresh:  key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", i18n.T(i18nk.HelpRefresh))),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T(i18nk.HelpCancel))),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", i18n.T(i18nk.HelpQuit))),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Parent, k.Search, k.Volumes, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Cancel}}
}
