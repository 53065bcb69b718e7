//go:build !no_bubbletea

package browse

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A8A8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)
