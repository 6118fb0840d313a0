package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
