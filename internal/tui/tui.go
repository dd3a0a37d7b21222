package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference(opts.Settings.NoColor)

	m := newAppModel(opts)
	defer m.ctl.Stop()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
