package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmKind says what a confirmed prompt does.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteTask
	confirmQuit
	confirmReload
)

type confirmState struct {
	kind  confirmKind
	title string
	body  string
	yes   string
	no    string
	focus confirmModalFocus
}

func renderConfirmModal(width int, c confirmState) string {
	// Avoid borders here: some terminals show background artifacts when nesting bordered
	// components inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(c.yes)
	cancel := btnBase.Render(c.no)
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render(c.yes)
	} else {
		cancel = btnActive.Render(c.no)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(c.body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, c.title, content)
}

func modalBodyWidth(width int) int {
	w := modalWidth(width) - 4
	if w < 10 {
		w = 10
	}
	return w
}

func modalWidth(width int) int {
	w := width - 8
	if w > 84 {
		w = 84
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	w := modalWidth(width)
	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, 1).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorModalHeaderBg).
		Render(title)
	body := lipgloss.NewStyle().
		Width(w).
		Padding(1, 2).
		Foreground(colorSurfaceFg).
		Background(colorModalSurfaceBg).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
