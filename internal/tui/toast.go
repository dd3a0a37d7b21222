package tui

import (
	"time"

	"prefixddns-cli/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	toastTTL  = 3 * time.Second
	maxToasts = 4
)

type toast struct {
	seq int
	app.Toast
}

type toastDoneMsg struct{ seq int }

// showToasts moves pending notifications on screen and schedules their expiry.
func (m *appModel) showToasts() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.hooks.drain() {
		m.toastSeq++
		seq := m.toastSeq
		m.toasts = append(m.toasts, toast{seq: seq, Toast: t})
		cmds = append(cmds, m.sched.Schedule(toastTTL, toastDoneMsg{seq: seq}))
	}
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Batch(cmds...)
}

func (m *appModel) expireToast(seq int) {
	for i, t := range m.toasts {
		if t.seq == seq {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

func renderToasts(ts []toast, width int) string {
	if len(ts) == 0 {
		return ""
	}
	w := width / 2
	if w < 30 {
		w = 30
	}
	lines := make([]string, 0, len(ts))
	for _, t := range ts {
		st := lipgloss.NewStyle().
			Width(w).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "235"}).
			Background(severityColor(t.Severity))
		lines = append(lines, st.Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
