package tui

import (
	"fmt"
	"strings"

	"prefixddns-cli/internal/logview"
	"prefixddns-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewModal())
	}

	tasksH, logsH := m.paneHeights()
	parts := []string{
		m.viewHeader(),
		normalizePane(m.viewTasks(tasksH), m.width, tasksH),
		normalizePane(m.viewLogs(), m.width, logsH),
		m.viewFooter(),
	}
	out := strings.Join(parts, "\n")
	if t := renderToasts(m.toasts, m.width); t != "" {
		out = overlayBottomRight(out, t, m.width)
	}
	return out
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalEditor:
		ed := m.ctl.Editor()
		return m.form.view(m.width, editorTitle(ed.IsNew(), ed.Fields().Name), m.ctl.Preview(), !ed.IsNew())
	case modalPicker:
		return renderPicker(m.width, m.picker)
	case modalSettings:
		return m.settings.view(m.width)
	case modalConfirm:
		return renderConfirmModal(m.width, m.confirm)
	case modalHelp:
		return renderModalBox(m.width, "Keys", renderMarkdown(helpMarkdown, modalBodyWidth(m.width)))
	}
	return ""
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("PrefixDDNS")
	status := m.ctl.StreamStatus()
	dot := lipgloss.NewStyle().Foreground(statusColor(status)).Render("●")
	parts := []string{title, styleMuted().Render(m.server), dot + " " + status.Label()}
	if m.hooks.dirty {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(colorWarning).Render("unsaved changes"))
	}
	if m.ctl.Saving() {
		parts = append(parts, styleMuted().Render("saving..."))
	}
	return fitLine(strings.Join(parts, "  "), m.width)
}

func (m appModel) viewTasks(height int) string {
	rows := m.ctl.Rows()
	head := paneTitle("Tasks", m.pane == paneTasks)
	if !m.ctl.Loaded() {
		return head + "\n" + styleMuted().Render("Loading configuration...")
	}
	if len(rows) == 0 {
		return head + "\n" + styleMuted().Render("No tasks yet. Press n to add one.")
	}

	// Keep the selection visible.
	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	lines := []string{head}
	for _, r := range rows[start:end] {
		check := "[ ]"
		if r.Enabled {
			check = "[x]"
		}
		api := "   "
		if r.API {
			api = "API"
		}
		name := r.Name
		if strings.TrimSpace(name) == "" {
			name = "(unnamed)"
		}
		ln := fmt.Sprintf("%s %s  %s", check, api, name)
		if r.Index == m.selected {
			st := lipgloss.NewStyle().Bold(true)
			if m.pane == paneTasks {
				st = st.Foreground(colorSelectedFg).Background(colorSelectedBg)
			}
			lines = append(lines, st.Render(fitLine("▸ "+ln, m.width)))
			continue
		}
		lines = append(lines, "  "+ln)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewLogs() string {
	head := paneTitle("Live Logs", m.pane == paneLogs) + "  " + styleMuted().Render(logview.CountLabel(m.ctl.Logs().Count()))
	return head + "\n" + m.logView.View()
}

func (m appModel) viewFooter() string {
	keys := "↑/↓: select  space: enable  a: api  enter: edit  n: new  s: save  r: reload  c: clear logs  ,: settings  ?: help  q: quit"
	return styleMuted().Render(fitLine(keys, m.width))
}

func paneTitle(title string, focused bool) string {
	st := lipgloss.NewStyle().Bold(true)
	if focused {
		st = st.Foreground(colorAccent)
	}
	return st.Render(title)
}

// paneHeights splits the space between header and footer.
func (m appModel) paneHeights() (int, int) {
	body := m.height - 2
	if body < 4 {
		body = 4
	}
	tasks := body / 2
	return tasks, body - tasks
}

func (m *appModel) layout() {
	_, logsH := m.paneHeights()
	m.logView.Width = m.width
	m.logView.Height = logsH - 1
	if m.logView.Height < 1 {
		m.logView.Height = 1
	}
	m.form.resize(m.width)
	pickerH := len(m.picker.Items()) + 2
	if limit := m.height - 8; pickerH > limit && limit > 3 {
		pickerH = limit
	}
	m.picker.SetSize(modalBodyWidth(m.width), pickerH)
	m.logSig = logSignature{}
	m.syncLogView()
}

// syncLogView re-renders the log viewport when the buffer or width changed.
func (m *appModel) syncLogView() {
	logs := m.ctl.Logs()
	entries := logs.Entries()
	sig := logSignature{count: logs.Count(), width: m.logView.Width, max: logs.Max(), n: len(entries)}
	if sig == m.logSig {
		return
	}
	m.logSig = sig
	if len(entries) == 0 {
		m.logView.SetContent(styleMuted().Render("Waiting for log events..."))
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = renderLogLine(e, m.logView.Width)
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
}

func renderLogLine(e model.LogEntry, width int) string {
	level := lipgloss.NewStyle().Bold(true).Foreground(levelColor(e.Level)).Render(e.LevelLabel())
	ln := fmt.Sprintf("%s %s %s %s",
		styleMuted().Render("["+e.Timestamp+"]"),
		styleMuted().Render("["+e.SourceLabel()+"]"),
		level,
		e.Message,
	)
	return fitLine(ln, width)
}

// overlayBottomRight draws box over the last lines of base, right-aligned.
func overlayBottomRight(base, box string, width int) string {
	lines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	start := len(lines) - 1 - len(boxLines)
	if start < 0 {
		start = 0
	}
	for i, bl := range boxLines {
		at := start + i
		if at >= len(lines) {
			break
		}
		lines[at] = lipgloss.PlaceHorizontal(width, lipgloss.Right, bl)
	}
	return strings.Join(lines, "\n")
}
