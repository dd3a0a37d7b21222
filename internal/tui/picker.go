package tui

import (
	"fmt"
	"io"
	"strings"

	"prefixddns-cli/internal/templates"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type templateItem struct {
	key  string
	name string
}

func (i templateItem) FilterValue() string { return i.name }

type templateDelegate struct{}

func (templateDelegate) Height() int                         { return 1 }
func (templateDelegate) Spacing() int                        { return 0 }
func (templateDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (templateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(templateItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("  %s", it.name)
	st := lipgloss.NewStyle()
	if index == m.Index() {
		line = fmt.Sprintf("▸ %s", it.name)
		st = st.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	}
	_, _ = io.WriteString(w, st.Render(fitLine(line, m.Width())))
}

func newTemplatePicker() list.Model {
	keys := templates.Keys()
	items := make([]list.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, templateItem{key: k, name: templates.Name(k)})
	}
	l := list.New(items, templateDelegate{}, 40, len(items)+2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	return l
}

// selectTemplate moves the picker cursor to key.
func selectTemplate(l *list.Model, key string) {
	for i, it := range l.Items() {
		if ti, ok := it.(templateItem); ok && ti.key == key {
			l.Select(i)
			return
		}
	}
	l.Select(0)
}

func selectedTemplate(l list.Model) string {
	if it, ok := l.SelectedItem().(templateItem); ok {
		return it.key
	}
	return templates.EmptyKey
}

func renderPicker(width int, l list.Model) string {
	body := strings.Join([]string{
		l.View(),
		"",
		styleMuted().Width(modalBodyWidth(width)).Render("↑/↓: choose   enter: use template   esc: cancel"),
	}, "\n")
	return renderModalBox(width, "Add New Task: choose a template", body)
}
