package tui

import (
	"fmt"
	"strings"

	"prefixddns-cli/internal/editor"
	"prefixddns-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldName formField = iota
	fieldSuffix
	fieldMethod
	fieldURL
	fieldHeaders
	fieldBody
	fieldCount
)

var formLabels = [fieldCount]string{"Name", "Suffix", "Method", "URL", "Headers", "Body"}

// editorForm is the task editor modal. Values are pushed into the editor session on
// every change so test runs and the URL preview always see what is on screen.
type editorForm struct {
	name    textinput.Model
	suffix  textinput.Model
	url     textinput.Model
	method  int
	headers textarea.Model
	body    textarea.Model
	focus   formField
}

func newEditorForm() editorForm {
	var f editorForm
	f.name = textinput.New()
	f.name.Placeholder = "My DDNS task"
	f.name.CharLimit = 200
	f.name.Prompt = ""

	f.suffix = textinput.New()
	f.suffix.Placeholder = "::1"
	f.suffix.CharLimit = 64
	f.suffix.Prompt = ""

	f.url = textinput.New()
	f.url.Placeholder = "https://example.com/update?ip={{combined_ip}}"
	f.url.CharLimit = 0
	f.url.Prompt = ""

	f.headers = textarea.New()
	f.headers.Placeholder = "Content-Type: application/json"
	f.headers.CharLimit = 0
	f.headers.ShowLineNumbers = false
	f.headers.SetHeight(3)

	f.body = textarea.New()
	f.body.Placeholder = `{"ip": "{{combined_ip}}"}`
	f.body.CharLimit = 0
	f.body.ShowLineNumbers = false
	f.body.SetHeight(5)

	f.resize(80)
	return f
}

func (f *editorForm) load(v editor.Fields) {
	f.name.SetValue(v.Name)
	f.suffix.SetValue(v.Suffix)
	f.url.SetValue(v.URL)
	f.name.CursorEnd()
	f.suffix.CursorEnd()
	f.url.CursorEnd()
	f.headers.SetValue(v.Headers)
	f.body.SetValue(v.Body)
	f.method = 0
	for i, m := range model.Methods {
		if string(m) == string(model.NormalizeMethod(v.Method)) {
			f.method = i
		}
	}
	f.setFocus(fieldName)
}

func (f editorForm) fields() editor.Fields {
	return editor.Fields{
		Name:    f.name.Value(),
		Suffix:  f.suffix.Value(),
		Method:  string(model.Methods[f.method]),
		URL:     f.url.Value(),
		Headers: f.headers.Value(),
		Body:    f.body.Value(),
	}
}

func (f *editorForm) resize(width int) {
	w := modalBodyWidth(width) - 10
	if w < 20 {
		w = 20
	}
	f.name.Width = w
	f.suffix.Width = w
	f.url.Width = w
	f.headers.SetWidth(w)
	f.body.SetWidth(w)
}

func (f *editorForm) setFocus(ff formField) {
	f.focus = (ff + fieldCount) % fieldCount
	f.name.Blur()
	f.suffix.Blur()
	f.url.Blur()
	f.headers.Blur()
	f.body.Blur()
	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldSuffix:
		f.suffix.Focus()
	case fieldURL:
		f.url.Focus()
	case fieldHeaders:
		f.headers.Focus()
	case fieldBody:
		f.body.Focus()
	}
}

// update routes a key to the focused field.
func (f *editorForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldSuffix:
		f.suffix, cmd = f.suffix.Update(msg)
	case fieldURL:
		f.url, cmd = f.url.Update(msg)
	case fieldHeaders:
		f.headers, cmd = f.headers.Update(msg)
	case fieldBody:
		f.body, cmd = f.body.Update(msg)
	case fieldMethod:
		switch msg.String() {
		case "left", "h":
			f.method = (f.method + len(model.Methods) - 1) % len(model.Methods)
		case "right", "l", " ":
			f.method = (f.method + 1) % len(model.Methods)
		}
	}
	return cmd
}

func (f editorForm) view(width int, title string, preview editor.Preview, existing bool) string {
	label := func(ff formField) string {
		st := lipgloss.NewStyle().Width(9)
		if f.focus == ff {
			st = st.Bold(true).Foreground(colorAccent)
		}
		return st.Render(formLabels[ff])
	}
	row := func(ff formField, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label(ff), " ", v)
	}

	methods := make([]string, len(model.Methods))
	for i, m := range model.Methods {
		st := lipgloss.NewStyle().Padding(0, 1)
		if i == f.method {
			st = st.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
		} else {
			st = st.Foreground(colorMuted)
		}
		methods[i] = st.Render(string(m))
	}

	bodyW := modalBodyWidth(width)
	previewLine := styleMuted().Width(bodyW).Render("→ " + preview.URL)
	if preview.Warning != "" {
		previewLine += "\n" + lipgloss.NewStyle().Foreground(colorWarning).Width(bodyW).Render("suffix: "+preview.Warning)
	}

	keys := "tab: next field   ctrl+s: save   ctrl+t: test   esc: cancel"
	if existing {
		keys += "   ctrl+d: duplicate   ctrl+x: delete"
	}

	parts := []string{
		row(fieldName, f.name.View()),
		row(fieldSuffix, f.suffix.View()),
		row(fieldMethod, lipgloss.JoinHorizontal(lipgloss.Top, methods...)),
		row(fieldURL, f.url.View()),
		previewLine,
		"",
		row(fieldHeaders, f.headers.View()),
		row(fieldBody, f.body.View()),
		"",
		styleMuted().Width(bodyW).Render(keys),
	}
	return renderModalBox(width, title, strings.Join(parts, "\n"))
}

func editorTitle(isNew bool, name string) string {
	if isNew {
		return "Add New Task"
	}
	if strings.TrimSpace(name) == "" {
		return "Edit Task Details"
	}
	return fmt.Sprintf("Edit Task Details: %s", name)
}
