package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsFocus int

const (
	settingsFocusLogLimit settingsFocus = iota
	settingsFocusStartup
)

// settingsForm edits the global server settings. Its values go to the controller on
// every change; they are folded into the draft when saving.
type settingsForm struct {
	logLimit textinput.Model
	startup  bool
	focus    settingsFocus
}

func newSettingsForm() settingsForm {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "100"
	in.CharLimit = 9
	in.Width = 10
	return settingsForm{logLimit: in}
}

func (f *settingsForm) load(logLimit string, startup bool) {
	f.logLimit.SetValue(logLimit)
	f.logLimit.CursorEnd()
	f.startup = startup
	f.setFocus(settingsFocusLogLimit)
}

func (f *settingsForm) setFocus(s settingsFocus) {
	f.focus = s
	if s == settingsFocusLogLimit {
		f.logLimit.Focus()
	} else {
		f.logLimit.Blur()
	}
}

func (f *settingsForm) update(msg tea.KeyMsg) tea.Cmd {
	if f.focus == settingsFocusStartup {
		if msg.String() == " " || msg.String() == "x" {
			f.startup = !f.startup
		}
		return nil
	}
	var cmd tea.Cmd
	f.logLimit, cmd = f.logLimit.Update(msg)
	return cmd
}

func (f settingsForm) view(width int) string {
	label := func(s settingsFocus, text string) string {
		st := lipgloss.NewStyle().Width(16)
		if f.focus == s {
			st = st.Bold(true).Foreground(colorAccent)
		}
		return st.Render(text)
	}
	check := "[ ]"
	if f.startup {
		check = "[x]"
	}
	parts := []string{
		label(settingsFocusLogLimit, "Log limit") + " " + f.logLimit.View(),
		label(settingsFocusStartup, "Run on startup") + " " + check,
		"",
		styleMuted().Width(modalBodyWidth(width)).Render("tab: next   space: toggle   enter/esc: close   (changes are saved with ctrl+s)"),
	}
	return renderModalBox(width, "Global Settings", strings.Join(parts, "\n"))
}
