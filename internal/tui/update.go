package tui

import (
	"errors"

	"prefixddns-cli/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case toastDoneMsg:
		m.expireToast(msg.seq)
		return m, nil

	case configReloadedMsg:
		m.applySettings(msg.cfg)
		cmd = waitForConfig(m.watcher)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		cmd = m.ctl.Update(msg)
	}
	return m, m.finish(cmd)
}

// finish runs after every update: surfaces notifications, keeps the selection valid
// and refreshes the log pane.
func (m *appModel) finish(cmd tea.Cmd) tea.Cmd {
	if n := m.ctl.Store().Len(); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.syncLogView()
	toasts := m.showToasts()
	if m.quitting {
		m.ctl.Stop()
		return tea.Quit
	}
	return tea.Batch(cmd, toasts)
}

func (m *appModel) handleKey(k tea.KeyMsg) tea.Cmd {
	switch m.modal {
	case modalConfirm:
		return m.updateConfirm(k)
	case modalEditor:
		return m.updateEditor(k)
	case modalPicker:
		return m.updatePicker(k)
	case modalSettings:
		return m.updateSettings(k)
	case modalHelp:
		switch k.String() {
		case "esc", "?", "q", "enter":
			m.modal = modalNone
		}
		return nil
	}
	return m.updateMain(k)
}

func (m *appModel) updateMain(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "ctrl+c", "q":
		m.requestQuit()
		return nil
	case "tab":
		if m.pane == paneTasks {
			m.pane = paneLogs
		} else {
			m.pane = paneTasks
		}
		return nil
	case "?":
		m.modal = modalHelp
		return nil
	case "ctrl+s", "s":
		return m.ctl.SaveConfig()
	case "r":
		if m.hooks.dirty {
			m.openConfirm(confirmState{
				kind:  confirmReload,
				title: "Reload configuration",
				body:  "Discard unsaved changes and reload the configuration from the server?",
				yes:   "Reload",
				no:    "Keep editing",
				focus: confirmFocusCancel,
			}, modalNone)
			return nil
		}
		return m.ctl.FetchConfig()
	case "c":
		m.ctl.ClearLogs()
		return nil
	case ",":
		m.settings.load(m.ctl.LogLimitInput(), m.ctl.RunOnStartupInput())
		m.modal = modalSettings
		return nil
	case "n", "+":
		selectTemplate(&m.picker, m.defaultTemplate)
		m.modal = modalPicker
		return nil
	}

	if m.pane == paneLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(k)
		return cmd
	}

	n := m.ctl.Store().Len()
	switch k.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < n-1 {
			m.selected++
		}
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.selected = n - 1
	case " ", "e":
		_ = m.ctl.ToggleEnabled(m.selected)
	case "a":
		_ = m.ctl.ToggleAPI(m.selected)
	case "enter":
		if err := m.ctl.EditTask(m.selected); err == nil {
			m.openEditor()
		}
	}
	return nil
}

func (m *appModel) requestQuit() {
	if !m.hooks.guardArmed {
		m.quitting = true
		return
	}
	m.openConfirm(confirmState{
		kind:  confirmQuit,
		title: "Unsaved changes",
		body:  m.hooks.guardReason,
		yes:   "Leave",
		no:    "Stay",
		focus: confirmFocusCancel,
	}, m.modal)
}

func (m *appModel) openConfirm(c confirmState, returnTo modalKind) {
	m.confirm = c
	m.returnTo = returnTo
	m.modal = modalConfirm
}

func (m *appModel) updateConfirm(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return nil
	case "y":
		return m.resolveConfirm(true)
	case "n", "esc", "ctrl+g":
		return m.resolveConfirm(false)
	case "enter":
		return m.resolveConfirm(m.confirm.focus == confirmFocusConfirm)
	}
	return nil
}

func (m *appModel) resolveConfirm(yes bool) tea.Cmd {
	c := m.confirm
	m.confirm = confirmState{}
	m.modal = m.returnTo
	m.returnTo = modalNone
	if !yes {
		return nil
	}
	switch c.kind {
	case confirmQuit:
		m.quitting = true
	case confirmReload:
		return m.ctl.FetchConfig()
	case confirmDeleteTask:
		if ok, _ := m.ctl.DeleteTask(editor.Answer(true)); ok {
			m.modal = modalNone
		}
	}
	return nil
}

func (m *appModel) openEditor() {
	m.form.load(m.ctl.Editor().Fields())
	m.form.resize(m.width)
	m.modal = modalEditor
}

func (m *appModel) updateEditor(k tea.KeyMsg) tea.Cmd {
	ed := m.ctl.Editor()
	switch k.String() {
	case "esc":
		m.ctl.CancelEdit()
		m.modal = modalNone
		return nil
	case "ctrl+c":
		m.requestQuit()
		return nil
	case "tab":
		m.form.setFocus(m.form.focus + 1)
		return nil
	case "shift+tab":
		m.form.setFocus(m.form.focus - 1)
		return nil
	case "ctrl+s":
		_ = ed.SetFields(m.form.fields())
		i, err := m.ctl.CommitEdit()
		if err == nil {
			m.selected = i
			m.modal = modalNone
		} else {
			var ve *editor.ValidationError
			if errors.As(err, &ve) && ve.Field == "name" {
				m.form.setFocus(fieldName)
			}
		}
		return nil
	case "ctrl+t":
		_ = ed.SetFields(m.form.fields())
		return m.ctl.TestRun()
	case "ctrl+d":
		if ed.IsNew() {
			return nil
		}
		if i, err := m.ctl.DuplicateTask(); err == nil {
			m.selected = i
			m.modal = modalNone
		}
		return nil
	case "ctrl+x":
		if ed.IsNew() {
			return nil
		}
		m.openConfirm(confirmState{
			kind:  confirmDeleteTask,
			title: "Delete task",
			body:  editor.DeletePrompt,
			yes:   "Delete",
			no:    "Cancel",
			focus: confirmFocusCancel,
		}, modalEditor)
		return nil
	}
	cmd := m.form.update(k)
	_ = ed.SetFields(m.form.fields())
	return cmd
}

func (m *appModel) updatePicker(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "esc", "q":
		m.modal = modalNone
		return nil
	case "enter":
		if err := m.ctl.NewTask(selectedTemplate(m.picker)); err != nil {
			m.modal = modalNone
			return nil
		}
		m.openEditor()
		return nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(k)
	return cmd
}

func (m *appModel) updateSettings(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "esc", "enter":
		m.modal = modalNone
		return nil
	case "tab", "shift+tab", "up", "down":
		if m.settings.focus == settingsFocusLogLimit {
			m.settings.setFocus(settingsFocusStartup)
		} else {
			m.settings.setFocus(settingsFocusLogLimit)
		}
		return nil
	case "ctrl+s":
		m.modal = modalNone
		return m.ctl.SaveConfig()
	}
	cmd := m.settings.update(k)
	m.ctl.SetLogLimitInput(m.settings.logLimit.Value())
	m.ctl.SetRunOnStartup(m.settings.startup)
	return cmd
}
