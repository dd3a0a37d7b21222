package tui

import (
	"strings"
	"testing"

	"prefixddns-cli/internal/config"
	"prefixddns-cli/internal/events"
	"prefixddns-cli/internal/fakeserver"
	"prefixddns-cli/internal/model"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

func testConfig() model.Config {
	return model.Config{
		Tasks: []model.Task{
			{ID: "a", Name: "home", Suffix: "::1", Enabled: true, WebhookMethod: model.MethodGet, WebhookURL: "https://h/?ip={{combined_ip}}", WebhookHeaders: model.Headers{}},
			{ID: "b", Name: "office", Suffix: "::2", WebhookMethod: model.MethodGet, WebhookURL: "https://o", WebhookHeaders: model.Headers{}},
		},
		LogLimit: 42,
	}
}

// newLoadedModel returns a dashboard whose configuration came from srv.
func newLoadedModel(t *testing.T, srv *fakeserver.Server) (appModel, *events.ManualScheduler) {
	t.Helper()
	sched := &events.ManualScheduler{}
	m := newAppModel(Options{
		Settings:  config.Config{Server: srv.URL()},
		Scheduler: sched,
	})
	// Blinking cursors would hand back timer commands on every key.
	m.form.name.Cursor.SetMode(cursor.CursorStatic)
	m.form.suffix.Cursor.SetMode(cursor.CursorStatic)
	m.form.url.Cursor.SetMode(cursor.CursorStatic)
	m.form.headers.Cursor.SetMode(cursor.CursorStatic)
	m.form.body.Cursor.SetMode(cursor.CursorStatic)
	m.settings.logLimit.Cursor.SetMode(cursor.CursorStatic)
	m = runCmd(t, m, m.ctl.FetchConfig())
	if !m.ctl.Loaded() {
		t.Fatalf("expected configuration to be loaded")
	}
	return m, sched
}

func send(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	mAny, cmd := m.Update(msg)
	return mAny.(appModel), cmd
}

// runCmd executes cmd synchronously and feeds its message back into m.
func runCmd(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(t, m, c)
		}
		return m
	default:
		m, next := send(t, m, msg)
		return runCmd(t, m, next)
	}
}

func press(t *testing.T, m appModel, keys ...tea.KeyMsg) appModel {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = send(t, m, k)
		if m.quitting {
			continue
		}
		m = runCmd(t, m, cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlX = tea.KeyMsg{Type: tea.KeyCtrlX}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func lastToast(m appModel) string {
	if len(m.toasts) == 0 {
		return ""
	}
	return m.toasts[len(m.toasts)-1].Message
}

func TestToggleEnabled_MarksDirtyAndShowsBadge(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	if m.hooks.dirty {
		t.Fatalf("expected clean draft after load")
	}
	m = press(t, m, keySpace)
	if !m.hooks.dirty {
		t.Fatalf("expected dirty draft after toggle")
	}
	if m.ctl.Rows()[0].Enabled {
		t.Fatalf("expected first task to be disabled")
	}
	if !strings.Contains(m.View(), "unsaved changes") {
		t.Fatalf("expected unsaved badge in header")
	}

	m = press(t, m, runes("s"))
	if m.hooks.dirty {
		t.Fatalf("expected clean draft after save")
	}
	if got := lastToast(m); got != "Configuration saved successfully!" {
		t.Fatalf("expected save toast; got %q", got)
	}
	if len(srv.Saves()) != 1 {
		t.Fatalf("expected 1 save; got %d", len(srv.Saves()))
	}
}

func TestSelectionMovesAndToggleAPI(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m = press(t, m, runes("j"), runes("a"))
	if m.selected != 1 {
		t.Fatalf("expected selection 1; got %d", m.selected)
	}
	if !m.ctl.Rows()[1].API {
		t.Fatalf("expected API trigger on second task")
	}
	// Moving past the end stays on the last row.
	m = press(t, m, runes("j"), runes("j"))
	if m.selected != 1 {
		t.Fatalf("expected selection to stay at 1; got %d", m.selected)
	}
}

func TestQuit_WhenClean_ExitsImmediately(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m, cmd := send(t, m, runes("q"))
	if !m.quitting {
		t.Fatalf("expected quitting")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestQuit_WithUnsavedChanges_AsksFirst(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)
	m = press(t, m, keySpace)

	m = press(t, m, runes("q"))
	if m.modal != modalConfirm || m.confirm.kind != confirmQuit {
		t.Fatalf("expected quit confirm; got modal=%v kind=%v", m.modal, m.confirm.kind)
	}
	if !strings.Contains(m.View(), "unsaved changes") {
		t.Fatalf("expected leave warning in confirm body")
	}

	m = press(t, m, runes("n"))
	if m.modal != modalNone || m.quitting {
		t.Fatalf("expected to stay after declining; got modal=%v quitting=%v", m.modal, m.quitting)
	}

	m = press(t, m, runes("q"))
	m, cmd := send(t, m, runes("y"))
	if !m.quitting || cmd == nil {
		t.Fatalf("expected quit after confirming")
	}
}

func TestReload_WithUnsavedChanges_Confirms(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)
	m = press(t, m, keySpace)

	m = press(t, m, runes("r"))
	if m.modal != modalConfirm || m.confirm.kind != confirmReload {
		t.Fatalf("expected reload confirm; got modal=%v kind=%v", m.modal, m.confirm.kind)
	}
	// enter on the default focus keeps editing.
	m = press(t, m, keyEnter)
	if !m.hooks.dirty {
		t.Fatalf("expected draft to stay dirty")
	}

	m = press(t, m, runes("r"), runes("y"))
	if m.hooks.dirty {
		t.Fatalf("expected clean draft after reload")
	}
	if !m.ctl.Rows()[0].Enabled {
		t.Fatalf("expected server state restored")
	}
}

func TestAddTask_FromPicker_RequiresName(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m = press(t, m, runes("n"))
	if m.modal != modalPicker {
		t.Fatalf("expected template picker; got %v", m.modal)
	}
	m = press(t, m, keyEnter)
	if m.modal != modalEditor || !m.ctl.Editor().IsNew() {
		t.Fatalf("expected new-task editor; got %v", m.modal)
	}

	m = press(t, m, keyCtrlS)
	if m.modal != modalEditor {
		t.Fatalf("expected editor to stay open without a name")
	}
	if got := lastToast(m); got != "Task name is required" {
		t.Fatalf("expected validation toast; got %q", got)
	}

	m = press(t, m, runes("backup"), keyCtrlS)
	if m.modal != modalNone {
		t.Fatalf("expected editor closed; got %v", m.modal)
	}
	rows := m.ctl.Rows()
	if len(rows) != 3 || rows[2].Name != "backup" || !rows[2].Enabled {
		t.Fatalf("expected new enabled task at the end; got %+v", rows)
	}
	if m.selected != 2 {
		t.Fatalf("expected new task selected; got %d", m.selected)
	}
	if got := lastToast(m); got != "Task added (unsaved)" {
		t.Fatalf("expected added toast; got %q", got)
	}
	if !m.hooks.dirty {
		t.Fatalf("expected dirty draft")
	}
}

func TestEditor_EscapeDiscardsForm(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m = press(t, m, keyEnter, runes("x"), keyEsc)
	if m.modal != modalNone {
		t.Fatalf("expected editor closed; got %v", m.modal)
	}
	if m.ctl.Rows()[0].Name != "home" || m.hooks.dirty {
		t.Fatalf("expected task unchanged and draft clean")
	}
}

func TestEditor_DeleteAsksFirst(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m = press(t, m, keyEnter, keyCtrlX)
	if m.modal != modalConfirm || m.confirm.kind != confirmDeleteTask {
		t.Fatalf("expected delete confirm; got modal=%v kind=%v", m.modal, m.confirm.kind)
	}
	m = press(t, m, keyEsc)
	if m.modal != modalEditor {
		t.Fatalf("expected back in editor after declining; got %v", m.modal)
	}

	m = press(t, m, keyCtrlX, runes("y"))
	if m.modal != modalNone {
		t.Fatalf("expected editor closed after delete; got %v", m.modal)
	}
	rows := m.ctl.Rows()
	if len(rows) != 1 || rows[0].Name != "office" {
		t.Fatalf("expected only office left; got %+v", rows)
	}
	if got := lastToast(m); got != "Task deleted (unsaved)" {
		t.Fatalf("expected delete toast; got %q", got)
	}
}

func TestSettingsModal_EditsDirtyTheDraft(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m = press(t, m, runes(","))
	if m.modal != modalSettings {
		t.Fatalf("expected settings modal; got %v", m.modal)
	}
	m = press(t, m, keyBack, keyBack, runes("7"))
	if got := m.ctl.LogLimitInput(); got != "7" {
		t.Fatalf("expected log limit input 7; got %q", got)
	}
	if !m.hooks.dirty {
		t.Fatalf("expected dirty draft")
	}

	m = press(t, m, keyEsc, runes("s"))
	if got := srv.Config().LogLimit; got != 7 {
		t.Fatalf("expected saved log limit 7; got %d", got)
	}
}

func TestToasts_ExpireBySequence(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, sched := newLoadedModel(t, srv)

	if len(m.toasts) != 1 || m.toasts[0].Message != "Configuration loaded" {
		t.Fatalf("expected load toast; got %+v", m.toasts)
	}
	m = press(t, m, keySpace, runes("s"))
	if len(m.toasts) != 2 {
		t.Fatalf("expected 2 toasts; got %d", len(m.toasts))
	}

	fired := sched.Fire()
	if len(fired) != 2 {
		t.Fatalf("expected 2 pending expiries; got %d", len(fired))
	}
	m, _ = send(t, m, fired[0])
	if len(m.toasts) != 1 || m.toasts[0].Message != "Configuration saved successfully!" {
		t.Fatalf("expected only the newer toast left; got %+v", m.toasts)
	}
	// A repeated expiry is ignored.
	m, _ = send(t, m, fired[0])
	if len(m.toasts) != 1 {
		t.Fatalf("expected stale expiry ignored")
	}
	m, _ = send(t, m, fired[1])
	if len(m.toasts) != 0 {
		t.Fatalf("expected no toasts; got %+v", m.toasts)
	}
}

func TestLogPane_ShowsStreamedEntries(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	m, _ := newLoadedModel(t, srv)

	m.ctl.Logs().Append(model.LogEntry{Timestamp: "10:00:00", Level: model.LevelSuccess, Source: "TASK", Message: "updated home"})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	if !strings.Contains(view, "updated home") {
		t.Fatalf("expected log line in view")
	}
	if !strings.Contains(view, "1 logs") {
		t.Fatalf("expected log counter in view")
	}

	m = press(t, m, runes("c"))
	if strings.Contains(m.View(), "updated home") {
		t.Fatalf("expected log view cleared")
	}
}

func TestConfigReload_EnvironmentStillWins(t *testing.T) {
	srv := fakeserver.Start(testConfig())
	defer srv.Close()
	env := map[string]string{
		"PREFIXDDNS_FAKE_IP":          "2001:db8:eeee::1",
		"PREFIXDDNS_LOG_BUFFER":       "7",
		"PREFIXDDNS_DEFAULT_TEMPLATE": "duckdns",
	}
	m := newAppModel(Options{
		Settings:  config.Config{Server: srv.URL(), FakeIP: "2001:db8:eeee::1"},
		Scheduler: &events.ManualScheduler{},
		Getenv:    func(k string) string { return env[k] },
	})

	m, _ = send(t, m, configReloadedMsg{cfg: config.Config{
		FakeIP:          "2001:db8:aaaa::1",
		LogBuffer:       300,
		DefaultTemplate: "cloudflare",
	}})
	if got := m.ctl.FakeIP(); got != "2001:db8:eeee::1" {
		t.Fatalf("expected env fake ip to win; got %q", got)
	}
	if got := m.ctl.Logs().Max(); got != 7 {
		t.Fatalf("expected env log buffer 7; got %d", got)
	}
	if m.defaultTemplate != "duckdns" {
		t.Fatalf("expected env default template; got %q", m.defaultTemplate)
	}

	// Keys the environment does not set come from the file.
	delete(env, "PREFIXDDNS_FAKE_IP")
	m, _ = send(t, m, configReloadedMsg{cfg: config.Config{FakeIP: "2001:db8:aaaa::1"}})
	if got := m.ctl.FakeIP(); got != "2001:db8:aaaa::1" {
		t.Fatalf("expected file fake ip; got %q", got)
	}
}
