package tui

import (
	"log"
	"os"

	"prefixddns-cli/internal/api"
	"prefixddns-cli/internal/app"
	"prefixddns-cli/internal/config"
	"prefixddns-cli/internal/events"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type pane int

const (
	paneTasks pane = iota
	paneLogs
)

type modalKind int

const (
	modalNone modalKind = iota
	modalPicker
	modalEditor
	modalSettings
	modalConfirm
	modalHelp
)

type configReloadedMsg struct{ cfg config.Config }

// Options wires the dashboard to a server and its client settings.
type Options struct {
	Settings config.Config
	// Dialer overrides the live log transport; nil means HTTP to Settings.Server.
	Dialer    events.Dialer
	Scheduler events.Scheduler
	// Watcher, when set, applies edits of the client config file while running.
	Watcher *config.Watcher
	// Getenv resolves PREFIXDDNS_* overrides for reloaded files; nil means os.Getenv.
	Getenv func(string) string
}

type appModel struct {
	ctl   *app.Controller
	hooks *hooks

	server          string
	defaultTemplate string
	watcher         *config.Watcher
	getenv          func(string) string
	sched           events.Scheduler

	width  int
	height int

	pane     pane
	selected int

	modal    modalKind
	form     editorForm
	picker   list.Model
	settings settingsForm
	confirm  confirmState
	// returnTo is the modal shown again when a confirm prompt is declined.
	returnTo modalKind

	logView  viewport.Model
	logSig   logSignature
	toasts   []toast
	toastSeq int
	quitting bool
}

type logSignature struct {
	count int
	width int
	max   int
	n     int
}

func newAppModel(opts Options) appModel {
	s := opts.Settings.WithDefaults()
	h := &hooks{}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = events.TickScheduler{}
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = events.NewHTTPDialer(s.Server)
	}
	ctl := app.New(app.Options{
		API:            api.New(api.Config{Server: s.Server, Timeout: s.RequestTimeout}),
		Dialer:         dialer,
		Scheduler:      sched,
		ReconnectDelay: s.ReconnectDelay,
		RequestTimeout: s.RequestTimeout,
		FakeIP:         s.FakeIP,
		LogBuffer:      s.LogBuffer,
		Notifier:       h,
		StatusObserver: h,
		DirtyObserver:  h,
		Guard:          h,
	})
	m := appModel{
		ctl:             ctl,
		hooks:           h,
		server:          s.Server,
		defaultTemplate: s.DefaultTemplate,
		watcher:         opts.Watcher,
		sched:           sched,
		getenv:          getenv,
		width:           100,
		height:          30,
		form:            newEditorForm(),
		picker:          newTemplatePicker(),
		settings:        newSettingsForm(),
		logView:         viewport.New(100, 10),
	}
	m.layout()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.ctl.Init(), waitForConfig(m.watcher))
}

func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, err := w.Next()
		if err != nil {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// applySettings takes the live-reloadable part of the client config. Server and
// timing changes need a restart. Environment overrides still win over the file.
func (m *appModel) applySettings(cfg config.Config) {
	cfg, err := cfg.ApplyEnv(m.getenv)
	if err != nil {
		log.Printf("config: %v", err)
	}
	s := cfg.WithDefaults()
	m.ctl.SetFakeIP(s.FakeIP)
	m.ctl.SetLogBuffer(s.LogBuffer)
	m.defaultTemplate = s.DefaultTemplate
	applyColorProfilePreference(s.NoColor)
}
