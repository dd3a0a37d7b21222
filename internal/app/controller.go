// Package app is the dashboard controller. It owns the draft, the editor session, the
// API client and the live log stream, and turns their results into toasts.
package app

import (
	"context"
	"errors"
	"log"
	"time"

	"prefixddns-cli/internal/api"
	"prefixddns-cli/internal/draft"
	"prefixddns-cli/internal/editor"
	"prefixddns-cli/internal/events"
	"prefixddns-cli/internal/logview"
	"prefixddns-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfigFetchedMsg carries the result of FetchConfig.
type ConfigFetchedMsg struct {
	Patch model.ConfigPatch
	Err   error
}

// ConfigSavedMsg carries the result of SaveConfig. Rev is the draft revision that was sent.
type ConfigSavedMsg struct {
	Rev uint64
	Err error
}

// TestResultMsg carries the result of TestRun.
type TestResultMsg struct {
	Text string
	Err  error
}

type Options struct {
	API            *api.Client
	Dialer         events.Dialer
	Scheduler      events.Scheduler
	ReconnectDelay time.Duration
	RequestTimeout time.Duration
	FakeIP         string
	LogBuffer      int

	Notifier       Notifier
	StatusObserver StatusObserver
	DirtyObserver  draft.Observer
	Guard          draft.Guard
	// Sink also receives every streamed entry, after the log buffer.
	Sink events.EntrySink
}

type Controller struct {
	store  *draft.Store
	editor *editor.Editor
	api    *api.Client
	stream *events.Client
	logs   *logview.Buffer

	notifier Notifier
	timeout  time.Duration
	fakeIP   string

	// Settings inputs. They are folded into the draft on save.
	logLimitInput string
	runOnStartup  bool

	loaded bool
	saving bool
}

func New(opts Options) *Controller {
	if opts.API == nil {
		opts.API = api.New(api.Config{})
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = api.DefaultTimeout
	}
	cfg := model.DefaultConfig()
	store := draft.New(cfg)
	store.Observe(opts.DirtyObserver)
	store.SetGuard(opts.Guard)

	c := &Controller{
		store:         store,
		editor:        editor.New(store),
		api:           opts.API,
		logs:          logview.New(opts.LogBuffer),
		notifier:      opts.Notifier,
		timeout:       opts.RequestTimeout,
		fakeIP:        opts.FakeIP,
		logLimitInput: logLimitText(cfg.LogLimit),
		runOnStartup:  cfg.RunOnStartup,
	}
	var sink events.EntrySink = c.logs
	if opts.Sink != nil {
		sink = teeSink{c.logs, opts.Sink}
	}
	if opts.Dialer != nil {
		c.stream = events.NewClient(events.Options{
			Dialer:         opts.Dialer,
			Scheduler:      opts.Scheduler,
			ReconnectDelay: opts.ReconnectDelay,
			Observer:       opts.StatusObserver,
			Sink:           sink,
		})
	}
	return c
}

type teeSink []events.EntrySink

func (t teeSink) Append(e model.LogEntry) {
	for _, s := range t {
		s.Append(e)
	}
}

// Init loads the configuration and opens the log stream.
func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.FetchConfig(), c.Connect())
}

// Connect (re)opens the log stream.
func (c *Controller) Connect() tea.Cmd {
	if c.stream == nil {
		return nil
	}
	return c.stream.Connect()
}

// Stop shuts the log stream down for good.
func (c *Controller) Stop() {
	if c.stream != nil {
		c.stream.Stop()
	}
}

func (c *Controller) Store() *draft.Store     { return c.store }
func (c *Controller) Editor() *editor.Editor  { return c.editor }
func (c *Controller) Logs() *logview.Buffer   { return c.logs }
func (c *Controller) Dirty() bool             { return c.store.Dirty() }
func (c *Controller) Loaded() bool            { return c.loaded }
func (c *Controller) Saving() bool            { return c.saving }
func (c *Controller) FakeIP() string          { return c.fakeIP }
func (c *Controller) SetFakeIP(ip string)     { c.fakeIP = ip }
func (c *Controller) SetLogBuffer(max int)    { c.logs.SetMax(max) }
func (c *Controller) Config() model.Config    { return c.store.Snapshot() }
func (c *Controller) LogLimitInput() string   { return c.logLimitInput }
func (c *Controller) RunOnStartupInput() bool { return c.runOnStartup }

// StreamStatus is the current connection status of the log stream.
func (c *Controller) StreamStatus() events.Status {
	if c.stream == nil {
		return events.StatusDisconnected
	}
	return c.stream.Status()
}

// Update applies async results. It must run on the event loop goroutine.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ConfigFetchedMsg:
		c.applyFetched(msg)
		return nil
	case ConfigSavedMsg:
		c.applySaved(msg)
		return nil
	case TestResultMsg:
		c.applyTestResult(msg)
		return nil
	}
	if c.stream != nil {
		return c.stream.Update(msg)
	}
	return nil
}

// FetchConfig pulls the server configuration. The result replaces the draft.
func (c *Controller) FetchConfig() tea.Cmd {
	client, timeout := c.api, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		patch, err := client.FetchConfig(ctx)
		return ConfigFetchedMsg{Patch: patch, Err: err}
	}
}

func (c *Controller) applyFetched(msg ConfigFetchedMsg) {
	if msg.Err != nil {
		log.Printf("app: fetch config: %v", msg.Err)
		c.notify("Error loading configuration", SeverityError)
		return
	}
	cfg := msg.Patch.ApplyTo(c.store.Snapshot())
	c.editor.Cancel()
	c.store.Load(cfg)
	c.logLimitInput = logLimitText(cfg.LogLimit)
	c.runOnStartup = cfg.RunOnStartup
	c.loaded = true
	c.notify("Configuration loaded", SeveritySuccess)
}

// SaveConfig folds the settings inputs into the draft and sends the whole of it.
func (c *Controller) SaveConfig() tea.Cmd {
	c.store.ApplySettings(ParseLogLimit(c.logLimitInput), c.runOnStartup)
	rev := c.store.Revision()
	cfg := c.store.Snapshot()
	c.saving = true
	client, timeout := c.api, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ConfigSavedMsg{Rev: rev, Err: client.SaveConfig(ctx, cfg)}
	}
}

func (c *Controller) applySaved(msg ConfigSavedMsg) {
	c.saving = false
	if msg.Err != nil {
		log.Printf("app: save config: %v", msg.Err)
		c.notify("Error saving configuration: "+errorDetail(msg.Err), SeverityError)
		return
	}
	if !c.store.MarkCleanAt(msg.Rev) {
		c.notify("Configuration saved; newer changes are still unsaved", SeverityWarning)
		return
	}
	c.notify("Configuration saved successfully!", SeveritySuccess)
}

// TestRun sends the open editor form to the server as a transient task.
func (c *Controller) TestRun() tea.Cmd {
	req, err := c.editor.TestPayload(c.fakeIP)
	if err != nil {
		c.notify(err.Error(), SeverityError)
		return nil
	}
	c.notify("Sending test request...", SeverityInfo)
	client, timeout := c.api, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := client.TestWebhook(ctx, req)
		return TestResultMsg{Text: text, Err: err}
	}
}

func (c *Controller) applyTestResult(msg TestResultMsg) {
	if msg.Err == nil {
		c.notify("Test Result: "+msg.Text, SeveritySuccess)
		return
	}
	var te *api.TransportError
	if errors.As(msg.Err, &te) && te.Status != 0 {
		c.notify("Test Failed: "+te.Body, SeverityError)
		return
	}
	log.Printf("app: test run: %v", msg.Err)
	c.notify("Error executing test run", SeverityError)
}

// SetLogLimitInput records the settings input. Any change dirties the draft.
func (c *Controller) SetLogLimitInput(s string) {
	if s == c.logLimitInput {
		return
	}
	c.logLimitInput = s
	c.touch()
}

// SetRunOnStartup records the settings checkbox. Any change dirties the draft.
func (c *Controller) SetRunOnStartup(on bool) {
	if on == c.runOnStartup {
		return
	}
	c.runOnStartup = on
	c.touch()
}

func (c *Controller) touch() {
	c.store.Mutate(func(*model.Config) {})
}

func (c *Controller) ToggleEnabled(i int) error {
	t, err := c.store.Task(i)
	if err != nil {
		return err
	}
	return c.store.ToggleEnabled(i, !t.Enabled)
}

func (c *Controller) ToggleAPI(i int) error {
	t, err := c.store.Task(i)
	if err != nil {
		return err
	}
	return c.store.ToggleAPI(i, !t.AllowAPITrigger)
}

// NewTask opens the editor on a template.
func (c *Controller) NewTask(templateKey string) error {
	return c.editor.OpenForNew(templateKey)
}

// EditTask opens the editor on an existing task.
func (c *Controller) EditTask(i int) error {
	return c.editor.OpenForEdit(i)
}

func (c *Controller) CancelEdit() {
	c.editor.Cancel()
}

// CommitEdit writes the editor form into the draft.
func (c *Controller) CommitEdit() (int, error) {
	isNew := c.editor.IsNew()
	i, err := c.editor.Commit()
	if err != nil {
		var ve *editor.ValidationError
		if errors.As(err, &ve) {
			c.notify(ve.Message, SeverityError)
		}
		return i, err
	}
	if isNew {
		c.notify("Task added (unsaved)", SeverityInfo)
	} else {
		c.notify("Task updated (unsaved)", SeverityInfo)
	}
	return i, nil
}

func (c *Controller) DuplicateTask() (int, error) {
	i, err := c.editor.Duplicate()
	if err != nil {
		return i, err
	}
	c.notify("Task copied (unsaved)", SeverityInfo)
	return i, nil
}

// DeleteTask removes the task under edit once confirm agrees.
func (c *Controller) DeleteTask(confirm editor.Confirmer) (bool, error) {
	ok, err := c.editor.Delete(confirm)
	if err != nil || !ok {
		return ok, err
	}
	c.notify("Task deleted (unsaved)", SeverityInfo)
	return true, nil
}

// Preview renders the open form's URL with the configured test address.
func (c *Controller) Preview() editor.Preview {
	return c.editor.Preview(c.fakeIP)
}

func (c *Controller) ClearLogs() { c.logs.Clear() }

// Rows returns render data for every task, in draft order.
func (c *Controller) Rows() []TaskRow {
	cfg := c.store.Snapshot()
	rows := make([]TaskRow, len(cfg.Tasks))
	for i, t := range cfg.Tasks {
		rows[i] = TaskRow{Index: i, ID: t.ID, Name: t.Name, Enabled: t.Enabled, API: t.AllowAPITrigger}
	}
	return rows
}

func (c *Controller) notify(msg string, sev Severity) {
	if c.notifier != nil {
		c.notifier.Notify(Toast{Message: msg, Severity: sev})
	}
}

func errorDetail(err error) string {
	var te *api.TransportError
	if errors.As(err, &te) {
		return te.Detail()
	}
	return err.Error()
}
