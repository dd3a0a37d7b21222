// Package editor implements the add/edit/copy/delete/test lifecycle of one task at a
// time against the draft store.
package editor

import (
	"fmt"
	"strings"

	"prefixddns-cli/internal/draft"
	"prefixddns-cli/internal/model"
	"prefixddns-cli/internal/templates"
)

type Mode int

const (
	Closed Mode = iota
	EditingExisting
	EditingNew
)

func (m Mode) String() string {
	switch m {
	case EditingExisting:
		return "editing"
	case EditingNew:
		return "new"
	default:
		return "closed"
	}
}

// State is the editor selection: an index into the task list, or the new-task sentinel.
type State struct {
	Mode  Mode
	Index int
}

// Fields are the raw form values of the open session.
type Fields struct {
	Name    string
	Suffix  string
	Method  string
	URL     string
	Headers string
	Body    string
}

// FieldsFromTask seeds form values from t verbatim.
func FieldsFromTask(t model.Task) Fields {
	method := string(t.WebhookMethod)
	if method == "" {
		method = string(model.MethodGet)
	}
	return Fields{
		Name:    t.Name,
		Suffix:  t.Suffix,
		Method:  method,
		URL:     t.WebhookURL,
		Headers: FormatHeaders(t.WebhookHeaders),
		Body:    t.Body(),
	}
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answer is a Confirmer with a fixed answer, for UIs that collect the answer first.
type Answer bool

func (a Answer) Confirm(string) bool { return bool(a) }

// DeletePrompt is the question asked before a task is removed.
const DeletePrompt = "Are you sure you want to delete this task?"

// TestTaskID is the synthetic id sent with test runs.
const TestTaskID = "test"

// Editor allows at most one open session.
type Editor struct {
	store  *draft.Store
	state  State
	fields Fields
}

func New(store *draft.Store) *Editor {
	return &Editor{store: store, state: State{Mode: Closed, Index: -1}}
}

func (e *Editor) State() State   { return e.state }
func (e *Editor) IsOpen() bool   { return e.state.Mode != Closed }
func (e *Editor) IsNew() bool    { return e.state.Mode == EditingNew }
func (e *Editor) Fields() Fields { return e.fields }

// SetFields replaces the form values of the open session.
func (e *Editor) SetFields(f Fields) error {
	if !e.IsOpen() {
		return ErrNotEditing
	}
	e.fields = f
	return nil
}

// OpenForNew starts a new-task session seeded from the template registry.
func (e *Editor) OpenForNew(templateKey string) error {
	if e.IsOpen() {
		return ErrSessionOpen
	}
	e.fields = FieldsFromTask(templates.Get(templateKey))
	e.state = State{Mode: EditingNew, Index: -1}
	return nil
}

// OpenForEdit starts a session on the existing task at index.
func (e *Editor) OpenForEdit(index int) error {
	if e.IsOpen() {
		return ErrSessionOpen
	}
	t, err := e.store.Task(index)
	if err != nil {
		return err
	}
	e.fields = FieldsFromTask(t)
	e.state = State{Mode: EditingExisting, Index: index}
	return nil
}

// Cancel discards the form values. The draft is not touched.
func (e *Editor) Cancel() {
	e.close()
}

// Commit validates the form and writes it into the draft. It returns the index of the
// committed task. On error nothing changes and the session stays open.
func (e *Editor) Commit() (int, error) {
	if !e.IsOpen() {
		return -1, ErrNotEditing
	}
	name := strings.TrimSpace(e.fields.Name)
	if name == "" {
		return -1, &ValidationError{Field: "name", Message: "Task name is required"}
	}

	task := model.Task{
		Name:           name,
		Suffix:         strings.TrimSpace(e.fields.Suffix),
		WebhookMethod:  model.NormalizeMethod(e.fields.Method),
		WebhookURL:     strings.TrimSpace(e.fields.URL),
		WebhookHeaders: ParseHeaders(e.fields.Headers),
		WebhookBody:    model.BodyPtr(e.fields.Body),
	}

	var index int
	if e.state.Mode == EditingNew {
		task.ID = draft.NewTaskID(e.store.Snapshot().IDs())
		task.Enabled = true
		task.AllowAPITrigger = false
		e.store.Mutate(func(cfg *model.Config) {
			cfg.Tasks = append(cfg.Tasks, task)
			index = len(cfg.Tasks) - 1
		})
	} else {
		existing, err := e.store.Task(e.state.Index)
		if err != nil {
			return -1, err
		}
		task.ID = existing.ID
		task.Enabled = existing.Enabled
		task.AllowAPITrigger = existing.AllowAPITrigger
		index = e.state.Index
		e.store.Mutate(func(cfg *model.Config) { cfg.Tasks[index] = task })
	}

	e.close()
	return index, nil
}

// Duplicate appends a deep copy of the stored task under edit, with a fresh id and
// " (Copy)" appended to its name. Unsaved form values are discarded.
func (e *Editor) Duplicate() (int, error) {
	switch e.state.Mode {
	case Closed:
		return -1, ErrNotEditing
	case EditingNew:
		return -1, ErrNewTask
	}
	src, err := e.store.Task(e.state.Index)
	if err != nil {
		return -1, err
	}
	cp := src.Clone()
	cp.ID = draft.NewTaskID(e.store.Snapshot().IDs())
	cp.Name = fmt.Sprintf("%s (Copy)", src.Name)

	var index int
	e.store.Mutate(func(cfg *model.Config) {
		cfg.Tasks = append(cfg.Tasks, cp)
		index = len(cfg.Tasks) - 1
	})
	e.close()
	return index, nil
}

// Delete removes the task under edit once c confirms. It reports whether the task
// was removed; declining leaves everything as it was.
func (e *Editor) Delete(c Confirmer) (bool, error) {
	switch e.state.Mode {
	case Closed:
		return false, ErrNotEditing
	case EditingNew:
		return false, ErrNewTask
	}
	if _, err := e.store.Task(e.state.Index); err != nil {
		return false, err
	}
	if c == nil || !c.Confirm(DeletePrompt) {
		return false, nil
	}
	index := e.state.Index
	e.store.Mutate(func(cfg *model.Config) {
		cfg.Tasks = append(cfg.Tasks[:index], cfg.Tasks[index+1:]...)
	})
	e.close()
	return true, nil
}

// TestPayload builds the transient task sent to the test endpoint from the current
// form values. Nothing is mutated.
func (e *Editor) TestPayload(fakeIP string) (model.TestRequest, error) {
	if !e.IsOpen() {
		return model.TestRequest{}, ErrNotEditing
	}
	if strings.TrimSpace(fakeIP) == "" {
		fakeIP = model.DefaultTestIP
	}
	return model.TestRequest{
		Task: model.Task{
			ID:              TestTaskID,
			Name:            e.fields.Name,
			Suffix:          e.fields.Suffix,
			Enabled:         true,
			AllowAPITrigger: true,
			WebhookMethod:   model.NormalizeMethod(e.fields.Method),
			WebhookURL:      e.fields.URL,
			WebhookHeaders:  ParseHeaders(e.fields.Headers),
			WebhookBody:     model.BodyPtr(e.fields.Body),
		},
		FakeIP: fakeIP,
	}, nil
}

// Preview is the URL as the server would call it for a test run.
type Preview struct {
	URL     string
	Warning string
}

// Preview renders the form URL for fakeIP. A suffix the server could not combine is
// reported as a warning; it never blocks a commit.
func (e *Editor) Preview(fakeIP string) Preview {
	if strings.TrimSpace(fakeIP) == "" {
		fakeIP = model.DefaultTestIP
	}
	vars, err := model.VarsFor(fakeIP, e.fields.Suffix)
	p := Preview{URL: model.RenderTemplate(strings.TrimSpace(e.fields.URL), vars)}
	if err != nil {
		p.Warning = err.Error()
	}
	return p
}

func (e *Editor) close() {
	e.state = State{Mode: Closed, Index: -1}
	e.fields = Fields{}
}
