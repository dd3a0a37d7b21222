package app

import "prefixddns-cli/internal/events"

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Toast is a transient user-facing notification.
type Toast struct {
	Message  string
	Severity Severity
}

type Notifier interface {
	Notify(Toast)
}

type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// StatusObserver is notified on stream connection status changes.
type StatusObserver = events.StatusObserver

// TaskRow is the render data for one task in the list.
type TaskRow struct {
	Index   int
	ID      string
	Name    string
	Enabled bool
	API     bool
}
