package model

import "strings"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
	LevelDebug   Level = "debug"
)

// LogEntry is one event from the server's live feed. It is never written back.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     Level  `json:"level"`
	Source    string `json:"source,omitempty"`
	Message   string `json:"message"`
}

// LevelLabel is the upper-cased level used for display.
func (e LogEntry) LevelLabel() string {
	return strings.ToUpper(strings.TrimSpace(string(e.Level)))
}

// SourceLabel is the source, or UNK when the server omitted it.
func (e LogEntry) SourceLabel() string {
	if strings.TrimSpace(e.Source) == "" {
		return "UNK"
	}
	return e.Source
}
