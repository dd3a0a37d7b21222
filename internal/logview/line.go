package logview

import (
	"fmt"

	"prefixddns-cli/internal/model"
)

// Line renders one entry as "[timestamp] [SOURCE] LEVEL message".
func Line(e model.LogEntry) string {
	return fmt.Sprintf("[%s] [%s] %s %s", e.Timestamp, e.SourceLabel(), e.LevelLabel(), e.Message)
}

// CountLabel is the running counter shown above the log view.
func CountLabel(n int) string {
	return fmt.Sprintf("%d logs", n)
}
