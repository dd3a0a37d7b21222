// Package logview keeps the live log entries shown in the dashboard.
package logview

import "prefixddns-cli/internal/model"

const DefaultMax = 500

// Buffer holds the newest entries first. Count is the running number of entries
// received since the last Clear, even after old ones fell off the end.
type Buffer struct {
	max     int
	entries []model.LogEntry
	count   int
}

func New(max int) *Buffer {
	if max <= 0 {
		max = DefaultMax
	}
	return &Buffer{max: max}
}

// Append prepends e and drops the oldest entry once full.
func (b *Buffer) Append(e model.LogEntry) {
	b.entries = append(b.entries, model.LogEntry{})
	copy(b.entries[1:], b.entries)
	b.entries[0] = e
	if len(b.entries) > b.max {
		b.entries = b.entries[:b.max]
	}
	b.count++
}

func (b *Buffer) Clear() {
	b.entries = nil
	b.count = 0
}

// Entries returns the retained entries, newest first.
func (b *Buffer) Entries() []model.LogEntry {
	out := make([]model.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Buffer) Count() int { return b.count }
func (b *Buffer) Max() int   { return b.max }

// SetMax changes the retention limit, trimming if needed.
func (b *Buffer) SetMax(max int) {
	if max <= 0 {
		max = DefaultMax
	}
	b.max = max
	if len(b.entries) > max {
		b.entries = b.entries[:max]
	}
}
