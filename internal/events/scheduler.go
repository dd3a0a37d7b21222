package events

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers msg back to the event loop after d. Cancellation is by
// sequence number: the receiver ignores deliveries it no longer expects.
type Scheduler interface {
	Schedule(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler uses real time.
type TickScheduler struct{}

func (TickScheduler) Schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// ManualScheduler holds scheduled messages until the test fires them.
type ManualScheduler struct {
	pending []Scheduled
}

type Scheduled struct {
	Delay time.Duration
	Msg   tea.Msg
}

func (s *ManualScheduler) Schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	s.pending = append(s.pending, Scheduled{Delay: d, Msg: msg})
	return nil
}

// Pending lists what has been scheduled and not yet fired.
func (s *ManualScheduler) Pending() []Scheduled {
	out := make([]Scheduled, len(s.pending))
	copy(out, s.pending)
	return out
}

// Fire removes and returns every scheduled message, as if time had passed.
func (s *ManualScheduler) Fire() []tea.Msg {
	out := make([]tea.Msg, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p.Msg)
	}
	s.pending = nil
	return out
}
