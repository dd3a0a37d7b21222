package tui

import (
	"prefixddns-cli/internal/app"
	"prefixddns-cli/internal/events"
)

// hooks receives the controller's one-way notifications. It is shared by pointer
// across model copies and only touched on the event loop goroutine.
type hooks struct {
	status events.Status
	dirty  bool

	guardArmed  bool
	guardReason string

	// pending toasts not yet scheduled for expiry.
	pending []app.Toast
}

func (h *hooks) Notify(t app.Toast)            { h.pending = append(h.pending, t) }
func (h *hooks) StatusChanged(s events.Status) { h.status = s }
func (h *hooks) DirtyChanged(dirty bool)       { h.dirty = dirty }
func (h *hooks) Arm(reason string)             { h.guardArmed, h.guardReason = true, reason }
func (h *hooks) Disarm()                       { h.guardArmed, h.guardReason = false, "" }

func (h *hooks) drain() []app.Toast {
	out := h.pending
	h.pending = nil
	return out
}
