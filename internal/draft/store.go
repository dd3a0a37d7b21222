// Package draft holds the single in-memory configuration being edited and tracks
// whether it may differ from what the server last accepted.
package draft

import (
	"errors"
	"fmt"

	"prefixddns-cli/internal/model"
)

var ErrIndexOutOfRange = errors.New("task index out of range")

// Observer is told about clean/dirty transitions, once per transition.
type Observer interface {
	DirtyChanged(dirty bool)
}

// Guard intercepts leave attempts (quit, navigation) while armed.
type Guard interface {
	Arm(reason string)
	Disarm()
}

// LeaveWarning is the prompt shown when leaving with unsaved changes.
const LeaveWarning = "You have unsaved changes. Are you sure you want to leave?"

// Store owns the draft configuration. All mutations go through its methods.
//
// The dirty flag is conservative: it may be set while the draft happens to equal the
// last saved config, but it is never clear while they may differ.
type Store struct {
	cfg   model.Config
	dirty bool
	// rev is bumped by every mutation; saves use it to detect edits made in flight.
	rev uint64

	observers []Observer
	guard     Guard
}

func New(cfg model.Config) *Store {
	return &Store{cfg: cfg.Clone()}
}

// Observe registers o for dirty/clean transitions.
func (s *Store) Observe(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// SetGuard installs the leave guard and syncs it with the current state.
func (s *Store) SetGuard(g Guard) {
	s.guard = g
	if g == nil {
		return
	}
	if s.dirty {
		g.Arm(LeaveWarning)
	} else {
		g.Disarm()
	}
}

// Load replaces the draft wholesale and clears dirty.
func (s *Store) Load(cfg model.Config) {
	s.cfg = cfg.Clone()
	s.rev++
	s.setDirty(false)
}

func (s *Store) Dirty() bool      { return s.dirty }
func (s *Store) Revision() uint64 { return s.rev }
func (s *Store) Len() int         { return len(s.cfg.Tasks) }

// Snapshot returns a deep copy of the draft.
func (s *Store) Snapshot() model.Config { return s.cfg.Clone() }

// Task returns a copy of the task at i.
func (s *Store) Task(i int) (model.Task, error) {
	if i < 0 || i >= len(s.cfg.Tasks) {
		return model.Task{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return s.cfg.Tasks[i].Clone(), nil
}

// Mutate applies fn to the live draft and marks it dirty.
func (s *Store) Mutate(fn func(cfg *model.Config)) {
	fn(&s.cfg)
	s.rev++
	s.MarkDirty()
}

// MarkDirty is idempotent: repeated calls have no further side effects.
func (s *Store) MarkDirty() {
	s.setDirty(true)
}

// MarkClean clears dirty. Call only after the server confirmed a save.
func (s *Store) MarkClean() {
	s.setDirty(false)
}

// MarkCleanAt clears dirty only if nothing changed since revision rev was captured.
// It reports whether the draft is now clean.
func (s *Store) MarkCleanAt(rev uint64) bool {
	if rev != s.rev {
		return false
	}
	s.setDirty(false)
	return true
}

func (s *Store) ToggleEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(s.cfg.Tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	s.Mutate(func(cfg *model.Config) { cfg.Tasks[i].Enabled = enabled })
	return nil
}

func (s *Store) ToggleAPI(i int, allowed bool) error {
	if i < 0 || i >= len(s.cfg.Tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	s.Mutate(func(cfg *model.Config) { cfg.Tasks[i].AllowAPITrigger = allowed })
	return nil
}

// ApplySettings folds the settings inputs into the draft ahead of a save. A value that
// actually changes dirties the draft like any other mutation.
func (s *Store) ApplySettings(logLimit int, runOnStartup bool) {
	if s.cfg.LogLimit == logLimit && s.cfg.RunOnStartup == runOnStartup {
		return
	}
	s.Mutate(func(cfg *model.Config) {
		cfg.LogLimit = logLimit
		cfg.RunOnStartup = runOnStartup
	})
}

func (s *Store) setDirty(dirty bool) {
	if s.dirty == dirty {
		return
	}
	s.dirty = dirty
	if s.guard != nil {
		if dirty {
			s.guard.Arm(LeaveWarning)
		} else {
			s.guard.Disarm()
		}
	}
	for _, o := range s.observers {
		o.DirtyChanged(dirty)
	}
}
