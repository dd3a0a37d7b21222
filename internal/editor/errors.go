package editor

import (
	"errors"
	"fmt"
)

var (
	ErrSessionOpen = errors.New("an editor session is already open")
	ErrNotEditing  = errors.New("no editor session is open")
	// ErrNewTask is returned by operations that need an existing task.
	ErrNewTask = errors.New("task has not been added yet")
)

// ValidationError is a local precondition failure on user input. Nothing was changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
