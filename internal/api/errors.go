package api

import (
	"fmt"
	"strings"
)

// TransportError is a network or HTTP failure talking to the server. Body carries
// whatever text the server sent so it can be shown verbatim.
type TransportError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case strings.TrimSpace(e.Body) != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, strings.TrimSpace(e.Body))
	default:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Detail is the most useful text for the user: the server's body when there is one.
func (e *TransportError) Detail() string {
	if b := strings.TrimSpace(e.Body); b != "" {
		return b
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}
