package cli

import "fmt"

type notFoundError struct {
        kind string
        id   string
}

func (e notFoundError) Error() string {
        return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
        return notFoundError{kind: kind, id: id}
}

type invalidConfigError struct {
        path   string
        reason string
}

func (e invalidConfigError) Error() string {
        return fmt.Sprintf("invalid configuration %s: %s", e.path, e.reason)
}

func errInvalidConfig(path, reason string) error {
        return invalidConfigError{path: path, reason: reason}
}

type invalidArgsError struct {
        reason string
}

func (e invalidArgsError) Error() string {
        return "invalid arguments: " + e.reason
}

func errInvalidArgs(reason string) error {
        return invalidArgsError{reason: reason}
}

// testFailedError carries the server's reply to a rejected test run.
type testFailedError struct {
        body string
}

func (e testFailedError) Error() string {
        return "test failed: " + e.body
}
