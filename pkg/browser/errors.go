package browser

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSessionStart matches every *SessionStartError via errors.Is.
	ErrSessionStart = errors.New("browser session could not be started")

	// ErrElementNotFound matches every *ElementNotFoundError via errors.Is.
	ErrElementNotFound = errors.New("element not found")
)

// SessionStartError reports that the browser or its driver could not be launched.
type SessionStartError struct {
	Browser Engine
	Stage   string
	Err     error
}

func (e *SessionStartError) Error() string {
	return fmt.Sprintf("failed to start %s session (%s): %v", e.Browser, e.Stage, e.Err)
}

func (e *SessionStartError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSessionStart) match.
func (e *SessionStartError) Is(target error) bool {
	return target == ErrSessionStart
}

// ElementNotFoundError reports that no visible element matched a selector
// within the allotted wait.
type ElementNotFoundError struct {
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *ElementNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element %q not found after %s: %v", e.Selector, e.Timeout, e.Err)
	}
	return fmt.Sprintf("element %q not found after %s", e.Selector, e.Timeout)
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrElementNotFound) match.
func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// IsElementNotFound returns true if err is or wraps an *ElementNotFoundError.
func IsElementNotFound(err error) bool {
	var notFound *ElementNotFoundError
	return errors.As(err, &notFound)
}
