package suite

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSession is returned when the session is requested before
	// StartSuite succeeded or after EndSuite ran.
	ErrNoActiveSession = errors.New("no active browser session")

	// ErrAlreadyStarted is returned when StartSuite is called on a manager
	// that has already left the Uninitialized state.
	ErrAlreadyStarted = errors.New("suite already started")
)

// AssertionError reports that an expected text or state was not observed.
// It is an ordinary test failure, not a system error.
type AssertionError struct {
	Expected string
	Actual   string
	Message  string
}

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("assertion failed: %s: expected %q, got %q", e.Message, e.Expected, e.Actual)
	}
	return fmt.Sprintf("assertion failed: expected %q, got %q", e.Expected, e.Actual)
}

// IsAssertion returns true if err is or wraps an *AssertionError.
func IsAssertion(err error) bool {
	var assertErr *AssertionError
	return errors.As(err, &assertErr)
}
