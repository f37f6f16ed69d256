package suite

import (
	"context"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/probe/pkg/browser"
)

// Case is a single named test case. Run borrows the session; it must not
// try to shut the browser down.
type Case struct {
	Name string
	Run  func(ctx context.Context, session *browser.Session) error
}

// Suite is a group of cases sharing one session lifecycle.
type Suite struct {
	Name  string
	Cases []Case
}

// Filter returns a copy of the suite holding only the cases whose name
// matches the glob pattern. An empty pattern keeps every case.
func (s Suite) Filter(pattern string) (Suite, error) {
	if pattern == "" {
		return s, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return Suite{}, fmt.Errorf("invalid case pattern %q: %w", pattern, err)
	}

	filtered := Suite{Name: s.Name}
	for _, c := range s.Cases {
		if g.Match(c.Name) {
			filtered.Cases = append(filtered.Cases, c)
		}
	}
	return filtered, nil
}

// AssertContains returns an *AssertionError unless actual contains substr.
func AssertContains(actual, substr string) error {
	if strings.Contains(actual, substr) {
		return nil
	}
	return &AssertionError{
		Expected: substr,
		Actual:   actual,
		Message:  "text does not contain expected substring",
	}
}
