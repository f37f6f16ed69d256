package suite

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/entrhq/probe/pkg/browser"
)

// TestRunner is satisfied by *testing.M.
type TestRunner interface {
	Run() int
}

// RunMain brackets a go test binary with the manager's session. When the
// session cannot be started no test runs and RunMain returns 1.
//
//	func TestMain(m *testing.M) {
//	    os.Exit(manager.RunMain(m))
//	}
func (m *Manager) RunMain(runner TestRunner) int {
	if _, err := m.StartSuite(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "suite aborted, no tests were run: %v\n", err)
		return 1
	}
	defer m.EndSuite()

	return runner.Run()
}

// MustSession returns the live session or fails the calling test.
func (m *Manager) MustSession(t testing.TB) *browser.Session {
	t.Helper()

	session, err := m.Session()
	if err != nil {
		t.Fatalf("browser session unavailable: %v", err)
	}
	return session
}
