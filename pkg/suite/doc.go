// Package suite brackets browser end-to-end test suites with exactly one
// browser session.
//
// A Manager launches the session when the suite starts, lends it to test
// cases, and quits it exactly once when the suite ends, whatever the cases
// did. Its state machine only moves forward:
//
//	Uninitialized --StartSuite--> Active --EndSuite--> Terminated
//
// Run drives a Suite of named Cases inside that bracket and classifies each
// case as passed, failed, errored or skipped. A suite whose session never
// started is reported with SetupError set and every case skipped, so it can
// be told apart from ordinary case failures.
//
// For go test integration, RunMain wraps testing.M in TestMain:
//
//	var manager = suite.NewManager(browser.NewPlaywrightLauncher())
//
//	func TestMain(m *testing.M) {
//	    os.Exit(manager.RunMain(m))
//	}
//
//	func TestLogin(t *testing.T) {
//	    session := manager.MustSession(t)
//	    ...
//	}
package suite
