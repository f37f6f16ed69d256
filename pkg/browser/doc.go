// Package browser drives a real web browser for end-to-end tests through Playwright.
//
// The package is the thin client layer that test suites talk to. It is split into
// three pieces:
//
//  1. Launcher: starts a browser process and returns a Client bound to one page
//  2. Client: navigation, element lookup and shutdown for that page
//  3. Session: the handle given to test cases, wrapping a Client with bookkeeping
//
// A Session deliberately has no way to shut the browser down. Only the code that
// launched it (see package suite) owns the Client and may quit it.
//
// # Waiting
//
// Element lookups never sleep for a fixed time. FindElement waits for the element
// to become visible, bounded by SessionOptions.ElementTimeout, and fails with an
// *ElementNotFoundError when the deadline passes.
//
// # Example Usage
//
//	launcher := browser.NewPlaywrightLauncher()
//	client, err := launcher.Launch(ctx, browser.SessionOptions{Headless: true})
//	if err != nil {
//	    return err // *browser.SessionStartError
//	}
//	session := browser.NewSession(client, opts)
//	defer client.Quit()
//
//	if err := session.Navigate("https://example.com/login"); err != nil {
//	    return err
//	}
//	if err := session.Fill("#login-username", "someone"); err != nil {
//	    return err
//	}
package browser
