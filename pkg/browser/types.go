package browser

import (
	"context"
	"time"
)

// Engine names a browser engine Playwright can launch.
type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
)

// Valid reports whether e is one of the supported engines.
func (e Engine) Valid() bool {
	switch e {
	case EngineChromium, EngineFirefox, EngineWebKit:
		return true
	}
	return false
}

// Launcher starts browser processes.
type Launcher interface {
	// Launch starts a browser and opens a single page. Failures are reported
	// as *SessionStartError.
	Launch(ctx context.Context, opts SessionOptions) (Client, error)
}

// Client controls one page of a launched browser.
type Client interface {
	// Navigate loads url in the page.
	Navigate(url string) error

	// FindElement waits for the first element matching selector to become
	// visible. It returns *ElementNotFoundError if that does not happen in time.
	FindElement(selector string) (Element, error)

	// URL returns the URL the page is currently showing.
	URL() string

	// Content returns the serialized HTML of the page.
	Content() (string, error)

	// Quit closes every window and terminates the driver connection.
	Quit() error
}

// Element is a located DOM element.
type Element interface {
	SendKeys(text string) error
	Click() error
	Text() (string, error)
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Browser selects the engine to launch
	Browser Engine

	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Maximize opens a headed browser with a maximized window sized to the
	// screen instead of Viewport. Ignored when Headless is set.
	Maximize bool

	// Timeout is the default timeout for navigation and actions
	Timeout time.Duration

	// ElementTimeout bounds how long FindElement waits for an element
	ElementTimeout time.Duration

	// Install downloads the Playwright driver and browser before launching
	Install bool
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session options
const (
	DefaultTimeout        = 30 * time.Second
	DefaultElementTimeout = 10 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTextLength     = 4000
)

// WithDefaults returns a copy of o with zero fields replaced by defaults.
func (o SessionOptions) WithDefaults() SessionOptions {
	if o.Browser == "" {
		o.Browser = EngineChromium
	}
	if o.Viewport == nil {
		o.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ElementTimeout <= 0 {
		o.ElementTimeout = DefaultElementTimeout
	}
	return o
}

// milliseconds converts d to the float64 milliseconds Playwright expects.
func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
