package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher launches browsers through the Playwright driver.
type PlaywrightLauncher struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

// NewPlaywrightLauncher creates a launcher that discards driver output.
func NewPlaywrightLauncher() *PlaywrightLauncher {
	return &PlaywrightLauncher{
		stdout: io.Discard,
		stderr: io.Discard,
	}
}

// WithOutput routes driver install/run output to the given writers.
func (l *PlaywrightLauncher) WithOutput(stdout, stderr io.Writer) *PlaywrightLauncher {
	l.stdout = stdout
	l.stderr = stderr
	l.verbose = true
	return l
}

// Launch starts Playwright, launches the requested engine and opens a page.
// Partially created resources are released before an error is returned.
func (l *PlaywrightLauncher) Launch(ctx context.Context, opts SessionOptions) (Client, error) {
	opts = opts.WithDefaults()

	startErr := func(stage string, err error) error {
		return &SessionStartError{Browser: opts.Browser, Stage: stage, Err: err}
	}

	if !opts.Browser.Valid() {
		return nil, startErr("options", fmt.Errorf("unsupported browser %q", opts.Browser))
	}
	if err := ctx.Err(); err != nil {
		return nil, startErr("options", err)
	}

	runOpts := &playwright.RunOptions{
		Browsers: []string{string(opts.Browser)},
		Verbose:  l.verbose,
		Stdout:   l.stdout,
		Stderr:   l.stderr,
	}

	if opts.Install {
		if err := playwright.Install(runOpts); err != nil {
			return nil, startErr("install", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, startErr("driver", err)
	}

	browserType := pw.Chromium
	switch opts.Browser {
	case EngineFirefox:
		browserType = pw.Firefox
	case EngineWebKit:
		browserType = pw.WebKit
	}

	launched, err := browserType.Launch(launchOptions(opts))
	if err != nil {
		_ = pw.Stop()
		return nil, startErr("launch", err)
	}

	browserContext, err := launched.NewContext(contextOptions(opts))
	if err != nil {
		_ = launched.Close()
		_ = pw.Stop()
		return nil, startErr("context", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		_ = browserContext.Close()
		_ = launched.Close()
		_ = pw.Stop()
		return nil, startErr("page", err)
	}

	page.SetDefaultTimeout(milliseconds(opts.Timeout))
	page.SetDefaultNavigationTimeout(milliseconds(opts.Timeout))

	return &playwrightClient{
		pw:             pw,
		browser:        launched,
		context:        browserContext,
		page:           page,
		elementTimeout: opts.ElementTimeout,
	}, nil
}

// maximized reports whether the window should fill the screen. A headless
// browser has no window, so it always uses the configured viewport.
func maximized(opts SessionOptions) bool {
	return opts.Maximize && !opts.Headless
}

func launchOptions(opts SessionOptions) playwright.BrowserTypeLaunchOptions {
	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Timeout:  playwright.Float(milliseconds(opts.Timeout)),
	}
	if maximized(opts) && opts.Browser == EngineChromium {
		launch.Args = []string{"--start-maximized"}
	}
	return launch
}

func contextOptions(opts SessionOptions) playwright.BrowserNewContextOptions {
	if maximized(opts) {
		return playwright.BrowserNewContextOptions{NoViewport: playwright.Bool(true)}
	}
	return playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
}

// playwrightClient is a Client backed by one Playwright page.
type playwrightClient struct {
	pw             *playwright.Playwright
	browser        playwright.Browser
	context        playwright.BrowserContext
	page           playwright.Page
	elementTimeout time.Duration
}

func (c *playwrightClient) Navigate(url string) error {
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (c *playwrightClient) FindElement(selector string) (Element, error) {
	locator := c.page.Locator(selector).First()

	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(milliseconds(c.elementTimeout)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, &ElementNotFoundError{Selector: selector, Timeout: c.elementTimeout, Err: err}
		}
		return nil, fmt.Errorf("waiting for %q failed: %w", selector, err)
	}

	return &playwrightElement{locator: locator}, nil
}

func (c *playwrightClient) URL() string {
	return c.page.URL()
}

func (c *playwrightClient) Content() (string, error) {
	return c.page.Content()
}

// Quit closes page, context and browser, then stops the driver. Every step
// runs even if an earlier one fails.
func (c *playwrightClient) Quit() error {
	var errs []error
	if err := c.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close page: %w", err))
	}
	if err := c.context.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close context: %w", err))
	}
	if err := c.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	if err := c.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

// playwrightElement is an Element backed by a resolved locator.
type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) SendKeys(text string) error {
	return e.locator.Fill(text)
}

func (e *playwrightElement) Click() error {
	return e.locator.Click()
}

func (e *playwrightElement) Text() (string, error) {
	return e.locator.InnerText()
}
