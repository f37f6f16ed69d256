package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/config"
	"github.com/entrhq/probe/pkg/scenarios/login"
	"github.com/entrhq/probe/pkg/suite"
)

var (
	// ErrSuiteAborted means the browser session never started, so no case ran
	ErrSuiteAborted = errors.New("suite aborted before any case ran")

	// ErrCasesFailed means the suite ran but at least one case failed or errored
	ErrCasesFailed = errors.New("one or more cases failed")
)

// Executor runs one configured suite
type Executor struct {
	config    *Config
	launcher  browser.Launcher
	console   *Logger
	logger    suite.Logger
	artifacts *ArtifactWriter
	options   browser.SessionOptions
	suite     suite.Suite
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLauncher replaces the Playwright launcher.
func WithLauncher(launcher browser.Launcher) ExecutorOption {
	return func(e *Executor) {
		e.launcher = launcher
	}
}

// WithConsole sets the console logger.
func WithConsole(console *Logger) ExecutorOption {
	return func(e *Executor) {
		e.console = console
	}
}

// WithRunLogger sets the logger that receives session lifecycle events.
func WithRunLogger(logger suite.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithBaseOptions sets the session options the run file is layered over.
// Without it the stored browser settings are used when configuration is
// initialized.
func WithBaseOptions(opts browser.SessionOptions) ExecutorOption {
	return func(e *Executor) {
		e.options = opts
	}
}

// NewExecutor validates cfg and prepares the suite it describes.
func NewExecutor(cfg *Config, opts ...ExecutorOption) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Executor{config: cfg}
	if section := config.GetBrowser(); section != nil {
		e.options = section.SessionOptions()
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.console == nil {
		level, err := ParseLogLevel(cfg.Logging.Verbosity)
		if err != nil {
			return nil, err
		}
		e.console = NewLogger(level)
	}
	e.options = cfg.SessionOptions(e.options).WithDefaults()

	if e.launcher == nil {
		launcher := browser.NewPlaywrightLauncher()
		if showDriverOutput(e.options, e.console.Level()) {
			launcher.WithOutput(e.console.writer, os.Stderr)
		}
		e.launcher = launcher
	}
	if cfg.Artifacts.Enabled {
		e.artifacts = NewArtifactWriter(cfg.Artifacts)
	}

	s := suite.Suite{
		Name: cfg.Suite,
		Cases: []suite.Case{
			login.InvalidLoginCase(cfg.Login),
		},
	}
	if cfg.Run != "" {
		filtered, err := s.Filter(cfg.Run)
		if err != nil {
			return nil, err
		}
		s = filtered
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("no cases match %q", cfg.Run)
	}
	e.suite = s

	return e, nil
}

// showDriverOutput reports whether Playwright's install and driver output
// reaches the console. It does while installing browsers and in debug mode.
func showDriverOutput(opts browser.SessionOptions, level LogLevel) bool {
	return opts.Install || level >= LogLevelDebug
}

// Suite returns the cases the executor will run.
func (e *Executor) Suite() suite.Suite {
	return e.suite
}

// Options returns the session options the browser will be launched with.
func (e *Executor) Options() browser.SessionOptions {
	return e.options
}

// Run executes the suite and writes artifacts. It returns the report
// together with ErrSuiteAborted or ErrCasesFailed when the run did not pass.
func (e *Executor) Run(ctx context.Context) (*suite.Report, error) {
	e.console.Header(fmt.Sprintf("Probe: %s", e.suite.Name))
	e.console.Infof("Browser: %s (headless=%t)", e.options.Browser, e.options.Headless)
	e.console.Verbosef("Viewport: %dx%d", e.options.Viewport.Width, e.options.Viewport.Height)
	e.console.Verbosef("Timeouts: page %s, element %s", e.options.Timeout, e.options.ElementTimeout)
	e.console.Section(fmt.Sprintf("Running %d case(s)", len(e.suite.Cases)))

	managerOpts := []suite.Option{suite.WithSessionOptions(e.options)}
	if e.logger != nil {
		managerOpts = append(managerOpts, suite.WithLogger(e.logger))
	}
	manager := suite.NewManager(e.launcher, managerOpts...)

	started := time.Now()
	report := suite.Run(ctx, manager, e.suite, e.console.Result)
	e.console.Debugf("Suite finished in %s", time.Since(started))

	if report.TeardownError != "" {
		e.console.Warningf("browser session did not close cleanly: %s", report.TeardownError)
	}

	e.writeArtifacts(report)
	e.console.Summary(report)

	switch {
	case report.Aborted():
		return report, fmt.Errorf("%w: %s", ErrSuiteAborted, report.SetupError)
	case !report.Passed():
		return report, fmt.Errorf("%w: %d failed, %d errored",
			ErrCasesFailed, report.Summary.Failed, report.Summary.Errored)
	}
	return report, nil
}

// writeArtifacts writes the report. Failures are reported but never change
// the run's outcome.
func (e *Executor) writeArtifacts(report *suite.Report) {
	if e.artifacts == nil {
		return
	}
	paths, err := e.artifacts.WriteAll(report)
	if err != nil {
		e.console.Warningf("failed to write artifacts: %v", err)
	}
	for _, path := range paths {
		e.console.Verbosef("Wrote %s", path)
	}
}
