package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/logging"
)

// Logger is the logging surface the manager needs. *logging.Logger
// satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// sessionTagger is implemented by loggers that can tag entries with the
// session they describe.
type sessionTagger interface {
	ForSession(sessionID string) *logging.Logger
}

// Manager owns the single browser session of a suite run.
type Manager struct {
	mu          sync.Mutex
	launcher    browser.Launcher
	options     browser.SessionOptions
	logger      Logger
	state       State
	client      browser.Client
	session     *browser.Session
	teardownErr error
}

// Option configures a Manager.
type Option func(*Manager)

// WithSessionOptions sets the options used to launch the browser.
func WithSessionOptions(opts browser.SessionOptions) Option {
	return func(m *Manager) {
		m.options = opts
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager that launches sessions through launcher.
func NewManager(launcher browser.Launcher, opts ...Option) *Manager {
	m := &Manager{
		launcher: launcher,
		logger:   logging.NewWriterLogger("suite", io.Discard),
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.options = m.options.WithDefaults()
	return m
}

// StartSuite launches the browser session. It fails with ErrAlreadyStarted
// unless the manager is Uninitialized, and with a *browser.SessionStartError
// if the browser cannot be launched; in that case the manager stays
// Uninitialized and no session exists.
func (m *Manager) StartSuite(ctx context.Context) (*browser.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateUninitialized {
		return nil, fmt.Errorf("%w (state: %s)", ErrAlreadyStarted, m.state)
	}

	m.logger.Infof("Starting %s session (headless=%t)", m.options.Browser, m.options.Headless)

	client, err := m.launcher.Launch(ctx, m.options)
	if err != nil {
		if !errors.Is(err, browser.ErrSessionStart) {
			err = &browser.SessionStartError{Browser: m.options.Browser, Stage: "launch", Err: err}
		}
		m.logger.Errorf("Session start failed: %v", err)
		return nil, err
	}
	if client == nil {
		err := &browser.SessionStartError{Browser: m.options.Browser, Stage: "launch", Err: errors.New("launcher returned no client")}
		m.logger.Errorf("Session start failed: %v", err)
		return nil, err
	}

	m.client = client
	m.session = browser.NewSession(client, m.options)
	m.state = StateActive

	if tagger, ok := m.logger.(sessionTagger); ok {
		m.logger = tagger.ForSession(m.session.ID)
	}
	m.logger.Infof("Session %s active", m.session.ID)
	return m.session, nil
}

// Session returns the live session, or ErrNoActiveSession outside the
// window between a successful StartSuite and EndSuite.
func (m *Manager) Session() (*browser.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive || m.session == nil {
		return nil, fmt.Errorf("%w (state: %s)", ErrNoActiveSession, m.state)
	}
	return m.session, nil
}

// EndSuite quits the browser session. Only the first call after a
// successful start does anything; later calls and calls on a manager that
// never started are no-ops. A failure to quit is logged and kept for
// TeardownErr, never returned.
func (m *Manager) EndSuite() {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateUninitialized:
		m.logger.Debugf("EndSuite called before a session was started, nothing to release")
		return
	case StateTerminated:
		m.logger.Debugf("EndSuite called again, session already released")
		return
	}

	sessionID := m.session.ID
	err := quit(m.client)

	m.client = nil
	m.session = nil
	m.state = StateTerminated

	if err != nil {
		m.teardownErr = err
		m.logger.Warnf("Releasing session %s failed: %v", sessionID, err)
		return
	}
	m.logger.Infof("Session %s released", sessionID)
}

// quit calls client.Quit, turning a panic into an error.
func quit(client browser.Client) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while quitting browser: %v", r)
		}
	}()
	return client.Quit()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TeardownErr returns the error recorded by EndSuite, if any.
func (m *Manager) TeardownErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teardownErr
}

// Options returns the session options the manager launches with.
func (m *Manager) Options() browser.SessionOptions {
	return m.options
}
