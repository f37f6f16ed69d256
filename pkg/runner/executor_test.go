package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/browser/browsertest"
	"github.com/entrhq/probe/pkg/logging"
	"github.com/entrhq/probe/pkg/scenarios/login"
	"github.com/entrhq/probe/pkg/suite"
)

// loginPage serves the default login form; submitting it shows errorText.
func loginPage(errorText string) func(*browsertest.Client) {
	return func(c *browsertest.Client) {
		c.AddElement(login.DefaultUsernameSelector, "")
		c.AddElement(login.DefaultPasswordSelector, "")
		submit := c.AddElement(login.DefaultSubmitSelector, "Log In")
		submit.OnClick = func() error {
			c.AddElement(login.DefaultErrorSelector, errorText)
			return nil
		}
	}
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	config := DefaultConfig()
	config.Suite = "test"
	config.Artifacts.OutputDir = filepath.Join(t.TempDir(), "reports")
	return config
}

func newTestExecutor(t *testing.T, config *Config, launcher browser.Launcher) (*Executor, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	executor, err := NewExecutor(config,
		WithLauncher(launcher),
		WithConsole(NewWriterLogger(LogLevelVerbose, &out)),
		WithBaseOptions(browser.SessionOptions{Headless: true}),
	)
	require.NoError(t, err)
	return executor, &out
}

func TestExecutor_Passes(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Setup: loginPage(login.DefaultExpectedError)}
	executor, out := newTestExecutor(t, config, launcher)

	report, err := executor.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.Equal(t, 1, launcher.Launches())
	assert.Equal(t, 1, launcher.Clients()[0].Quits())
	assert.Contains(t, out.String(), "✓ PASSED")

	_, err = os.Stat(filepath.Join(config.Artifacts.OutputDir, reportFileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(config.Artifacts.OutputDir, summaryFileName))
	assert.NoError(t, err)
}

func TestExecutor_CaseFailure(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Setup: loginPage("Something else went wrong")}
	executor, _ := newTestExecutor(t, config, launcher)

	report, err := executor.Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrCasesFailed)
	assert.False(t, errors.Is(err, ErrSuiteAborted))
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, launcher.Clients()[0].Quits())
}

func TestExecutor_SetupFailure(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Err: errors.New("no browser installed")}
	executor, out := newTestExecutor(t, config, launcher)

	report, err := executor.Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSuiteAborted)
	assert.False(t, errors.Is(err, ErrCasesFailed))
	assert.True(t, report.Aborted())
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Contains(t, out.String(), "✗ ABORTED")
}

func TestExecutor_TeardownFailureDoesNotFailRun(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Setup: func(c *browsertest.Client) {
		loginPage(login.DefaultExpectedError)(c)
		c.QuitErr = errors.New("driver gone")
	}}
	executor, out := newTestExecutor(t, config, launcher)

	report, err := executor.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, report.TeardownError, "driver gone")
	assert.Contains(t, out.String(), "did not close cleanly")
}

func TestExecutor_ArtifactsDisabled(t *testing.T) {
	config := testConfig(t)
	config.Artifacts.Enabled = false
	launcher := &browsertest.Launcher{Setup: loginPage(login.DefaultExpectedError)}
	executor, _ := newTestExecutor(t, config, launcher)

	_, err := executor.Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(config.Artifacts.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestExecutor_RunLoggerReceivesLifecycle(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Setup: loginPage(login.DefaultExpectedError)}

	var logs bytes.Buffer
	executor, err := NewExecutor(config,
		WithLauncher(launcher),
		WithConsole(NewWriterLogger(LogLevelQuiet, &bytes.Buffer{})),
		WithRunLogger(logging.NewWriterLogger("suite", &logs)),
	)
	require.NoError(t, err)

	_, err = executor.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Starting chromium session")
}

func TestNewExecutor_Options(t *testing.T) {
	config := testConfig(t)
	config.Browser.Engine = "firefox"
	config.Browser.ElementTimeout = 2 * time.Second

	executor, _ := newTestExecutor(t, config, &browsertest.Launcher{})

	opts := executor.Options()
	assert.Equal(t, browser.EngineFirefox, opts.Browser)
	assert.True(t, opts.Headless)
	assert.Equal(t, 2*time.Second, opts.ElementTimeout)
	assert.Equal(t, browser.DefaultTimeout, opts.Timeout)
	require.NotNil(t, opts.Viewport)
}

func TestNewExecutor_Filter(t *testing.T) {
	t.Run("matching pattern", func(t *testing.T) {
		config := testConfig(t)
		config.Run = "login/*"
		executor, _ := newTestExecutor(t, config, &browsertest.Launcher{})
		require.Len(t, executor.Suite().Cases, 1)
		assert.Equal(t, login.CaseName, executor.Suite().Cases[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		config := testConfig(t)
		config.Run = "checkout/*"
		_, err := NewExecutor(config, WithLauncher(&browsertest.Launcher{}))
		assert.ErrorContains(t, err, "no cases match")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		config := testConfig(t)
		config.Run = "login/[abc"
		_, err := NewExecutor(config, WithLauncher(&browsertest.Launcher{}))
		assert.Error(t, err)
	})
}

func TestNewExecutor_InvalidConfig(t *testing.T) {
	config := testConfig(t)
	config.Browser.Engine = "lynx"

	_, err := NewExecutor(config)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestExecutor_ReportMatchesSuiteResults(t *testing.T) {
	config := testConfig(t)
	launcher := &browsertest.Launcher{Setup: loginPage(login.DefaultExpectedError)}
	executor, _ := newTestExecutor(t, config, launcher)

	report, err := executor.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, login.CaseName, report.Results[0].Name)
	assert.Equal(t, suite.OutcomePassed, report.Results[0].Outcome)
	assert.NotEmpty(t, report.SessionID)
}

func TestShowDriverOutput(t *testing.T) {
	tests := []struct {
		name    string
		install bool
		level   LogLevel
		want    bool
	}{
		{"quiet run", false, LogLevelQuiet, false},
		{"verbose run", false, LogLevelVerbose, false},
		{"debug run", false, LogLevelDebug, true},
		{"install while quiet", true, LogLevelQuiet, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := browser.SessionOptions{Install: tt.install}
			assert.Equal(t, tt.want, showDriverOutput(opts, tt.level))
		})
	}
}

func TestNewExecutor_DefaultLauncher(t *testing.T) {
	config := testConfig(t)
	config.Browser.Install = boolPtr(true)

	executor, err := NewExecutor(config, WithConsole(NewWriterLogger(LogLevelQuiet, &bytes.Buffer{})))
	require.NoError(t, err)

	assert.IsType(t, &browser.PlaywrightLauncher{}, executor.launcher)
	assert.True(t, executor.Options().Install)
}
