//go:build e2e
// +build e2e

package login

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/suite"
)

// e2eOptions reads HEADLESS, MAXIMIZE and PLAYWRIGHT_INSTALL.
func e2eOptions() browser.SessionOptions {
	return browser.SessionOptions{
		Headless: os.Getenv("HEADLESS") != "false",
		Maximize: os.Getenv("MAXIMIZE") == "true",
		Install:  os.Getenv("PLAYWRIGHT_INSTALL") == "true",
	}
}

// manager owns the real browser for every e2e test in this package.
var manager = suite.NewManager(
	browser.NewPlaywrightLauncher(),
	suite.WithSessionOptions(e2eOptions()),
)

func TestMain(m *testing.M) {
	os.Exit(manager.RunMain(m))
}

func TestInvalidLogin_E2E(t *testing.T) {
	session := manager.MustSession(t)

	if err := InvalidLoginCase(DefaultConfig()).Run(context.Background(), session); err != nil {
		t.Fatalf("invalid login scenario failed: %v", err)
	}
}

// TestInvalidLogin_E2EMissingErrorElement runs on its own short-timeout
// session so the missing element is reported in seconds.
func TestInvalidLogin_E2EMissingErrorElement(t *testing.T) {
	opts := e2eOptions()
	opts.Install = false
	opts.ElementTimeout = 2 * time.Second

	client, err := browser.NewPlaywrightLauncher().Launch(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, client.Quit())
	})
	session := browser.NewSession(client, opts)

	cfg := DefaultConfig()
	cfg.ErrorSelector = "#no-such-error-banner"

	err = InvalidLoginCase(cfg).Run(context.Background(), session)
	require.Error(t, err)

	assert.True(t, browser.IsElementNotFound(err), "got %v", err)
	var notFound *browser.ElementNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "#no-such-error-banner", notFound.Selector)
	assert.Equal(t, 2*time.Second, notFound.Timeout)
	assert.False(t, suite.IsAssertion(err))
}
