// Package login holds the invalid-credentials login scenario.
package login

import (
	"context"
	"fmt"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/suite"
)

// Defaults target the Spotify accounts login form.
const (
	DefaultURL              = "https://accounts.spotify.com/en/login/"
	DefaultUsernameSelector = "#login-username"
	DefaultPasswordSelector = "#login-password"
	DefaultSubmitSelector   = "#login-button"
	DefaultErrorSelector    = ".encore-negative-set span"
	DefaultUsername         = "invalid_username"
	DefaultPassword         = "invalid_password"
	DefaultExpectedError    = "Incorrect username or password."

	// CaseName is the name the invalid-login case runs under.
	CaseName = "login/invalid-credentials"
)

// Config describes a login form and the rejection it should produce.
type Config struct {
	URL              string `yaml:"url" json:"url"`
	UsernameSelector string `yaml:"username_selector" json:"username_selector"`
	PasswordSelector string `yaml:"password_selector" json:"password_selector"`
	SubmitSelector   string `yaml:"submit_selector" json:"submit_selector"`
	ErrorSelector    string `yaml:"error_selector" json:"error_selector"`
	Username         string `yaml:"username" json:"username"`
	Password         string `yaml:"password" json:"password"`
	ExpectedError    string `yaml:"expected_error" json:"expected_error"`
}

// DefaultConfig returns the configuration for the Spotify login page.
func DefaultConfig() Config {
	return Config{
		URL:              DefaultURL,
		UsernameSelector: DefaultUsernameSelector,
		PasswordSelector: DefaultPasswordSelector,
		SubmitSelector:   DefaultSubmitSelector,
		ErrorSelector:    DefaultErrorSelector,
		Username:         DefaultUsername,
		Password:         DefaultPassword,
		ExpectedError:    DefaultExpectedError,
	}
}

// WithDefaults returns a copy of c with empty fields taken from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.UsernameSelector == "" {
		c.UsernameSelector = d.UsernameSelector
	}
	if c.PasswordSelector == "" {
		c.PasswordSelector = d.PasswordSelector
	}
	if c.SubmitSelector == "" {
		c.SubmitSelector = d.SubmitSelector
	}
	if c.ErrorSelector == "" {
		c.ErrorSelector = d.ErrorSelector
	}
	if c.Username == "" {
		c.Username = d.Username
	}
	if c.Password == "" {
		c.Password = d.Password
	}
	if c.ExpectedError == "" {
		c.ExpectedError = d.ExpectedError
	}
	return c
}

// InvalidLoginCase submits cfg's credentials and expects the error element
// to contain cfg.ExpectedError. A missing error element fails the case with
// the driver's *browser.ElementNotFoundError once its wait runs out.
func InvalidLoginCase(cfg Config) suite.Case {
	cfg = cfg.WithDefaults()

	return suite.Case{
		Name: CaseName,
		Run: func(ctx context.Context, session *browser.Session) error {
			return submitInvalidLogin(ctx, session, cfg)
		},
	}
}

func submitInvalidLogin(ctx context.Context, session *browser.Session, cfg Config) error {
	if err := session.Navigate(cfg.URL); err != nil {
		return err
	}

	steps := []struct {
		selector string
		value    string
	}{
		{cfg.UsernameSelector, cfg.Username},
		{cfg.PasswordSelector, cfg.Password},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := session.Fill(step.selector, step.value); err != nil {
			return err
		}
	}

	if err := session.Click(cfg.SubmitSelector); err != nil {
		return err
	}

	message, err := session.Text(cfg.ErrorSelector)
	if err != nil {
		return err
	}

	if err := suite.AssertContains(message, cfg.ExpectedError); err != nil {
		return fmt.Errorf("login error message: %w", err)
	}
	return nil
}
