package runner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/scenarios/login"
)

// Config represents one suite run
type Config struct {
	// Suite name shown in output and reports
	Suite string `yaml:"suite" json:"suite"`

	// Browser overrides; zero values keep the stored defaults
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Login scenario overrides
	Login login.Config `yaml:"login" json:"login"`

	// Run is a glob selecting which cases run
	Run string `yaml:"run" json:"run"`

	// Artifacts configuration
	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BrowserConfig overrides browser launch settings
type BrowserConfig struct {
	Engine         string        `yaml:"engine" json:"engine"`
	Headless       *bool         `yaml:"headless" json:"headless"`
	Width          int           `yaml:"width" json:"width"`
	Height         int           `yaml:"height" json:"height"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	ElementTimeout time.Duration `yaml:"element_timeout" json:"element_timeout"`
	Install        *bool         `yaml:"install" json:"install"`
	Maximize       *bool         `yaml:"maximize" json:"maximize"`
}

// ArtifactConfig defines report generation
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	JSON      bool   `yaml:"json" json:"json"`
	Markdown  bool   `yaml:"markdown" json:"markdown"`
}

// LoggingConfig defines console verbosity: quiet, normal, verbose, debug
type LoggingConfig struct {
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// DefaultConfig returns a config that runs every case with stored browser
// defaults and writes both report formats.
func DefaultConfig() *Config {
	return &Config{
		Suite: "probe",
		Login: login.DefaultConfig(),
		Artifacts: ArtifactConfig{
			Enabled:   true,
			OutputDir: ".probe/reports",
			JSON:      true,
			Markdown:  true,
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// LoadConfig reads a YAML run file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.Login = config.Login.WithDefaults()

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Suite == "" {
		return fmt.Errorf("suite name is required")
	}

	if c.Browser.Engine != "" && !browser.Engine(c.Browser.Engine).Valid() {
		return fmt.Errorf("invalid browser engine: %s (must be chromium, firefox or webkit)", c.Browser.Engine)
	}

	if c.Browser.Width < 0 || c.Browser.Height < 0 {
		return fmt.Errorf("viewport dimensions cannot be negative")
	}

	if c.Browser.Timeout < 0 || c.Browser.ElementTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}

	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifacts.output_dir is required when artifacts are enabled")
	}

	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}
	if _, err := ParseLogLevel(c.Logging.Verbosity); err != nil {
		return err
	}

	return nil
}

// SessionOptions applies the browser overrides to base.
func (c *Config) SessionOptions(base browser.SessionOptions) browser.SessionOptions {
	opts := base
	if c.Browser.Engine != "" {
		opts.Browser = browser.Engine(c.Browser.Engine)
	}
	if c.Browser.Headless != nil {
		opts.Headless = *c.Browser.Headless
	}
	if c.Browser.Width > 0 || c.Browser.Height > 0 {
		viewport := browser.Viewport{Width: browser.DefaultViewportWidth, Height: browser.DefaultViewportHeight}
		if base.Viewport != nil {
			viewport = *base.Viewport
		}
		if c.Browser.Width > 0 {
			viewport.Width = c.Browser.Width
		}
		if c.Browser.Height > 0 {
			viewport.Height = c.Browser.Height
		}
		opts.Viewport = &viewport
	}
	if c.Browser.Timeout > 0 {
		opts.Timeout = c.Browser.Timeout
	}
	if c.Browser.ElementTimeout > 0 {
		opts.ElementTimeout = c.Browser.ElementTimeout
	}
	if c.Browser.Install != nil {
		opts.Install = *c.Browser.Install
	}
	if c.Browser.Maximize != nil {
		opts.Maximize = *c.Browser.Maximize
	}
	return opts
}
