package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/probe/pkg/browser"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	defaultBrowserEngine  = browser.EngineChromium
	defaultHeadless       = true
	defaultInstall        = false
	defaultMaximize       = false
	defaultTimeout        = browser.DefaultTimeout
	defaultElementTimeout = browser.DefaultElementTimeout
)

// BrowserSection holds the defaults used to launch suite sessions.
type BrowserSection struct {
	Engine         browser.Engine `json:"engine"`
	Headless       bool           `json:"headless"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Timeout        time.Duration  `json:"timeout"`
	ElementTimeout time.Duration  `json:"element_timeout"`
	Install        bool           `json:"install"`
	Maximize       bool           `json:"maximize"`
	mu             sync.RWMutex
}

// NewBrowserSection creates a browser section with default settings.
func NewBrowserSection() *BrowserSection {
	s := &BrowserSection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure which browser suites launch, its window size and how long to wait for pages and elements."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"engine":          string(s.Engine),
		"headless":        s.Headless,
		"width":           s.Width,
		"height":          s.Height,
		"timeout":         s.Timeout.String(),
		"element_timeout": s.ElementTimeout.String(),
		"install":         s.Install,
		"maximize":        s.Maximize,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "engine":
			engine, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for engine: expected string, got %T", value)
			}
			s.Engine = browser.Engine(engine)

		case "headless", "install", "maximize":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for %s: expected bool, got %T", key, value)
			}
			switch key {
			case "headless":
				s.Headless = enabled
			case "install":
				s.Install = enabled
			default:
				s.Maximize = enabled
			}

		case "width", "height":
			size, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if key == "width" {
				s.Width = size
			} else {
				s.Height = size
			}

		case "timeout", "element_timeout":
			duration, err := toDuration(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if key == "timeout" {
				s.Timeout = duration
			} else {
				s.ElementTimeout = duration
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.Engine.Valid() {
		return fmt.Errorf("engine must be chromium, firefox or webkit, got %q", s.Engine)
	}
	if s.Width < 100 || s.Width > 5000 {
		return fmt.Errorf("width must be between 100 and 5000 pixels, got %d", s.Width)
	}
	if s.Height < 100 || s.Height > 5000 {
		return fmt.Errorf("height must be between 100 and 5000 pixels, got %d", s.Height)
	}
	if s.Timeout < time.Second || s.Timeout > 5*time.Minute {
		return fmt.Errorf("timeout must be between 1s and 5m, got %v", s.Timeout)
	}
	if s.ElementTimeout < 100*time.Millisecond || s.ElementTimeout > s.Timeout {
		return fmt.Errorf("element_timeout must be between 100ms and timeout (%v), got %v", s.Timeout, s.ElementTimeout)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Engine = defaultBrowserEngine
	s.Headless = defaultHeadless
	s.Width = browser.DefaultViewportWidth
	s.Height = browser.DefaultViewportHeight
	s.Timeout = defaultTimeout
	s.ElementTimeout = defaultElementTimeout
	s.Install = defaultInstall
	s.Maximize = defaultMaximize
}

// SessionOptions converts the section into launch options.
func (s *BrowserSection) SessionOptions() browser.SessionOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return browser.SessionOptions{
		Browser:        s.Engine,
		Headless:       s.Headless,
		Viewport:       &browser.Viewport{Width: s.Width, Height: s.Height},
		Timeout:        s.Timeout,
		ElementTimeout: s.ElementTimeout,
		Install:        s.Install,
		Maximize:       s.Maximize,
	}
}

// SetHeadless sets whether new sessions run without a window.
func (s *BrowserSection) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = headless
}

// SetEngine sets the browser engine.
func (s *BrowserSection) SetEngine(engine browser.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Engine = engine
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers come as float64
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toDuration(value any) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return time.ParseDuration(v)
	case float64:
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	default:
		return 0, fmt.Errorf("expected string or number, got %T", value)
	}
}
