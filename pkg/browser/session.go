package browser

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the live browser handle lent to test cases. It exposes
// navigation and page interaction but not shutdown; the Client it wraps is
// owned by whoever launched it.
type Session struct {
	// ID uniquely identifies this session
	ID string

	// Browser is the engine backing the session
	Browser Engine

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string

	client Client
}

// NewSession wraps client in a Session described by opts.
func NewSession(client Client, opts SessionOptions) *Session {
	opts = opts.WithDefaults()
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		Browser:    opts.Browser,
		Headless:   opts.Headless,
		CreatedAt:  now,
		LastUsedAt: now,
		CurrentURL: "about:blank",
		client:     client,
	}
}

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string) error {
	s.UpdateLastUsed()

	if err := s.client.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.client.URL()
	return nil
}

// FindElement returns the first visible element matching selector. An
// *ElementNotFoundError from the client is returned unmodified.
func (s *Session) FindElement(selector string) (Element, error) {
	s.UpdateLastUsed()

	if selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	return s.client.FindElement(selector)
}

// Fill types value into the element matching selector.
func (s *Session) Fill(selector, value string) error {
	element, err := s.FindElement(selector)
	if err != nil {
		return err
	}
	if err := element.SendKeys(value); err != nil {
		return fmt.Errorf("fill %q failed: %w", selector, err)
	}
	return nil
}

// Click clicks the element matching selector.
func (s *Session) Click(selector string) error {
	element, err := s.FindElement(selector)
	if err != nil {
		return err
	}
	if err := element.Click(); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}

	// Clicking may have navigated
	s.CurrentURL = s.client.URL()
	return nil
}

// Text returns the text of the element matching selector.
func (s *Session) Text(selector string) (string, error) {
	element, err := s.FindElement(selector)
	if err != nil {
		return "", err
	}
	text, err := element.Text()
	if err != nil {
		return "", fmt.Errorf("text extraction for %q failed: %w", selector, err)
	}
	return text, nil
}

// PageText returns the visible text of the current page, truncated to
// maxLength characters (DefaultTextLength when maxLength <= 0).
func (s *Session) PageText(maxLength int) (string, error) {
	s.UpdateLastUsed()

	if maxLength <= 0 {
		maxLength = DefaultTextLength
	}

	content, err := s.client.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return ExtractText(content, maxLength)
}
