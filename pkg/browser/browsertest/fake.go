// Package browsertest provides an in-memory browser driver for tests that
// exercise code built on package browser without launching a real browser.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/entrhq/probe/pkg/browser"
)

// Launcher is a browser.Launcher that hands out *Client values.
type Launcher struct {
	mu sync.Mutex

	// Err, when set, is returned (wrapped in *browser.SessionStartError)
	// from every Launch call.
	Err error

	// Setup, when set, configures each new client before it is returned.
	Setup func(*Client)

	launches int
	clients  []*Client
}

// Launch returns a fresh *Client or the configured error.
func (l *Launcher) Launch(ctx context.Context, opts browser.SessionOptions) (browser.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.launches++
	opts = opts.WithDefaults()

	if err := ctx.Err(); err != nil {
		return nil, &browser.SessionStartError{Browser: opts.Browser, Stage: "options", Err: err}
	}
	if l.Err != nil {
		return nil, &browser.SessionStartError{Browser: opts.Browser, Stage: "launch", Err: l.Err}
	}

	client := NewClient()
	client.Options = opts
	if l.Setup != nil {
		l.Setup(client)
	}
	l.clients = append(l.clients, client)
	return client, nil
}

// Launches returns how many times Launch was called.
func (l *Launcher) Launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches
}

// Clients returns every client created so far.
func (l *Launcher) Clients() []*Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Client(nil), l.clients...)
}

// Client is an in-memory page. Elements are registered per selector; a
// selector with no element behaves like one that never appears.
type Client struct {
	mu sync.Mutex

	Options browser.SessionOptions

	// QuitErr is returned from Quit.
	QuitErr error

	// HTML is returned from Content.
	HTML string

	url      string
	visited  []string
	elements map[string]*Element
	quits    int
}

// NewClient creates an empty client showing about:blank.
func NewClient() *Client {
	return &Client{
		url:      "about:blank",
		elements: make(map[string]*Element),
	}
}

// AddElement registers an element under selector and returns it.
func (c *Client) AddElement(selector, text string) *Element {
	c.mu.Lock()
	defer c.mu.Unlock()

	element := &Element{text: text}
	c.elements[selector] = element
	return element
}

// Element returns the element registered under selector, or nil.
func (c *Client) Element(selector string) *Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elements[selector]
}

func (c *Client) Navigate(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quits > 0 {
		return errors.New("browser has been closed")
	}
	c.url = url
	c.visited = append(c.visited, url)
	return nil
}

func (c *Client) FindElement(selector string) (browser.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quits > 0 {
		return nil, errors.New("browser has been closed")
	}
	element, ok := c.elements[selector]
	if !ok {
		return nil, &browser.ElementNotFoundError{
			Selector: selector,
			Timeout:  c.Options.ElementTimeout,
		}
	}
	return element, nil
}

func (c *Client) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

func (c *Client) Content() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.HTML, nil
}

func (c *Client) Quit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.quits++
	return c.QuitErr
}

// Quits returns how many times Quit was called.
func (c *Client) Quits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quits
}

// Visited returns every URL passed to Navigate.
func (c *Client) Visited() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.visited...)
}

// Element is an in-memory DOM element. OnClick runs when it is clicked.
type Element struct {
	mu sync.Mutex

	OnClick func() error

	text   string
	value  string
	clicks int
}

func (e *Element) SendKeys(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value += text
	return nil
}

func (e *Element) Click() error {
	e.mu.Lock()
	e.clicks++
	onClick := e.OnClick
	e.mu.Unlock()

	if onClick != nil {
		if err := onClick(); err != nil {
			return fmt.Errorf("click handler: %w", err)
		}
	}
	return nil
}

func (e *Element) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

// Value returns everything typed into the element.
func (e *Element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// Clicks returns how many times the element was clicked.
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}
