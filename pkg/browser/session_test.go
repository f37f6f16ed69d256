package browser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/probe/pkg/browser"
	"github.com/entrhq/probe/pkg/browser/browsertest"
)

func TestNewSession_Defaults(t *testing.T) {
	session := browser.NewSession(browsertest.NewClient(), browser.SessionOptions{Headless: true})

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, browser.EngineChromium, session.Browser)
	assert.True(t, session.Headless)
	assert.Equal(t, "about:blank", session.CurrentURL)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := browser.NewSession(browsertest.NewClient(), browser.SessionOptions{})
	b := browser.NewSession(browsertest.NewClient(), browser.SessionOptions{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSession_Navigate(t *testing.T) {
	client := browsertest.NewClient()
	session := browser.NewSession(client, browser.SessionOptions{})

	require.NoError(t, session.Navigate("https://example.com/login"))
	assert.Equal(t, "https://example.com/login", session.CurrentURL)
	assert.Equal(t, []string{"https://example.com/login"}, client.Visited())
}

func TestSession_FillAndClick(t *testing.T) {
	client := browsertest.NewClient()
	input := client.AddElement("#name", "")
	button := client.AddElement("#go", "Go")
	button.OnClick = func() error {
		return client.Navigate("https://example.com/done")
	}

	session := browser.NewSession(client, browser.SessionOptions{})

	require.NoError(t, session.Fill("#name", "alice"))
	assert.Equal(t, "alice", input.Value())

	require.NoError(t, session.Click("#go"))
	assert.Equal(t, 1, button.Clicks())
	assert.Equal(t, "https://example.com/done", session.CurrentURL)
}

func TestSession_Text(t *testing.T) {
	client := browsertest.NewClient()
	client.AddElement(".error span", "Incorrect username or password.")
	session := browser.NewSession(client, browser.SessionOptions{})

	text, err := session.Text(".error span")
	require.NoError(t, err)
	assert.Equal(t, "Incorrect username or password.", text)
}

func TestSession_MissingElementPropagatesUnmodified(t *testing.T) {
	session := browser.NewSession(browsertest.NewClient(), browser.SessionOptions{})

	tests := []struct {
		name string
		call func() error
	}{
		{name: "find", call: func() error { _, err := session.FindElement("#missing"); return err }},
		{name: "fill", call: func() error { return session.Fill("#missing", "x") }},
		{name: "click", call: func() error { return session.Click("#missing") }},
		{name: "text", call: func() error { _, err := session.Text("#missing"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)

			var notFound *browser.ElementNotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, "#missing", notFound.Selector)
			assert.True(t, errors.Is(err, browser.ErrElementNotFound))
		})
	}
}

func TestSession_EmptySelector(t *testing.T) {
	session := browser.NewSession(browsertest.NewClient(), browser.SessionOptions{})
	_, err := session.FindElement("")
	assert.EqualError(t, err, "selector is required")
}

func TestSession_PageText(t *testing.T) {
	client := browsertest.NewClient()
	client.HTML = `<html><head><title>Login</title></head><body><h1>Log in</h1><script>var x = 1;</script><p>Incorrect username or password.</p></body></html>`
	session := browser.NewSession(client, browser.SessionOptions{})

	text, err := session.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "Log in\nIncorrect username or password.", text)
}
