package browser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "plain paragraph",
			html:     "<p>Hello world</p>",
			expected: "Hello world",
		},
		{
			name:     "inline elements stay on one line",
			html:     "<p>Hello <b>bold</b> world</p>",
			expected: "Hello bold world",
		},
		{
			name:     "block elements split lines",
			html:     "<div>first</div><div>second</div>",
			expected: "first\nsecond",
		},
		{
			name:     "scripts and styles removed",
			html:     "<style>p{}</style><p>text</p><script>alert(1)</script><noscript>js off</noscript>",
			expected: "text",
		},
		{
			name:     "head skipped",
			html:     "<html><head><title>T</title></head><body>body</body></html>",
			expected: "body",
		},
		{
			name:     "comments removed",
			html:     "<p>a<!-- hidden -->b</p>",
			expected: "a b",
		},
		{
			name:     "empty document",
			html:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.html, 1000)
			if err != nil {
				t.Fatalf("ExtractText failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ExtractText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractText_Truncation(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 200) + "</p>"

	got, err := ExtractText(long, 50)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 50)+"\n") {
		t.Errorf("expected 50 characters before the marker, got %q", got)
	}
	if !strings.Contains(got, "[Content truncated: 50 of 200 characters shown]") {
		t.Errorf("expected truncation marker, got %q", got)
	}

	t.Run("multi-byte characters", func(t *testing.T) {
		got, err := ExtractText("<p>Contraseña incorrecta</p>", 9)
		if err != nil {
			t.Fatalf("ExtractText failed: %v", err)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncated text is invalid UTF-8: %q", got)
		}
		if !strings.HasPrefix(got, "Contraseñ\n") {
			t.Errorf("expected 9 characters before the marker, got %q", got)
		}
		if !strings.Contains(got, "[Content truncated: 9 of 21 characters shown]") {
			t.Errorf("expected rune counts in marker, got %q", got)
		}
	})
}
