package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText parses rawHTML and returns its human-visible text, one block
// per line, with scripts, styles and embedded objects removed. Output longer
// than maxLength characters (runes) is cut and marked.
func ExtractText(rawHTML string, maxLength int) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)

	text := collapseLines(builder.String())
	if maxLength <= 0 {
		return text, nil
	}
	runes := []rune(text)
	if len(runes) > maxLength {
		return fmt.Sprintf("%s\n\n[Content truncated: %d of %d characters shown]",
			string(runes[:maxLength]), maxLength, len(runes)), nil
	}
	return text, nil
}

// collectText walks n depth-first, writing text nodes and breaking lines at
// block elements.
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode {
		tagName := strings.ToLower(n.Data)
		if isSkippedElement(tagName) {
			return
		}
		if isBlockElement(tagName) || tagName == "br" {
			builder.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}

	if n.Type == html.ElementNode && isBlockElement(strings.ToLower(n.Data)) {
		builder.WriteString("\n")
	}
}

// collapseLines trims every line and drops empty ones.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// isSkippedElement returns true for elements that carry no visible text
func isSkippedElement(tagName string) bool {
	skipped := map[string]bool{
		"head":     true,
		"script":   true,
		"style":    true,
		"noscript": true,
		"template": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"svg":      true,
	}
	return skipped[tagName]
}

// isBlockElement returns true for block-level elements
func isBlockElement(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"tr":         true,
		"form":       true,
		"fieldset":   true,
		"blockquote": true,
		"pre":        true,
		"label":      true,
		"button":     true,
	}
	return blocks[tagName]
}
