package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/probe/pkg/suite"
)

const (
	reportFileName  = "report.json"
	summaryFileName = "summary.md"
)

// ArtifactWriter writes run reports to disk
type ArtifactWriter struct {
	outputDir string
	json      bool
	markdown  bool
}

// NewArtifactWriter creates a writer for the formats enabled in config
func NewArtifactWriter(config ArtifactConfig) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: config.OutputDir,
		json:      config.JSON,
		markdown:  config.Markdown,
	}
}

// WriteAll writes every enabled format and returns the paths written.
func (w *ArtifactWriter) WriteAll(report *suite.Report) ([]string, error) {
	if !w.json && !w.markdown {
		return nil, nil
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	if w.json {
		path, err := w.WriteReportJSON(report)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if w.markdown {
		path, err := w.WriteSummaryMarkdown(report)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteReportJSON writes the full report as JSON
func (w *ArtifactWriter) WriteReportJSON(report *suite.Report) (string, error) {
	path := filepath.Join(w.outputDir, reportFileName)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write report JSON: %w", err)
	}
	return path, nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(report *suite.Report) (string, error) {
	path := filepath.Join(w.outputDir, summaryFileName)

	if err := os.WriteFile(path, []byte(renderMarkdown(report)), 0600); err != nil {
		return "", fmt.Errorf("failed to write summary markdown: %w", err)
	}
	return path, nil
}

func renderMarkdown(report *suite.Report) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# Probe Run Summary: %s\n\n", report.Suite))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", runStatus(report)))
	md.WriteString(fmt.Sprintf("**Run ID:** %s\n\n", report.RunID))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", report.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Completed:** %s\n\n", report.EndTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", report.Duration))

	if report.SetupError != "" {
		md.WriteString(fmt.Sprintf("❌ **Setup Error:** %s\n\n", report.SetupError))
	}
	if report.TeardownError != "" {
		md.WriteString(fmt.Sprintf("⚠️ **Teardown Error:** %s\n\n", report.TeardownError))
	}

	md.WriteString("## Cases\n\n")
	md.WriteString("| Case | Outcome | Duration | Error |\n")
	md.WriteString("|---|---|---|---|\n")
	for _, result := range report.Results {
		md.WriteString(fmt.Sprintf("| %s | %s %s | %s | %s |\n",
			result.Name,
			outcomeEmoji(result.Outcome),
			result.Outcome,
			result.Duration.Round(time.Millisecond),
			escapeCell(result.Error)))
	}
	md.WriteString("\n")

	s := report.Summary
	md.WriteString("## Totals\n\n")
	md.WriteString(fmt.Sprintf("- **Total:** %d\n", s.Total))
	md.WriteString(fmt.Sprintf("- **Passed:** %d\n", s.Passed))
	md.WriteString(fmt.Sprintf("- **Failed:** %d\n", s.Failed))
	md.WriteString(fmt.Sprintf("- **Errored:** %d\n", s.Errored))
	md.WriteString(fmt.Sprintf("- **Skipped:** %d\n", s.Skipped))

	for _, result := range report.Results {
		if result.PageText == "" {
			continue
		}
		md.WriteString(fmt.Sprintf("\n## Page at failure: %s\n\n", result.Name))
		fence := codeFence(result.PageText)
		md.WriteString(fence + "text\n")
		md.WriteString(result.PageText)
		md.WriteString("\n" + fence + "\n")
	}

	return md.String()
}

func runStatus(report *suite.Report) string {
	switch {
	case report.Aborted():
		return "aborted"
	case report.Passed():
		return "passed"
	default:
		return "failed"
	}
}

func outcomeEmoji(outcome suite.Outcome) string {
	switch outcome {
	case suite.OutcomePassed:
		return "✅"
	case suite.OutcomeSkipped:
		return "⏭️"
	default:
		return "❌"
	}
}

// codeFence returns a backtick fence longer than any backtick run in s, so
// page text can never close its own block.
func codeFence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// escapeCell keeps an error message on one markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
