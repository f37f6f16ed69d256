package suite

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/probe/pkg/browser"
)

// Outcome is the result status of one case.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeErrored Outcome = "errored"
	OutcomeSkipped Outcome = "skipped"
)

// Result describes how a single case ended.
type Result struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`

	// PageText is a snapshot of the visible page text taken when the case
	// failed or errored
	PageText string `json:"page_text,omitempty"`
}

// Summary counts results per outcome.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
}

// Report is the outcome of a suite run.
type Report struct {
	Suite     string        `json:"suite"`
	RunID     string        `json:"run_id"`
	SessionID string        `json:"session_id,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// SetupError is set when the session never started; no case ran
	SetupError string `json:"setup_error,omitempty"`

	// TeardownError is set when releasing the session failed; it never
	// changes any case result
	TeardownError string `json:"teardown_error,omitempty"`

	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// Aborted reports whether the suite failed before any case could run.
func (r *Report) Aborted() bool {
	return r.SetupError != ""
}

// Passed reports whether the suite started and no case failed or errored.
func (r *Report) Passed() bool {
	return !r.Aborted() && r.Summary.Failed == 0 && r.Summary.Errored == 0
}

func (r *Report) add(result Result) {
	r.Results = append(r.Results, result)
	r.Summary.Total++
	switch result.Outcome {
	case OutcomePassed:
		r.Summary.Passed++
	case OutcomeFailed:
		r.Summary.Failed++
	case OutcomeErrored:
		r.Summary.Errored++
	case OutcomeSkipped:
		r.Summary.Skipped++
	}
}

// Observer is notified as cases finish. It may be nil.
type Observer func(Result)

// Run executes every case of s sequentially inside the manager's session
// bracket. The session is released exactly once on every path out of Run,
// including a panicking case. A failing case never prevents later cases from
// running; cancelling ctx skips the cases not yet started.
func Run(ctx context.Context, m *Manager, s Suite, observe Observer) *Report {
	report := &Report{
		Suite:     s.Name,
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}()

	notify := func(result Result) {
		report.add(result)
		if observe != nil {
			observe(result)
		}
	}

	session, err := m.StartSuite(ctx)
	if err != nil {
		report.SetupError = err.Error()
		for _, c := range s.Cases {
			notify(Result{Name: c.Name, Outcome: OutcomeSkipped, Error: "suite setup failed"})
		}
		return report
	}
	report.SessionID = session.ID

	func() {
		defer m.EndSuite()

		for _, c := range s.Cases {
			if ctx.Err() != nil {
				notify(Result{Name: c.Name, Outcome: OutcomeSkipped, Error: fmt.Sprintf("run cancelled: %v", ctx.Err())})
				continue
			}
			notify(runCase(ctx, m, c))
		}
	}()

	if teardownErr := m.TeardownErr(); teardownErr != nil {
		report.TeardownError = teardownErr.Error()
	}
	return report
}

// runCase runs a single case against the live session and classifies the
// way it ended.
func runCase(ctx context.Context, m *Manager, c Case) (result Result) {
	result = Result{Name: c.Name}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("Case %q panicked: %v\n%s", c.Name, r, debug.Stack())
			result.Outcome = OutcomeErrored
			result.Error = fmt.Sprintf("panic: %v", r)
		}
		result.Duration = time.Since(start)
		if result.Outcome == OutcomeFailed || result.Outcome == OutcomeErrored {
			result.PageText = snapshot(m)
		}
	}()

	session, err := m.Session()
	if err != nil {
		result.Outcome = OutcomeErrored
		result.Error = err.Error()
		return result
	}
	if c.Run == nil {
		result.Outcome = OutcomeErrored
		result.Error = "case has no run function"
		return result
	}

	m.logger.Debugf("Running case %q", c.Name)
	err = c.Run(ctx, session)
	result.Outcome = classify(err)
	if err != nil {
		result.Error = err.Error()
		m.logger.Infof("Case %q %s: %v", c.Name, result.Outcome, err)
	} else {
		m.logger.Infof("Case %q passed", c.Name)
	}
	return result
}

// classify maps a case error to its outcome. Missing elements and failed
// assertions are test failures; anything else is an error.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomePassed
	case IsAssertion(err), errors.Is(err, browser.ErrElementNotFound):
		return OutcomeFailed
	default:
		return OutcomeErrored
	}
}

// snapshot returns the visible page text for failure diagnostics, or ""
// when it cannot be read.
func snapshot(m *Manager) string {
	session, err := m.Session()
	if err != nil {
		return ""
	}

	text, err := pageText(session)
	if err != nil {
		m.logger.Debugf("Page snapshot failed: %v", err)
		return ""
	}
	return text
}

func pageText(session *browser.Session) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while reading page: %v", r)
		}
	}()
	return session.PageText(browser.DefaultTextLength)
}
