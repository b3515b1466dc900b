// Package service implements the analysis service's debate lifecycle:
// running one dialectical debate per request with timeout protection,
// cancellation of active debates, and structured fallback results.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cogitolab/cogito/internal/core"
	"github.com/cogitolab/cogito/internal/storage"
)

// DefaultDebateTimeout caps a single debate.
const DefaultDebateTimeout = 5 * time.Minute

// Analyst produces the raw dialectical analysis for a topic. The
// output is free-form text expected to carry a JSON decision matrix,
// possibly wrapped in markdown fences or prose.
type Analyst interface {
	Analyze(ctx context.Context, topic string) (string, error)
}

// Service coordinates debates for incoming requests.
type Service struct {
	analyst Analyst
	store   storage.Storage // nil disables persistence
	timeout time.Duration

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

// New creates a service around an analyst. store may be nil.
func New(analyst Analyst, store storage.Storage, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultDebateTimeout
	}
	return &Service{
		analyst: analyst,
		store:   store,
		timeout: timeout,
		active:  make(map[string]context.CancelFunc),
	}
}

// ActiveCount returns the number of debates currently running.
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// CancelAll aborts every active debate and returns how many were cleared.
func (s *Service) CancelAll() int {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.active))
	for _, cancel := range s.active {
		cancels = append(cancels, cancel)
	}
	count := len(s.active)
	s.active = make(map[string]context.CancelFunc)
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	slog.Info("Cancelled active debates", "count", count)
	return count
}

// RunDebate executes one debate on the topic. It never fails: faults
// resolve to structured fallback matrices so the client always receives
// a well-formed decision record.
func (s *Service) RunDebate(ctx context.Context, topic string) *core.DebateResult {
	id := uuid.NewString()
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.mu.Lock()
	s.active[id] = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.active, id)
		s.mu.Unlock()
	}()

	slog.Info("Starting debate", "id", shortID(id), "topic", topic)

	raw, err := s.analyst.Analyze(runCtx, topic)
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Debate timed out", "id", shortID(id), "timeout", s.timeout)
		return s.timeoutResult()
	case errors.Is(err, context.Canceled):
		slog.Info("Debate cancelled", "id", shortID(id))
		return cancelledResult()
	default:
		slog.Error("Debate failed", "id", shortID(id), "error", err)
		return errorResult(err)
	}

	result, perr := core.ParseResult([]byte(raw))
	if perr != nil {
		slog.Warn("Could not extract decision matrix, returning raw text", "id", shortID(id), "error", perr)
		result = reviewOutputResult(raw)
	}

	s.persist(topic, raw, result)
	slog.Info("Debate completed", "id", shortID(id))
	return result
}

// persist records the request, the raw analysis, and the report.
// Storage faults are logged, never surfaced to the client.
func (s *Service) persist(topic, raw string, result *core.DebateResult) {
	if s.store == nil {
		return
	}

	req := storage.NewDecisionRequest(topic)
	if err := s.store.CreateRequest(req); err != nil {
		slog.Error("Failed to persist request", "error", err)
		return
	}
	if err := s.store.AddLog(storage.NewDebateLog(req.ID, "synthesist", raw)); err != nil {
		slog.Error("Failed to persist debate log", "error", err)
	}
	if err := s.store.SaveReport(storage.NewDebateReport(req.ID, result)); err != nil {
		slog.Error("Failed to persist report", "error", err)
	}
}

func (s *Service) timeoutResult() *core.DebateResult {
	seconds := int(s.timeout.Seconds())
	return &core.DebateResult{
		Thesis:     &core.Argument{Title: "Timeout", Points: []string{"The analysis took too long to respond."}},
		Antithesis: &core.Argument{Title: "Timeout", Points: []string{"Consider simplifying your question or trying again."}},
		Synthesis: &core.Synthesis{
			Recommendation: "Timed Out",
			Summary:        fmt.Sprintf("The debate exceeded the %d second limit. Try rephrasing your question.", seconds),
			Confidence:     0,
		},
		Risks: []core.Risk{{Severity: core.SeverityMedium, Title: "Processing Limit", Desc: "The analysis may loop on complex queries."}},
	}
}

func cancelledResult() *core.DebateResult {
	return &core.DebateResult{
		Thesis:     &core.Argument{Title: "Cancelled", Points: []string{"Debate was cancelled by user."}},
		Antithesis: &core.Argument{Title: "Cancelled", Points: []string{"No arguments generated."}},
		Synthesis: &core.Synthesis{
			Recommendation: "Cancelled",
			Summary:        "The debate was stopped before completion.",
			Confidence:     0,
		},
	}
}

func reviewOutputResult(raw string) *core.DebateResult {
	summary := raw
	if len(summary) > 500 {
		summary = summary[:500] + "..."
	}
	return &core.DebateResult{
		Thesis:     &core.Argument{Title: "Arguments For", Points: []string{"See raw output below"}},
		Antithesis: &core.Argument{Title: "Arguments Against", Points: []string{"See raw output below"}},
		Synthesis: &core.Synthesis{
			Recommendation: "Review Output",
			Summary:        summary,
			Confidence:     50,
		},
		Risks: []core.Risk{{Severity: core.SeverityLow, Title: "Parse Issue", Desc: "Could not parse structured output, showing raw text."}},
	}
}

func errorResult(err error) *core.DebateResult {
	detail := err.Error()
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return &core.DebateResult{
		Thesis:     &core.Argument{Title: "Error", Points: []string{"An error occurred during the debate"}},
		Antithesis: &core.Argument{Title: "Error", Points: []string{detail}},
		Synthesis: &core.Synthesis{
			Recommendation: "Failed",
			Summary:        "Check the service logs for error details.",
			Confidence:     0,
		},
		Risks: []core.Risk{{Severity: core.SeverityHigh, Title: "System Error", Desc: detail}},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
