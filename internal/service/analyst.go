package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cogitolab/cogito/internal/core"
)

// CannedAnalyst is an analyst that generates deterministic simulated
// decision matrices. It stands in for the real reasoning crew in the
// reference service and in tests.
type CannedAnalyst struct {
	// Delay simulates per-debate processing time.
	Delay time.Duration
}

// Analyze produces a simulated dialectical analysis for the topic.
func (a *CannedAnalyst) Analyze(ctx context.Context, topic string) (string, error) {
	if a.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(a.Delay):
		}
	}

	matrix := core.DebateResult{
		Thesis: &core.Argument{
			Title: "The Case For",
			Points: []string{
				fmt.Sprintf("Adopting %q unlocks capabilities the current approach lacks.", trim(topic, 60)),
				"Early movers gain experience before the decision becomes urgent.",
				"A staged rollout bounds the downside.",
			},
		},
		Antithesis: &core.Argument{
			Title: "The Case Against",
			Points: []string{
				"The switching cost is paid immediately, the benefit later.",
				"The current approach is understood by the whole team.",
			},
		},
		Risks: []core.Risk{
			{Severity: core.SeverityMedium, Title: "Migration Cost", Desc: "Effort estimates for transitions of this kind routinely run over."},
			{Severity: core.SeverityLow, Title: "Team Buy-in", Desc: "A split team slows any direction down."},
		},
		Synthesis: &core.Synthesis{
			Recommendation: "Pilot First",
			Summary:        "Run a bounded pilot, measure against the current baseline, then commit or roll back.",
			Confidence:     72,
		},
	}

	data, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return "", err
	}

	// Wrap like a model response so the extraction path is exercised.
	return "Here is the decision matrix:\n```json\n" + string(data) + "\n```\n", nil
}

func trim(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
