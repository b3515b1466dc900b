package core

import (
	"reflect"
	"testing"
)

func TestNormalizeCompleteResult(t *testing.T) {
	result := &DebateResult{
		Thesis:     &Argument{Title: "Pro", Points: []string{"A", "B"}},
		Antithesis: &Argument{Title: "Con", Points: []string{"C"}},
		Risks:      []Risk{{Severity: SeverityMedium, Title: "Lock-in", Desc: "Hard to reverse."}},
		Synthesis:  &Synthesis{Recommendation: "Hybrid", Summary: "Balanced.", Confidence: 62},
	}

	rep := Normalize(result)

	if rep.Thesis.Title != "Pro" || !reflect.DeepEqual(rep.Thesis.Points, []string{"A", "B"}) {
		t.Errorf("thesis changed by normalization: %+v", rep.Thesis)
	}
	if len(rep.Risks) != 1 || rep.Risks[0].Title != "Lock-in" {
		t.Errorf("risks changed by normalization: %+v", rep.Risks)
	}
	if rep.Synthesis.Confidence != 62 {
		t.Errorf("confidence changed: %d", rep.Synthesis.Confidence)
	}
}

func TestNormalizeAbsentFields(t *testing.T) {
	rep := Normalize(&DebateResult{})

	if rep.Thesis.Title != "thesis Argument" {
		t.Errorf("thesis title fallback = %q", rep.Thesis.Title)
	}
	if rep.Antithesis.Title != "antithesis Argument" {
		t.Errorf("antithesis title fallback = %q", rep.Antithesis.Title)
	}
	if !reflect.DeepEqual(rep.Thesis.Points, []string{FallbackPoint}) {
		t.Errorf("thesis points fallback = %v", rep.Thesis.Points)
	}
	if len(rep.Risks) != 1 {
		t.Fatalf("expected exactly one placeholder risk, got %d", len(rep.Risks))
	}
	placeholder := rep.Risks[0]
	if placeholder.Severity != SeverityUnknown || placeholder.Title != FallbackRiskTitle || placeholder.Desc != FallbackRiskDesc {
		t.Errorf("unexpected placeholder risk: %+v", placeholder)
	}
	if rep.Synthesis.Recommendation != FallbackRecommendation || rep.Synthesis.Summary != FallbackSummary {
		t.Errorf("unexpected synthesis fallbacks: %+v", rep.Synthesis)
	}
}

func TestNormalizeNilResult(t *testing.T) {
	rep := Normalize(nil)
	if rep.Thesis.Title == "" || len(rep.Risks) != 1 {
		t.Errorf("nil result should normalize to full fallbacks: %+v", rep)
	}
}

func TestNormalizeEmptyRisksGetsPlaceholder(t *testing.T) {
	rep := Normalize(&DebateResult{Risks: []Risk{}})
	if len(rep.Risks) != 1 || rep.Risks[0].Severity != SeverityUnknown {
		t.Errorf("empty risks should produce one unknown placeholder: %+v", rep.Risks)
	}
}

func TestNormalizeClampsConfidence(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{150, 100},
		{-5, 0},
		{76, 76},
		{0, 0},
		{100, 100},
	}
	for _, tt := range tests {
		rep := Normalize(&DebateResult{Synthesis: &Synthesis{Confidence: tt.in}})
		if rep.Synthesis.Confidence != tt.want {
			t.Errorf("confidence %d normalized to %d, want %d", tt.in, rep.Synthesis.Confidence, tt.want)
		}
	}
}

func TestNormalizeUnknownSeverity(t *testing.T) {
	rep := Normalize(&DebateResult{Risks: []Risk{{Severity: "catastrophic", Title: "X"}}})
	if rep.Risks[0].Severity != SeverityUnknown {
		t.Errorf("unrecognized severity should map to unknown, got %q", rep.Risks[0].Severity)
	}
}
