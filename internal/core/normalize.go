package core

import "fmt"

// Fallback values substituted for missing or malformed result fields.
const (
	FallbackPoint          = "No points generated."
	FallbackRiskTitle      = "No Risks"
	FallbackRiskDesc       = "None identified."
	FallbackRecommendation = "No verdict."
	FallbackSummary        = "No summary."
)

// Normalize converts a possibly partial DebateResult into a fully
// populated Report. Every fallback documented for the decision matrix
// is applied here, once; a nil result normalizes the same way as a
// result with every field absent.
func Normalize(r *DebateResult) Report {
	if r == nil {
		r = &DebateResult{}
	}
	return Report{
		Thesis:     normalizeArgument(r.Thesis, "thesis"),
		Antithesis: normalizeArgument(r.Antithesis, "antithesis"),
		Risks:      normalizeRisks(r.Risks),
		Synthesis:  normalizeSynthesis(r.Synthesis),
	}
}

// ClampConfidence bounds a confidence value to the displayable 0-100 range.
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func normalizeArgument(arg *Argument, side string) Argument {
	out := Argument{}
	if arg != nil {
		out.Title = arg.Title
		out.Points = arg.Points
	}
	if out.Title == "" {
		out.Title = fmt.Sprintf("%s Argument", side)
	}
	if len(out.Points) == 0 {
		out.Points = []string{FallbackPoint}
	}
	return out
}

func normalizeRisks(risks []Risk) []Risk {
	if len(risks) == 0 {
		return []Risk{{Severity: SeverityUnknown, Title: FallbackRiskTitle, Desc: FallbackRiskDesc}}
	}
	out := make([]Risk, len(risks))
	for i, r := range risks {
		out[i] = r
		out[i].Severity = ParseSeverity(string(r.Severity))
	}
	return out
}

func normalizeSynthesis(s *Synthesis) Synthesis {
	out := Synthesis{}
	if s != nil {
		out = *s
	}
	if out.Recommendation == "" {
		out.Recommendation = FallbackRecommendation
	}
	if out.Summary == "" {
		out.Summary = FallbackSummary
	}
	out.Confidence = ClampConfidence(out.Confidence)
	return out
}
