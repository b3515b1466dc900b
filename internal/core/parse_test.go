package core

import (
	"testing"
)

func TestParseResultWellFormed(t *testing.T) {
	body := `{
		"thesis": {"title": "Pro-Microservices", "points": ["Scalability", "Team autonomy"]},
		"antithesis": {"title": "Pro-Monolith", "points": ["Simplicity"]},
		"risks": [{"severity": "high", "title": "Complexity", "desc": "Operational overhead grows."}],
		"synthesis": {"recommendation": "Hybrid", "summary": "Start monolith.", "confidence": 62}
	}`

	result, err := ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if result.Thesis == nil || result.Thesis.Title != "Pro-Microservices" {
		t.Errorf("unexpected thesis: %+v", result.Thesis)
	}
	if len(result.Thesis.Points) != 2 || result.Thesis.Points[1] != "Team autonomy" {
		t.Errorf("unexpected thesis points: %v", result.Thesis.Points)
	}
	if len(result.Risks) != 1 || result.Risks[0].Severity != SeverityHigh {
		t.Errorf("unexpected risks: %+v", result.Risks)
	}
	if result.Synthesis == nil || result.Synthesis.Confidence != 62 {
		t.Errorf("unexpected synthesis: %+v", result.Synthesis)
	}
}

func TestParseResultMalformedFields(t *testing.T) {
	// One malformed field must never block the others.
	body := `{
		"thesis": null,
		"antithesis": {},
		"risks": "not an array",
		"synthesis": {"confidence": 150}
	}`

	result, err := ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if result.Thesis != nil {
		t.Errorf("expected nil thesis, got %+v", result.Thesis)
	}
	if result.Antithesis == nil || result.Antithesis.Title != "" {
		t.Errorf("expected empty antithesis object, got %+v", result.Antithesis)
	}
	if result.Risks != nil {
		t.Errorf("expected nil risks, got %+v", result.Risks)
	}
	if result.Synthesis == nil || result.Synthesis.Confidence != 150 {
		t.Errorf("expected raw confidence 150, got %+v", result.Synthesis)
	}
}

func TestParseResultNonStringPoints(t *testing.T) {
	body := `{"thesis": {"title": "T", "points": [1, 2, 3]}}`

	result, err := ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}
	if result.Thesis == nil {
		t.Fatal("expected thesis object")
	}
	if result.Thesis.Points != nil {
		t.Errorf("expected nil points for non-string array, got %v", result.Thesis.Points)
	}
	if result.Thesis.Title != "T" {
		t.Errorf("title should survive malformed points, got %q", result.Thesis.Title)
	}
}

func TestParseResultFencedResponse(t *testing.T) {
	body := "Here is the decision matrix:\n```json\n" +
		`{"synthesis": {"recommendation": "Go", "summary": "Do it.", "confidence": 80}}` +
		"\n```\nLet me know if you need more."

	result, err := ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}
	if result.Synthesis == nil || result.Synthesis.Recommendation != "Go" {
		t.Errorf("unexpected synthesis: %+v", result.Synthesis)
	}
}

func TestParseResultNoJSON(t *testing.T) {
	if _, err := ParseResult([]byte("sorry, something went wrong")); err == nil {
		t.Error("expected error for body without JSON")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"nested", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"prose around", `result: {"a": 1} done`, `{"a": 1}`, true},
		{"brace in string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"unterminated", `{"a": 1`, "", false},
		{"no object", "nothing here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
