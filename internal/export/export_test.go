package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogitolab/cogito/internal/core"
)

func scenarioResult() *core.DebateResult {
	return &core.DebateResult{
		Thesis:     &core.Argument{Title: "Pro-Microservices", Points: []string{"Scalability", "Team autonomy"}},
		Antithesis: &core.Argument{Title: "Pro-Monolith", Points: []string{"Simplicity"}},
		Risks:      []core.Risk{},
		Synthesis:  &core.Synthesis{Recommendation: "Hybrid", Summary: "Start monolith, extract services later.", Confidence: 62},
	}
}

func TestExportNoResult(t *testing.T) {
	artifact, err := Export(FormatMarkup, "topic", nil)
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
	if artifact != nil {
		t.Error("no bytes should be produced without a result")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if _, err := Export(Format("xml"), "topic", scenarioResult()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportMarkupScenario(t *testing.T) {
	artifact, err := Export(FormatMarkup, "Should we adopt microservices?", scenarioResult())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc := string(artifact.Bytes)
	for _, want := range []string{
		"## 1. Thesis (Cogito)",
		"## 2. Antithesis (Requiem)",
		"## 3. Synthesis (Verdict)",
		"## 4. Risks Identified",
		"- Scalability",
		"- Team autonomy",
		"- Simplicity",
		"**Verdict:** Hybrid",
		"**Confidence:** 62%",
		"- **[UNKNOWN] No Risks:** None identified.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("markup document missing %q", want)
		}
	}

	if artifact.Filename != "Should_we_adopt_microservices.md" {
		t.Errorf("unexpected filename: %s", artifact.Filename)
	}
	if artifact.MIMEType != "text/markdown" {
		t.Errorf("unexpected MIME type: %s", artifact.MIMEType)
	}
}

func TestExportMalformedResultScenario(t *testing.T) {
	// Parsed form of {thesis: null, antithesis: {}, synthesis: {confidence: 150}}.
	result := &core.DebateResult{
		Antithesis: &core.Argument{},
		Synthesis:  &core.Synthesis{Confidence: 150},
	}

	artifact, err := Export(FormatMarkup, "edge case", result)
	if err != nil {
		t.Fatalf("export must not fail on malformed result: %v", err)
	}

	doc := string(artifact.Bytes)
	if !strings.Contains(doc, "- No points generated.") {
		t.Error("thesis points should fall back to placeholder")
	}
	if !strings.Contains(doc, "### antithesis Argument") {
		t.Error("antithesis title should fall back to \"antithesis Argument\"")
	}
	if !strings.Contains(doc, "**Confidence:** 100%") {
		t.Error("confidence should clamp to 100")
	}
}

func TestExportRichText(t *testing.T) {
	artifact, err := Export(FormatRichText, "Microservices?", scenarioResult())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	doc := string(artifact.Bytes)
	for _, want := range []string{
		"<html",
		"1. Thesis (Cogito)",
		"2. Antithesis (Requiem)",
		"3. Synthesis (Verdict)",
		"4. Risks Identified",
		"<li>Scalability</li>",
		"Confidence: 62%",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("richtext document missing %q", want)
		}
	}

	if artifact.Filename != "Microservices.doc" {
		t.Errorf("unexpected filename: %s", artifact.Filename)
	}
	if artifact.MIMEType != "application/msword" {
		t.Errorf("unexpected MIME type: %s", artifact.MIMEType)
	}
}

func TestExportRichTextEscapesContent(t *testing.T) {
	result := scenarioResult()
	result.Thesis.Points = []string{"<script>alert(1)</script>"}

	artifact, err := Export(FormatRichText, "topic", result)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(artifact.Bytes), "<script>") {
		t.Error("point content must be escaped")
	}
}

func TestExportPDF(t *testing.T) {
	artifact, err := Export(FormatPDF, "Microservices?", scenarioResult())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(artifact.Bytes) == 0 || !strings.HasPrefix(string(artifact.Bytes), "%PDF") {
		t.Error("expected a PDF document")
	}
	if artifact.Filename != "Microservices.pdf" {
		t.Errorf("unexpected filename: %s", artifact.Filename)
	}
}

func TestExportJSON(t *testing.T) {
	artifact, err := Export(FormatJSON, "Microservices?", scenarioResult())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	doc := string(artifact.Bytes)
	if !strings.Contains(doc, `"recommendation": "Hybrid"`) {
		t.Errorf("JSON export missing synthesis: %s", doc)
	}
	// Normalized: empty risks replaced by the placeholder.
	if !strings.Contains(doc, `"title": "No Risks"`) {
		t.Errorf("JSON export missing placeholder risk: %s", doc)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		label string
		ext   string
		want  string
	}{
		{"spaces become underscores", "Should we adopt microservices?", "md", "Should_we_adopt_microservices.md"},
		{"runs collapse", "a  --  b", "md", "a_b.md"},
		{"empty label", "", "doc", "cogito_report.doc"},
		{"symbols only", "?!*", "md", "cogito_report.md"},
		{"truncated to 30", strings.Repeat("a", 40), "md", strings.Repeat("a", 30) + ".md"},
		{"leading symbols dropped", "  (hello)", "md", "hello.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.label, tt.ext); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestFilenameIdempotent(t *testing.T) {
	for _, label := range []string{"Already_Clean_Label", "abc123", "Short"} {
		once := Filename(label, "md")
		base := strings.TrimSuffix(once, ".md")
		twice := Filename(base, "md")
		if once != twice {
			t.Errorf("sanitization not idempotent: %q -> %q -> %q", label, once, twice)
		}
		if label == "abc123" && base != label {
			t.Errorf("already sanitized label changed: %q -> %q", label, base)
		}
	}
}
