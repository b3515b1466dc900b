// Package core contains the core domain types for cogito.
package core

// Severity classifies how serious an identified risk is.
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityUnknown Severity = "unknown"
)

// ParseSeverity maps a raw severity string to a known Severity.
// Anything unrecognized becomes SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s)
	default:
		return SeverityUnknown
	}
}

// Phase represents the current phase of a debate session.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingResult Phase = "awaiting_result"
	PhaseRevealing      Phase = "revealing"
	PhaseCompleted      Phase = "completed"
	PhaseCancelled      Phase = "cancelled"
	PhaseFailed         Phase = "failed"
)

// Terminal reports whether the phase is a terminal one.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseCancelled || p == PhaseFailed
}

// Argument is one side of the debate (thesis or antithesis).
type Argument struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Risk is a single identified risk in the decision matrix.
type Risk struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
}

// Synthesis is the final verdict of the debate.
type Synthesis struct {
	Recommendation string `json:"recommendation"`
	Summary        string `json:"summary"`
	Confidence     int    `json:"confidence"`
}

// DebateResult is the decision matrix returned by the analysis service.
//
// The service is an external process; any field may be missing or
// malformed. Nil pointers and nil slices mean "absent". Consumers go
// through Normalize rather than reading fields directly.
type DebateResult struct {
	Thesis     *Argument  `json:"thesis,omitempty"`
	Antithesis *Argument  `json:"antithesis,omitempty"`
	Risks      []Risk     `json:"risks,omitempty"`
	Synthesis  *Synthesis `json:"synthesis,omitempty"`
}

// Report is a fully populated view of a DebateResult with every
// documented fallback already applied. Exporters and presentation
// sinks consume Reports, never raw results.
type Report struct {
	Thesis     Argument
	Antithesis Argument
	Risks      []Risk
	Synthesis  Synthesis
}
