package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cogitolab/cogito/internal/core"
	"github.com/cogitolab/cogito/internal/session"
)

// terminalSink renders session updates as plain terminal output.
type terminalSink struct {
	out io.Writer
}

func newTerminalSink(out io.Writer) *terminalSink {
	return &terminalSink{out: out}
}

func (s *terminalSink) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(s.out, "Consulting the agents... (Ctrl-C to cancel)")
	}
}

// SetTriggerRole is a no-op: a one-shot CLI has no persistent trigger
// control; Ctrl-C plays the cancel role while the request is in flight.
func (s *terminalSink) SetTriggerRole(role session.TriggerRole) {}

func (s *terminalSink) ShowThinking(panel session.Panel) {}

func (s *terminalSink) ShowArgument(panel session.Panel, arg core.Argument) {
	label := "Thesis (Cogito)"
	if panel == session.PanelAntithesis {
		label = "Antithesis (Requiem)"
	}
	fmt.Fprintf(s.out, "\n=== %s ===\n%s\n", label, arg.Title)
	for _, point := range arg.Points {
		fmt.Fprintf(s.out, "  - %s\n", point)
	}
}

func (s *terminalSink) ShowRisks(risks []core.Risk) {
	fmt.Fprintf(s.out, "\n=== Risks Identified ===\n")
	for _, risk := range risks {
		fmt.Fprintf(s.out, "  [%s] %s: %s\n", strings.ToUpper(string(risk.Severity)), risk.Title, risk.Desc)
	}
}

func (s *terminalSink) ShowSynthesis(synth core.Synthesis) {
	fmt.Fprintf(s.out, "\n=== Synthesis (Verdict) ===\n%s\n%s\n\n", synth.Recommendation, synth.Summary)
}

func (s *terminalSink) ShowConfidence(value int) {
	fmt.Fprintf(s.out, "\rConfidence: %3d%%", value)
}

func (s *terminalSink) ShowValidationError(msg string) {
	fmt.Fprintf(s.out, "Invalid topic: %s\n", msg)
}

func (s *terminalSink) ShowConnectionError(msg string) {
	fmt.Fprintf(s.out, "Connection error: %s\n", msg)
}
