package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/cogitolab/cogito/internal/core"
)

// MarkupExporter renders the report as a Markdown document.
type MarkupExporter struct{}

// Render writes the report as Markdown.
func (e *MarkupExporter) Render(topic string, rep core.Report, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Cogito Requiem: Decision Report\n\n")
	if topic != "" {
		sb.WriteString(fmt.Sprintf("**Topic:** %s\n\n", topic))
	}

	sb.WriteString("## 1. Thesis (Cogito)\n\n")
	writeArgument(&sb, rep.Thesis)

	sb.WriteString("## 2. Antithesis (Requiem)\n\n")
	writeArgument(&sb, rep.Antithesis)

	sb.WriteString("## 3. Synthesis (Verdict)\n\n")
	sb.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", rep.Synthesis.Recommendation))
	sb.WriteString(fmt.Sprintf("**Confidence:** %d%%\n\n", rep.Synthesis.Confidence))
	sb.WriteString(rep.Synthesis.Summary)
	sb.WriteString("\n\n")

	sb.WriteString("## 4. Risks Identified\n\n")
	for _, risk := range rep.Risks {
		sb.WriteString(fmt.Sprintf("- **[%s] %s:** %s\n", strings.ToUpper(string(risk.Severity)), risk.Title, risk.Desc))
	}
	sb.WriteString("\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}

func writeArgument(sb *strings.Builder, arg core.Argument) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", arg.Title))
	for _, point := range arg.Points {
		sb.WriteString(fmt.Sprintf("- %s\n", point))
	}
	sb.WriteString("\n")
}

// FileExtension returns the file extension for Markdown.
func (e *MarkupExporter) FileExtension() string {
	return "md"
}

// MIMEType returns the MIME type for Markdown.
func (e *MarkupExporter) MIMEType() string {
	return "text/markdown"
}
