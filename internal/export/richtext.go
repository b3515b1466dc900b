package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/cogitolab/cogito/internal/core"
)

// Section colors for the richtext layout. Fixed scheme, one per panel.
const (
	thesisColor     = "#2e7d32"
	antithesisColor = "#c62828"
	synthesisColor  = "#4527a0"
	risksColor      = "#ef6c00"
)

// RichTextExporter renders the report as a self-contained styled
// document that word processors open natively (.doc carrying HTML).
type RichTextExporter struct{}

// Render writes the report as a styled document.
func (e *RichTextExporter) Render(topic string, rep core.Report, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word">` + "\n")
	sb.WriteString("<head>\n<meta charset=\"utf-8\">\n<title>Cogito Requiem: Decision Report</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: Georgia, serif; margin: 40px; color: #1a1a1a; }\n")
	sb.WriteString("h1 { border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }\n")
	sb.WriteString("h2 { margin-top: 28px; }\n")
	sb.WriteString("li { margin-bottom: 4px; }\n")
	sb.WriteString(".confidence { font-size: 1.2em; font-weight: bold; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString("<h1>Cogito Requiem: Decision Report</h1>\n")
	if topic != "" {
		sb.WriteString(fmt.Sprintf("<p><b>Topic:</b> %s</p>\n", html.EscapeString(topic)))
	}

	writeHTMLArgument(&sb, "1. Thesis (Cogito)", thesisColor, rep.Thesis)
	writeHTMLArgument(&sb, "2. Antithesis (Requiem)", antithesisColor, rep.Antithesis)

	sb.WriteString(fmt.Sprintf("<h2 style=\"color: %s;\">3. Synthesis (Verdict)</h2>\n", synthesisColor))
	sb.WriteString(fmt.Sprintf("<p><b>Verdict:</b> %s</p>\n", html.EscapeString(rep.Synthesis.Recommendation)))
	sb.WriteString(fmt.Sprintf("<p class=\"confidence\">Confidence: %d%%</p>\n", rep.Synthesis.Confidence))
	sb.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(rep.Synthesis.Summary)))

	sb.WriteString(fmt.Sprintf("<h2 style=\"color: %s;\">4. Risks Identified</h2>\n<ul>\n", risksColor))
	for _, risk := range rep.Risks {
		sb.WriteString(fmt.Sprintf("<li><b>[%s] %s:</b> %s</li>\n",
			strings.ToUpper(string(risk.Severity)),
			html.EscapeString(risk.Title),
			html.EscapeString(risk.Desc)))
	}
	sb.WriteString("</ul>\n</body>\n</html>\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}

func writeHTMLArgument(sb *strings.Builder, heading, color string, arg core.Argument) {
	sb.WriteString(fmt.Sprintf("<h2 style=\"color: %s;\">%s</h2>\n", color, heading))
	sb.WriteString(fmt.Sprintf("<h3>%s</h3>\n<ul>\n", html.EscapeString(arg.Title)))
	for _, point := range arg.Points {
		sb.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(point)))
	}
	sb.WriteString("</ul>\n")
}

// FileExtension returns the file extension for richtext documents.
func (e *RichTextExporter) FileExtension() string {
	return "doc"
}

// MIMEType returns the MIME type word processors associate with .doc.
func (e *RichTextExporter) MIMEType() string {
	return "application/msword"
}
