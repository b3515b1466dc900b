package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/cogitolab/cogito/internal/core"
)

// PDFExporter renders the report as a PDF document.
type PDFExporter struct{}

// Render writes the report as PDF.
func (e *PDFExporter) Render(topic string, rep core.Report, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, "Cogito Requiem: Decision Report", "", "C", false)
	pdf.Ln(2)

	if topic != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.MultiCell(0, 6, topic, "", "C", false)
	}
	pdf.Ln(6)

	e.addArgumentSection(pdf, "1. Thesis (Cogito)", rep.Thesis, 46, 125, 50)
	e.addArgumentSection(pdf, "2. Antithesis (Requiem)", rep.Antithesis, 198, 40, 40)

	e.addSectionHeader(pdf, "3. Synthesis (Verdict)", 69, 39, 160)
	pdf.SetFont("Arial", "B", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Verdict: %s", rep.Synthesis.Recommendation), "", "L", false)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Confidence: %d%%", rep.Synthesis.Confidence), "", "L", false)
	pdf.MultiCell(0, 6, rep.Synthesis.Summary, "", "L", false)
	pdf.Ln(4)

	e.addSectionHeader(pdf, "4. Risks Identified", 239, 108, 0)
	pdf.SetFont("Arial", "", 10)
	for _, risk := range rep.Risks {
		line := fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(risk.Severity)), risk.Title, risk.Desc)
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}

	return pdf.Output(w)
}

func (e *PDFExporter) addSectionHeader(pdf *gofpdf.Fpdf, title string, r, g, b int) {
	if pdf.GetY() > 250 {
		pdf.AddPage()
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(r, g, b)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetTextColor(0, 0, 0)
}

func (e *PDFExporter) addArgumentSection(pdf *gofpdf.Fpdf, title string, arg core.Argument, r, g, b int) {
	e.addSectionHeader(pdf, title, r, g, b)

	pdf.SetFont("Arial", "B", 11)
	pdf.MultiCell(0, 6, arg.Title, "", "L", false)

	pdf.SetFont("Arial", "", 10)
	for _, point := range arg.Points {
		pdf.MultiCell(0, 6, "- "+point, "", "L", false)
	}
	pdf.Ln(4)
}

// FileExtension returns the file extension for PDF.
func (e *PDFExporter) FileExtension() string {
	return "pdf"
}

// MIMEType returns the MIME type for PDF.
func (e *PDFExporter) MIMEType() string {
	return "application/pdf"
}
