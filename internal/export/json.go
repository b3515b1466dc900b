package export

import (
	"encoding/json"
	"io"

	"github.com/cogitolab/cogito/internal/core"
)

// JSONExporter exports the normalized report as JSON.
type JSONExporter struct{}

// ExportData represents the full export structure.
type ExportData struct {
	Topic      string         `json:"topic,omitempty"`
	Thesis     core.Argument  `json:"thesis"`
	Antithesis core.Argument  `json:"antithesis"`
	Risks      []core.Risk    `json:"risks"`
	Synthesis  core.Synthesis `json:"synthesis"`
}

// Render writes the report as JSON.
func (e *JSONExporter) Render(topic string, rep core.Report, w io.Writer) error {
	data := ExportData{
		Topic:      topic,
		Thesis:     rep.Thesis,
		Antithesis: rep.Antithesis,
		Risks:      rep.Risks,
		Synthesis:  rep.Synthesis,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return "json"
}

// MIMEType returns the MIME type for JSON.
func (e *JSONExporter) MIMEType() string {
	return "application/json"
}
