// Package export renders a debate's decision matrix into downloadable
// report documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cogitolab/cogito/internal/core"
)

// Format represents an export format.
type Format string

const (
	FormatMarkup   Format = "markup"
	FormatRichText Format = "richtext"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// ErrNoResult is returned when export is requested before any debate
// has completed.
var ErrNoResult = errors.New("no completed debate to export")

// Artifact is a rendered report ready to hand to the user.
type Artifact struct {
	Bytes    []byte
	Filename string
	MIMEType string
}

// Exporter defines the interface for rendering reports.
type Exporter interface {
	Render(topic string, rep core.Report, w io.Writer) error
	FileExtension() string
	MIMEType() string
}

// ForFormat returns an exporter for the given format.
func ForFormat(format Format) (Exporter, error) {
	switch format {
	case FormatMarkup:
		return &MarkupExporter{}, nil
	case FormatRichText:
		return &RichTextExporter{}, nil
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatPDF:
		return &PDFExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Export renders the stored decision matrix as a named document.
//
// A nil result is the only hard failure (ErrNoResult). Malformed
// fields inside the result are normalized away, and any unexpected
// rendering fault is caught here and returned as an error rather than
// escaping to the caller.
func Export(format Format, topicLabel string, result *core.DebateResult) (artifact *Artifact, err error) {
	if result == nil {
		return nil, ErrNoResult
	}

	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = fmt.Errorf("export failed: %v", r)
		}
	}()

	exporter, err := ForFormat(format)
	if err != nil {
		return nil, err
	}

	rep := core.Normalize(result)
	var buf bytes.Buffer
	if err := exporter.Render(topicLabel, rep, &buf); err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return &Artifact{
		Bytes:    buf.Bytes(),
		Filename: Filename(topicLabel, exporter.FileExtension()),
		MIMEType: exporter.MIMEType(),
	}, nil
}

// DefaultLabel names the report when the topic label is empty.
const DefaultLabel = "cogito_report"

// Filename derives a safe download name from a topic label: every run
// of characters that are not ASCII letters or digits collapses to a
// single underscore, the result is truncated to 30 characters, and the
// format extension is appended. Sanitizing an already sanitized label
// is a no-op.
func Filename(label, ext string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}

	var sb strings.Builder
	pendingSep := false
	for _, r := range label {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	name := sb.String()
	if name == "" {
		name = DefaultLabel
	}
	if len(name) > 30 {
		name = strings.TrimRight(name[:30], "_")
	}
	return name + "." + ext
}
