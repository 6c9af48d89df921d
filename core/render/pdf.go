// Package render — PDF renderer.
// Lays the widget out as a printable card using gofpdf. Core fonts are
// cp1252, so UTF-8 text goes through the translator first.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/chunk"
)

// PDFRenderer renders the widget as a one-page PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the widget into PDF bytes.
func (r *PDFRenderer) Render(w core.Widget) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(w.Title+" "+w.Reference, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Date header.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 110, 95)
	pdf.MultiCell(0, 5, tr(w.Date), "", "L", false)
	pdf.Ln(2)

	if w.Title != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(107, 94, 74)
		pdf.MultiCell(0, 6, tr(w.Title), "", "L", false)
		pdf.Ln(1)
	}

	pdf.SetFont("Times", "B", 15)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 7, tr(w.Reference), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Times", "", 11)
	for _, lines := range chunk.Paragraphs(w.Text) {
		for _, line := range lines {
			pdf.MultiCell(0, 5.5, tr(line), "", "J", false)
		}
		pdf.Ln(3)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 110, 95)
	status := w.Status
	if w.Link != "" {
		status += "  " + w.Link
	}
	pdf.MultiCell(0, 4, tr(status), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}
