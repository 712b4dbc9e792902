package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a landscape tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Landscape A4 is 297mm wide; with 10mm margins that leaves 277mm for the
// table. The label column gets a fixed share so long role names fit.
const (
	pdfUsableWidth   = 277.0
	pdfLabelColWidth = 52.0
)

// Render creates a PDF document with an optional title and the schedule grid.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	dateColWidth := pdfUsableWidth / float64(len(data.Headers))
	if len(data.Headers) > 1 {
		dateColWidth = (pdfUsableWidth - pdfLabelColWidth) / float64(len(data.Headers)-1)
	}
	colWidth := func(i int) float64 {
		if i == 0 {
			return pdfLabelColWidth
		}
		return dateColWidth
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range data.Headers {
		pdf.CellFormat(colWidth(i), 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range data.Rows {
		for i, header := range data.Headers {
			value := row[header]
			if i == 0 {
				pdf.SetFont("Arial", "B", 9)
				pdf.CellFormat(colWidth(i), 7, value, "1", 0, "", true, 0, "")
				continue
			}
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(colWidth(i), 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}
