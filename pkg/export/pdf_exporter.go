package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFSection is one titled table in a PDF document.
type PDFSection struct {
	Heading string
	Data    Dataset
	// Accent optionally colors the first cell of each row; one "#RRGGBB" per row.
	Accent []string
}

// PDFDocument describes a multi-section tabular PDF.
type PDFDocument struct {
	Title    string
	Subtitle string
	Sections []PDFSection
}

// PDFExporter renders documents into landscape A4 tables.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF, skipping sections without rows.
func (e *PDFExporter) Render(doc PDFDocument) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(3)

	const pageWidth = 277.0
	for _, section := range doc.Sections {
		if len(section.Data.Headers) == 0 || len(section.Data.Rows) == 0 {
			continue
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, tr(section.Heading), "", 1, "L", false, 0, "")

		colWidth := pageWidth / float64(len(section.Data.Headers))
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		for _, header := range section.Data.Headers {
			pdf.CellFormat(colWidth, 7, tr(headerLabel(header)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for i, row := range section.Data.Rows {
			for j, header := range section.Data.Headers {
				fill := false
				if j == 0 && i < len(section.Accent) {
					if r, g, b, ok := parseHex(section.Accent[i]); ok {
						pdf.SetFillColor(r, g, b)
						fill = true
					}
				}
				pdf.CellFormat(colWidth, 7, tr(row[header]), "1", 0, "", fill, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func headerLabel(header string) string {
	words := strings.Fields(strings.ReplaceAll(header, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func parseHex(raw string) (int, int, int, bool) {
	raw = strings.TrimPrefix(raw, "#")
	if len(raw) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
