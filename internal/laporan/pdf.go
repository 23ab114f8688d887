package laporan

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight = 7.0
	pdfCellPad   = 4.0
)

func RenderPDF(r *Report) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(r.Periode), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(pdf, r)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(224, 224, 224)
		for i, h := range r.Headers {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range r.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-bottom {
			pdf.AddPage()
			header()
		}
		for i, v := range row {
			align := "L"
			if _, isText := v.(string); !isText {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(cellText(v)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(r.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, pdfRowHeight, "Tidak ada data pada periode ini", "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	for _, line := range r.Footer {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// columnWidths membagi lebar halaman sebanding dengan teks terpanjang tiap
// kolom.
func columnWidths(pdf *fpdf.Fpdf, r *Report) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	pdf.SetFont("Helvetica", "B", 9)
	widths := make([]float64, len(r.Headers))
	for i, h := range r.Headers {
		widths[i] = pdf.GetStringWidth(h) + pdfCellPad
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range r.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if w := pdf.GetStringWidth(cellText(v)) + pdfCellPad; w > widths[i] {
				widths[i] = w
			}
		}
	}

	var total float64
	for _, w := range widths {
		total += w
	}
	if total == 0 {
		return widths
	}
	scale := usable / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}
