package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfLineHeight = 6.0
	pdfFont       = "Helvetica"
)

// WritePDF renders the same title, table and findings as the HTML report.
func WritePDF(w io.Writer, r Report) error {
	return renderPDF(w, r, true)
}

func renderPDF(w io.Writer, r Report, compress bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle(Title, true)
	pdf.SetCreator(r.Meta.Tool+" "+r.Meta.ToolVersion, true)
	if !r.Meta.GeneratedAt.IsZero() {
		pdf.SetCreationDate(r.Meta.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	pdf.SetFont(pdfFont, "B", 18)
	pdf.MultiCell(width, 9, tr(Title), "", "L", false)
	pdf.SetFont(pdfFont, "", 9)
	pdf.MultiCell(width, 5, tr(metaLine(r.Meta)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(width, 8, "Dependencies and Licenses", "", 1, "L", false, 0, "")
	cols := []float64{width * 0.45, width * 0.55}

	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(cols[0], pdfLineHeight+1, "Package", "1", 0, "L", true, 0, "")
	pdf.CellFormat(cols[1], pdfLineHeight+1, "License", "1", 1, "L", true, 0, "")

	pdf.SetFont(pdfFont, "", 10)
	for _, d := range r.Dependencies {
		tableRow(pdf, cols, tr(d.Name), tr(d.License))
	}
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 14)
	if len(r.Findings) == 0 {
		pdf.CellFormat(width, 8, "No Incompatible Licenses Found", "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(width, 8, "Incompatible Licenses", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, f := range r.Findings {
			pdf.MultiCell(width, pdfLineHeight, tr("- "+f.String()), "", "L", false)
		}
	}

	return pdf.Output(w)
}

// tableRow draws one bordered row whose height fits the tallest cell.
func tableRow(pdf *fpdf.Fpdf, cols []float64, cells ...string) {
	lines := 1
	for i, c := range cells {
		if n := len(pdf.SplitText(c, cols[i]-2)); n > lines {
			lines = n
		}
	}
	h := float64(lines) * pdfLineHeight

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	for i, c := range cells {
		pdf.Rect(x, y, cols[i], h, "D")
		pdf.SetXY(x, y)
		pdf.MultiCell(cols[i], pdfLineHeight, c, "", "L", false)
		x += cols[i]
	}
	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+h)
}
