package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/decibelcooper/genieplot"
)

const (
	inchToMm      = 25.4
	pdfPageWidth  = 11 * inchToMm // Letter landscape
	pdfPageHeight = 8.5 * inchToMm
	pdfMargin     = 0.5 * inchToMm
	pdfWidth      = pdfPageWidth - 2*pdfMargin
	lineHeight    = 5.5
	labelWidth    = 45
)

// pdfStyler wraps the document with the few text styles the summary uses.
type pdfStyler struct {
	pdf    *gofpdf.Fpdf
	styles map[string]func()
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{pdf: pdf}
	s.styles = map[string]func(){
		"h1": func() {
			pdf.SetFont("Arial", "B", 16)
			pdf.SetTextColor(0, 0, 0)
		},
		"h2": func() {
			pdf.SetFont("Arial", "B", 12)
			pdf.SetTextColor(0, 0, 0)
		},
		"normal": func() {
			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(0, 0, 0)
		},
		"tableHeader": func() {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetFillColor(200, 200, 200)
			pdf.SetTextColor(0, 0, 0)
		},
		"tableCell": func() {
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(50, 50, 50)
		},
		"error": func() {
			pdf.SetFont("Arial", "B", 10)
			pdf.SetTextColor(200, 0, 0)
		},
	}
	return s
}

func (s *pdfStyler) apply(style string) {
	if fn, ok := s.styles[style]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(needed float64) {
	if s.pdf.GetY()+needed > pdfPageHeight-pdfMargin {
		s.pdf.AddPage()
	}
}

func (s *pdfStyler) paragraph(text, style string) {
	s.apply(style)
	s.pdf.MultiCell(pdfWidth, lineHeight+1, text, "", "L", false)
	s.pdf.Ln(1)
}

// table draws a bordered table with a shaded header row. The first column
// holds the row labels.
func (s *pdfStyler) table(headers []string, rows [][]string) {
	cellWidth := (pdfWidth - labelWidth) / float64(len(headers)-1)
	width := func(i int) float64 {
		if i == 0 {
			return labelWidth
		}
		return cellWidth
	}

	s.checkAddPage(lineHeight * 3)
	s.apply("tableHeader")
	for i, h := range headers {
		s.pdf.CellFormat(width(i), lineHeight, h, "1", 0, "C", true, 0, "")
	}
	s.pdf.Ln(-1)

	s.apply("tableCell")
	for _, row := range rows {
		s.checkAddPage(lineHeight)
		for i, cell := range row {
			align := "C"
			if i == 0 {
				align = "L"
			}
			s.pdf.CellFormat(width(i), lineHeight, cell, "1", 0, align, false, 0, "")
		}
		s.pdf.Ln(-1)
	}
	s.pdf.Ln(4)
}

// WritePDF writes the normalizations, both interaction tables and the
// final-state particle counts of a run to a PDF file, followed by the
// given plot images.
func WritePDF(path string, results []genieplot.Result, images []string) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	s := newPDFStyler(pdf)
	s.paragraph("GENIE model configuration comparison, SBND", "h1")

	for _, r := range results {
		if r.Err != nil {
			s.paragraph(fmt.Sprintf("%s failed: %v", r.Configuration.Title(), r.Err), "error")
		}
	}

	ok := genieplot.Succeeded(results)
	if len(ok) == 0 {
		s.paragraph("No configuration could be analysed.", "normal")
		return pdf.OutputFileAndClose(path)
	}

	headers := []string{"Configuration", "Generated events", "Events read", "Normalization"}
	var rows [][]string
	for _, r := range ok {
		rows = append(rows, []string{
			r.Configuration.Title(),
			fmt.Sprint(r.Configuration.GeneratedEvents),
			fmt.Sprint(len(r.Events)),
			fmt.Sprintf("%.5g", r.Scale),
		})
	}
	s.paragraph("Normalization", "h2")
	s.table(headers, rows)

	s.interactionTable("Predicted SBND interactions", ScaledColumns(ok))
	s.interactionTable("Monte Carlo interactions", RawColumns(ok))

	headers = []string{"Final state"}
	for _, r := range ok {
		headers = append(headers, r.Configuration.Title())
	}
	rows = nil
	for i, row := range ok[0].Particles.Rows() {
		cells := []string{row.Label}
		for _, r := range ok {
			cells = append(cells, fmt.Sprint(r.Particles.Rows()[i].Count))
		}
		rows = append(rows, cells)
	}
	s.paragraph("Events with final-state particles", "h2")
	s.table(headers, rows)

	for _, img := range images {
		pdf.AddPage()
		pdf.Image(img, pdfMargin, pdfMargin, pdfWidth*0.75, 0, false, "PNG", 0, "")
	}

	if pdf.Err() {
		return fmt.Errorf("building %s: %w", path, pdf.Error())
	}
	return pdf.OutputFileAndClose(path)
}

func (s *pdfStyler) interactionTable(title string, cols []Column) {
	headers := []string{"Final state"}
	for _, c := range cols {
		headers = append(headers, c.Label)
	}

	for _, ch := range genieplot.Channels {
		var rows [][]string
		for st := genieplot.FinalState(0); st < genieplot.NumFinalStates; st++ {
			cells := []string{st.String()}
			for _, c := range cols {
				cells = append(cells, formatCount(c.Counts[ch][st]))
			}
			rows = append(rows, cells)
		}
		s.checkAddPage(lineHeight * float64(len(rows)+3))
		s.paragraph(title+", "+ch.Title(), "h2")
		s.table(headers, rows)
	}
}
