package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

// PDFGenerator рисует отчёт встроенным шрифтом Helvetica; текст переводится в cp1252.
type PDFGenerator struct {
	fontName string
}

func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{fontName: "Helvetica"}
}

func (g *PDFGenerator) Render(summary *models.ReportSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Contracts report", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", formatDate(summary.Start), formatDate(summary.End)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated at "+formatDateTime(summary.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Best profession", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	if summary.BestProfession != nil {
		line := fmt.Sprintf("%s: %s", summary.BestProfession.Profession, summary.BestProfession.Total.StringFixed(2))
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	} else {
		pdf.CellFormat(0, 6, "No paid jobs in this period", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Best clients", "", 1, "L", false, 0, "")

	widths := []float64{12, 78, 90}
	drawTableRow(pdf, g.fontName, []string{"#", "Full name", "Paid"}, widths, true)
	for i, client := range summary.BestClients {
		drawTableRow(pdf, g.fontName, []string{
			strconv.Itoa(i + 1),
			tr(client.FullName),
			client.Paid.StringFixed(2),
		}, widths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
