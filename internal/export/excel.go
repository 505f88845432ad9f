package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

const (
	summarySheet = "Summary"
	clientsSheet = "Best clients"
)

type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

func (g *ExcelGenerator) Render(summary *models.ReportSummary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summary); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(clientsSheet); err != nil {
		return nil, err
	}
	if err := g.writeClients(file, summary); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSummary(file *excelize.File, summary *models.ReportSummary) error {
	profession, total := "-", "0.00"
	if summary.BestProfession != nil {
		profession = summary.BestProfession.Profession
		total = summary.BestProfession.Total.StringFixed(2)
	}

	rows := [][]interface{}{
		{"Period start", formatDate(summary.Start)},
		{"Period end", formatDate(summary.End)},
		{"Best profession", profession},
		{"Earned", total},
		{"Generated at", formatDateTime(summary.GeneratedAt)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return file.SetColWidth(summarySheet, "A", "B", 24)
}

func (g *ExcelGenerator) writeClients(file *excelize.File, summary *models.ReportSummary) error {
	header := []interface{}{"#", "Client ID", "Full name", "Paid"}
	if err := file.SetSheetRow(clientsSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(clientsSheet, "A1", "D1", bold); err != nil {
		return err
	}

	for i, client := range summary.BestClients {
		row := []interface{}{i + 1, client.ID.String(), client.FullName, client.Paid.InexactFloat64()}
		if err := file.SetSheetRow(clientsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(clientsSheet, "A", "A", 6)
	_ = file.SetColWidth(clientsSheet, "B", "B", 40)
	_ = file.SetColWidth(clientsSheet, "C", "C", 32)
	return file.SetColWidth(clientsSheet, "D", "D", 16)
}
