package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

// Format - формат выгрузки отчёта.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat разбирает формат из query; пустое значение даёт xlsx.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("неизвестный формат %q, допустимы xlsx и pdf", value)
	}
}

// ContentType возвращает MIME тип файла.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Renderer строит файл отчёта.
type Renderer interface {
	Render(summary *models.ReportSummary) ([]byte, error)
}

// Exporter выбирает генератор по формату.
type Exporter struct {
	renderers map[Format]Renderer
}

func NewExporter() *Exporter {
	return &Exporter{renderers: map[Format]Renderer{
		FormatXLSX: NewExcelGenerator(),
		FormatPDF:  NewPDFGenerator(),
	}}
}

// Export возвращает содержимое файла и его имя.
func (e *Exporter) Export(format Format, summary *models.ReportSummary) ([]byte, string, error) {
	renderer, ok := e.renderers[format]
	if !ok {
		return nil, "", fmt.Errorf("export: нет генератора для формата %q", format)
	}
	data, err := renderer.Render(summary)
	if err != nil {
		return nil, "", fmt.Errorf("export: %s: %w", format, err)
	}
	return data, FileName(summary, format), nil
}

// FileName строит имя файла по периоду отчёта.
func FileName(summary *models.ReportSummary, format Format) string {
	return fmt.Sprintf("report_%s_%s.%s", formatDate(summary.Start), formatDate(summary.End), format)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}
