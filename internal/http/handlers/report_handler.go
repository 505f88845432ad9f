package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/contracts-backend/internal/dto"
	"github.com/ignatzorin/contracts-backend/internal/export"
	"github.com/ignatzorin/contracts-backend/internal/http/handlers/common"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
	"github.com/ignatzorin/contracts-backend/internal/service"
	"github.com/ignatzorin/contracts-backend/internal/validation"
)

// Reports - агрегирующие отчёты за период.
type Reports interface {
	BestProfession(ctx context.Context, period models.DateRange) (*models.ProfessionEarnings, error)
	BestClients(ctx context.Context, period models.DateRange, limit int) ([]models.ClientSpending, error)
	Summary(ctx context.Context, period models.DateRange, limit int) (*models.ReportSummary, error)
}

// ReportExporter строит файл сводного отчёта.
type ReportExporter interface {
	Export(format export.Format, summary *models.ReportSummary) ([]byte, string, error)
}

// ReportHandler обслуживает /api/admin.
type ReportHandler struct {
	reports  Reports
	exporter ReportExporter
}

func NewReportHandler(reports Reports, exporter ReportExporter) *ReportHandler {
	return &ReportHandler{reports: reports, exporter: exporter}
}

// BestProfession обрабатывает GET /api/admin/best-profession?start=&end=.
func (h *ReportHandler) BestProfession(c *gin.Context) {
	var q dto.ReportQuery
	if err := common.BindQuery(c, &q); err != nil {
		common.RespondAppError(c, err)
		return
	}

	period, err := validation.ParseDateRange(q.Start, q.End)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	best, err := h.reports.BestProfession(c.Request.Context(), period)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.BestProfessionResponse{Profession: best.Profession, Total: best.Total})
}

// BestClients обрабатывает GET /api/admin/best-clients?start=&end=&limit=.
func (h *ReportHandler) BestClients(c *gin.Context) {
	var q dto.ReportQuery
	if err := common.BindQuery(c, &q); err != nil {
		common.RespondAppError(c, err)
		return
	}

	period, limit, ok := h.parsePeriod(c, q)
	if !ok {
		return
	}

	clients, err := h.reports.BestClients(c.Request.Context(), period, limit)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewBestClientResponses(clients))
}

// Export обрабатывает GET /api/admin/reports/export?start=&end=&limit=&format=xlsx|pdf.
func (h *ReportHandler) Export(c *gin.Context) {
	var q dto.ReportQuery
	if err := common.BindQuery(c, &q); err != nil {
		common.RespondAppError(c, err)
		return
	}

	format, err := export.ParseFormat(q.Format)
	if err != nil {
		common.RespondAppError(c, apperror.InvalidInput(err.Error()))
		return
	}

	period, limit, ok := h.parsePeriod(c, q)
	if !ok {
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), period, limit)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	data, fileName, err := h.exporter.Export(format, summary)
	if err != nil {
		common.RespondAppError(c, apperror.Internal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (h *ReportHandler) parsePeriod(c *gin.Context, q dto.ReportQuery) (models.DateRange, int, bool) {
	period, err := validation.ParseDateRange(q.Start, q.End)
	if err != nil {
		common.RespondAppError(c, err)
		return models.DateRange{}, 0, false
	}

	limit, err := validation.ParseLimit(q.Limit, service.MaxBestClientsLimit)
	if err != nil {
		common.RespondAppError(c, err)
		return models.DateRange{}, 0, false
	}

	return period, limit, true
}
