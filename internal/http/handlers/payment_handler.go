package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contracts-backend/internal/dto"
	"github.com/ignatzorin/contracts-backend/internal/http/handlers/common"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/validation"
)

// Transfers - операции с балансами.
type Transfers interface {
	Pay(ctx context.Context, clientID, contractorID, jobID uuid.UUID) (*models.PaymentReceipt, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error)
}

// PaymentHandler обслуживает оплату работ и пополнение баланса.
type PaymentHandler struct {
	transfers Transfers
}

func NewPaymentHandler(transfers Transfers) *PaymentHandler {
	return &PaymentHandler{transfers: transfers}
}

// PayJob обрабатывает POST /api/jobs/:job_id/pay. Клиентом выступает вызывающий профиль.
func (h *PaymentHandler) PayJob(c *gin.Context) {
	clientID, err := common.CurrentProfileID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	jobID, err := common.ParseUUIDParam(c, "job_id")
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.PayJobRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}
	contractorID, err := validation.ParseUUID("contractor_id", req.ContractorID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	receipt, err := h.transfers.Pay(c.Request.Context(), clientID, contractorID, jobID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewPaymentResponse(receipt))
}

// Deposit обрабатывает POST /api/balances/deposit/:userId.
func (h *PaymentHandler) Deposit(c *gin.Context) {
	if _, err := common.CurrentProfileID(c); err != nil {
		common.RespondAppError(c, err)
		return
	}

	userID, err := common.ParseUUIDParam(c, "userId")
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.DepositRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}
	if err := validation.ValidateAmount("amount", req.Amount); err != nil {
		common.RespondAppError(c, err)
		return
	}

	receipt, err := h.transfers.Deposit(c.Request.Context(), userID, *req.Amount)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDepositResponse(receipt))
}
