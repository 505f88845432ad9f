package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contracts-backend/internal/dto"
	"github.com/ignatzorin/contracts-backend/internal/http/handlers/common"
	"github.com/ignatzorin/contracts-backend/internal/models"
)

// ContractQueries - запросы по договорам вызывающего профиля.
type ContractQueries interface {
	GetContract(ctx context.Context, profileID, contractID uuid.UUID) (*models.Contract, error)
	GetUserContracts(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error)
	GetUnpaidContracts(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error)
}

// ContractHandler обслуживает чтение договоров и неоплаченных работ.
type ContractHandler struct {
	contracts ContractQueries
}

func NewContractHandler(contracts ContractQueries) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GetContract обрабатывает GET /api/contracts/:id.
func (h *ContractHandler) GetContract(c *gin.Context) {
	profileID, err := common.CurrentProfileID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	contractID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), profileID, contractID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewContractResponse(*contract))
}

// ListContracts обрабатывает GET /api/contracts.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	profileID, err := common.CurrentProfileID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	contracts, err := h.contracts.GetUserContracts(c.Request.Context(), profileID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewContractResponses(contracts))
}

// ListUnpaid обрабатывает GET /api/jobs/unpaid.
func (h *ContractHandler) ListUnpaid(c *gin.Context) {
	profileID, err := common.CurrentProfileID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	contracts, err := h.contracts.GetUnpaidContracts(c.Request.Context(), profileID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewUnpaidContractResponses(contracts))
}
