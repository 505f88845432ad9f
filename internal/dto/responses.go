package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

// ErrorResponse - единый формат ошибки API.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ContractResponse - договор в ответах API.
type ContractResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	ContractorID uuid.UUID `json:"contractor_id"`
	Status       string    `json:"status"`
	Terms        string    `json:"terms"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobResponse - работа в ответах API.
type JobResponse struct {
	ID          uuid.UUID        `json:"id"`
	ContractID  uuid.UUID        `json:"contract_id"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Paid        *bool            `json:"paid"`
	PaymentDate *time.Time       `json:"payment_date"`
	CreatedAt   time.Time        `json:"created_at"`
}

// UnpaidContractResponse - договор с неоплаченными работами.
type UnpaidContractResponse struct {
	ID     uuid.UUID     `json:"id"`
	Terms  string        `json:"terms"`
	Status string        `json:"status"`
	Jobs   []JobResponse `json:"jobs"`
}

type PaymentResponse struct {
	Message      string          `json:"message"`
	JobID        uuid.UUID       `json:"job_id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paid_at"`
}

type DepositResponse struct {
	Message   string          `json:"message"`
	ProfileID uuid.UUID       `json:"profile_id"`
	Amount    decimal.Decimal `json:"amount"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}

type BestProfessionResponse struct {
	Profession string          `json:"profession"`
	Total      decimal.Decimal `json:"total"`
}

type BestClientResponse struct {
	ID       uuid.UUID       `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

func NewContractResponse(c models.Contract) ContractResponse {
	return ContractResponse{
		ID:           c.ID,
		ClientID:     c.ClientID,
		ContractorID: c.ContractorID,
		Status:       c.Status,
		Terms:        c.Terms,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func NewContractResponses(contracts []models.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, NewContractResponse(c))
	}
	return out
}

func NewJobResponse(j models.Job) JobResponse {
	resp := JobResponse{
		ID:          j.ID,
		ContractID:  j.ContractID,
		Description: j.Description,
		Paid:        j.Paid,
		PaymentDate: j.PaymentDate,
		CreatedAt:   j.CreatedAt,
	}
	if j.Price.Valid {
		price := j.Price.Decimal
		resp.Price = &price
	}
	return resp
}

func NewUnpaidContractResponses(contracts []models.UnpaidContract) []UnpaidContractResponse {
	out := make([]UnpaidContractResponse, 0, len(contracts))
	for _, c := range contracts {
		jobs := make([]JobResponse, 0, len(c.Jobs))
		for _, j := range c.Jobs {
			jobs = append(jobs, NewJobResponse(j))
		}
		out = append(out, UnpaidContractResponse{ID: c.ID, Terms: c.Terms, Status: c.Status, Jobs: jobs})
	}
	return out
}

func NewPaymentResponse(r *models.PaymentReceipt) PaymentResponse {
	return PaymentResponse{
		Message:      r.Message,
		JobID:        r.JobID,
		ClientID:     r.ClientID,
		ContractorID: r.ContractorID,
		Amount:       r.Amount,
		PaidAt:       r.PaidAt,
	}
}

func NewDepositResponse(r *models.DepositReceipt) DepositResponse {
	return DepositResponse{
		Message:   r.Message,
		ProfileID: r.ProfileID,
		Amount:    r.Amount,
		MaxAmount: r.MaxAmount,
	}
}

func NewBestClientResponses(clients []models.ClientSpending) []BestClientResponse {
	out := make([]BestClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, BestClientResponse{ID: c.ID, FullName: c.FullName, Paid: c.Paid})
	}
	return out
}
