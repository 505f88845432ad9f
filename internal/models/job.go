package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job - оцененная единица работы в рамках договора.
// Paid == nil означает, что работа ещё не оплачена.
type Job struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	ContractID  uuid.UUID           `db:"contract_id" json:"contract_id"`
	Description string              `db:"description" json:"description"`
	Price       decimal.NullDecimal `db:"price" json:"price"`
	Paid        *bool               `db:"paid" json:"paid"`
	PaymentDate *time.Time          `db:"payment_date" json:"payment_date,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
}

// IsPaid сообщает, оплачена ли работа.
func (j *Job) IsPaid() bool {
	return j.Paid != nil && *j.Paid
}

// PaymentReceipt возвращается после успешной оплаты работы.
type PaymentReceipt struct {
	JobID        uuid.UUID       `json:"job_id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paid_at"`
	Message      string          `json:"message"`
}

// DepositReceipt возвращается после успешного пополнения баланса.
type DepositReceipt struct {
	ProfileID uuid.UUID       `json:"profile_id"`
	Amount    decimal.Decimal `json:"amount"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	Message   string          `json:"message"`
}
