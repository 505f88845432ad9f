package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract связывает клиента и подрядчика.
type Contract struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ClientID     uuid.UUID `db:"client_id" json:"client_id"`
	ContractorID uuid.UUID `db:"contractor_id" json:"contractor_id"`
	Status       string    `db:"status" json:"status"`
	Terms        string    `db:"terms" json:"terms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UnpaidContract - проекция договора с его неоплаченными работами.
type UnpaidContract struct {
	ID     uuid.UUID `json:"id"`
	Terms  string    `json:"terms"`
	Status string    `json:"status"`
	Jobs   []Job     `json:"jobs"`
}
