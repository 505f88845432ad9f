package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionEarnings - сумма цен работ, сгруппированная по описанию работы.
type ProfessionEarnings struct {
	Profession string          `db:"profession" json:"profession"`
	Total      decimal.Decimal `db:"total" json:"total"`
}

// ClientSpending - сумма цен работ, заказанных одним клиентом.
type ClientSpending struct {
	ID       uuid.UUID       `db:"id" json:"id"`
	FullName string          `db:"full_name" json:"full_name"`
	Paid     decimal.Decimal `db:"paid" json:"paid"`
}

// ReportSummary собирает оба отчёта, прочитанные из одного снимка данных.
type ReportSummary struct {
	Start          time.Time           `json:"start"`
	End            time.Time           `json:"end"`
	BestProfession *ProfessionEarnings `json:"best_profession,omitempty"`
	BestClients    []ClientSpending    `json:"best_clients"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// DateRange - закрытый с обеих сторон интервал дат отчёта.
type DateRange struct {
	Start time.Time
	End   time.Time
}
