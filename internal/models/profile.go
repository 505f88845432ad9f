package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile описывает участника площадки: клиента или подрядчика со своим балансом.
type Profile struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	FirstName  string          `db:"first_name" json:"first_name"`
	LastName   string          `db:"last_name" json:"last_name"`
	Profession string          `db:"profession" json:"profession"`
	Role       string          `db:"role" json:"role"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// FullName склеивает имя и фамилию так же, как это делает SQL отчёта.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
