package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

// LedgerTx - операции над профилями и работами в рамках одной транзакции.
type LedgerTx interface {
	// GetJobPrice возвращает цену работы; NULL цена приходит как Valid == false.
	GetJobPrice(ctx context.Context, jobID uuid.UUID) (decimal.NullDecimal, error)
	// GetProfileForUpdate читает профиль и блокирует строку до конца транзакции.
	GetProfileForUpdate(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
	// IncrementBalance атомарно прибавляет delta к балансу (delta может быть отрицательной).
	IncrementBalance(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) error
	MarkJobPaid(ctx context.Context, jobID uuid.UUID, paidAt time.Time) error
	ListClientContractIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error)
	// SumJobPrices суммирует цены всех работ договоров; пустая сумма приходит как Valid == false.
	SumJobPrices(ctx context.Context, contractIDs []uuid.UUID) (decimal.NullDecimal, error)
}

// LedgerStore открывает транзакции над балансами.
// InTx возвращает управление только после завершения Commit или Rollback.
type LedgerStore interface {
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// ContractReader - чтение договоров для слоя запросов.
type ContractReader interface {
	FindByContractorAndClient(ctx context.Context, contractorID, clientID uuid.UUID) (*models.Contract, error)
	ListActiveByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error)
	ListUnpaidByProfile(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error)
}

// ProfileReader - чтение профилей для границы вызова.
type ProfileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// ReportQuerier - агрегирующие запросы по истории работ.
type ReportQuerier interface {
	BestProfession(ctx context.Context, start, end time.Time) (*models.ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]models.ClientSpending, error)
}

// ReportStore читает отчёты; InSnapshot выполняет fn в одной read-only транзакции.
type ReportStore interface {
	ReportQuerier
	InSnapshot(ctx context.Context, opts *sql.TxOptions, fn func(q ReportQuerier) error) error
}
