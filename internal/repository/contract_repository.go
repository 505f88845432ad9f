package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contracts-backend/internal/models"
)

// ErrContractNotFound возвращается, когда договор не найден.
var ErrContractNotFound = errors.New("contract not found")

// ContractRepository отвечает за чтение договоров и их работ.
type ContractRepository struct {
	db *sqlx.DB
}

// NewContractRepository создаёт экземпляр репозитория.
func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindByContractorAndClient возвращает первый договор указанной пары подрядчик/клиент.
func (r *ContractRepository) FindByContractorAndClient(ctx context.Context, contractorID, clientID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	query := `
		SELECT id, client_id, contractor_id, status, terms, created_at, updated_at
		FROM contracts
		WHERE contractor_id = $1 AND client_id = $2
		ORDER BY created_at, id
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &contract, query, contractorID, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("contract repository: find by contractor and client %w", err)
	}
	return &contract, nil
}

// ListActiveByProfile возвращает незавершённые договоры, где профиль клиент или подрядчик.
func (r *ContractRepository) ListActiveByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	contracts := make([]models.Contract, 0)
	query := `
		SELECT id, client_id, contractor_id, status, terms, created_at, updated_at
		FROM contracts
		WHERE (client_id = $1 OR contractor_id = $1) AND status <> $2
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &contracts, query, profileID, models.ContractStatusTerminated); err != nil {
		return nil, fmt.Errorf("contract repository: list active %w", err)
	}
	return contracts, nil
}

type unpaidRow struct {
	ContractID  uuid.UUID           `db:"contract_id"`
	Terms       string              `db:"terms"`
	Status      string              `db:"status"`
	JobID       uuid.UUID           `db:"job_id"`
	Description string              `db:"description"`
	Price       decimal.NullDecimal `db:"price"`
	Paid        *bool               `db:"paid"`
	PaymentDate *time.Time          `db:"payment_date"`
	CreatedAt   time.Time           `db:"created_at"`
}

// ListUnpaidByProfile возвращает незавершённые договоры профиля вместе с неоплаченными работами.
// Договоры без неоплаченных работ в выборку не попадают.
func (r *ContractRepository) ListUnpaidByProfile(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error) {
	var rows []unpaidRow
	query := `
		SELECT c.id AS contract_id, c.terms, c.status,
		       j.id AS job_id, j.description, j.price, j.paid, j.payment_date, j.created_at
		FROM contracts c
		JOIN jobs j ON j.contract_id = c.id
		WHERE (c.client_id = $1 OR c.contractor_id = $1)
		  AND c.status <> $2
		  AND j.paid IS NULL
		ORDER BY c.created_at, c.id, j.created_at, j.id
	`
	if err := r.db.SelectContext(ctx, &rows, query, profileID, models.ContractStatusTerminated); err != nil {
		return nil, fmt.Errorf("contract repository: list unpaid %w", err)
	}
	return groupUnpaid(rows), nil
}

// groupUnpaid сворачивает строки join-а в договоры, сохраняя порядок выборки.
func groupUnpaid(rows []unpaidRow) []models.UnpaidContract {
	result := make([]models.UnpaidContract, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		pos, ok := index[row.ContractID]
		if !ok {
			pos = len(result)
			index[row.ContractID] = pos
			result = append(result, models.UnpaidContract{
				ID:     row.ContractID,
				Terms:  row.Terms,
				Status: row.Status,
			})
		}
		result[pos].Jobs = append(result[pos].Jobs, models.Job{
			ID:          row.JobID,
			ContractID:  row.ContractID,
			Description: row.Description,
			Price:       row.Price,
			Paid:        row.Paid,
			PaymentDate: row.PaymentDate,
			CreatedAt:   row.CreatedAt,
		})
	}
	return result
}
