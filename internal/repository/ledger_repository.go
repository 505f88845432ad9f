package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/repository/common"
)

// ErrJobNotFound возвращается, когда работа не найдена.
var ErrJobNotFound = errors.New("job not found")

// LedgerRepository выполняет денежные операции над профилями в транзакциях.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository создаёт экземпляр репозитория.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// InTx выполняет fn в транзакции; при ошибке fn транзакция откатывается.
func (r *LedgerRepository) InTx(ctx context.Context, fn func(tx domainrepo.LedgerTx) error) error {
	return common.WithTransaction(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		return fn(&ledgerTx{q: tx})
	})
}

type ledgerTx struct {
	q common.Queryer
}

func (t *ledgerTx) GetJobPrice(ctx context.Context, jobID uuid.UUID) (decimal.NullDecimal, error) {
	var price decimal.NullDecimal
	err := t.q.GetContext(ctx, &price, `SELECT price FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.NullDecimal{}, ErrJobNotFound
		}
		return decimal.NullDecimal{}, fmt.Errorf("ledger repository: get job price %w", err)
	}
	return price, nil
}

func (t *ledgerTx) GetProfileForUpdate(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	query := `
		SELECT id, first_name, last_name, profession, role, balance, created_at, updated_at
		FROM profiles WHERE id = $1 FOR UPDATE
	`
	if err := t.q.GetContext(ctx, &profile, query, profileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("ledger repository: get profile %w", err)
	}
	return &profile, nil
}

// IncrementBalance меняет баланс одним UPDATE, без чтения-изменения-записи в приложении.
func (t *ledgerTx) IncrementBalance(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) error {
	res, err := t.q.ExecContext(ctx, `
		UPDATE profiles SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
	`, profileID, delta)
	if err != nil {
		return fmt.Errorf("ledger repository: increment balance %w", err)
	}
	return requireAffected(res, ErrProfileNotFound)
}

func (t *ledgerTx) MarkJobPaid(ctx context.Context, jobID uuid.UUID, paidAt time.Time) error {
	res, err := t.q.ExecContext(ctx, `UPDATE jobs SET paid = TRUE, payment_date = $2 WHERE id = $1`, jobID, paidAt)
	if err != nil {
		return fmt.Errorf("ledger repository: mark job paid %w", err)
	}
	return requireAffected(res, ErrJobNotFound)
}

func (t *ledgerTx) ListClientContractIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	if err := t.q.SelectContext(ctx, &ids, `SELECT id FROM contracts WHERE client_id = $1`, clientID); err != nil {
		return nil, fmt.Errorf("ledger repository: list client contracts %w", err)
	}
	return ids, nil
}

func (t *ledgerTx) SumJobPrices(ctx context.Context, contractIDs []uuid.UUID) (decimal.NullDecimal, error) {
	if len(contractIDs) == 0 {
		return decimal.NullDecimal{}, nil
	}

	ids := make([]string, len(contractIDs))
	for i, id := range contractIDs {
		ids[i] = id.String()
	}

	var total decimal.NullDecimal
	err := t.q.GetContext(ctx, &total, `SELECT SUM(price) FROM jobs WHERE contract_id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("ledger repository: sum job prices %w", err)
	}
	return total, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger repository: rows affected %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
