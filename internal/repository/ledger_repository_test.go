package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
)

func TestLedgerRepository_PayFlowCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	jobID, clientID, contractorID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	price := decimal.NewFromInt(40)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT price FROM jobs WHERE id = \$1`).WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("40.00"))
	mock.ExpectQuery(`FROM profiles WHERE id = \$1 FOR UPDATE`).WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(clientID.String(), "Harry", "Potter", "Wizard", "client", "100.00", now, now))
	mock.ExpectExec(`UPDATE profiles SET balance = balance \+ \$2`).WithArgs(clientID, price.Neg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE profiles SET balance = balance \+ \$2`).WithArgs(contractorID, price).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE jobs SET paid = TRUE`).WithArgs(jobID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		got, err := tx.GetJobPrice(ctx, jobID)
		require.NoError(t, err)
		require.True(t, got.Valid)
		assert.True(t, got.Decimal.Equal(price))

		profile, err := tx.GetProfileForUpdate(ctx, clientID)
		require.NoError(t, err)
		assert.True(t, profile.Balance.Equal(decimal.NewFromInt(100)))

		if err := tx.IncrementBalance(ctx, clientID, price.Neg()); err != nil {
			return err
		}
		if err := tx.IncrementBalance(ctx, contractorID, price); err != nil {
			return err
		}
		return tx.MarkJobPaid(ctx, jobID, now)
	})
	require.NoError(t, err)
}

func TestLedgerRepository_MissingContractorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	contractorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE profiles SET balance`).WithArgs(contractorID, "5").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		return tx.IncrementBalance(ctx, contractorID, decimal.NewFromInt(5))
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLedgerRepository_GetJobPrice_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT price FROM jobs`).WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{"price"}))
	mock.ExpectRollback()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		_, err := tx.GetJobPrice(ctx, jobID)
		return err
	})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestLedgerRepository_GetJobPrice_NullPrice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT price FROM jobs`).WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(nil))
	mock.ExpectCommit()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		price, err := tx.GetJobPrice(ctx, jobID)
		assert.False(t, price.Valid)
		return err
	})
	require.NoError(t, err)
}

func TestLedgerRepository_SumJobPrices(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	clientID := uuid.New()
	c1, c2 := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM contracts WHERE client_id = \$1`).WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(c1.String()).AddRow(c2.String()))
	mock.ExpectQuery(`SELECT SUM\(price\) FROM jobs WHERE contract_id = ANY`).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("200.00"))
	mock.ExpectCommit()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		ids, err := tx.ListClientContractIDs(ctx, clientID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c1, c2}, ids)

		total, err := tx.SumJobPrices(ctx, ids)
		require.NoError(t, err)
		require.True(t, total.Valid)
		assert.True(t, total.Decimal.Equal(decimal.NewFromInt(200)))
		return nil
	})
	require.NoError(t, err)
}

func TestLedgerRepository_SumJobPrices_NoContractsSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		total, err := tx.SumJobPrices(ctx, nil)
		assert.False(t, total.Valid)
		return err
	})
	require.NoError(t, err)
}

func TestLedgerRepository_QueryErrorIsWrapped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	profileID := uuid.New()
	dbErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(profileID).WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		_, err := tx.GetProfileForUpdate(ctx, profileID)
		return err
	})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}
