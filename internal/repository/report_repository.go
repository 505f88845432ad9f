package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/repository/common"
)

// ReportRepository выполняет агрегирующие запросы по работам.
type ReportRepository struct {
	db *sqlx.DB
	reportQueries
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db, reportQueries: reportQueries{q: db}}
}

// InSnapshot выполняет fn в одной транзакции, чтобы все отчёты читали один снимок.
func (r *ReportRepository) InSnapshot(ctx context.Context, opts *sql.TxOptions, fn func(q domainrepo.ReportQuerier) error) error {
	return common.WithTransaction(ctx, r.db, opts, func(tx *sqlx.Tx) error {
		return fn(reportQueries{q: tx})
	})
}

type reportQueries struct {
	q common.Queryer
}

// BestProfession возвращает описание работы с наибольшей суммой цен за период.
// При равенстве сумм побеждает описание, меньшее лексикографически.
func (r reportQueries) BestProfession(ctx context.Context, start, end time.Time) (*models.ProfessionEarnings, error) {
	var best models.ProfessionEarnings
	err := r.q.GetContext(ctx, &best, `
		SELECT description AS profession, SUM(price) AS total
		FROM jobs
		WHERE created_at >= $1 AND created_at <= $2 AND price IS NOT NULL
		GROUP BY description
		ORDER BY total DESC, description ASC
		LIMIT 1
	`, start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("report repository: best profession %w", err)
	}
	return &best, nil
}

// BestClients возвращает клиентов с наибольшей суммой цен работ за период.
// При равенстве сумм порядок определяет id клиента.
func (r reportQueries) BestClients(ctx context.Context, start, end time.Time, limit int) ([]models.ClientSpending, error) {
	clients := make([]models.ClientSpending, 0, limit)
	err := r.q.SelectContext(ctx, &clients, `
		SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.created_at >= $1 AND j.created_at <= $2 AND j.price IS NOT NULL
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY paid DESC, p.id ASC
		LIMIT $3
	`, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("report repository: best clients %w", err)
	}
	return clients, nil
}
