package service

import (
	"context"
	"database/sql"
	"time"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

const (
	DefaultBestClientsLimit = 2
	MaxBestClientsLimit     = 100
)

// ReportService строит отчёты по истории работ за период.
type ReportService struct {
	store domainrepo.ReportStore
	now   func() time.Time
}

func NewReportService(store domainrepo.ReportStore) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// BestProfession возвращает описание работы, принёсшее больше всего денег за период.
func (s *ReportService) BestProfession(ctx context.Context, period models.DateRange) (*models.ProfessionEarnings, error) {
	if err := checkRange(period); err != nil {
		return nil, err
	}

	best, err := s.store.BestProfession(ctx, period.Start, period.End)
	if err != nil {
		return nil, apperror.Query(err, "не удалось построить отчёт по профессиям")
	}
	if best == nil {
		return nil, apperror.NotFound("profession")
	}
	return best, nil
}

// BestClients возвращает клиентов, заказавших работ на наибольшую сумму за период.
func (s *ReportService) BestClients(ctx context.Context, period models.DateRange, limit int) ([]models.ClientSpending, error) {
	if err := checkRange(period); err != nil {
		return nil, err
	}

	clients, err := s.store.BestClients(ctx, period.Start, period.End, normalizeLimit(limit))
	if err != nil {
		return nil, apperror.Query(err, "не удалось построить отчёт по клиентам")
	}
	return clients, nil
}

// Summary читает оба отчёта в одной read-only транзакции REPEATABLE READ.
func (s *ReportService) Summary(ctx context.Context, period models.DateRange, limit int) (*models.ReportSummary, error) {
	if err := checkRange(period); err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{Start: period.Start, End: period.End}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

	err := s.store.InSnapshot(ctx, opts, func(q domainrepo.ReportQuerier) error {
		best, err := q.BestProfession(ctx, period.Start, period.End)
		if err != nil {
			return err
		}
		clients, err := q.BestClients(ctx, period.Start, period.End, normalizeLimit(limit))
		if err != nil {
			return err
		}
		summary.BestProfession = best
		summary.BestClients = clients
		return nil
	})
	if err != nil {
		return nil, apperror.Query(err, "не удалось построить сводный отчёт")
	}

	summary.GeneratedAt = s.now()
	return summary, nil
}

func checkRange(period models.DateRange) error {
	if period.Start.IsZero() || period.End.IsZero() || period.End.Before(period.Start) {
		return apperror.ErrInvalidDateRange
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultBestClientsLimit
	}
	if limit > MaxBestClientsLimit {
		return MaxBestClientsLimit
	}
	return limit
}
