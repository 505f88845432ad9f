package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) BestProfession(ctx context.Context, start, end time.Time) (*models.ProfessionEarnings, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionEarnings), args.Error(1)
}

func (m *mockReportStore) BestClients(ctx context.Context, start, end time.Time, limit int) ([]models.ClientSpending, error) {
	args := m.Called(ctx, start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientSpending), args.Error(1)
}

func (m *mockReportStore) InSnapshot(ctx context.Context, opts *sql.TxOptions, fn func(q domainrepo.ReportQuerier) error) error {
	args := m.Called(ctx, opts)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func period() models.DateRange {
	return models.DateRange{
		Start: time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, 8, 20, 23, 59, 59, 0, time.UTC),
	}
}

func TestReportService_BestProfession(t *testing.T) {
	ctx := context.Background()
	p := period()

	store := new(mockReportStore)
	svc := NewReportService(store)
	expected := &models.ProfessionEarnings{Profession: "Programmer", Total: dec("2683")}
	store.On("BestProfession", ctx, p.Start, p.End).Return(expected, nil).Once()

	best, err := svc.BestProfession(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, expected, best)

	store.On("BestProfession", ctx, p.Start, p.End).Return(nil, nil).Once()
	_, err = svc.BestProfession(ctx, p)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, "profession", appErr.Details["entity"])

	store.On("BestProfession", ctx, p.Start, p.End).Return(nil, errStoreDown).Once()
	_, err = svc.BestProfession(ctx, p)
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeQuery))
	store.AssertExpectations(t)
}

func TestReportService_InvalidRange(t *testing.T) {
	store := new(mockReportStore)
	svc := NewReportService(store)
	ctx := context.Background()

	reversed := models.DateRange{Start: period().End, End: period().Start}

	_, err := svc.BestProfession(ctx, reversed)
	assert.True(t, apperror.IsInvalidInput(err))

	_, err = svc.BestClients(ctx, models.DateRange{}, 2)
	assert.True(t, apperror.IsInvalidInput(err))

	_, err = svc.Summary(ctx, reversed, 2)
	assert.True(t, apperror.IsInvalidInput(err))

	store.AssertNotCalled(t, "BestProfession", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_BestClients_Limit(t *testing.T) {
	ctx := context.Background()
	p := period()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default", limit: 0, want: DefaultBestClientsLimit},
		{name: "negative", limit: -3, want: DefaultBestClientsLimit},
		{name: "explicit", limit: 5, want: 5},
		{name: "clamped", limit: 1000, want: MaxBestClientsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockReportStore)
			svc := NewReportService(store)
			store.On("BestClients", ctx, p.Start, p.End, tt.want).Return([]models.ClientSpending{}, nil)

			_, err := svc.BestClients(ctx, p, tt.limit)

			require.NoError(t, err)
			store.AssertExpectations(t)
		})
	}
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	p := period()
	generated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	store := new(mockReportStore)
	svc := NewReportService(store)
	svc.now = func() time.Time { return generated }

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	clients := []models.ClientSpending{{FullName: "Ash Kethcum", Paid: dec("2020")}}

	store.On("InSnapshot", ctx, opts).Return(nil)
	store.On("BestProfession", ctx, p.Start, p.End).Return(nil, nil)
	store.On("BestClients", ctx, p.Start, p.End, DefaultBestClientsLimit).Return(clients, nil)

	summary, err := svc.Summary(ctx, p, 0)

	require.NoError(t, err)
	assert.Nil(t, summary.BestProfession)
	assert.Equal(t, clients, summary.BestClients)
	assert.Equal(t, generated, summary.GeneratedAt)
	assert.Equal(t, p.Start, summary.Start)
	store.AssertExpectations(t)
}

func TestReportService_Summary_SnapshotFailure(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewReportService(store)
	store.On("InSnapshot", ctx, mock.Anything).Return(errStoreDown)

	_, err := svc.Summary(ctx, period(), 2)

	assert.True(t, apperror.HasCode(err, apperror.ErrCodeQuery))
}
