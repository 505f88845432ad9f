package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/contracts-backend/internal/dto"
	"github.com/ignatzorin/contracts-backend/internal/export"
	"github.com/ignatzorin/contracts-backend/internal/http/middleware"
	"github.com/ignatzorin/contracts-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asProfile имитирует AuthMiddleware.
func asProfile(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextProfileIDKey, id)
		c.Next()
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type mockContracts struct {
	mock.Mock
}

func (m *mockContracts) GetContract(ctx context.Context, profileID, contractID uuid.UUID) (*models.Contract, error) {
	args := m.Called(ctx, profileID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *mockContracts) GetUserContracts(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *mockContracts) GetUnpaidContracts(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnpaidContract), args.Error(1)
}

type mockTransfers struct {
	mock.Mock
}

func (m *mockTransfers) Pay(ctx context.Context, clientID, contractorID, jobID uuid.UUID) (*models.PaymentReceipt, error) {
	args := m.Called(ctx, clientID, contractorID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentReceipt), args.Error(1)
}

func (m *mockTransfers) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DepositReceipt), args.Error(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) BestProfession(ctx context.Context, period models.DateRange) (*models.ProfessionEarnings, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionEarnings), args.Error(1)
}

func (m *mockReports) BestClients(ctx context.Context, period models.DateRange, limit int) ([]models.ClientSpending, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientSpending), args.Error(1)
}

func (m *mockReports) Summary(ctx context.Context, period models.DateRange, limit int) (*models.ReportSummary, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportSummary), args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(format export.Format, summary *models.ReportSummary) ([]byte, string, error) {
	args := m.Called(format, summary)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
