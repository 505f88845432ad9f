package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
	"github.com/ignatzorin/contracts-backend/internal/repository"
)

type mockContractReader struct {
	mock.Mock
}

func (m *mockContractReader) FindByContractorAndClient(ctx context.Context, contractorID, clientID uuid.UUID) (*models.Contract, error) {
	args := m.Called(ctx, contractorID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *mockContractReader) ListActiveByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *mockContractReader) ListUnpaidByProfile(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnpaidContract), args.Error(1)
}

func TestContractService_GetContract(t *testing.T) {
	ctx := context.Background()
	profileID := uuid.New()
	contractID := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := new(mockContractReader)
		svc := NewContractService(repo)
		expected := &models.Contract{ID: uuid.New(), ClientID: profileID, ContractorID: contractID}
		repo.On("FindByContractorAndClient", ctx, contractID, profileID).Return(expected, nil)

		contract, err := svc.GetContract(ctx, profileID, contractID)

		require.NoError(t, err)
		assert.Equal(t, expected, contract)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockContractReader)
		svc := NewContractService(repo)
		repo.On("FindByContractorAndClient", ctx, contractID, profileID).Return(nil, repository.ErrContractNotFound)

		_, err := svc.GetContract(ctx, profileID, contractID)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "contract", appErr.Details["entity"])
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockContractReader)
		svc := NewContractService(repo)
		repo.On("FindByContractorAndClient", ctx, contractID, profileID).Return(nil, errStoreDown)

		_, err := svc.GetContract(ctx, profileID, contractID)

		assert.True(t, apperror.HasCode(err, apperror.ErrCodeQuery))
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("no caller", func(t *testing.T) {
		repo := new(mockContractReader)
		svc := NewContractService(repo)

		_, err := svc.GetContract(ctx, uuid.Nil, contractID)

		assert.True(t, apperror.IsNotFound(err))
		repo.AssertNotCalled(t, "FindByContractorAndClient", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContractService_GetUserContracts(t *testing.T) {
	ctx := context.Background()
	profileID := uuid.New()

	repo := new(mockContractReader)
	svc := NewContractService(repo)
	repo.On("ListActiveByProfile", ctx, profileID).Return([]models.Contract{}, nil).Once()

	contracts, err := svc.GetUserContracts(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, contracts)

	repo.On("ListActiveByProfile", ctx, profileID).Return(nil, errors.New("timeout")).Once()
	_, err = svc.GetUserContracts(ctx, profileID)
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeQuery))

	_, err = svc.GetUserContracts(ctx, uuid.Nil)
	assert.True(t, apperror.IsNotFound(err))
	repo.AssertExpectations(t)
}

func TestContractService_GetUnpaidContracts(t *testing.T) {
	ctx := context.Background()
	profileID := uuid.New()

	expected := []models.UnpaidContract{
		{ID: uuid.New(), Terms: "t", Status: models.ContractStatusInProgress, Jobs: []models.Job{{ID: uuid.New()}}},
	}

	repo := new(mockContractReader)
	svc := NewContractService(repo)
	repo.On("ListUnpaidByProfile", ctx, profileID).Return(expected, nil)

	contracts, err := svc.GetUnpaidContracts(ctx, profileID)

	require.NoError(t, err)
	assert.Equal(t, expected, contracts)

	_, err = svc.GetUnpaidContracts(ctx, uuid.Nil)
	assert.True(t, apperror.IsNotFound(err))
}
