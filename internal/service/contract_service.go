package service

import (
	"context"

	"github.com/google/uuid"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

// ContractService отвечает за чтение договоров от лица вызывающего профиля.
type ContractService struct {
	contracts domainrepo.ContractReader
}

func NewContractService(contracts domainrepo.ContractReader) *ContractService {
	return &ContractService{contracts: contracts}
}

// GetContract ищет договор, где contractID совпадает с подрядчиком, а клиентом является вызывающий профиль.
func (s *ContractService) GetContract(ctx context.Context, profileID, contractID uuid.UUID) (*models.Contract, error) {
	if profileID == uuid.Nil {
		return nil, apperror.NotFound("profile")
	}
	if contractID == uuid.Nil {
		return nil, apperror.InvalidInput("id договора обязателен")
	}

	contract, err := s.contracts.FindByContractorAndClient(ctx, contractID, profileID)
	if err != nil {
		return nil, notFoundOr(err, "contract", apperror.Query)
	}
	return contract, nil
}

// GetUserContracts возвращает незавершённые договоры профиля.
func (s *ContractService) GetUserContracts(ctx context.Context, profileID uuid.UUID) ([]models.Contract, error) {
	if profileID == uuid.Nil {
		return nil, apperror.NotFound("profile")
	}

	contracts, err := s.contracts.ListActiveByProfile(ctx, profileID)
	if err != nil {
		return nil, apperror.Query(err, "не удалось получить договоры")
	}
	return contracts, nil
}

// GetUnpaidContracts возвращает незавершённые договоры профиля с неоплаченными работами.
func (s *ContractService) GetUnpaidContracts(ctx context.Context, profileID uuid.UUID) ([]models.UnpaidContract, error) {
	if profileID == uuid.Nil {
		return nil, apperror.NotFound("profile")
	}

	contracts, err := s.contracts.ListUnpaidByProfile(ctx, profileID)
	if err != nil {
		return nil, apperror.Query(err, "не удалось получить неоплаченные работы")
	}
	return contracts, nil
}
