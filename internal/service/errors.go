package service

import (
	"errors"

	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
	"github.com/ignatzorin/contracts-backend/internal/repository"
)

// notFoundOr переводит "не найдено" из репозитория в NotFound(entity),
// остальные ошибки хранилища оборачивает через wrap.
func notFoundOr(err error, entity string, wrap func(error, string) *apperror.AppError) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrProfileNotFound) ||
		errors.Is(err, repository.ErrJobNotFound) ||
		errors.Is(err, repository.ErrContractNotFound) {
		appErr := apperror.NotFound(entity)
		appErr.Cause = err
		return appErr
	}
	return wrap(err, "ошибка хранилища")
}

// txOutcome возвращает бизнес-ошибку из транзакции как есть,
// а сбой самой транзакции превращает в TRANSACTION_ERROR.
func txOutcome(err error) error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}
	return apperror.Transaction(err, "не удалось завершить транзакцию")
}
