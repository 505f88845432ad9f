package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode - закрытый перечень видов ошибок, которые видит клиент API.
type ErrorCode string

const (
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeInsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeDepositLimitExceeded ErrorCode = "DEPOSIT_LIMIT_EXCEEDED"
	ErrCodeQuery                ErrorCode = "QUERY_ERROR"
	ErrCodeTransaction          ErrorCode = "TRANSACTION_ERROR"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail возвращает копию ошибки с дополнительным полем в details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// NotFound строит ошибку об отсутствующей сущности.
func NotFound(entity string) *AppError {
	return New(ErrCodeNotFound, entity+" not found").WithDetail("entity", entity)
}

// InvalidInput строит ошибку валидации входных данных.
func InvalidInput(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// Query оборачивает сбой чтения из хранилища.
func Query(err error, message string) *AppError {
	return Wrap(err, ErrCodeQuery, message)
}

// Transaction оборачивает сбой транзакции хранилища.
func Transaction(err error, message string) *AppError {
	return Wrap(err, ErrCodeTransaction, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeInsufficientFunds, ErrCodeDepositLimitExceeded:
		return http.StatusUnprocessableEntity
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Internal оборачивает ошибку, не отнесённую ни к одному виду.
func Internal(err error) *AppError {
	return Wrap(err, ErrCodeInternal, "внутренняя ошибка сервера")
}

// IsClientError сообщает, вызвана ли ошибка запросом клиента, а не сбоем сервера.
func (e *AppError) IsClientError() bool {
	return e.HTTPStatus < http.StatusInternalServerError
}

// As извлекает AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode проверяет код ошибки в цепочке.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

func IsInvalidInput(err error) bool {
	return HasCode(err, ErrCodeInvalidInput)
}

func IsInsufficientFunds(err error) bool {
	return HasCode(err, ErrCodeInsufficientFunds)
}

func IsDepositLimitExceeded(err error) bool {
	return HasCode(err, ErrCodeDepositLimitExceeded)
}

var (
	ErrUnauthorized      = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInsufficientFunds = New(ErrCodeInsufficientFunds, "недостаточно средств на балансе")
	ErrInvalidDateRange  = New(ErrCodeInvalidInput, "некорректный диапазон дат")
	ErrRateLimited       = New(ErrCodeRateLimited, "слишком много запросов, попробуйте позже")
)
