package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

const dateLayout = "2006-01-02"

// MaxAmount - предел колонки NUMERIC(12,2).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ParseDate разбирает дату в формате YYYY-MM-DD или RFC3339.
// Второй результат сообщает, была ли передана только дата без времени.
func ParseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, fmt.Errorf("дата не указана")
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("дата %q должна быть в формате YYYY-MM-DD или RFC3339", value)
	}
	return t, false, nil
}

// dbPrecision - точность TIMESTAMPTZ в PostgreSQL. Более мелкие доли секунды
// база округляет, поэтому границы периода приводятся к ней заранее.
const dbPrecision = time.Microsecond

// ParseDateRange разбирает границы периода. Обе границы включаются;
// конец, заданный только датой, покрывает весь день до последней микросекунды.
func ParseDateRange(start, end string) (models.DateRange, error) {
	from, _, err := ParseDate(start)
	if err != nil {
		return models.DateRange{}, apperror.ErrInvalidDateRange.WithDetail("start", err.Error())
	}
	to, dateOnly, err := ParseDate(end)
	if err != nil {
		return models.DateRange{}, apperror.ErrInvalidDateRange.WithDetail("end", err.Error())
	}
	if dateOnly {
		to = to.Add(24*time.Hour - dbPrecision)
	}
	to = to.Truncate(dbPrecision)
	if rounded := from.Truncate(dbPrecision); !rounded.Equal(from) {
		from = rounded.Add(dbPrecision)
	}
	if to.Before(from) {
		return models.DateRange{}, apperror.ErrInvalidDateRange.WithDetail("start", "start позже end")
	}
	return models.DateRange{Start: from, End: to}, nil
}

// ParseLimit разбирает необязательный limit; пустая строка даёт 0 (значение по умолчанию).
func ParseLimit(value string, max int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 || limit > max {
		return 0, apperror.InvalidInput(fmt.Sprintf("limit должен быть целым числом от 1 до %d", max))
	}
	return limit, nil
}

// ValidateAmount проверяет денежную сумму: неотрицательная, не более двух знаков после запятой.
func ValidateAmount(fieldName string, amount *decimal.Decimal) error {
	if amount == nil {
		return apperror.InvalidInput(fieldName + " обязателен")
	}
	if amount.IsNegative() {
		return apperror.InvalidInput(fieldName + " не может быть отрицательным")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return apperror.InvalidInput(fieldName + " должен содержать не более двух знаков после запятой")
	}
	if amount.GreaterThan(MaxAmount) {
		return apperror.InvalidInput(fieldName + " слишком большой")
	}
	return nil
}

// ParseUUID разбирает идентификатор из пути или тела запроса.
func ParseUUID(fieldName, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperror.InvalidInput("некорректный " + fieldName)
	}
	return id, nil
}
