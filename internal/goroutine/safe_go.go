package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contracts-backend/internal/logger"
)

// Logger - то, чем RecoveryHandler сообщает о panic. *logrus.Logger и *logrus.Entry подходят.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go rh.Run(fn)
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go rh.Run(func() { fn(ctx) })
}

// Run выполняет fn в текущей горутине и гасит panic, записывая стек в лог.
// Возвращает true, если fn завершилась без panic.
func (rh *RecoveryHandler) Run(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rh.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
			ok = false
		}
	}()
	fn()
	return true
}

func defaultHandler() *RecoveryHandler {
	if logger.Log != nil {
		return NewRecoveryHandler(logger.Log)
	}
	return NewRecoveryHandler(logrus.StandardLogger())
}

// SafeGo - упрощенная функция для запуска безопасной горутины
func SafeGo(fn func()) {
	defaultHandler().SafeGo(fn)
}

// SafeGoWithContext - упрощенная функция для запуска безопасной горутины с контекстом
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	defaultHandler().SafeGoWithContext(ctx, fn)
}

// Recover выполняет fn синхронно с обработкой panic.
func Recover(fn func()) bool {
	return defaultHandler().Run(fn)
}
