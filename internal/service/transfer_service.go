package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/logger"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

// События баланса, которые получают клиенты по WebSocket.
const (
	EventBalanceDebited  = "balance.debited"
	EventBalanceCredited = "balance.credited"
)

// depositCapRatio - доля исторической суммы работ клиента, доступная для пополнения.
var depositCapRatio = decimal.New(25, -2)

// BalanceNotifier доставляет события об изменении баланса владельцу профиля.
type BalanceNotifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// TransferService переводит деньги между балансами профилей.
type TransferService struct {
	store    domainrepo.LedgerStore
	notifier BalanceNotifier
	now      func() time.Time
}

func NewTransferService(store domainrepo.LedgerStore, notifier BalanceNotifier) *TransferService {
	return &TransferService{store: store, notifier: notifier, now: time.Now}
}

// DepositCap вычисляет максимальную сумму пополнения.
// Пустая сумма (нет договоров или работ) даёт ноль.
func DepositCap(total decimal.NullDecimal) decimal.Decimal {
	if !total.Valid {
		return decimal.Zero
	}
	return total.Decimal.Mul(depositCapRatio)
}

// Pay оплачивает работу: списывает цену с клиента и зачисляет её подрядчику в одной транзакции.
// Повторный вызов с теми же аргументами снова переводит деньги.
func (s *TransferService) Pay(ctx context.Context, clientID, contractorID, jobID uuid.UUID) (*models.PaymentReceipt, error) {
	if clientID == uuid.Nil {
		return nil, apperror.NotFound("client")
	}
	if contractorID == uuid.Nil || jobID == uuid.Nil {
		return nil, apperror.InvalidInput("job_id и contractor_id обязательны")
	}

	paidAt := s.now()
	var amount decimal.Decimal

	err := s.store.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		price, err := tx.GetJobPrice(ctx, jobID)
		if err != nil {
			return notFoundOr(err, "job", apperror.Transaction)
		}
		if !price.Valid {
			return apperror.InvalidInput("у работы не указана цена")
		}

		client, err := tx.GetProfileForUpdate(ctx, clientID)
		if err != nil {
			return notFoundOr(err, "client", apperror.Transaction)
		}
		if client.Balance.LessThan(price.Decimal) {
			return apperror.ErrInsufficientFunds.
				WithDetail("balance", client.Balance.String()).
				WithDetail("price", price.Decimal.String())
		}

		if err := tx.IncrementBalance(ctx, clientID, price.Decimal.Neg()); err != nil {
			return notFoundOr(err, "client", apperror.Transaction)
		}
		if err := tx.IncrementBalance(ctx, contractorID, price.Decimal); err != nil {
			return notFoundOr(err, "contractor", apperror.Transaction)
		}
		if err := tx.MarkJobPaid(ctx, jobID, paidAt); err != nil {
			return notFoundOr(err, "job", apperror.Transaction)
		}

		amount = price.Decimal
		return nil
	})

	fields := logrus.Fields{
		"job_id":        jobID,
		"client_id":     clientID,
		"contractor_id": contractorID,
	}
	if err != nil {
		logger.WithFields(fields).WithError(err).Warn("оплата работы отклонена")
		return nil, txOutcome(err)
	}

	fields["amount"] = amount.String()
	logger.WithFields(fields).Info("работа оплачена")

	s.notify(clientID, EventBalanceDebited, paymentEvent(jobID, amount))
	s.notify(contractorID, EventBalanceCredited, paymentEvent(jobID, amount))

	return &models.PaymentReceipt{
		JobID:        jobID,
		ClientID:     clientID,
		ContractorID: contractorID,
		Amount:       amount,
		PaidAt:       paidAt,
		Message:      "Payment Successfully Completed",
	}, nil
}

// Deposit пополняет баланс профиля не более чем на 25% от суммы всех работ его договоров как клиента.
func (s *TransferService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.DepositReceipt, error) {
	if userID == uuid.Nil {
		return nil, apperror.InvalidInput("userId обязателен")
	}
	if amount.IsNegative() {
		return nil, apperror.InvalidInput("сумма не может быть отрицательной")
	}

	var maxAmount decimal.Decimal
	err := s.store.InTx(ctx, func(tx domainrepo.LedgerTx) error {
		contractIDs, err := tx.ListClientContractIDs(ctx, userID)
		if err != nil {
			return notFoundOr(err, "profile", apperror.Transaction)
		}
		total, err := tx.SumJobPrices(ctx, contractIDs)
		if err != nil {
			return notFoundOr(err, "profile", apperror.Transaction)
		}

		maxAmount = DepositCap(total)
		if amount.GreaterThan(maxAmount) {
			return apperror.New(apperror.ErrCodeDepositLimitExceeded,
				"нельзя внести больше 25% от суммы всех работ, максимум: "+maxAmount.StringFixed(2)).
				WithDetail("max_amount", maxAmount.StringFixed(2))
		}

		if err := tx.IncrementBalance(ctx, userID, amount); err != nil {
			return notFoundOr(err, "profile", apperror.Transaction)
		}
		return nil
	})

	fields := logrus.Fields{"profile_id": userID, "amount": amount.String()}
	if err != nil {
		logger.WithFields(fields).WithError(err).Warn("пополнение отклонено")
		return nil, txOutcome(err)
	}
	logger.WithFields(fields).Info("баланс пополнен")

	if amount.IsPositive() {
		s.notify(userID, EventBalanceCredited, map[string]any{"amount": amount.String()})
	}

	return &models.DepositReceipt{
		ProfileID: userID,
		Amount:    amount,
		MaxAmount: maxAmount,
		Message:   "Funds Successfully Added",
	}, nil
}

// notify вызывается только после фиксации транзакции; ошибка доставки не влияет на результат.
func (s *TransferService) notify(profileID uuid.UUID, event string, data any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BroadcastToUser(profileID, event, data); err != nil {
		logger.WithFields(logrus.Fields{"profile_id": profileID, "event": event}).
			WithError(err).Warn("не удалось отправить событие баланса")
	}
}

func paymentEvent(jobID uuid.UUID, amount decimal.Decimal) map[string]any {
	return map[string]any{"job_id": jobID, "amount": amount.String()}
}
