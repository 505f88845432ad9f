package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/models"
	"github.com/ignatzorin/contracts-backend/internal/repository"
)

// fakeLedger хранит профили, договоры и работы в памяти и откатывает изменения при ошибке fn.
type fakeLedger struct {
	profiles  map[uuid.UUID]models.Profile
	contracts map[uuid.UUID]models.Contract
	jobs      map[uuid.UUID]models.Job
	commits   int
	rollbacks int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		profiles:  map[uuid.UUID]models.Profile{},
		contracts: map[uuid.UUID]models.Contract{},
		jobs:      map[uuid.UUID]models.Job{},
	}
}

func (f *fakeLedger) addProfile(role string, balance string) uuid.UUID {
	id := uuid.New()
	f.profiles[id] = models.Profile{ID: id, FirstName: "Test", LastName: role, Role: role, Balance: decimal.RequireFromString(balance)}
	return id
}

func (f *fakeLedger) addContract(clientID, contractorID uuid.UUID, status string) uuid.UUID {
	id := uuid.New()
	f.contracts[id] = models.Contract{ID: id, ClientID: clientID, ContractorID: contractorID, Status: status}
	return id
}

func (f *fakeLedger) addJob(contractID uuid.UUID, price string) uuid.UUID {
	id := uuid.New()
	job := models.Job{ID: id, ContractID: contractID, Description: "work"}
	if price != "" {
		job.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	f.jobs[id] = job
	return id
}

func (f *fakeLedger) balance(id uuid.UUID) decimal.Decimal {
	return f.profiles[id].Balance
}

func (f *fakeLedger) InTx(ctx context.Context, fn func(tx domainrepo.LedgerTx) error) error {
	profiles := make(map[uuid.UUID]models.Profile, len(f.profiles))
	for k, v := range f.profiles {
		profiles[k] = v
	}
	jobs := make(map[uuid.UUID]models.Job, len(f.jobs))
	for k, v := range f.jobs {
		jobs[k] = v
	}

	if err := fn(&fakeLedgerTx{f}); err != nil {
		f.profiles = profiles
		f.jobs = jobs
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeLedgerTx struct {
	f *fakeLedger
}

func (t *fakeLedgerTx) GetJobPrice(ctx context.Context, jobID uuid.UUID) (decimal.NullDecimal, error) {
	job, ok := t.f.jobs[jobID]
	if !ok {
		return decimal.NullDecimal{}, repository.ErrJobNotFound
	}
	return job.Price, nil
}

func (t *fakeLedgerTx) GetProfileForUpdate(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	p, ok := t.f.profiles[profileID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return &p, nil
}

func (t *fakeLedgerTx) IncrementBalance(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) error {
	p, ok := t.f.profiles[profileID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.Balance = p.Balance.Add(delta)
	t.f.profiles[profileID] = p
	return nil
}

func (t *fakeLedgerTx) MarkJobPaid(ctx context.Context, jobID uuid.UUID, paidAt time.Time) error {
	job, ok := t.f.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	paid := true
	job.Paid = &paid
	job.PaymentDate = &paidAt
	t.f.jobs[jobID] = job
	return nil
}

func (t *fakeLedgerTx) ListClientContractIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, c := range t.f.contracts {
		if c.ClientID == clientID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (t *fakeLedgerTx) SumJobPrices(ctx context.Context, contractIDs []uuid.UUID) (decimal.NullDecimal, error) {
	in := make(map[uuid.UUID]bool, len(contractIDs))
	for _, id := range contractIDs {
		in[id] = true
	}
	var sum decimal.NullDecimal
	for _, job := range t.f.jobs {
		if !in[job.ContractID] || !job.Price.Valid {
			continue
		}
		sum.Decimal = sum.Decimal.Add(job.Price.Decimal)
		sum.Valid = true
	}
	return sum, nil
}

// failingLedger отдаёт ошибку начала транзакции.
type failingLedger struct {
	err error
}

func (f failingLedger) InTx(ctx context.Context, fn func(tx domainrepo.LedgerTx) error) error {
	return f.err
}

var errStoreDown = errors.New("connection refused")

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	args := m.Called(userID, event, data)
	return args.Error(0)
}
