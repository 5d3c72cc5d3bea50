package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tablebooks/backend/internal/models"
)

type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) ListLedgers(ctx context.Context, page int) ([]models.Ledger, bool, error) {
	args := m.Called(ctx, page)
	var ledgers []models.Ledger
	if args.Get(0) != nil {
		ledgers = args.Get(0).([]models.Ledger)
	}
	return ledgers, args.Bool(1), args.Error(2)
}

func (m *MockLedgerStore) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedgerStore) PatchTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedgerStore) FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error) {
	args := m.Called(ctx, transactionType)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func (m *MockLedgerStore) FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error) {
	args := m.Called(ctx, voucherNo)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func (m *MockLedgerStore) FilterByNature(ctx context.Context, nature models.Nature, from, to models.Date) ([]models.Transaction, error) {
	args := m.Called(ctx, nature, from, to)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func (m *MockLedgerStore) LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) ([]models.Transaction, error) {
	args := m.Called(ctx, ledgerID, from, to)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}
