package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tablebooks/backend/internal/models"
	"github.com/tablebooks/backend/internal/services"
)

// stubStore serves canned nature slices so handler behavior can be
// exercised without a live ledger store.
type stubStore struct {
	byNature map[models.Nature][]models.Transaction
	byLedger []models.Transaction
	err      error
}

func (s *stubStore) ListLedgers(ctx context.Context, page int) ([]models.Ledger, bool, error) {
	return nil, false, s.err
}

func (s *stubStore) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	return models.Transaction{}, s.err
}

func (s *stubStore) PatchTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	return models.Transaction{}, s.err
}

func (s *stubStore) FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error) {
	return nil, s.err
}

func (s *stubStore) FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error) {
	return nil, s.err
}

func (s *stubStore) FilterByNature(ctx context.Context, nature models.Nature, from, to models.Date) ([]models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byNature[nature], nil
}

func (s *stubStore) LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) ([]models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byLedger, nil
}

func leg(ledger string, nature models.Nature, debit, credit string) models.Transaction {
	return models.Transaction{
		Ledger: models.Ledger{
			Name:  ledger,
			Group: models.LedgerGroup{Name: ledger + " Group", Nature: nature},
		},
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
	}
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	t.Run("returns the statement", func(t *testing.T) {
		st := &stubStore{byNature: map[models.Nature][]models.Transaction{
			models.NatureLiability: {leg("Payables", models.NatureLiability, "0", "400.00")},
			models.NatureAsset:     {leg("Cash", models.NatureAsset, "1000.00", "0")},
		}}
		h := NewReportHandler(services.NewReportService(st))

		req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?from_date=2024-01-01&to_date=2024-01-31", nil)
		rec := httptest.NewRecorder()
		h.BalanceSheet(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var sheet models.BalanceSheet
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
		assert.True(t, sheet.GrandTotalLiabilities.Equal(sheet.GrandTotalAssets))
		assert.True(t, sheet.NetProfit.Equal(decimal.RequireFromString("600")))
	})

	t.Run("missing dates rejected", func(t *testing.T) {
		h := NewReportHandler(services.NewReportService(&stubStore{}))

		req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet", nil)
		rec := httptest.NewRecorder()
		h.BalanceSheet(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		h := NewReportHandler(services.NewReportService(&stubStore{}))

		req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?from_date=2024-02-01&to_date=2024-01-01", nil)
		rec := httptest.NewRecorder()
		h.BalanceSheet(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure maps to bad gateway", func(t *testing.T) {
		h := NewReportHandler(services.NewReportService(&stubStore{err: errors.New("store down")}))

		req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?from_date=2024-01-01&to_date=2024-01-31", nil)
		rec := httptest.NewRecorder()
		h.BalanceSheet(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		var resp services.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "balance sheet")
	})
}

func TestReportHandler_IncomeStatement(t *testing.T) {
	st := &stubStore{byNature: map[models.Nature][]models.Transaction{
		models.NatureExpense: {leg("Rent Expense", models.NatureExpense, "200.00", "0")},
		models.NatureIncome:  {leg("Sales Income", models.NatureIncome, "0", "500.00")},
	}}
	h := NewReportHandler(services.NewReportService(st))

	req := httptest.NewRequest(http.MethodGet, "/reports/income-statement?from_date=2024-01-01&to_date=2024-01-31", nil)
	rec := httptest.NewRecorder()
	h.IncomeStatement(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var stmt models.IncomeStatement
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stmt))
	assert.True(t, stmt.NetProfit.Equal(decimal.RequireFromString("300")))
	assert.True(t, stmt.GrandTotalExpenses.Equal(stmt.GrandTotalIncome))
}

func TestReportHandler_LedgerReport(t *testing.T) {
	t.Run("running balance in response", func(t *testing.T) {
		st := &stubStore{byLedger: []models.Transaction{
			leg("Cash", models.NatureAsset, "500.00", "0"),
			leg("Cash", models.NatureAsset, "0", "120.00"),
		}}
		h := NewReportHandler(services.NewReportService(st))

		req := httptest.NewRequest(http.MethodGet, "/reports/ledger?ledger=7&from_date=2024-01-01&to_date=2024-01-31", nil)
		rec := httptest.NewRecorder()
		h.LedgerReport(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var report models.LedgerReport
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "Cash", report.Ledger)
		assert.Len(t, report.Rows, 2)
		assert.True(t, report.Closing.Equal(decimal.RequireFromString("380")))
	})

	t.Run("missing ledger id rejected", func(t *testing.T) {
		h := NewReportHandler(services.NewReportService(&stubStore{}))

		req := httptest.NewRequest(http.MethodGet, "/reports/ledger?from_date=2024-01-01&to_date=2024-01-31", nil)
		rec := httptest.NewRecorder()
		h.LedgerReport(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
