package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tablebooks/backend/internal/models"
)

var ledgerCols = []string{"id", "name", "mobile_no", "opening_balance", "debit_credit", "group_name", "nature"}

var transactionCols = []string{
	"id", "transaction_type", "date", "debit_amount", "credit_amount",
	"remarks", "voucher_no", "ref_no",
	"l_id", "l_name", "l_mobile_no", "l_opening_balance", "l_debit_credit", "lg_name", "lg_nature",
	"p_id", "p_name", "p_mobile_no", "p_opening_balance", "p_debit_credit", "pg_name", "pg_nature",
}

func transactionRow(rows *sqlmock.Rows, id int64, txType, date, debit, credit string, voucherNo int64) *sqlmock.Rows {
	return rows.AddRow(
		id, txType, date, debit, credit,
		"", voucherNo, "",
		int64(1), "Cash", "", "0", "debit", "Current Assets", "Asset",
		int64(2), "Sales Income", "", "0", "credit", "Direct Income", "Income",
	)
}

func TestSQLStore_ListLedgers(t *testing.T) {
	t.Run("full page signals more", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(ledgerCols)
		for i := int64(1); i <= 3; i++ {
			rows.AddRow(i, "Ledger", "", "0", "debit", "Current Assets", "Asset")
		}
		mock.ExpectQuery(regexp.QuoteMeta("FROM ledgers l")).
			WithArgs(3, 0).
			WillReturnRows(rows)

		st := NewSQLStore(db, 2)
		ledgers, hasMore, err := st.ListLedgers(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, hasMore)
		assert.Len(t, ledgers, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short page is the last", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(ledgerCols).
			AddRow(int64(5), "Cash", "", "100.00", "debit", "Current Assets", "Asset")
		mock.ExpectQuery(regexp.QuoteMeta("FROM ledgers l")).
			WithArgs(3, 2).
			WillReturnRows(rows)

		st := NewSQLStore(db, 2)
		ledgers, hasMore, err := st.ListLedgers(context.Background(), 2)
		assert.NoError(t, err)
		assert.False(t, hasMore)
		assert.Len(t, ledgers, 1)
		assert.Equal(t, "Cash", ledgers[0].Name)
		assert.True(t, ledgers[0].OpeningBalance.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, models.NatureAsset, ledgers[0].Group.Nature)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure maps to ErrIO", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM ledgers l")).
			WillReturnError(errors.New("connection refused"))

		st := NewSQLStore(db, 0)
		_, _, err = st.ListLedgers(context.Background(), 1)
		assert.ErrorIs(t, err, ErrIO)
	})
}

func TestSQLStore_CreateTransaction(t *testing.T) {
	draft := models.TransactionDraft{
		LedgerID:        1,
		ParticularsID:   2,
		TransactionType: models.TypePayIn,
		Date:            mustDate(t, "2024-01-10"),
		DebitAmount:     decimal.RequireFromString("500.00"),
	}

	t.Run("first leg draws a voucher number", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('voucher_no_seq')")).
			WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(501)))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
			WithArgs(int64(1), int64(2), models.TypePayIn, sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), "", int64(501), "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
			WithArgs(int64(10)).
			WillReturnRows(transactionRow(sqlmock.NewRows(transactionCols),
				10, models.TypePayIn, "2024-01-10", "500.00", "0", 501))

		st := NewSQLStore(db, 0)
		created, err := st.CreateTransaction(context.Background(), draft)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), created.ID)
		assert.Equal(t, int64(501), created.VoucherNo)
		assert.Equal(t, "Cash", created.Ledger.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second leg reuses the voucher number", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		second := draft
		second.DebitAmount = decimal.Zero
		second.CreditAmount = decimal.RequireFromString("500.00")
		second.VoucherNo = 501

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
			WithArgs(int64(1), int64(2), models.TypePayIn, sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), "", int64(501), "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
			WithArgs(int64(11)).
			WillReturnRows(transactionRow(sqlmock.NewRows(transactionCols),
				11, models.TypePayIn, "2024-01-10", "0", "500.00", 501))

		st := NewSQLStore(db, 0)
		created, err := st.CreateTransaction(context.Background(), second)
		assert.NoError(t, err)
		assert.Equal(t, int64(501), created.VoucherNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure maps to ErrPersistence", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('voucher_no_seq')")).
			WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(502)))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
			WillReturnError(errors.New("foreign key violation"))

		st := NewSQLStore(db, 0)
		_, err = st.CreateTransaction(context.Background(), draft)
		assert.ErrorIs(t, err, ErrPersistence)
	})
}

func TestSQLStore_PatchTransaction(t *testing.T) {
	t.Run("only named columns are updated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		newDebit := decimal.RequireFromString("450.00")
		mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET debit_amount = $1 WHERE id = $2")).
			WithArgs(sqlmock.AnyArg(), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
			WithArgs(int64(10)).
			WillReturnRows(transactionRow(sqlmock.NewRows(transactionCols),
				10, models.TypePayIn, "2024-01-10", "450.00", "0", 501))

		st := NewSQLStore(db, 0)
		updated, err := st.PatchTransaction(context.Background(), 10, models.TransactionPatch{DebitAmount: &newDebit})
		assert.NoError(t, err)
		assert.True(t, updated.DebitAmount.Equal(newDebit))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch just refetches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
			WithArgs(int64(10)).
			WillReturnRows(transactionRow(sqlmock.NewRows(transactionCols),
				10, models.TypePayIn, "2024-01-10", "500.00", "0", 501))

		st := NewSQLStore(db, 0)
		_, err = st.PatchTransaction(context.Background(), 10, models.TransactionPatch{})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record maps to ErrPersistence", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		remarks := "corrected"
		mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET remarks = $1 WHERE id = $2")).
			WithArgs("corrected", int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		st := NewSQLStore(db, 0)
		_, err = st.PatchTransaction(context.Background(), 99, models.TransactionPatch{Remarks: &remarks})
		assert.ErrorIs(t, err, ErrPersistence)
	})
}

func TestSQLStore_Filters(t *testing.T) {
	t.Run("by voucher number", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(transactionCols)
		transactionRow(rows, 10, models.TypePayIn, "2024-01-10", "500.00", "0", 501)
		transactionRow(rows, 11, models.TypePayIn, "2024-01-10", "0", "500.00", 501)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.voucher_no = $1")).
			WithArgs(int64(501)).
			WillReturnRows(rows)

		st := NewSQLStore(db, 0)
		legs, err := st.FilterByVoucherNo(context.Background(), 501)
		assert.NoError(t, err)
		assert.Len(t, legs, 2)
		assert.True(t, legs[0].IsDebitLeg())
		assert.False(t, legs[1].IsDebitLeg())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by nature with date range", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(transactionCols)
		transactionRow(rows, 12, models.TypePayOut, "2024-01-15", "200.00", "0", 502)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE lg.nature = $1 AND t.date BETWEEN $2 AND $3")).
			WithArgs("Expense", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(rows)

		st := NewSQLStore(db, 0)
		txs, err := st.FilterByNature(context.Background(), models.NatureExpense,
			mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
		assert.NoError(t, err)
		assert.Len(t, txs, 1)
		assert.Equal(t, "2024-01-15", txs[0].Date.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ledger report ordered by date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(transactionCols)
		transactionRow(rows, 13, models.TypePayIn, "2024-01-05", "300.00", "0", 503)
		transactionRow(rows, 14, models.TypePayOut, "2024-01-20", "0", "120.00", 504)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.ledger_id = $1 AND t.date BETWEEN $2 AND $3")).
			WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(rows)

		st := NewSQLStore(db, 0)
		txs, err := st.LedgerReport(context.Background(), 1,
			mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
		assert.NoError(t, err)
		assert.Len(t, txs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by type", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(transactionCols)
		transactionRow(rows, 15, models.TypePayOut, "2024-01-22", "80.00", "0", 505)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE t.transaction_type = $1")).
			WithArgs(models.TypePayOut).
			WillReturnRows(rows)

		st := NewSQLStore(db, 0)
		txs, err := st.FilterByType(context.Background(), models.TypePayOut)
		assert.NoError(t, err)
		assert.Len(t, txs, 1)
		assert.Equal(t, models.TypePayOut, txs[0].TransactionType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	assert.NoError(t, err)
	return d
}
