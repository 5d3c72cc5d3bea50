package store

import (
	"context"
	"errors"

	"github.com/tablebooks/backend/internal/models"
)

// The books live in an external ledger store. This subsystem never owns
// the schema; it only validates and shapes what it sends there.

var (
	// ErrIO marks a store call that failed before producing a usable
	// result (unreachable store, bad page, decode failure).
	ErrIO = errors.New("ledger store request failed")

	// ErrPersistence marks a write the store rejected.
	ErrPersistence = errors.New("ledger store rejected write")
)

// LedgerStore is the request/response contract of the external store.
// Every call takes a context; cancellation must reach the in-flight
// request.
type LedgerStore interface {
	// ListLedgers returns one page of the chart of accounts and
	// whether a further page exists. Pages start at 1.
	ListLedgers(ctx context.Context, page int) (ledgers []models.Ledger, hasMore bool, err error)

	// CreateTransaction persists one voucher leg. The store assigns
	// the record ID, and a fresh voucher number when draft.VoucherNo
	// is zero.
	CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error)

	// PatchTransaction applies a partial update to one leg.
	PatchTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error)

	// FilterByType returns legs tagged with the given transaction
	// type, in the store's natural order.
	FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error)

	// FilterByVoucherNo returns the legs of one voucher. A complete
	// voucher has exactly two.
	FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error)

	// FilterByNature returns legs whose ledger group carries the
	// given nature, posted within [from, to] inclusive.
	FilterByNature(ctx context.Context, nature models.Nature, from, to models.Date) ([]models.Transaction, error)

	// LedgerReport returns one ledger's legs within [from, to].
	LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) ([]models.Transaction, error)
}
