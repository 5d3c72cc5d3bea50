package models

import (
	"github.com/shopspring/decimal"
)

// Transaction type tags used by the Pay In / Pay Out forms.
const (
	TypePayIn  = "payin"
	TypePayOut = "payout"
)

// Transaction is one leg of a voucher: a posting to a single ledger
// with the counter-account recorded as Particulars. Exactly one of
// DebitAmount/CreditAmount is nonzero on a well-formed leg.
type Transaction struct {
	ID              int64           `json:"id" db:"id"`
	Ledger          Ledger          `json:"ledger"`
	Particulars     Ledger          `json:"particulars"`
	TransactionType string          `json:"transaction_type" db:"transaction_type"`
	Date            Date            `json:"date" db:"date"`
	DebitAmount     decimal.Decimal `json:"debit_amount" db:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount" db:"credit_amount"`
	Remarks         string          `json:"remarks,omitempty" db:"remarks"`
	VoucherNo       int64           `json:"voucher_no" db:"voucher_no"`
	RefNo           string          `json:"ref_no,omitempty" db:"ref_no"`
}

// IsDebitLeg reports whether this leg carries the debit side of its
// voucher.
func (t Transaction) IsDebitLeg() bool {
	return t.DebitAmount.IsPositive()
}

// TransactionDraft is the write shape for a new voucher leg. The store
// assigns ID and, for the first leg of a voucher, VoucherNo.
type TransactionDraft struct {
	LedgerID        int64           `json:"ledger_id" validate:"required"`
	ParticularsID   int64           `json:"particulars_id" validate:"required"`
	TransactionType string          `json:"transaction_type" validate:"required"`
	Date            Date            `json:"date" validate:"required"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Remarks         string          `json:"remarks"`
	RefNo           string          `json:"ref_no,omitempty"`
	VoucherNo       int64           `json:"voucher_no,omitempty"`
}

// TransactionPatch carries partial updates for an existing leg. Nil
// fields are left untouched by the store.
type TransactionPatch struct {
	LedgerID      *int64           `json:"ledger_id,omitempty"`
	ParticularsID *int64           `json:"particulars_id,omitempty"`
	Date          *Date            `json:"date,omitempty"`
	DebitAmount   *decimal.Decimal `json:"debit_amount,omitempty"`
	CreditAmount  *decimal.Decimal `json:"credit_amount,omitempty"`
	Remarks       *string          `json:"remarks,omitempty"`
	RefNo         *string          `json:"ref_no,omitempty"`
}

// Voucher is the logical pairing of the two legs sharing a voucher
// number. It is never stored as its own record.
type Voucher struct {
	VoucherNo int64       `json:"voucher_no"`
	DebitLeg  Transaction `json:"debit_leg"`
	CreditLeg Transaction `json:"credit_leg"`
}
