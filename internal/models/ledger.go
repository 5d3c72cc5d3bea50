package models

import "github.com/shopspring/decimal"

// Nature classifies a ledger group for statement purposes. It decides
// whether a ledger's activity lands on the balance sheet or the income
// statement.
type Nature string

const (
	NatureAsset     Nature = "Asset"
	NatureLiability Nature = "Liability"
	NatureIncome    Nature = "Income"
	NatureExpense   Nature = "Expense"
)

// Valid reports whether n is one of the four statement natures.
func (n Nature) Valid() bool {
	switch n {
	case NatureAsset, NatureLiability, NatureIncome, NatureExpense:
		return true
	}
	return false
}

// LedgerGroup is the classification bucket for ledgers (chart of
// accounts grouping). Maintained by the external store; read-only here.
type LedgerGroup struct {
	Name   string `json:"name" db:"name"`
	Nature Nature `json:"nature" db:"nature"`
}

// Ledger is a named account, e.g. "Cash" or "Sales Income".
type Ledger struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Group          LedgerGroup     `json:"group"`
	OpeningBalance decimal.Decimal `json:"opening_balance" db:"opening_balance"`
	NormalSide     string          `json:"debit_credit" db:"debit_credit"` // "debit" or "credit"
	MobileNo       string          `json:"mobile_no,omitempty" db:"mobile_no"`
}
