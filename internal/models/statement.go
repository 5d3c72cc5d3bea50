package models

import (
	"github.com/shopspring/decimal"
)

// LedgerTotals is the per-ledger aggregation row: total debits, total
// credits, and the unsigned balance between them. Which side the
// balance sits on follows from comparing Debit and Credit.
type LedgerTotals struct {
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// StatementRow is one ledger line on a financial statement.
type StatementRow struct {
	Ledger string          `json:"ledger"`
	Amount decimal.Decimal `json:"amount"`
}

// StatementGroup is a ledger-group section on the balance sheet: the
// group's ledgers with their balances, plus the group subtotal.
type StatementGroup struct {
	Name     string          `json:"name"`
	Rows     []StatementRow  `json:"rows"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// BalanceSheet is the liability/asset statement over a date range.
// GrandTotalLiabilities always equals GrandTotalAssets: the smaller
// side carries the net profit or net loss plug entry.
type BalanceSheet struct {
	FromDate Date `json:"from_date"`
	ToDate   Date `json:"to_date"`

	Liabilities []StatementGroup `json:"liabilities"`
	Assets      []StatementGroup `json:"assets"`

	TotalLiabilities      decimal.Decimal `json:"total_liabilities"`
	TotalAssets           decimal.Decimal `json:"total_assets"`
	NetProfit             decimal.Decimal `json:"net_profit"`
	NetLoss               decimal.Decimal `json:"net_loss"`
	GrandTotalLiabilities decimal.Decimal `json:"grand_total_liabilities"`
	GrandTotalAssets      decimal.Decimal `json:"grand_total_assets"`
}

// IncomeStatement is the expense/income statement over a date range,
// with the same plug-entry balancing as the balance sheet.
type IncomeStatement struct {
	FromDate Date `json:"from_date"`
	ToDate   Date `json:"to_date"`

	Expenses []StatementRow `json:"expenses"`
	Income   []StatementRow `json:"income"`

	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	NetLoss            decimal.Decimal `json:"net_loss"`
	GrandTotalExpenses decimal.Decimal `json:"grand_total_expenses"`
	GrandTotalIncome   decimal.Decimal `json:"grand_total_income"`
}

// LedgerReportRow is one transaction line on the per-ledger report,
// with the running balance after that line.
type LedgerReportRow struct {
	Transaction
	RunningBalance decimal.Decimal `json:"balance_amount"`
}

// LedgerReport lists one ledger's activity over a date range.
type LedgerReport struct {
	Ledger      string            `json:"ledger"`
	FromDate    Date              `json:"from_date"`
	ToDate      Date              `json:"to_date"`
	Rows        []LedgerReportRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Closing     decimal.Decimal   `json:"closing_balance"`
}
