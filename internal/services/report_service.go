package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tablebooks/backend/internal/models"
	"github.com/tablebooks/backend/internal/store"
)

// Polarity selects which side of the books a signed aggregation reads.
type Polarity int

const (
	DebitPolarity Polarity = iota
	CreditPolarity
)

// AggregateLedgerTotals sums debits and credits per ledger name.
// Balance is the unsigned difference; which side it sits on follows
// from comparing the totals. Input order never changes the result.
func AggregateLedgerTotals(transactions []models.Transaction) map[string]models.LedgerTotals {
	totals := make(map[string]models.LedgerTotals)
	for _, tx := range transactions {
		t := totals[tx.Ledger.Name]
		t.Debit = t.Debit.Add(tx.DebitAmount)
		t.Credit = t.Credit.Add(tx.CreditAmount)
		t.Balance = t.Debit.Sub(t.Credit).Abs()
		totals[tx.Ledger.Name] = t
	}
	return totals
}

// GroupByLedgerGroupName buckets transactions by their ledger's group
// name, preserving input order within each bucket.
func GroupByLedgerGroupName(transactions []models.Transaction) map[string][]models.Transaction {
	groups := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		name := tx.Ledger.Group.Name
		groups[name] = append(groups[name], tx)
	}
	return groups
}

// AggregateByLedgerSigned sums one side of the books per ledger. For
// the debit polarity, a row posting only a credit is subtracted rather
// than ignored; a row with any debit contributes that debit untouched.
// The credit polarity mirrors that. This contra rule is long-standing
// behavior the statements depend on, so it is kept as-is even where it
// looks counter-intuitive.
func AggregateByLedgerSigned(transactions []models.Transaction, polarity Polarity) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		var amount decimal.Decimal
		switch polarity {
		case CreditPolarity:
			amount = tx.CreditAmount
			if tx.CreditAmount.IsZero() {
				amount = tx.DebitAmount.Neg()
			}
		default:
			amount = tx.DebitAmount
			if tx.DebitAmount.IsZero() {
				amount = tx.CreditAmount.Neg()
			}
		}
		totals[tx.Ledger.Name] = totals[tx.Ledger.Name].Add(amount)
	}
	return totals
}

// BuildBalanceSheet assembles the liability/asset statement from
// nature-filtered transaction slices. The smaller side receives the
// net profit or loss plug so both grand totals agree.
func BuildBalanceSheet(from, to models.Date, liabilities, assets []models.Transaction) models.BalanceSheet {
	sheet := models.BalanceSheet{
		FromDate:    from,
		ToDate:      to,
		Liabilities: statementGroups(liabilities),
		Assets:      statementGroups(assets),
	}

	sheet.TotalLiabilities = sumBalances(AggregateLedgerTotals(liabilities))
	sheet.TotalAssets = sumBalances(AggregateLedgerTotals(assets))

	zero := decimal.Zero
	sheet.NetProfit = decimal.Max(sheet.TotalAssets.Sub(sheet.TotalLiabilities), zero)
	sheet.NetLoss = decimal.Max(sheet.TotalLiabilities.Sub(sheet.TotalAssets), zero)
	sheet.GrandTotalLiabilities = sheet.TotalLiabilities.Add(sheet.NetProfit)
	sheet.GrandTotalAssets = sheet.TotalAssets.Add(sheet.NetLoss)
	return sheet
}

// BuildIncomeStatement assembles the expense/income statement. Expenses
// use the signed debit aggregation (contra rule included); income uses
// plain per-ledger credit totals.
func BuildIncomeStatement(from, to models.Date, expenses, income []models.Transaction) models.IncomeStatement {
	stmt := models.IncomeStatement{FromDate: from, ToDate: to}

	expenseByLedger := AggregateByLedgerSigned(expenses, DebitPolarity)
	for _, name := range sortedKeys(expenseByLedger) {
		stmt.Expenses = append(stmt.Expenses, models.StatementRow{Ledger: name, Amount: expenseByLedger[name]})
		stmt.TotalExpenses = stmt.TotalExpenses.Add(expenseByLedger[name])
	}

	incomeTotals := AggregateLedgerTotals(income)
	for _, name := range sortedTotalsKeys(incomeTotals) {
		credit := incomeTotals[name].Credit
		stmt.Income = append(stmt.Income, models.StatementRow{Ledger: name, Amount: credit})
		stmt.TotalIncome = stmt.TotalIncome.Add(credit)
	}

	zero := decimal.Zero
	stmt.NetProfit = decimal.Max(stmt.TotalIncome.Sub(stmt.TotalExpenses), zero)
	stmt.NetLoss = decimal.Max(stmt.TotalExpenses.Sub(stmt.TotalIncome), zero)
	stmt.GrandTotalExpenses = stmt.TotalExpenses.Add(stmt.NetProfit)
	stmt.GrandTotalIncome = stmt.TotalIncome.Add(stmt.NetLoss)
	return stmt
}

// BuildLedgerReport lists one ledger's activity with a running balance
// (debits minus credits) and closing totals.
func BuildLedgerReport(ledgerName string, from, to models.Date, transactions []models.Transaction) models.LedgerReport {
	report := models.LedgerReport{Ledger: ledgerName, FromDate: from, ToDate: to}

	running := decimal.Zero
	for _, tx := range transactions {
		running = running.Add(tx.DebitAmount).Sub(tx.CreditAmount)
		report.Rows = append(report.Rows, models.LedgerReportRow{Transaction: tx, RunningBalance: running})
		report.TotalDebit = report.TotalDebit.Add(tx.DebitAmount)
		report.TotalCredit = report.TotalCredit.Add(tx.CreditAmount)
	}
	report.Closing = running
	return report
}

func statementGroups(transactions []models.Transaction) []models.StatementGroup {
	byGroup := GroupByLedgerGroupName(transactions)

	var groups []models.StatementGroup
	for _, groupName := range sortedTxKeys(byGroup) {
		totals := AggregateLedgerTotals(byGroup[groupName])
		group := models.StatementGroup{Name: groupName}
		for _, ledgerName := range sortedTotalsKeys(totals) {
			balance := totals[ledgerName].Balance
			group.Rows = append(group.Rows, models.StatementRow{Ledger: ledgerName, Amount: balance})
			group.Subtotal = group.Subtotal.Add(balance)
		}
		groups = append(groups, group)
	}
	return groups
}

func sumBalances(totals map[string]models.LedgerTotals) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Balance)
	}
	return sum
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTotalsKeys(m map[string]models.LedgerTotals) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTxKeys(m map[string][]models.Transaction) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReportService produces the derived financial statements by querying
// the store for nature-filtered slices and aggregating them.
type ReportService struct {
	store store.LedgerStore
}

// NewReportService wires the report engines onto a ledger store.
func NewReportService(ledgerStore store.LedgerStore) *ReportService {
	return &ReportService{store: ledgerStore}
}

// BalanceSheet fetches Liability and Asset slices for the range and
// builds the statement.
func (rs *ReportService) BalanceSheet(ctx context.Context, from, to models.Date) (models.BalanceSheet, error) {
	liabilities, err := rs.store.FilterByNature(ctx, models.NatureLiability, from, to)
	if err != nil {
		return models.BalanceSheet{}, err
	}
	assets, err := rs.store.FilterByNature(ctx, models.NatureAsset, from, to)
	if err != nil {
		return models.BalanceSheet{}, err
	}
	return BuildBalanceSheet(from, to, liabilities, assets), nil
}

// IncomeStatement fetches Expense and Income slices for the range and
// builds the statement.
func (rs *ReportService) IncomeStatement(ctx context.Context, from, to models.Date) (models.IncomeStatement, error) {
	expenses, err := rs.store.FilterByNature(ctx, models.NatureExpense, from, to)
	if err != nil {
		return models.IncomeStatement{}, err
	}
	income, err := rs.store.FilterByNature(ctx, models.NatureIncome, from, to)
	if err != nil {
		return models.IncomeStatement{}, err
	}
	return BuildIncomeStatement(from, to, expenses, income), nil
}

// LedgerReport fetches one ledger's activity for the range and builds
// the running-balance report.
func (rs *ReportService) LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) (models.LedgerReport, error) {
	transactions, err := rs.store.LedgerReport(ctx, ledgerID, from, to)
	if err != nil {
		return models.LedgerReport{}, err
	}
	name := ""
	if len(transactions) > 0 {
		name = transactions[0].Ledger.Name
	}
	return BuildLedgerReport(name, from, to, transactions), nil
}
