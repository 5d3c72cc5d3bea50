package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tablebooks/backend/internal/models"
)

// SQLStore reads the books database directly, for deployments where the
// back office sits next to the store's Postgres instead of its API. The
// schema is still owned by the store; this is a read/write client, not
// a migrator.
type SQLStore struct {
	db       *sql.DB
	pageSize int
}

// NewSQLStore wraps an open database handle. pageSize controls ledger
// pagination; zero means the default of 20.
func NewSQLStore(db *sql.DB, pageSize int) *SQLStore {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &SQLStore{db: db, pageSize: pageSize}
}

var _ LedgerStore = (*SQLStore)(nil)

const ledgerColumns = `l.id, l.name, COALESCE(l.mobile_no, ''), l.opening_balance, l.debit_credit, g.name, g.nature`

const transactionSelect = `
	SELECT t.id, t.transaction_type, t.date, t.debit_amount, t.credit_amount,
	       COALESCE(t.remarks, ''), t.voucher_no, COALESCE(t.ref_no, ''),
	       l.id, l.name, COALESCE(l.mobile_no, ''), l.opening_balance, l.debit_credit, lg.name, lg.nature,
	       p.id, p.name, COALESCE(p.mobile_no, ''), p.opening_balance, p.debit_credit, pg.name, pg.nature
	FROM transactions t
	JOIN ledgers l ON l.id = t.ledger_id
	JOIN ledger_groups lg ON lg.id = l.group_id
	JOIN ledgers p ON p.id = t.particulars_id
	JOIN ledger_groups pg ON pg.id = p.group_id`

func (s *SQLStore) ListLedgers(ctx context.Context, page int) ([]models.Ledger, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.pageSize

	// One extra row tells us whether another page exists.
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM ledgers l
		JOIN ledger_groups g ON g.id = l.group_id
		ORDER BY l.id
		LIMIT $1 OFFSET $2`, ledgerColumns),
		s.pageSize+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("%w: list ledgers: %v", ErrIO, err)
	}
	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		var l models.Ledger
		if err := rows.Scan(&l.ID, &l.Name, &l.MobileNo, &l.OpeningBalance, &l.NormalSide, &l.Group.Name, &l.Group.Nature); err != nil {
			return nil, false, fmt.Errorf("%w: scan ledger: %v", ErrIO, err)
		}
		ledgers = append(ledgers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: list ledgers: %v", ErrIO, err)
	}

	hasMore := len(ledgers) > s.pageSize
	if hasMore {
		ledgers = ledgers[:s.pageSize]
	}
	return ledgers, hasMore, nil
}

func (s *SQLStore) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	voucherNo := draft.VoucherNo
	if voucherNo == 0 {
		if err := s.db.QueryRowContext(ctx, `SELECT nextval('voucher_no_seq')`).Scan(&voucherNo); err != nil {
			return models.Transaction{}, fmt.Errorf("%w: assign voucher no: %v", ErrPersistence, err)
		}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (ledger_id, particulars_id, transaction_type, date, debit_amount, credit_amount, remarks, voucher_no, ref_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		draft.LedgerID, draft.ParticularsID, draft.TransactionType, draft.Date,
		draft.DebitAmount, draft.CreditAmount, draft.Remarks, voucherNo, draft.RefNo).Scan(&id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: create transaction: %v", ErrPersistence, err)
	}

	return s.fetchTransaction(ctx, id)
}

func (s *SQLStore) PatchTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.LedgerID != nil {
		add("ledger_id", *patch.LedgerID)
	}
	if patch.ParticularsID != nil {
		add("particulars_id", *patch.ParticularsID)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.DebitAmount != nil {
		add("debit_amount", *patch.DebitAmount)
	}
	if patch.CreditAmount != nil {
		add("credit_amount", *patch.CreditAmount)
	}
	if patch.Remarks != nil {
		add("remarks", *patch.Remarks)
	}
	if patch.RefNo != nil {
		add("ref_no", *patch.RefNo)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("%w: patch transaction %d: %v", ErrPersistence, id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return models.Transaction{}, fmt.Errorf("%w: patch transaction %d: no such record", ErrPersistence, id)
		}
	}

	return s.fetchTransaction(ctx, id)
}

func (s *SQLStore) FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, transactionSelect+` WHERE t.transaction_type = $1 ORDER BY t.id`, transactionType)
}

func (s *SQLStore) FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, transactionSelect+` WHERE t.voucher_no = $1 ORDER BY t.id`, voucherNo)
}

func (s *SQLStore) FilterByNature(ctx context.Context, nature models.Nature, from, to models.Date) ([]models.Transaction, error) {
	return s.queryTransactions(ctx,
		transactionSelect+` WHERE lg.nature = $1 AND t.date BETWEEN $2 AND $3 ORDER BY t.id`,
		string(nature), from, to)
}

func (s *SQLStore) LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) ([]models.Transaction, error) {
	return s.queryTransactions(ctx,
		transactionSelect+` WHERE t.ledger_id = $1 AND t.date BETWEEN $2 AND $3 ORDER BY t.date, t.id`,
		ledgerID, from, to)
}

func (s *SQLStore) fetchTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	txs, err := s.queryTransactions(ctx, transactionSelect+` WHERE t.id = $1`, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if len(txs) == 0 {
		return models.Transaction{}, fmt.Errorf("%w: transaction %d not found after write", ErrIO, id)
	}
	return txs[0], nil
}

func (s *SQLStore) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", ErrIO, err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.TransactionType, &t.Date, &t.DebitAmount, &t.CreditAmount,
			&t.Remarks, &t.VoucherNo, &t.RefNo,
			&t.Ledger.ID, &t.Ledger.Name, &t.Ledger.MobileNo, &t.Ledger.OpeningBalance,
			&t.Ledger.NormalSide, &t.Ledger.Group.Name, &t.Ledger.Group.Nature,
			&t.Particulars.ID, &t.Particulars.Name, &t.Particulars.MobileNo, &t.Particulars.OpeningBalance,
			&t.Particulars.NormalSide, &t.Particulars.Group.Name, &t.Particulars.Group.Nature,
		); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", ErrIO, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", ErrIO, err)
	}
	return txs, nil
}
