package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/tablebooks/backend/internal/models"
	"github.com/tablebooks/backend/internal/store"
)

// Partial-write reporting modes. Strict surfaces a typed
// PartialVoucherWriteError when the second leg of a voucher fails after
// the first succeeded; legacy returns only the raw store error, which
// is what the books behaved like before this service existed. Legacy
// exists for compatibility tests only.
const (
	PartialWriteStrict = "strict"
	PartialWriteLegacy = "legacy"
)

var (
	// ErrUnbalancedVoucher rejects a voucher whose legs are not equal
	// and opposite. Nothing is written.
	ErrUnbalancedVoucher = errors.New("voucher legs are not balanced")

	// ErrVoucherNotFound means an edit target is missing one or both
	// legs.
	ErrVoucherNotFound = errors.New("voucher not found")
)

// PartialVoucherWriteError reports a voucher whose first leg was
// written and whose second was rejected, leaving the books one-sided
// until someone reconciles them.
type PartialVoucherWriteError struct {
	VoucherNo  int64
	WrittenLeg models.Transaction
	Err        error
}

func (e *PartialVoucherWriteError) Error() string {
	return fmt.Sprintf("voucher %d half-written: leg %d persisted, second leg failed: %v",
		e.VoucherNo, e.WrittenLeg.ID, e.Err)
}

func (e *PartialVoucherWriteError) Unwrap() error {
	return e.Err
}

// JournalService creates and edits vouchers: balanced pairs of
// transactions posted to the external ledger store.
type JournalService struct {
	store            store.LedgerStore
	validator        *ValidationHelper
	partialWriteMode string
}

// NewJournalService wires the journal onto a ledger store.
// partialWriteMode is PartialWriteStrict or PartialWriteLegacy; any
// other value falls back to strict.
func NewJournalService(ledgerStore store.LedgerStore, partialWriteMode string) *JournalService {
	if partialWriteMode != PartialWriteLegacy {
		partialWriteMode = PartialWriteStrict
	}
	return &JournalService{
		store:            ledgerStore,
		validator:        NewValidationHelper(),
		partialWriteMode: partialWriteMode,
	}
}

// checkBalanced enforces the double-entry invariant on a pair of
// drafts: legA's debit equals legB's credit and vice versa, each leg a
// pure posting to one side.
func (js *JournalService) checkBalanced(legA, legB models.TransactionDraft) error {
	if fieldErrs := js.validator.ValidateDraft(legA); len(fieldErrs) > 0 {
		return fmt.Errorf("%w: first leg: %s", ErrUnbalancedVoucher, fieldErrs[0].Message)
	}
	if fieldErrs := js.validator.ValidateDraft(legB); len(fieldErrs) > 0 {
		return fmt.Errorf("%w: second leg: %s", ErrUnbalancedVoucher, fieldErrs[0].Message)
	}
	if !legA.DebitAmount.Equal(legB.CreditAmount) || !legA.CreditAmount.Equal(legB.DebitAmount) {
		return fmt.Errorf("%w: debit %s vs credit %s", ErrUnbalancedVoucher,
			legA.DebitAmount.Add(legA.CreditAmount), legB.DebitAmount.Add(legB.CreditAmount))
	}
	return nil
}

// RecordVoucher validates and persists one balanced accounting event as
// two transactions sharing a voucher number, which it returns. The two
// writes are sequential, not atomic: if the second fails the result
// depends on the partial-write mode.
func (js *JournalService) RecordVoucher(ctx context.Context, legA, legB models.TransactionDraft) (int64, error) {
	if err := js.checkBalanced(legA, legB); err != nil {
		return 0, err
	}

	legA.VoucherNo = 0 // the store assigns voucher numbers
	first, err := js.store.CreateTransaction(ctx, legA)
	if err != nil {
		return 0, err
	}

	legB.VoucherNo = first.VoucherNo
	if _, err := js.store.CreateTransaction(ctx, legB); err != nil {
		log.Printf("[JOURNAL] voucher %d half-written: first leg id=%d, second leg failed: %v",
			first.VoucherNo, first.ID, err)
		if js.partialWriteMode == PartialWriteLegacy {
			return 0, err
		}
		return 0, &PartialVoucherWriteError{VoucherNo: first.VoucherNo, WrittenLeg: first, Err: err}
	}

	return first.VoucherNo, nil
}

// EditVoucher fetches both legs of a voucher, applies the patches, and
// re-validates the balance invariant on the patched amounts before
// writing either leg. debitPatch targets the debit leg, creditPatch the
// credit leg.
func (js *JournalService) EditVoucher(ctx context.Context, voucherNo int64, debitPatch, creditPatch models.TransactionPatch) error {
	legs, err := js.store.FilterByVoucherNo(ctx, voucherNo)
	if err != nil {
		return err
	}
	if len(legs) < 2 {
		return fmt.Errorf("%w: voucher %d has %d leg(s)", ErrVoucherNotFound, voucherNo, len(legs))
	}

	var debitLeg, creditLeg *models.Transaction
	for i := range legs {
		if legs[i].IsDebitLeg() {
			debitLeg = &legs[i]
		} else {
			creditLeg = &legs[i]
		}
	}
	if debitLeg == nil || creditLeg == nil {
		return fmt.Errorf("%w: voucher %d is missing a debit or credit leg", ErrVoucherNotFound, voucherNo)
	}

	// Re-validate all four patched amounts: each leg must stay a pure
	// posting to its own side, and the two sides must stay equal.
	newDebit := patched(debitLeg.DebitAmount, debitPatch.DebitAmount)
	debitLegCredit := patched(debitLeg.CreditAmount, debitPatch.CreditAmount)
	newCredit := patched(creditLeg.CreditAmount, creditPatch.CreditAmount)
	creditLegDebit := patched(creditLeg.DebitAmount, creditPatch.DebitAmount)
	if !debitLegCredit.IsZero() || !creditLegDebit.IsZero() {
		return fmt.Errorf("%w: patch posts to both sides of a leg", ErrUnbalancedVoucher)
	}
	if !newDebit.Equal(newCredit) || !newDebit.IsPositive() {
		return fmt.Errorf("%w: patched debit %s vs credit %s", ErrUnbalancedVoucher, newDebit, newCredit)
	}

	if _, err := js.store.PatchTransaction(ctx, debitLeg.ID, debitPatch); err != nil {
		return err
	}
	if _, err := js.store.PatchTransaction(ctx, creditLeg.ID, creditPatch); err != nil {
		log.Printf("[JOURNAL] voucher %d edit half-applied: debit leg id=%d updated, credit leg id=%d failed: %v",
			voucherNo, debitLeg.ID, creditLeg.ID, err)
		if js.partialWriteMode == PartialWriteLegacy {
			return err
		}
		return &PartialVoucherWriteError{VoucherNo: voucherNo, WrittenLeg: *debitLeg, Err: err}
	}

	return nil
}

func patched(current decimal.Decimal, patch *decimal.Decimal) decimal.Decimal {
	if patch != nil {
		return *patch
	}
	return current
}

// FilterByType returns all legs with the given transaction type, in the
// store's natural order. Callers needing chronology must sort by date
// themselves.
func (js *JournalService) FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error) {
	return js.store.FilterByType(ctx, transactionType)
}

// FilterByVoucherNo returns the 0, 1 or 2 legs recorded under a voucher
// number. Fewer than two is tolerated here; EditVoucher treats it as an
// error.
func (js *JournalService) FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error) {
	return js.store.FilterByVoucherNo(ctx, voucherNo)
}

// GetVoucher returns the paired view of a complete voucher.
func (js *JournalService) GetVoucher(ctx context.Context, voucherNo int64) (models.Voucher, error) {
	legs, err := js.store.FilterByVoucherNo(ctx, voucherNo)
	if err != nil {
		return models.Voucher{}, err
	}
	if len(legs) < 2 {
		return models.Voucher{}, fmt.Errorf("%w: voucher %d has %d leg(s)", ErrVoucherNotFound, voucherNo, len(legs))
	}
	v := models.Voucher{VoucherNo: voucherNo}
	for _, leg := range legs {
		if leg.IsDebitLeg() {
			v.DebitLeg = leg
		} else {
			v.CreditLeg = leg
		}
	}
	return v, nil
}

type voucherRequest struct {
	Transaction1 models.TransactionDraft `json:"transaction1"`
	Transaction2 models.TransactionDraft `json:"transaction2"`
}

type voucherPatchRequest struct {
	Debit  models.TransactionPatch `json:"debit"`
	Credit models.TransactionPatch `json:"credit"`
}

// CreateVoucher handles voucher creation
// @Summary Record a voucher
// @Description Record a balanced Pay In / Pay Out voucher as two transactions
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher body voucherRequest true "Voucher legs"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vouchers [post]
func (js *JournalService) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req voucherRequest

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	voucherNo, err := js.RecordVoucher(r.Context(), req.Transaction1, req.Transaction2)
	if err != nil {
		js.writeJournalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int64{"voucher_no": voucherNo})
}

// UpdateVoucher handles voucher edits
// @Summary Edit a voucher
// @Description Patch both legs of an existing voucher, preserving the balance invariant
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherNo path int true "Voucher number"
// @Param patch body voucherPatchRequest true "Leg patches"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /vouchers/{voucherNo} [put]
func (js *JournalService) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	voucherNo, err := strconv.ParseInt(chi.URLParam(r, "voucherNo"), 10, 64)
	if err != nil {
		SendErrorResponse(w, "Invalid voucher number", http.StatusBadRequest, nil)
		return
	}

	var req voucherPatchRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := js.EditVoucher(r.Context(), voucherNo, req.Debit, req.Credit); err != nil {
		js.writeJournalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"voucher_no": voucherNo})
}

// GetVoucherLegs returns both legs of a voucher
// @Summary Get a voucher
// @Tags vouchers
// @Produce json
// @Param voucherNo path int true "Voucher number"
// @Success 200 {object} models.Voucher
// @Failure 404 {object} ErrorResponse
// @Router /vouchers/{voucherNo} [get]
func (js *JournalService) GetVoucherLegs(w http.ResponseWriter, r *http.Request) {
	voucherNo, err := strconv.ParseInt(chi.URLParam(r, "voucherNo"), 10, 64)
	if err != nil {
		SendErrorResponse(w, "Invalid voucher number", http.StatusBadRequest, nil)
		return
	}

	voucher, err := js.GetVoucher(r.Context(), voucherNo)
	if err != nil {
		js.writeJournalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(voucher)
}

// ListTransactions filters transactions by type
// @Summary List transactions by type
// @Tags transactions
// @Produce json
// @Param type query string true "Transaction type (payin, payout)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (js *JournalService) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactionType := r.URL.Query().Get("type")
	if transactionType == "" {
		SendErrorResponse(w, "Missing type query parameter", http.StatusBadRequest, nil)
		return
	}

	transactions, err := js.FilterByType(r.Context(), transactionType)
	if err != nil {
		SendErrorResponse(w, "Failed to fetch transactions", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (js *JournalService) writeJournalError(w http.ResponseWriter, err error) {
	var partial *PartialVoucherWriteError
	switch {
	case errors.Is(err, ErrUnbalancedVoucher):
		SendErrorResponse(w, "Voucher legs are not balanced", http.StatusBadRequest, err)
	case errors.Is(err, ErrVoucherNotFound):
		SendErrorResponse(w, "Voucher not found", http.StatusNotFound, err)
	case errors.As(err, &partial):
		// Distinct payload so callers can reconcile the surviving leg.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error":       "Voucher partially written",
			"voucher_no":  partial.VoucherNo,
			"written_leg": partial.WrittenLeg,
		})
	default:
		SendErrorResponse(w, "Ledger store request failed", http.StatusBadGateway, nil)
	}
}
