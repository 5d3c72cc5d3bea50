package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tablebooks/backend/internal/models"
)

// HTTPStore talks to the ledger store's JSON API. The store paginates
// ledger listings DRF-style: {"results": [...], "next": url-or-null}.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore builds a client for the store at baseURL. The timeout
// bounds every request end to end; per-call contexts cancel sooner.
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ LedgerStore = (*HTTPStore)(nil)

type ledgerPage struct {
	Results []models.Ledger `json:"results"`
	Next    *string         `json:"next"`
}

func (s *HTTPStore) ListLedgers(ctx context.Context, page int) ([]models.Ledger, bool, error) {
	var out ledgerPage
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := s.do(ctx, http.MethodGet, "/ledgers/", q, nil, &out); err != nil {
		return nil, false, err
	}
	return out.Results, out.Next != nil, nil
}

func (s *HTTPStore) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	var created models.Transaction
	if err := s.do(ctx, http.MethodPost, "/transactions/", nil, draft, &created); err != nil {
		return models.Transaction{}, err
	}
	return created, nil
}

func (s *HTTPStore) PatchTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	var updated models.Transaction
	path := fmt.Sprintf("/transactions/%d/", id)
	if err := s.do(ctx, http.MethodPatch, path, nil, patch, &updated); err != nil {
		return models.Transaction{}, err
	}
	return updated, nil
}

func (s *HTTPStore) FilterByType(ctx context.Context, transactionType string) ([]models.Transaction, error) {
	var out []models.Transaction
	q := url.Values{"transaction_type": {transactionType}}
	if err := s.do(ctx, http.MethodGet, "/transactions/filter_by_transaction_type/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPStore) FilterByVoucherNo(ctx context.Context, voucherNo int64) ([]models.Transaction, error) {
	var out []models.Transaction
	q := url.Values{"voucher_no": {strconv.FormatInt(voucherNo, 10)}}
	if err := s.do(ctx, http.MethodGet, "/transactions/filter_by_voucher_no/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPStore) FilterByNature(ctx context.Context, nature models.Nature, from, to models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	q := url.Values{
		"nature_group_name": {string(nature)},
		"from_date":         {from.String()},
		"to_date":           {to.String()},
	}
	if err := s.do(ctx, http.MethodGet, "/transactions/filter-by-nature-group/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPStore) LedgerReport(ctx context.Context, ledgerID int64, from, to models.Date) ([]models.Transaction, error) {
	var out []models.Transaction
	q := url.Values{
		"ledger":    {strconv.FormatInt(ledgerID, 10)},
		"from_date": {from.String()},
		"to_date":   {to.String()},
	}
	if err := s.do(ctx, http.MethodGet, "/transactions/ledger_report/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one JSON request. Transport failures map to ErrIO; rejected
// writes map to ErrPersistence. Every write carries a correlation ID so
// a half-written voucher can be traced in the store's logs.
func (s *HTTPStore) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrIO, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		requestID := uuid.NewString()
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		log.Printf("[STORE] %s %s request_id=%s", method, path, requestID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrIO, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		kind := ErrIO
		if method != http.MethodGet {
			kind = ErrPersistence
		}
		return fmt.Errorf("%w: %s %s: status %d: %s", kind, method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrIO, err)
		}
	}
	return nil
}
