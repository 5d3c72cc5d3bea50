package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tablebooks/backend/internal/models"
	"github.com/tablebooks/backend/internal/store"
)

const catalogCacheKey = "catalog:ledgers"

// CatalogService reads the chart of accounts from the external store.
// The store paginates, so a full fetch walks successive pages; a page
// cap guards against a store that never reports the last page.
type CatalogService struct {
	store    store.LedgerStore
	redis    *redis.Client // nil disables caching
	maxPages int
	cacheTTL time.Duration
}

// NewCatalogService wires the catalog onto a store and an optional
// Redis cache. maxPages bounds the fetch-all loop (default 50).
func NewCatalogService(ledgerStore store.LedgerStore, redisClient *redis.Client, maxPages int, cacheTTL time.Duration) *CatalogService {
	if maxPages <= 0 {
		maxPages = 50
	}
	return &CatalogService{
		store:    ledgerStore,
		redis:    redisClient,
		maxPages: maxPages,
		cacheTTL: cacheTTL,
	}
}

// FetchAllLedgers returns the complete chart of accounts. Results are
// all-or-nothing: any failed page discards the partial list, so callers
// never see an incomplete catalog. A warm cache serves without touching
// the store.
func (cs *CatalogService) FetchAllLedgers(ctx context.Context) ([]models.Ledger, error) {
	if cached, ok := cs.readCache(ctx); ok {
		return cached, nil
	}

	var all []models.Ledger
	for page := 1; ; page++ {
		if page > cs.maxPages {
			return nil, fmt.Errorf("%w: ledger listing exceeded %d pages", store.ErrIO, cs.maxPages)
		}
		ledgers, hasMore, err := cs.store.ListLedgers(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, ledgers...)
		if !hasMore {
			break
		}
	}

	cs.writeCache(ctx, all)
	return all, nil
}

func (cs *CatalogService) readCache(ctx context.Context) ([]models.Ledger, bool) {
	if cs.redis == nil {
		return nil, false
	}
	payload, err := cs.redis.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CATALOG] cache read failed: %v", err)
		}
		return nil, false
	}
	var ledgers []models.Ledger
	if err := json.Unmarshal([]byte(payload), &ledgers); err != nil {
		log.Printf("[CATALOG] discarding bad cache payload: %v", err)
		return nil, false
	}
	return ledgers, true
}

func (cs *CatalogService) writeCache(ctx context.Context, ledgers []models.Ledger) {
	if cs.redis == nil {
		return
	}
	payload, err := json.Marshal(ledgers)
	if err != nil {
		return
	}
	if err := cs.redis.Set(ctx, catalogCacheKey, payload, cs.cacheTTL).Err(); err != nil {
		log.Printf("[CATALOG] cache write failed: %v", err)
	}
}

// ListLedgers serves the full chart of accounts
// @Summary List all ledgers
// @Description Fetch the complete chart of accounts from the ledger store
// @Tags ledgers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} ErrorResponse
// @Router /ledgers [get]
func (cs *CatalogService) ListLedgers(w http.ResponseWriter, r *http.Request) {
	ledgers, err := cs.FetchAllLedgers(r.Context())
	if err != nil {
		log.Printf("[CATALOG] fetch all ledgers failed: %v", err)
		SendErrorResponse(w, "Failed to fetch ledgers", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ledgers": ledgers,
		"count":   len(ledgers),
	})
}
