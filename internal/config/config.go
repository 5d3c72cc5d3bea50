package config

import (
	"time"

	"github.com/spf13/viper"
)

// StoreConfig selects and tunes the ledger store backend.
type StoreConfig struct {
	Backend        string // "http" or "postgres"
	BaseURL        string
	RequestTimeout time.Duration
	PageSize       int
}

// CatalogConfig tunes the chart-of-accounts fetch.
type CatalogConfig struct {
	MaxPages int
	CacheTTL time.Duration
}

// JournalConfig tunes voucher write behavior.
type JournalConfig struct {
	PartialWriteMode string // "strict" or "legacy"
}

// LoadStoreConfig returns store configuration with defaults.
func LoadStoreConfig() *StoreConfig {
	viper.SetDefault("store.backend", "http")
	viper.SetDefault("store.base_url", "http://localhost:8000/api")
	viper.SetDefault("store.request_timeout", 10*time.Second)
	viper.SetDefault("store.page_size", 20)

	return &StoreConfig{
		Backend:        viper.GetString("store.backend"),
		BaseURL:        viper.GetString("store.base_url"),
		RequestTimeout: viper.GetDuration("store.request_timeout"),
		PageSize:       viper.GetInt("store.page_size"),
	}
}

// LoadCatalogConfig returns catalog configuration with defaults.
func LoadCatalogConfig() *CatalogConfig {
	viper.SetDefault("catalog.max_pages", 50)
	viper.SetDefault("catalog.cache_ttl", 5*time.Minute)

	return &CatalogConfig{
		MaxPages: viper.GetInt("catalog.max_pages"),
		CacheTTL: viper.GetDuration("catalog.cache_ttl"),
	}
}

// LoadJournalConfig returns journal configuration with defaults.
func LoadJournalConfig() *JournalConfig {
	viper.SetDefault("journal.partial_write_mode", "strict")

	return &JournalConfig{
		PartialWriteMode: viper.GetString("journal.partial_write_mode"),
	}
}
