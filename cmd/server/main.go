package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/tablebooks/backend/docs"
	"github.com/tablebooks/backend/internal/config"
	"github.com/tablebooks/backend/internal/database"
	"github.com/tablebooks/backend/internal/handlers"
	mW "github.com/tablebooks/backend/internal/middleware"
	"github.com/tablebooks/backend/internal/services"
	"github.com/tablebooks/backend/internal/store"
)

// @title Restaurant Back-Office Accounting API
// @version 1.0
// @description Transaction journal and financial statements for the restaurant back office
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("store.base_url", "STORE_BASE_URL")
	viper.BindEnv("store.request_timeout", "STORE_REQUEST_TIMEOUT")
	viper.BindEnv("store.page_size", "STORE_PAGE_SIZE")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("catalog.max_pages", "CATALOG_MAX_PAGES")
	viper.BindEnv("catalog.cache_ttl", "CATALOG_CACHE_TTL")
	viper.BindEnv("journal.partial_write_mode", "JOURNAL_PARTIAL_WRITE_MODE")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Restaurant Back-Office Accounting API"
	docs.SwaggerInfo.Description = "Transaction journal and financial statements for the restaurant back office"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Pick the ledger store backend
	storeCfg := config.LoadStoreConfig()
	var ledgerStore store.LedgerStore
	switch storeCfg.Backend {
	case "postgres":
		db := database.InitDatabase()
		defer db.Close()
		ledgerStore = store.NewSQLStore(db, storeCfg.PageSize)
	default:
		ledgerStore = store.NewHTTPStore(storeCfg.BaseURL, storeCfg.RequestTimeout)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalogCfg := config.LoadCatalogConfig()
	journalCfg := config.LoadJournalConfig()

	catalogService := services.NewCatalogService(ledgerStore, redisClient, catalogCfg.MaxPages, catalogCfg.CacheTTL)
	journalService := services.NewJournalService(ledgerStore, journalCfg.PartialWriteMode)
	reportService := services.NewReportService(ledgerStore)
	reportHandler := handlers.NewReportHandler(reportService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(mW.Metrics)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ledgers", catalogService.ListLedgers)

		r.Post("/vouchers", journalService.CreateVoucher)
		r.Put("/vouchers/{voucherNo}", journalService.UpdateVoucher)
		r.Get("/vouchers/{voucherNo}", journalService.GetVoucherLegs)
		r.Get("/transactions", journalService.ListTransactions)

		r.Get("/reports/balance-sheet", reportHandler.BalanceSheet)
		r.Get("/reports/income-statement", reportHandler.IncomeStatement)
		r.Get("/reports/ledger", reportHandler.LedgerReport)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
