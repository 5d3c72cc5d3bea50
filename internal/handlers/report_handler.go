package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/tablebooks/backend/internal/models"
	"github.com/tablebooks/backend/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// BalanceSheet serves the balance sheet for a date range
// @Summary Balance sheet
// @Description Liabilities and assets grouped by ledger group, with net profit/loss plug
// @Tags reports
// @Produce json
// @Param from_date query string true "Range start (YYYY-MM-DD)"
// @Param to_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.BalanceSheet
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	sheet, err := h.service.BalanceSheet(r.Context(), from, to)
	if err != nil {
		log.Printf("[REPORT] balance sheet failed: %v", err)
		services.SendErrorResponse(w, "Failed to build balance sheet", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

// IncomeStatement serves the income statement for a date range
// @Summary Income statement
// @Description Expenses and income per ledger, with net profit/loss plug
// @Tags reports
// @Produce json
// @Param from_date query string true "Range start (YYYY-MM-DD)"
// @Param to_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.IncomeStatement
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /reports/income-statement [get]
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	stmt, err := h.service.IncomeStatement(r.Context(), from, to)
	if err != nil {
		log.Printf("[REPORT] income statement failed: %v", err)
		services.SendErrorResponse(w, "Failed to build income statement", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stmt)
}

// LedgerReport serves one ledger's activity for a date range
// @Summary Ledger report
// @Description One ledger's transactions with running balance
// @Tags reports
// @Produce json
// @Param ledger query int true "Ledger ID"
// @Param from_date query string true "Range start (YYYY-MM-DD)"
// @Param to_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} models.LedgerReport
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /reports/ledger [get]
func (h *ReportHandler) LedgerReport(w http.ResponseWriter, r *http.Request) {
	ledgerID, err := strconv.ParseInt(r.URL.Query().Get("ledger"), 10, 64)
	if err != nil || ledgerID <= 0 {
		services.SendErrorResponse(w, "Invalid ledger query parameter", http.StatusBadRequest, nil)
		return
	}

	from, to, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	report, err := h.service.LedgerReport(r.Context(), ledgerID, from, to)
	if err != nil {
		log.Printf("[REPORT] ledger report failed: %v", err)
		services.SendErrorResponse(w, "Failed to build ledger report", http.StatusBadGateway, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *ReportHandler) dateRange(w http.ResponseWriter, r *http.Request) (models.Date, models.Date, bool) {
	from, err := models.ParseDate(r.URL.Query().Get("from_date"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid from_date", http.StatusBadRequest, nil)
		return models.Date{}, models.Date{}, false
	}
	to, err := models.ParseDate(r.URL.Query().Get("to_date"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid to_date", http.StatusBadRequest, nil)
		return models.Date{}, models.Date{}, false
	}
	if to.Before(from.Time) {
		services.SendErrorResponse(w, "to_date precedes from_date", http.StatusBadRequest, nil)
		return models.Date{}, models.Date{}, false
	}
	return from, to, true
}
