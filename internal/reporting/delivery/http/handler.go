package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/pos-engine/internal/reporting"
	"github.com/tair/pos-engine/pkg/httpx"
)

// ReportHandler handles HTTP requests for reports
type ReportHandler struct {
	reporter *reporting.Reporter
	now      func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(reporter *reporting.Reporter) *ReportHandler {
	return &ReportHandler{reporter: reporter, now: time.Now}
}

// period reads from/to, defaulting to the current UTC day
func (h *ReportHandler) period(r *http.Request) (time.Time, time.Time, error) {
	from, err := httpx.QueryDate(r, "from", false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := httpx.QueryDate(r, "to", true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	today := h.now().UTC().Truncate(24 * time.Hour)
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = today.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// SalesSummary godoc
// @Summary Sales summary
// @Description Count, units, discounts and revenue in [from, to); defaults to today
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date, inclusive when given as YYYY-MM-DD"
// @Success 200 {object} httpx.Response
// @Router /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.period(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	summary, err := h.reporter.SalesSummary(r.Context(), from, to)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", summary)
}

// SalesByProduct godoc
// @Summary Sales by product
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date, inclusive when given as YYYY-MM-DD"
// @Success 200 {object} httpx.Response
// @Router /api/reports/sales-by-product [get]
func (h *ReportHandler) SalesByProduct(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.period(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	rows, err := h.reporter.SalesByProduct(r.Context(), from, to)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", rows)
}

// ReconcileLedger godoc
// @Summary Ledger reconciliation
// @Description Compares each supply's stock with the sum of its inventory history
// @Tags Reports
// @Produce json
// @Success 200 {object} httpx.Response
// @Router /api/reports/ledger [get]
func (h *ReportHandler) ReconcileLedger(w http.ResponseWriter, r *http.Request) {
	balances, err := h.reporter.ReconcileLedger(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", balances)
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/sales-summary", h.SalesSummary).Methods("GET")
	router.HandleFunc("/api/reports/sales-by-product", h.SalesByProduct).Methods("GET")
	router.HandleFunc("/api/reports/ledger", h.ReconcileLedger).Methods("GET")
}
