package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	catalog "github.com/tair/pos-engine/internal/catalog/delivery/http"
	discount "github.com/tair/pos-engine/internal/discount/delivery/http"
	inventory "github.com/tair/pos-engine/internal/inventory/delivery/http"
	reporting "github.com/tair/pos-engine/internal/reporting/delivery/http"
	sale "github.com/tair/pos-engine/internal/sale/delivery/http"
	"github.com/tair/pos-engine/pkg/httpx"
)

// RouteRegistrar is implemented by every delivery handler
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// Pinger checks database connectivity
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers collects the delivery handlers of every module
type Handlers struct {
	Supplies  *inventory.SupplyHandler
	Catalog   *catalog.CatalogHandler
	Discounts *discount.DiscountHandler
	Sales     *sale.SaleHandler
	Reports   *reporting.ReportHandler
}

// Registrars lists the handlers in registration order
func (h Handlers) Registrars() []RouteRegistrar {
	return []RouteRegistrar{h.Supplies, h.Catalog, h.Discounts, h.Sales, h.Reports}
}

// NewRouter builds the HTTP handler tree: health, metrics, swagger and every
// module's routes behind the middleware chain
func NewRouter(
	config MiddlewareConfig,
	metrics *HTTPMetrics,
	gatherer prometheus.Gatherer,
	db Pinger,
	registrars []RouteRegistrar,
) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck(db)).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	for _, r := range registrars {
		r.RegisterRoutes(router)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusNotFound, httpx.Response{Success: false, Error: "route not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusMethodNotAllowed, httpx.Response{Success: false, Error: "method not allowed"})
	})

	RegisterMiddlewares(router, config, metrics)
	return SetupCORS(config)(router)
}

func healthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, httpx.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		httpx.OK(w, http.StatusOK, "POS service is healthy", nil)
	}
}
