package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/inventory/usecase/command"
	"github.com/tair/pos-engine/internal/inventory/usecase/query"
	"github.com/tair/pos-engine/pkg/httpx"
)

// SupplyHandler handles HTTP requests for supplies and the inventory ledger
type SupplyHandler struct {
	createHandler  *command.CreateSupplyHandler
	restockHandler *command.RestockHandler

	getHandler          *query.GetSupplyHandler
	listHandler         *query.ListSuppliesHandler
	lowStockHandler     *query.ListLowStockHandler
	historyHandler      *query.ListHistoryHandler
	recipeHandler       *query.GetRecipeHandler
	availabilityHandler *query.CheckAvailabilityHandler
}

// NewSupplyHandler creates a new supply handler
func NewSupplyHandler(
	createHandler *command.CreateSupplyHandler,
	restockHandler *command.RestockHandler,
	getHandler *query.GetSupplyHandler,
	listHandler *query.ListSuppliesHandler,
	lowStockHandler *query.ListLowStockHandler,
	historyHandler *query.ListHistoryHandler,
	recipeHandler *query.GetRecipeHandler,
	availabilityHandler *query.CheckAvailabilityHandler,
) *SupplyHandler {
	return &SupplyHandler{
		createHandler:       createHandler,
		restockHandler:      restockHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		lowStockHandler:     lowStockHandler,
		historyHandler:      historyHandler,
		recipeHandler:       recipeHandler,
		availabilityHandler: availabilityHandler,
	}
}

type createSupplyRequest struct {
	Name       string          `json:"name" validate:"required,max=120"`
	Unit       string          `json:"unit" validate:"required,max=20"`
	Stock      decimal.Decimal `json:"stock"`
	MinStock   decimal.Decimal `json:"min_stock"`
	CategoryID *uint           `json:"category_id" validate:"omitempty,gt=0"`
}

type restockRequest struct {
	NewStock decimal.Decimal `json:"new_stock"`
	Notes    string          `json:"notes" validate:"max=500"`
}

// CreateSupply godoc
// @Summary Create supply
// @Description Register a supply; a non-zero opening stock is written to the ledger as a restock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param X-User-ID header int false "Acting user"
// @Param request body object{name=string,unit=string,stock=number,min_stock=number,category_id=int} true "Supply data"
// @Success 201 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Router /api/supplies [post]
func (h *SupplyHandler) CreateSupply(w http.ResponseWriter, r *http.Request) {
	actorID, err := httpx.ActorID(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req createSupplyRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	supply, err := h.createHandler.Handle(r.Context(), command.CreateSupplyCommand{
		Name:       req.Name,
		Unit:       req.Unit,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
		CategoryID: req.CategoryID,
		ActorID:    actorID,
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusCreated, "Supply created successfully", supply)
}

// GetSupply godoc
// @Summary Get supply
// @Tags Inventory
// @Produce json
// @Param id path int true "Supply ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/supplies/{id} [get]
func (h *SupplyHandler) GetSupply(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	supply, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", supply)
}

// ListSupplies godoc
// @Summary List supplies
// @Tags Inventory
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} httpx.Response
// @Router /api/supplies [get]
func (h *SupplyHandler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	limit, err := httpx.QueryInt(r, "limit", 50)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	offset, err := httpx.QueryInt(r, "offset", 0)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	supplies, err := h.listHandler.Handle(r.Context(), query.ListSuppliesQuery{Limit: limit, Offset: offset})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", supplies)
}

// ListLowStock godoc
// @Summary List low stock supplies
// @Description Supplies whose stock is at or below their minimum
// @Tags Inventory
// @Produce json
// @Success 200 {object} httpx.Response
// @Router /api/supplies/low-stock [get]
func (h *SupplyHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	supplies, err := h.lowStockHandler.Handle(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", supplies)
}

// Restock godoc
// @Summary Restock supply
// @Description Overwrite stock with a counted value and record the difference in the ledger
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Supply ID"
// @Param X-User-ID header int false "Acting user"
// @Param request body object{new_stock=number,notes=string} true "Counted stock"
// @Success 200 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/supplies/{id}/stock [put]
func (h *SupplyHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	actorID, err := httpx.ActorID(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req restockRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	result, err := h.restockHandler.Handle(r.Context(), command.RestockCommand{
		SupplyID: id,
		NewStock: req.NewStock,
		Notes:    req.Notes,
		ActorID:  actorID,
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "Stock updated successfully", result)
}

// ListHistory godoc
// @Summary Inventory history
// @Description Ledger entries newest first, limited to a lookback window in days
// @Tags Inventory
// @Produce json
// @Param supply_id query int false "Supply ID"
// @Param sale_id query int false "Sale ID"
// @Param days query int false "Lookback window (default 30)"
// @Param limit query int false "Limit"
// @Success 200 {object} httpx.Response
// @Router /api/inventory/history [get]
func (h *SupplyHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	var q query.ListHistoryQuery
	var err error
	if q.SupplyID, err = httpx.QueryUint(r, "supply_id"); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.SaleID, err = httpx.QueryUint(r, "sale_id"); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Days, err = httpx.QueryInt(r, "days", query.DefaultHistoryDays); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Limit, err = httpx.QueryInt(r, "limit", 0); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	entries, err := h.historyHandler.Handle(r.Context(), q)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", entries)
}

// GetRecipeStock godoc
// @Summary Recipe with current stock
// @Description Every recipe line of a product joined with the supply's name, unit and stock
// @Tags Inventory
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id}/recipe/stock [get]
func (h *SupplyHandler) GetRecipeStock(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	lines, err := h.recipeHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", lines)
}

// CheckAvailability godoc
// @Summary Check product availability
// @Description Check whether the mandatory recipe covers the requested quantity
// @Tags Inventory
// @Produce json
// @Param id path int true "Product ID"
// @Param quantity query int false "Requested quantity (default: 1)"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id}/availability [get]
func (h *SupplyHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	qty, err := httpx.QueryInt(r, "quantity", 1)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	result, err := h.availabilityHandler.Handle(r.Context(), query.CheckAvailabilityQuery{
		ProductID: id,
		Quantity:  int64(qty),
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusOK, "", result)
}

// RegisterRoutes registers all inventory routes
func (h *SupplyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/supplies", h.ListSupplies).Methods("GET")
	router.HandleFunc("/api/supplies", h.CreateSupply).Methods("POST")
	router.HandleFunc("/api/supplies/low-stock", h.ListLowStock).Methods("GET")
	router.HandleFunc("/api/supplies/{id:[0-9]+}", h.GetSupply).Methods("GET")
	router.HandleFunc("/api/supplies/{id:[0-9]+}/stock", h.Restock).Methods("PUT")
	router.HandleFunc("/api/inventory/history", h.ListHistory).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}/recipe/stock", h.GetRecipeStock).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}/availability", h.CheckAvailability).Methods("GET")
}
