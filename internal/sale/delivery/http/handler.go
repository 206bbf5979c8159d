package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	discount "github.com/tair/pos-engine/internal/discount/domain"
	"github.com/tair/pos-engine/internal/sale/usecase/command"
	"github.com/tair/pos-engine/internal/sale/usecase/query"
	"github.com/tair/pos-engine/pkg/httpx"
)

// SaleHandler handles HTTP requests for sales
type SaleHandler struct {
	registerHandler *command.RegisterSaleHandler
	getHandler      *query.GetSaleHandler
	listHandler     *query.ListSalesHandler
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	registerHandler *command.RegisterSaleHandler,
	getHandler *query.GetSaleHandler,
	listHandler *query.ListSalesHandler,
) *SaleHandler {
	return &SaleHandler{
		registerHandler: registerHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
	}
}

type customDiscountRequest struct {
	Type  string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value"`
}

type supplyUsedRequest struct {
	SupplyID uint            `json:"supply_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

type registerSaleRequest struct {
	ProductID      uint                   `json:"product_id" validate:"required"`
	Quantity       int64                  `json:"quantity" validate:"required,gt=0"`
	DiscountID     *uint                  `json:"discount_id" validate:"omitempty,gt=0"`
	CustomDiscount *customDiscountRequest `json:"custom_discount"`
	SuppliesUsed   []supplyUsedRequest    `json:"supplies_used" validate:"dive"`
}

// RegisterSale godoc
// @Summary Register sale
// @Description Validates stock, applies the discount, records the sale and deducts supplies atomically
// @Tags Sales
// @Accept json
// @Produce json
// @Param X-User-ID header int false "Acting user"
// @Param request body object{product_id=int,quantity=int,discount_id=int,custom_discount=object{type=string,value=number},supplies_used=[]object{supply_id=int,quantity=number}} true "Sale"
// @Success 201 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Failure 409 {object} httpx.Response
// @Failure 422 {object} httpx.Response
// @Router /api/sales [post]
func (h *SaleHandler) RegisterSale(w http.ResponseWriter, r *http.Request) {
	actorID, err := httpx.ActorID(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req registerSaleRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	cmd := command.RegisterSaleCommand{
		ActorID:   actorID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Discount:  discount.Selection{DiscountID: req.DiscountID},
	}
	if req.CustomDiscount != nil {
		cmd.Discount.AdHoc = &discount.AdHoc{
			Type:  discount.Type(req.CustomDiscount.Type),
			Value: req.CustomDiscount.Value,
		}
	}
	for _, line := range req.SuppliesUsed {
		cmd.Discretionary = append(cmd.Discretionary, command.DiscretionaryLine{
			SupplyID: line.SupplyID,
			Quantity: line.Quantity,
		})
	}

	result, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Sale registered successfully", result)
}

// GetSale godoc
// @Summary Get sale
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/sales/{id} [get]
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	sale, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", sale)
}

// ListSales godoc
// @Summary List sales
// @Description Sales newest first in [from, to); defaults to the last 30 days
// @Tags Sales
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date, inclusive when given as YYYY-MM-DD"
// @Param product_id query int false "Product ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} httpx.Response
// @Router /api/sales [get]
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	var q query.ListSalesQuery
	var err error
	if q.From, err = httpx.QueryDate(r, "from", false); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.To, err = httpx.QueryDate(r, "to", true); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.ProductID, err = httpx.QueryUint(r, "product_id"); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Limit, err = httpx.QueryInt(r, "limit", 0); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Offset, err = httpx.QueryInt(r, "offset", 0); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	sales, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", sales)
}

// RegisterRoutes registers all sale routes
func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sales", h.ListSales).Methods("GET")
	router.HandleFunc("/api/sales", h.RegisterSale).Methods("POST")
	router.HandleFunc("/api/sales/{id:[0-9]+}", h.GetSale).Methods("GET")
}
