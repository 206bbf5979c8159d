package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/discount/domain"
	"github.com/tair/pos-engine/internal/discount/usecase/command"
	"github.com/tair/pos-engine/internal/discount/usecase/query"
	"github.com/tair/pos-engine/pkg/httpx"
)

// DiscountHandler handles HTTP requests for discounts
type DiscountHandler struct {
	createHandler     *command.CreateDiscountHandler
	updateHandler     *command.UpdateDiscountHandler
	deactivateHandler *command.DeactivateDiscountHandler
	listHandler       *query.ListActiveDiscountsHandler
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(
	createHandler *command.CreateDiscountHandler,
	updateHandler *command.UpdateDiscountHandler,
	deactivateHandler *command.DeactivateDiscountHandler,
	listHandler *query.ListActiveDiscountsHandler,
) *DiscountHandler {
	return &DiscountHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deactivateHandler: deactivateHandler,
		listHandler:       listHandler,
	}
}

type createDiscountRequest struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Type      string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `json:"value"`
	MinAmount decimal.Decimal `json:"min_amount"`
}

type updateDiscountRequest struct {
	Name      *string          `json:"name" validate:"omitempty,max=100"`
	Type      *string          `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value     *decimal.Decimal `json:"value"`
	MinAmount *decimal.Decimal `json:"min_amount"`
	Active    *bool            `json:"active"`
}

// ListDiscounts godoc
// @Summary List active discounts
// @Tags Discounts
// @Produce json
// @Success 200 {object} httpx.Response
// @Router /api/discounts [get]
func (h *DiscountHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.listHandler.Handle(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", discounts)
}

// CreateDiscount godoc
// @Summary Create discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param request body object{name=string,type=string,value=number,min_amount=number} true "Discount data"
// @Success 201 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Router /api/discounts [post]
func (h *DiscountHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req createDiscountRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	discount, err := h.createHandler.Handle(r.Context(), command.CreateDiscountCommand{
		Name:      req.Name,
		Type:      domain.Type(req.Type),
		Value:     req.Value,
		MinAmount: req.MinAmount,
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Discount created successfully", discount)
}

// UpdateDiscount godoc
// @Summary Update discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param id path int true "Discount ID"
// @Param request body object{name=string,type=string,value=number,min_amount=number,active=bool} true "Fields to change"
// @Success 200 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/discounts/{id} [patch]
func (h *DiscountHandler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req updateDiscountRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	update := domain.DiscountUpdate{
		Name:      req.Name,
		Value:     req.Value,
		MinAmount: req.MinAmount,
		Active:    req.Active,
	}
	if req.Type != nil {
		t := domain.Type(*req.Type)
		update.Type = &t
	}

	discount, err := h.updateHandler.Handle(r.Context(), command.UpdateDiscountCommand{ID: id, Update: update})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Discount updated successfully", discount)
}

// DeactivateDiscount godoc
// @Summary Deactivate discount
// @Tags Discounts
// @Produce json
// @Param id path int true "Discount ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/discounts/{id} [delete]
func (h *DiscountHandler) DeactivateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if err := h.deactivateHandler.Handle(r.Context(), id); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Discount deactivated successfully", nil)
}

// RegisterRoutes registers all discount routes
func (h *DiscountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/discounts", h.ListDiscounts).Methods("GET")
	router.HandleFunc("/api/discounts", h.CreateDiscount).Methods("POST")
	router.HandleFunc("/api/discounts/{id:[0-9]+}", h.UpdateDiscount).Methods("PATCH")
	router.HandleFunc("/api/discounts/{id:[0-9]+}", h.DeactivateDiscount).Methods("DELETE")
}
