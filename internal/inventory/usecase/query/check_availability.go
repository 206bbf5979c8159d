package query

import (
	"context"

	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// GetRecipeHandler returns a product's recipe joined with current stock
type GetRecipeHandler struct {
	repo domain.SupplyRepository
}

// NewGetRecipeHandler creates a new get recipe handler
func NewGetRecipeHandler(repo domain.SupplyRepository) *GetRecipeHandler {
	return &GetRecipeHandler{repo: repo}
}

// Handle executes the get recipe query
func (h *GetRecipeHandler) Handle(ctx context.Context, productID uint) ([]domain.RecipeRequirement, error) {
	if productID == 0 {
		return nil, apperror.Validation("product_id is required")
	}
	return h.repo.GetRecipe(ctx, productID)
}

// CheckAvailabilityQuery asks whether quantity units of a product can be sold
type CheckAvailabilityQuery struct {
	ProductID uint
	Quantity  int64
}

// Availability is the read-only answer to a CheckAvailabilityQuery. It is a
// snapshot; a sale re-checks under lock.
type Availability struct {
	ProductID uint                       `json:"product_id"`
	Quantity  int64                      `json:"quantity"`
	Available bool                       `json:"available"`
	Shortage  *apperror.Shortage         `json:"shortage,omitempty"`
	Recipe    []domain.RecipeRequirement `json:"recipe"`
}

// CheckAvailabilityHandler handles check availability query
type CheckAvailabilityHandler struct {
	repo domain.SupplyRepository
}

// NewCheckAvailabilityHandler creates a new check availability handler
func NewCheckAvailabilityHandler(repo domain.SupplyRepository) *CheckAvailabilityHandler {
	return &CheckAvailabilityHandler{repo: repo}
}

// Handle executes the check availability query
func (h *CheckAvailabilityHandler) Handle(ctx context.Context, query CheckAvailabilityQuery) (*Availability, error) {
	if query.Quantity <= 0 {
		return nil, apperror.Validation("quantity must be a positive integer")
	}

	lines, err := h.repo.GetRecipe(ctx, query.ProductID)
	if err != nil {
		return nil, err
	}

	result := &Availability{ProductID: query.ProductID, Quantity: query.Quantity, Available: true, Recipe: lines}
	if err := domain.CheckSufficiency(domain.Mandatory(lines), query.Quantity); err != nil {
		shortage, ok := apperror.ShortageOf(err)
		if !ok {
			return nil, err
		}
		result.Available = false
		result.Shortage = shortage
	}
	return result, nil
}
