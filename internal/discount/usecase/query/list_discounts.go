package query

import (
	"context"

	"github.com/tair/pos-engine/internal/discount/domain"
)

// ListActiveDiscountsHandler handles list active discounts query
type ListActiveDiscountsHandler struct {
	repo domain.DiscountRepository
}

// NewListActiveDiscountsHandler creates a new list active discounts handler
func NewListActiveDiscountsHandler(repo domain.DiscountRepository) *ListActiveDiscountsHandler {
	return &ListActiveDiscountsHandler{repo: repo}
}

// Handle executes the list active discounts query
func (h *ListActiveDiscountsHandler) Handle(ctx context.Context) ([]domain.Discount, error) {
	return h.repo.FindActive(ctx)
}
