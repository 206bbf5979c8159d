package query

import (
	"context"

	"github.com/tair/pos-engine/internal/inventory/domain"
)

// ListSuppliesQuery represents the query to list supplies
type ListSuppliesQuery struct {
	Limit  int
	Offset int
}

// ListSuppliesHandler handles list supplies query
type ListSuppliesHandler struct {
	repo domain.SupplyRepository
}

// NewListSuppliesHandler creates a new list supplies handler
func NewListSuppliesHandler(repo domain.SupplyRepository) *ListSuppliesHandler {
	return &ListSuppliesHandler{repo: repo}
}

// Handle executes the list supplies query
func (h *ListSuppliesHandler) Handle(ctx context.Context, query ListSuppliesQuery) ([]domain.Supply, error) {
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 500 {
		query.Limit = 500
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	return h.repo.FindAll(ctx, query.Limit, query.Offset)
}

// ListLowStockHandler lists supplies at or below their minimum stock
type ListLowStockHandler struct {
	repo domain.SupplyRepository
}

// NewListLowStockHandler creates a new low stock handler
func NewListLowStockHandler(repo domain.SupplyRepository) *ListLowStockHandler {
	return &ListLowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *ListLowStockHandler) Handle(ctx context.Context) ([]domain.Supply, error) {
	return h.repo.FindLowStock(ctx)
}

// GetSupplyHandler handles get supply query
type GetSupplyHandler struct {
	repo domain.SupplyRepository
}

// NewGetSupplyHandler creates a new get supply handler
func NewGetSupplyHandler(repo domain.SupplyRepository) *GetSupplyHandler {
	return &GetSupplyHandler{repo: repo}
}

// Handle executes the get supply query
func (h *GetSupplyHandler) Handle(ctx context.Context, id uint) (*domain.Supply, error) {
	return h.repo.FindByID(ctx, id)
}
