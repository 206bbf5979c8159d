package query

import (
	"context"

	"github.com/tair/pos-engine/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	CategoryID      uint
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo  domain.ProductRepository
	cache domain.ListingCache
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, cache domain.ListingCache) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, cache: cache}
}

// Handle executes the list products query. Only active listings are cached.
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 500 {
		query.Limit = 500
	}

	filter := domain.ProductFilter{
		CategoryID:      query.CategoryID,
		Search:          query.Search,
		IncludeInactive: query.IncludeInactive,
		Limit:           query.Limit,
		Offset:          query.Offset,
	}

	if !filter.IncludeInactive {
		if products, ok := h.cache.Get(ctx, filter); ok {
			return products, nil
		}
	}

	products, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if !filter.IncludeInactive {
		h.cache.Set(ctx, filter, products)
	}
	return products, nil
}
