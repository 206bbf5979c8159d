package query

import (
	"context"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query. Inactive products are still returned.
func (h *GetProductHandler) Handle(ctx context.Context, id uint) (*domain.Product, error) {
	if id == 0 {
		return nil, apperror.Validation("invalid product id")
	}
	return h.repo.FindByID(ctx, id)
}

// GetRecipeLinesHandler returns a product's declared recipe
type GetRecipeLinesHandler struct {
	repo domain.ProductRepository
}

// NewGetRecipeLinesHandler creates a new get recipe lines handler
func NewGetRecipeLinesHandler(repo domain.ProductRepository) *GetRecipeLinesHandler {
	return &GetRecipeLinesHandler{repo: repo}
}

// Handle executes the get recipe lines query
func (h *GetRecipeLinesHandler) Handle(ctx context.Context, productID uint) ([]domain.RecipeLine, error) {
	if _, err := h.repo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return h.repo.RecipeLines(ctx, productID)
}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	repo domain.ProductRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.ProductRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	return h.repo.ListCategories(ctx)
}
