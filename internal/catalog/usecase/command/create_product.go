package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
}

// CreateCategoryHandler handles create category command
type CreateCategoryHandler struct {
	repo domain.ProductRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.ProductRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	category := &domain.Category{Name: name, Description: cmd.Description}
	if err := h.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name        string
	CategoryID  *uint
	Price       *decimal.Decimal
	Description string
	ImageURL    string
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo  domain.ProductRepository
	cache domain.ListingCache
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, cache domain.ListingCache) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, cache: cache}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if cmd.Price != nil && cmd.Price.IsNegative() {
		return nil, apperror.Validation("price cannot be negative")
	}

	product := &domain.Product{
		Name:        name,
		CategoryID:  cmd.CategoryID,
		Active:      true,
		Description: cmd.Description,
		ImageURL:    cmd.ImageURL,
	}
	if cmd.Price != nil {
		product.Price = decimal.NewNullDecimal(*cmd.Price)
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	h.cache.Invalidate(ctx)
	return product, nil
}
