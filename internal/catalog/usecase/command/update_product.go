package command

import (
	"context"
	"strings"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/logger"
)

// UpdateProductCommand represents a partial product update
type UpdateProductCommand struct {
	ID     uint
	Update domain.ProductUpdate
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo  domain.ProductRepository
	cache domain.ListingCache
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, cache domain.ListingCache) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, cache: cache}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperror.Validation("invalid product id")
	}
	u := cmd.Update
	if u.IsEmpty() {
		return nil, apperror.Validation("no fields to update")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		u.Name = &name
	}
	if u.Price != nil && u.Price.IsNegative() {
		return nil, apperror.Validation("price cannot be negative")
	}

	product, err := h.repo.Update(ctx, cmd.ID, u)
	if err != nil {
		return nil, err
	}
	h.cache.Invalidate(ctx)
	return product, nil
}

// DeactivateProductHandler soft-deletes a product. Its sales are untouched.
type DeactivateProductHandler struct {
	repo  domain.ProductRepository
	cache domain.ListingCache
}

// NewDeactivateProductHandler creates a new deactivate product handler
func NewDeactivateProductHandler(repo domain.ProductRepository, cache domain.ListingCache) *DeactivateProductHandler {
	return &DeactivateProductHandler{repo: repo, cache: cache}
}

// Handle executes the deactivate product command
func (h *DeactivateProductHandler) Handle(ctx context.Context, id uint) error {
	if id == 0 {
		return apperror.Validation("invalid product id")
	}

	inactive := false
	if _, err := h.repo.Update(ctx, id, domain.ProductUpdate{Active: &inactive}); err != nil {
		return err
	}
	h.cache.Invalidate(ctx)

	logger.Info(ctx).Uint("product_id", id).Msg("Product deactivated")
	return nil
}
