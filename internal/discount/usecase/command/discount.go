package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/discount/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// CreateDiscountCommand represents the command to create a discount
type CreateDiscountCommand struct {
	Name      string
	Type      domain.Type
	Value     decimal.Decimal
	MinAmount decimal.Decimal
}

// CreateDiscountHandler handles create discount command
type CreateDiscountHandler struct {
	repo domain.DiscountRepository
}

// NewCreateDiscountHandler creates a new create discount handler
func NewCreateDiscountHandler(repo domain.DiscountRepository) *CreateDiscountHandler {
	return &CreateDiscountHandler{repo: repo}
}

// Handle executes the create discount command
func (h *CreateDiscountHandler) Handle(ctx context.Context, cmd CreateDiscountCommand) (*domain.Discount, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if err := domain.ValidateValue(cmd.Type, cmd.Value); err != nil {
		return nil, err
	}
	if cmd.MinAmount.IsNegative() {
		return nil, apperror.Validation("min_amount cannot be negative")
	}

	discount := &domain.Discount{
		Name:      name,
		Type:      cmd.Type,
		Value:     cmd.Value,
		MinAmount: cmd.MinAmount,
		Active:    true,
	}
	if err := h.repo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// UpdateDiscountCommand represents a partial discount update
type UpdateDiscountCommand struct {
	ID     uint
	Update domain.DiscountUpdate
}

// UpdateDiscountHandler handles update discount command. Past sales keep
// their own snapshot and are not affected.
type UpdateDiscountHandler struct {
	repo domain.DiscountRepository
}

// NewUpdateDiscountHandler creates a new update discount handler
func NewUpdateDiscountHandler(repo domain.DiscountRepository) *UpdateDiscountHandler {
	return &UpdateDiscountHandler{repo: repo}
}

// Handle executes the update discount command
func (h *UpdateDiscountHandler) Handle(ctx context.Context, cmd UpdateDiscountCommand) (*domain.Discount, error) {
	if cmd.ID == 0 {
		return nil, apperror.Validation("invalid discount id")
	}
	u := cmd.Update
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, apperror.Validation("name cannot be empty")
	}
	if u.MinAmount != nil && u.MinAmount.IsNegative() {
		return nil, apperror.Validation("min_amount cannot be negative")
	}

	if u.Type != nil || u.Value != nil {
		current, err := h.repo.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		t, v := current.Type, current.Value
		if u.Type != nil {
			t = *u.Type
		}
		if u.Value != nil {
			v = *u.Value
		}
		if err := domain.ValidateValue(t, v); err != nil {
			return nil, err
		}
	}

	return h.repo.Update(ctx, cmd.ID, u)
}

// DeactivateDiscountHandler soft-deletes a discount
type DeactivateDiscountHandler struct {
	repo domain.DiscountRepository
}

// NewDeactivateDiscountHandler creates a new deactivate discount handler
func NewDeactivateDiscountHandler(repo domain.DiscountRepository) *DeactivateDiscountHandler {
	return &DeactivateDiscountHandler{repo: repo}
}

// Handle executes the deactivate discount command
func (h *DeactivateDiscountHandler) Handle(ctx context.Context, id uint) error {
	if id == 0 {
		return apperror.Validation("invalid discount id")
	}
	inactive := false
	_, err := h.repo.Update(ctx, id, domain.DiscountUpdate{Active: &inactive})
	return err
}
