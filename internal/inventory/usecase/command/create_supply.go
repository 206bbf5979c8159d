package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// CreateSupplyCommand represents the command to register a new supply
type CreateSupplyCommand struct {
	Name       string
	Unit       string
	Stock      decimal.Decimal
	MinStock   decimal.Decimal
	CategoryID *uint
	ActorID    uint
}

// CreateSupplyHandler handles create supply command
type CreateSupplyHandler struct {
	repo domain.SupplyRepository
}

// NewCreateSupplyHandler creates a new create supply handler
func NewCreateSupplyHandler(repo domain.SupplyRepository) *CreateSupplyHandler {
	return &CreateSupplyHandler{repo: repo}
}

// Handle executes the create supply command. A non-zero opening stock is
// written to the ledger as a restock so that history and stock agree.
func (h *CreateSupplyHandler) Handle(ctx context.Context, cmd CreateSupplyCommand) (*domain.Supply, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	unit := strings.TrimSpace(cmd.Unit)
	if unit == "" {
		return nil, apperror.Validation("unit is required")
	}
	if cmd.Stock.IsNegative() {
		return nil, apperror.Validation("stock cannot be negative")
	}
	if cmd.MinStock.IsNegative() {
		return nil, apperror.Validation("min_stock cannot be negative")
	}
	if !domain.FitsQuantityScale(cmd.Stock) || !domain.FitsQuantityScale(cmd.MinStock) {
		return nil, apperror.Validation("stock allows at most %d decimal places", domain.QuantityScale)
	}

	supply := &domain.Supply{
		Name:       name,
		Unit:       unit,
		Stock:      cmd.Stock,
		MinStock:   cmd.MinStock,
		CategoryID: cmd.CategoryID,
	}
	if err := h.repo.Create(ctx, supply, cmd.ActorID); err != nil {
		return nil, err
	}
	return supply, nil
}
