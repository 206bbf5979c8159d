package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/logger"
)

// RestockCommand sets a supply to an absolute counted stock
type RestockCommand struct {
	SupplyID uint
	NewStock decimal.Decimal
	Notes    string
	ActorID  uint
}

// RestockResult reports the stock change the restock produced
type RestockResult struct {
	SupplyID uint            `json:"supply_id"`
	NewStock decimal.Decimal `json:"new_stock"`
	Delta    decimal.Decimal `json:"delta"`
}

// RestockHandler handles restock command
type RestockHandler struct {
	repo domain.SupplyRepository
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(repo domain.SupplyRepository) *RestockHandler {
	return &RestockHandler{repo: repo}
}

// Handle executes the restock command
func (h *RestockHandler) Handle(ctx context.Context, cmd RestockCommand) (*RestockResult, error) {
	if cmd.SupplyID == 0 {
		return nil, apperror.Validation("supply_id is required")
	}
	if cmd.NewStock.IsNegative() {
		return nil, apperror.Validation("new_stock cannot be negative")
	}
	if !domain.FitsQuantityScale(cmd.NewStock) {
		return nil, apperror.Validation("new_stock allows at most %d decimal places", domain.QuantityScale)
	}

	delta, err := h.repo.Restock(ctx, cmd.SupplyID, cmd.NewStock, cmd.Notes, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("supply_id", cmd.SupplyID).
		Str("new_stock", cmd.NewStock.String()).
		Str("delta", delta.String()).
		Msg("Supply restocked")

	return &RestockResult{SupplyID: cmd.SupplyID, NewStock: cmd.NewStock, Delta: delta}, nil
}
