package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/catalog/domain"
	inventory "github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// RecipeLineInput is one requested recipe line
type RecipeLineInput struct {
	SupplyID uint
	Quantity decimal.Decimal
	Optional bool
}

// SetRecipeCommand replaces a product's recipe
type SetRecipeCommand struct {
	ProductID uint
	Lines     []RecipeLineInput
}

// SetRecipeHandler handles set recipe command
type SetRecipeHandler struct {
	repo domain.ProductRepository
}

// NewSetRecipeHandler creates a new set recipe handler
func NewSetRecipeHandler(repo domain.ProductRepository) *SetRecipeHandler {
	return &SetRecipeHandler{repo: repo}
}

// Handle executes the set recipe command. An empty line set clears the recipe.
func (h *SetRecipeHandler) Handle(ctx context.Context, cmd SetRecipeCommand) ([]domain.RecipeLine, error) {
	if cmd.ProductID == 0 {
		return nil, apperror.Validation("invalid product id")
	}

	seen := make(map[uint]bool, len(cmd.Lines))
	lines := make([]domain.RecipeLine, 0, len(cmd.Lines))
	for i, in := range cmd.Lines {
		if in.SupplyID == 0 {
			return nil, apperror.Validation("line %d: supply_id is required", i+1)
		}
		if !in.Quantity.IsPositive() {
			return nil, apperror.Validation("line %d: quantity must be positive", i+1)
		}
		if !inventory.FitsQuantityScale(in.Quantity) {
			return nil, apperror.Validation("line %d: quantity allows at most %d decimal places", i+1, inventory.QuantityScale)
		}
		if seen[in.SupplyID] {
			return nil, apperror.Validation("line %d: supply %d appears more than once", i+1, in.SupplyID)
		}
		seen[in.SupplyID] = true

		lines = append(lines, domain.RecipeLine{
			ProductID: cmd.ProductID,
			SupplyID:  in.SupplyID,
			Quantity:  in.Quantity,
			Optional:  in.Optional,
		})
	}

	if err := h.repo.SetRecipe(ctx, cmd.ProductID, lines); err != nil {
		return nil, err
	}
	return h.repo.RecipeLines(ctx, cmd.ProductID)
}
