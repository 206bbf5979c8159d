package domain

import (
	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/pkg/apperror"
)

// CheckSufficiency verifies that every line can be served multiplier times.
// The first insufficient line, in the given order, is reported.
func CheckSufficiency(lines []RecipeRequirement, multiplier int64) error {
	m := decimal.NewFromInt(multiplier)
	for _, line := range lines {
		required := line.Quantity.Mul(m)
		if line.Stock.LessThan(required) {
			return apperror.Insufficient(apperror.Shortage{
				SupplyID:   line.SupplyID,
				SupplyName: line.SupplyName,
				Available:  line.Stock,
				Required:   required,
				Unit:       line.Unit,
			})
		}
	}
	return nil
}

// Mandatory returns the lines that are deducted on every sale
func Mandatory(lines []RecipeRequirement) []RecipeRequirement {
	out := make([]RecipeRequirement, 0, len(lines))
	for _, line := range lines {
		if !line.Optional {
			out = append(out, line)
		}
	}
	return out
}

// Ledger tracks how much of each supply a unit of work has already claimed,
// so that several lines hitting the same supply are checked against their
// combined demand.
type Ledger struct {
	supplies map[uint]*Supply
	claimed  map[uint]decimal.Decimal
}

// NewLedger creates a ledger over freshly locked supplies
func NewLedger(supplies map[uint]*Supply) *Ledger {
	return &Ledger{supplies: supplies, claimed: make(map[uint]decimal.Decimal)}
}

// Claim reserves quantity of a supply or reports the shortage.
// An unknown supply is reported as not found.
func (l *Ledger) Claim(supplyID uint, quantity decimal.Decimal) error {
	supply, ok := l.supplies[supplyID]
	if !ok {
		return apperror.NotFound("supply", supplyID)
	}

	available := supply.Stock.Sub(l.claimed[supplyID])
	if available.LessThan(quantity) {
		return apperror.Insufficient(apperror.Shortage{
			SupplyID:   supply.ID,
			SupplyName: supply.Name,
			Available:  available,
			Required:   quantity,
			Unit:       supply.Unit,
		})
	}

	l.claimed[supplyID] = l.claimed[supplyID].Add(quantity)
	return nil
}

// Remaining returns the stock of a supply after all claims
func (l *Ledger) Remaining(supplyID uint) decimal.Decimal {
	supply, ok := l.supplies[supplyID]
	if !ok {
		return decimal.Zero
	}
	return supply.Stock.Sub(l.claimed[supplyID])
}
