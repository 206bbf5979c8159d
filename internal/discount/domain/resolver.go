package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/pkg/apperror"
)

var hundred = decimal.NewFromInt(100)

// Snapshot records the discount exactly as it was applied to a sale, so the
// sale can be explained after the discount record changes.
type Snapshot struct {
	Type       Type            `json:"type"`
	Value      decimal.Decimal `json:"value"`
	DiscountID *uint           `json:"discount_id,omitempty"`
	Name       string          `json:"name,omitempty"`
}

// NoDiscount is the snapshot of a sale without discount
func NoDiscount() Snapshot {
	return Snapshot{Type: TypeNone, Value: decimal.Zero}
}

// AdHoc is a discount given at the till without a stored record
type AdHoc struct {
	Type  Type            `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Selection is the caller's discount choice: a stored discount, an ad hoc
// one, or neither
type Selection struct {
	DiscountID *uint
	AdHoc      *AdHoc
}

// Resolution is the priced outcome of a selection
type Resolution struct {
	Subtotal decimal.Decimal
	Amount   decimal.Decimal
	Total    decimal.Decimal
	Snapshot Snapshot
}

// ValidateValue checks a discount value against its type
func ValidateValue(t Type, value decimal.Decimal) error {
	if !t.Valid() {
		return apperror.Validation("discount type must be %q or %q, got %q", TypePercentage, TypeFixed, t)
	}
	if value.IsNegative() {
		return apperror.Validation("discount value cannot be negative")
	}
	if t == TypePercentage && value.GreaterThan(hundred) {
		return apperror.Validation("percentage discount cannot exceed 100")
	}
	return nil
}

// Amount computes the discount amount. A percentage applies to the subtotal;
// a fixed value applies per unit sold.
func Amount(t Type, value, subtotal decimal.Decimal, quantity int64) decimal.Decimal {
	switch t {
	case TypePercentage:
		return subtotal.Mul(value).Div(hundred).Round(2)
	case TypeFixed:
		return value.Mul(decimal.NewFromInt(quantity)).Round(2)
	default:
		return decimal.Zero
	}
}

// Total is subtotal minus amount, never below zero
func Total(subtotal, amount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(amount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Resolver prices a sale against the caller's discount selection
type Resolver struct {
	repo DiscountRepository
}

// NewResolver creates a resolver reading stored discounts from repo
func NewResolver(repo DiscountRepository) *Resolver {
	return &Resolver{repo: repo}
}

// WithTx returns a resolver reading inside the caller's transaction
func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{repo: r.repo.WithTx(tx)}
}

// Resolve computes the discount for subtotal over quantity units. Stored
// discounts must be active and their minimum amount must be met.
func (r *Resolver) Resolve(ctx context.Context, sel Selection, subtotal decimal.Decimal, quantity int64) (Resolution, error) {
	if sel.DiscountID != nil && sel.AdHoc != nil {
		return Resolution{}, apperror.Validation("choose either a stored discount or an ad hoc discount, not both")
	}

	res := Resolution{Subtotal: subtotal, Amount: decimal.Zero, Snapshot: NoDiscount()}

	switch {
	case sel.DiscountID != nil:
		d, err := r.repo.FindByID(ctx, *sel.DiscountID)
		if err != nil {
			return Resolution{}, err
		}
		if !d.Active {
			return Resolution{}, apperror.NotFound("discount", d.ID)
		}
		if d.MinAmount.GreaterThan(subtotal) {
			return Resolution{}, apperror.Validation("discount %q requires a minimum amount of %s", d.Name, d.MinAmount.StringFixed(2))
		}
		res.Amount = Amount(d.Type, d.Value, subtotal, quantity)
		id := d.ID
		res.Snapshot = Snapshot{Type: d.Type, Value: d.Value, DiscountID: &id, Name: d.Name}

	case sel.AdHoc != nil:
		if err := ValidateValue(sel.AdHoc.Type, sel.AdHoc.Value); err != nil {
			return Resolution{}, err
		}
		res.Amount = Amount(sel.AdHoc.Type, sel.AdHoc.Value, subtotal, quantity)
		res.Snapshot = Snapshot{Type: sel.AdHoc.Type, Value: sel.AdHoc.Value}
	}

	res.Total = Total(subtotal, res.Amount)
	return res, nil
}
