package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Type is the way a discount value is applied
type Type string

// Discount types. TypeNone only appears in snapshots.
const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
	TypeNone       Type = "none"
)

// Valid reports whether t can be stored on a discount or given ad hoc
func (t Type) Valid() bool {
	return t == TypePercentage || t == TypeFixed
}

// Discount is a named, reusable discount
type Discount struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"not null"`
	Type      Type            `json:"type" gorm:"type:varchar(16);not null"`
	Value     decimal.Decimal `json:"value" gorm:"type:decimal(10,2);not null"`
	MinAmount decimal.Decimal `json:"min_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Active    bool            `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Discount) TableName() string {
	return "discounts"
}

// DiscountUpdate carries a partial update; nil fields are left untouched
type DiscountUpdate struct {
	Name      *string
	Type      *Type
	Value     *decimal.Decimal
	MinAmount *decimal.Decimal
	Active    *bool
}

// DiscountRepository defines the contract for discount data access
type DiscountRepository interface {
	WithTx(tx *gorm.DB) DiscountRepository

	Create(ctx context.Context, discount *Discount) error
	FindByID(ctx context.Context, id uint) (*Discount, error)
	FindActive(ctx context.Context) ([]Discount, error)
	Update(ctx context.Context, id uint, update DiscountUpdate) (*Discount, error)
}
