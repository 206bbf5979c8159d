package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	discount "github.com/tair/pos-engine/internal/discount/domain"
)

// MaxQuantity bounds the units of one sale
const MaxQuantity = 10000

// MaxAmount is the largest amount the sale money columns hold
var MaxAmount = decimal.RequireFromString("99999999.99")

// Sale is one committed sale. Sales are append-only.
type Sale struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	UserID         uint              `json:"user_id" gorm:"not null;index"`
	ProductID      uint              `json:"product_id" gorm:"not null;index"`
	Quantity       int64             `json:"quantity" gorm:"not null"`
	Subtotal       decimal.Decimal   `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal   `json:"discount_amount" gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal   `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Discount       discount.Snapshot `json:"discount" gorm:"serializer:json;type:text;not null"`
	CreatedAt      time.Time         `json:"created_at" gorm:"index"`
	SuppliesUsed   []SupplyUsage     `json:"supplies_used,omitempty" gorm:"foreignKey:SaleID"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SupplyUsage records a discretionary supply consumed by a sale
type SupplyUsage struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	SaleID   uint            `json:"sale_id" gorm:"not null;index"`
	SupplyID uint            `json:"supply_id" gorm:"not null;index"`
	Quantity decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
}

// TableName specifies the table name
func (SupplyUsage) TableName() string {
	return "supplies_used"
}

// SaleFilter narrows a sale listing
type SaleFilter struct {
	From      time.Time
	To        time.Time
	ProductID uint
	Limit     int
	Offset    int
}

// SaleRepository defines the contract for sale data access
type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository

	Create(ctx context.Context, sale *Sale) error
	CreateUsage(ctx context.Context, usage *SupplyUsage) error
	FindByID(ctx context.Context, id uint) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)
}
