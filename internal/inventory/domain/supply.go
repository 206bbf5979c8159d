package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoryType tags why a supply's stock changed
type HistoryType string

// History types
const (
	HistorySale          HistoryType = "sale"
	HistoryDiscretionary HistoryType = "discretionary"
	HistoryRestock       HistoryType = "restock"
)

// QuantityScale is the number of decimal places stock and ledger columns keep
const QuantityScale = 3

// FitsQuantityScale reports whether q is stored exactly by a stock column
func FitsQuantityScale(q decimal.Decimal) bool {
	return q.Round(QuantityScale).Equal(q)
}

// Supply represents a raw consumable tracked by stock level
type Supply struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null;index"`
	Unit       string          `json:"unit" gorm:"not null"`
	Stock      decimal.Decimal `json:"stock" gorm:"type:decimal(12,3);not null;default:0"`
	MinStock   decimal.Decimal `json:"min_stock" gorm:"type:decimal(12,3);not null;default:0"`
	CategoryID *uint           `json:"category_id" gorm:"index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Supply) TableName() string {
	return "supplies"
}

// IsLow checks if stock has reached the minimum threshold
func (s *Supply) IsLow() bool {
	return s.Stock.LessThanOrEqual(s.MinStock)
}

// HistoryEntry is one row of the append-only inventory ledger
type HistoryEntry struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	SupplyID       uint            `json:"supply_id" gorm:"not null;index"`
	SaleID         *uint           `json:"sale_id,omitempty" gorm:"index"`
	QuantityChange decimal.Decimal `json:"quantity_change" gorm:"type:decimal(12,3);not null"`
	Type           HistoryType     `json:"type" gorm:"type:varchar(32);not null;index"`
	Description    string          `json:"description"`
	UserID         uint            `json:"user_id" gorm:"not null"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (HistoryEntry) TableName() string {
	return "inventory_history"
}

// RecipeRequirement is a recipe line joined with the current state of its supply
type RecipeRequirement struct {
	SupplyID   uint            `json:"supply_id"`
	SupplyName string          `json:"supply_name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	Optional   bool            `json:"optional"`
	Stock      decimal.Decimal `json:"stock"`
}

// Deduction describes one stock decrement and the ledger entry that explains it.
// Quantity is positive; the store negates it.
type Deduction struct {
	SupplyID    uint
	Quantity    decimal.Decimal
	Type        HistoryType
	Description string
	ActorID     uint
	SaleID      *uint
}

// HistoryFilter narrows a ledger listing
type HistoryFilter struct {
	SupplyID uint
	SaleID   uint
	Since    time.Time
	Limit    int
}

// SupplyRepository defines the contract for supply and ledger data access.
// WithTx returns a repository bound to an open transaction; every method on it
// runs inside that transaction.
type SupplyRepository interface {
	WithTx(tx *gorm.DB) SupplyRepository

	Create(ctx context.Context, supply *Supply, actorID uint) error
	FindByID(ctx context.Context, id uint) (*Supply, error)
	FindAll(ctx context.Context, limit, offset int) ([]Supply, error)
	FindLowStock(ctx context.Context) ([]Supply, error)

	// LockByIDs loads and row-locks the given supplies in ascending id order
	LockByIDs(ctx context.Context, ids []uint) (map[uint]*Supply, error)
	GetRecipe(ctx context.Context, productID uint) ([]RecipeRequirement, error)
	ApplyDeduction(ctx context.Context, d Deduction) (*Supply, error)
	Restock(ctx context.Context, supplyID uint, newStock decimal.Decimal, notes string, actorID uint) (decimal.Decimal, error)

	ListHistory(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
}
