package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products and supplies
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Product represents a sellable item. Products are never hard-deleted;
// deactivation hides them from active listings only.
type Product struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	Name        string              `json:"name" gorm:"not null;index"`
	CategoryID  *uint               `json:"category_id" gorm:"index"`
	Price       decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
	Active      bool                `json:"active" gorm:"not null;default:true;index"`
	Description string              `json:"description"`
	ImageURL    string              `json:"image_url"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// UnitPrice returns the price, or zero when the product is not priced
func (p *Product) UnitPrice() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// RecipeLine declares how much of a supply one unit of a product consumes
type RecipeLine struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	SupplyID  uint            `json:"supply_id" gorm:"not null;index"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	Optional  bool            `json:"optional" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (RecipeLine) TableName() string {
	return "product_supplies"
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	CategoryID      uint
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ProductUpdate carries a partial update; nil fields are left untouched
type ProductUpdate struct {
	Name        *string
	CategoryID  *uint
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
	Active      *bool
}

// IsEmpty reports whether the update changes nothing
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.CategoryID == nil && u.Price == nil &&
		u.Description == nil && u.ImageURL == nil && u.Active == nil
}

// ProductRepository defines the contract for catalog data access
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]Category, error)

	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Update(ctx context.Context, id uint, update ProductUpdate) (*Product, error)

	// SetRecipe replaces every recipe line of the product in one transaction
	SetRecipe(ctx context.Context, productID uint, lines []RecipeLine) error
	RecipeLines(ctx context.Context, productID uint) ([]RecipeLine, error)
}

// ListingCache caches active product listings
type ListingCache interface {
	Get(ctx context.Context, filter ProductFilter) ([]Product, bool)
	Set(ctx context.Context, filter ProductFilter, products []Product)
	Invalidate(ctx context.Context)
}
