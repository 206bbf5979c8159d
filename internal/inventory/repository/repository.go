package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
)

// GormSupplyRepository implements domain.SupplyRepository on GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GORM supply repository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

func (r *GormSupplyRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Supply{}, &domain.HistoryEntry{})
}

// WithTx binds the repository to an open transaction
func (r *GormSupplyRepository) WithTx(tx *gorm.DB) domain.SupplyRepository {
	return &GormSupplyRepository{db: tx}
}

// Create inserts a supply and records its opening stock in the ledger
func (r *GormSupplyRepository) Create(ctx context.Context, supply *domain.Supply, actorID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(supply).Error; err != nil {
			return err
		}
		if supply.Stock.IsZero() {
			return nil
		}
		return tx.Create(&domain.HistoryEntry{
			SupplyID:       supply.ID,
			QuantityChange: supply.Stock,
			Type:           domain.HistoryRestock,
			Description:    "Opening stock",
			UserID:         actorID,
		}).Error
	})
	return database.Classify("create supply", err)
}

// FindByID retrieves a supply by ID
func (r *GormSupplyRepository) FindByID(ctx context.Context, id uint) (*domain.Supply, error) {
	var supply domain.Supply
	if err := r.db.WithContext(ctx).First(&supply, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("supply", id)
		}
		return nil, database.Classify("find supply", err)
	}
	return &supply, nil
}

// FindAll retrieves supplies ordered by category then name
func (r *GormSupplyRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Supply, error) {
	var supplies []domain.Supply
	query := r.db.WithContext(ctx).Order("category_id").Order("name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&supplies).Error; err != nil {
		return nil, database.Classify("list supplies", err)
	}
	return supplies, nil
}

// FindLowStock retrieves supplies at or below their minimum stock
func (r *GormSupplyRepository) FindLowStock(ctx context.Context) ([]domain.Supply, error) {
	var supplies []domain.Supply
	err := r.db.WithContext(ctx).
		Where("stock <= min_stock").
		Order("stock ASC").
		Find(&supplies).Error
	if err != nil {
		return nil, database.Classify("list low stock supplies", err)
	}
	return supplies, nil
}

// LockByIDs loads the supplies FOR UPDATE. Locks are taken in ascending id
// order so concurrent sales over overlapping supplies cannot deadlock.
func (r *GormSupplyRepository) LockByIDs(ctx context.Context, ids []uint) (map[uint]*domain.Supply, error) {
	locked := make(map[uint]*domain.Supply, len(ids))
	if len(ids) == 0 {
		return locked, nil
	}

	var supplies []domain.Supply
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&supplies).Error
	if err != nil {
		return nil, database.Classify("lock supplies", err)
	}

	for i := range supplies {
		locked[supplies[i].ID] = &supplies[i]
	}
	return locked, nil
}

// GetRecipe returns the product's recipe lines joined with current stock, in
// the order the lines were defined
func (r *GormSupplyRepository) GetRecipe(ctx context.Context, productID uint) ([]domain.RecipeRequirement, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Table("products").Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, database.Classify("find product", err)
	}
	if count == 0 {
		return nil, apperror.NotFound("product", productID)
	}

	lines := []domain.RecipeRequirement{}
	err := db.Table("product_supplies AS ps").
		Select("ps.supply_id, s.name AS supply_name, s.unit, ps.quantity, ps.optional, s.stock").
		Joins("JOIN supplies s ON s.id = ps.supply_id").
		Where("ps.product_id = ?", productID).
		Order("ps.id").
		Scan(&lines).Error
	if err != nil {
		return nil, database.Classify("get recipe", err)
	}
	return lines, nil
}

// ApplyDeduction decrements stock and appends the matching ledger entry as
// one unit. Sufficiency must already have been checked under the row lock.
func (r *GormSupplyRepository) ApplyDeduction(ctx context.Context, d domain.Deduction) (*domain.Supply, error) {
	if !d.Quantity.IsPositive() {
		return nil, apperror.Validation("deduction quantity must be positive, got %s", d.Quantity.String())
	}

	var supply domain.Supply
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&supply, d.SupplyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("supply", d.SupplyID)
			}
			return err
		}

		supply.Stock = supply.Stock.Sub(d.Quantity)
		supply.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&domain.Supply{}).Where("id = ?", supply.ID).Updates(map[string]interface{}{
			"stock":      supply.Stock,
			"updated_at": supply.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&domain.HistoryEntry{
			SupplyID:       supply.ID,
			SaleID:         d.SaleID,
			QuantityChange: d.Quantity.Neg(),
			Type:           d.Type,
			Description:    d.Description,
			UserID:         d.ActorID,
		}).Error
	})
	if err != nil {
		return nil, database.Classify(fmt.Sprintf("deduct supply %d", d.SupplyID), err)
	}
	return &supply, nil
}

// Restock overwrites the stock with an absolute count and records the
// difference (positive or negative) in the ledger
func (r *GormSupplyRepository) Restock(ctx context.Context, supplyID uint, newStock decimal.Decimal, notes string, actorID uint) (decimal.Decimal, error) {
	if newStock.IsNegative() {
		return decimal.Zero, apperror.Validation("stock cannot be negative")
	}
	if notes == "" {
		notes = "Inventory update"
	}

	var delta decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supply domain.Supply
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&supply, supplyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("supply", supplyID)
			}
			return err
		}

		delta = newStock.Sub(supply.Stock)
		if err := tx.Model(&domain.Supply{}).Where("id = ?", supplyID).Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			return err
		}

		return tx.Create(&domain.HistoryEntry{
			SupplyID:       supplyID,
			QuantityChange: delta,
			Type:           domain.HistoryRestock,
			Description:    notes,
			UserID:         actorID,
		}).Error
	})
	if err != nil {
		return decimal.Zero, database.Classify("restock supply", err)
	}
	return delta, nil
}

// ListHistory retrieves ledger entries, newest first
func (r *GormSupplyRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if filter.SupplyID != 0 {
		query = query.Where("supply_id = ?", filter.SupplyID)
	}
	if filter.SaleID != 0 {
		query = query.Where("sale_id = ?", filter.SaleID)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []domain.HistoryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, database.Classify("list inventory history", err)
	}
	return entries, nil
}
