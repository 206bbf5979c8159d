package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/pos-engine/internal/sale/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
)

// GormSaleRepository implements domain.SaleRepository on GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GORM sale repository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{}, &domain.SupplyUsage{})
}

func (r *GormSaleRepository) WithTx(tx *gorm.DB) domain.SaleRepository {
	return &GormSaleRepository{db: tx}
}

// Create inserts the sale row only; usage lines are written separately
func (r *GormSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(sale).Error
	return database.Classify("create sale", err)
}

func (r *GormSaleRepository) CreateUsage(ctx context.Context, usage *domain.SupplyUsage) error {
	return database.Classify("record supply usage", r.db.WithContext(ctx).Create(usage).Error)
}

func (r *GormSaleRepository) FindByID(ctx context.Context, id uint) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithContext(ctx).
		Preload("SuppliesUsed", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&sale, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("sale", id)
		}
		return nil, database.Classify("find sale", err)
	}
	return &sale, nil
}

// FindAll lists sales newest first within the filter's time range
func (r *GormSaleRepository) FindAll(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	sales := []domain.Sale{}
	if err := query.Find(&sales).Error; err != nil {
		return nil, database.Classify("list sales", err)
	}
	return sales, nil
}
