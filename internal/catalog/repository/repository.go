package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
)

// GormProductRepository implements domain.ProductRepository on GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.RecipeLine{})
}

func (r *GormProductRepository) WithTx(tx *gorm.DB) domain.ProductRepository {
	return &GormProductRepository{db: tx}
}

func (r *GormProductRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return database.Classify("create category", r.db.WithContext(ctx).Create(category).Error)
}

func (r *GormProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, database.Classify("list categories", err)
	}
	return categories, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return database.Classify("create product", r.db.WithContext(ctx).Create(product).Error)
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("product", id)
		}
		return nil, database.Classify("find product", err)
	}
	return &product, nil
}

// FindAll lists products ordered by name. Search matches name or description
// case-insensitively.
func (r *GormProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Order("name").Order("id")
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	products := []domain.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, database.Classify("list products", err)
	}
	return products, nil
}

// Update applies only the provided fields
func (r *GormProductRepository) Update(ctx context.Context, id uint, update domain.ProductUpdate) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("product", id)
			}
			return err
		}

		changes := map[string]interface{}{"updated_at": time.Now().UTC()}
		if update.Name != nil {
			changes["name"] = *update.Name
		}
		if update.CategoryID != nil {
			changes["category_id"] = *update.CategoryID
		}
		if update.Price != nil {
			changes["price"] = *update.Price
		}
		if update.Description != nil {
			changes["description"] = *update.Description
		}
		if update.ImageURL != nil {
			changes["image_url"] = *update.ImageURL
		}
		if update.Active != nil {
			changes["active"] = *update.Active
		}

		if err := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&product, id).Error
	})
	if err != nil {
		return nil, database.Classify("update product", err)
	}
	return &product, nil
}

// SetRecipe deletes the existing lines and inserts the new set inside one
// transaction, so readers see either the old recipe or the new one.
func (r *GormProductRepository) SetRecipe(ctx context.Context, productID uint, lines []domain.RecipeLine) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperror.NotFound("product", productID)
		}

		if len(lines) > 0 {
			ids := make([]uint, 0, len(lines))
			for _, line := range lines {
				ids = append(ids, line.SupplyID)
			}
			var found int64
			if err := tx.Table("supplies").Where("id IN ?", ids).Count(&found).Error; err != nil {
				return err
			}
			if int(found) != len(ids) {
				return apperror.Validation("recipe references an unknown supply")
			}
		}

		if err := tx.Where("product_id = ?", productID).Delete(&domain.RecipeLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}

		rows := make([]domain.RecipeLine, len(lines))
		for i, line := range lines {
			rows[i] = domain.RecipeLine{
				ProductID: productID,
				SupplyID:  line.SupplyID,
				Quantity:  line.Quantity,
				Optional:  line.Optional,
			}
		}
		return tx.Create(&rows).Error
	})
	return database.Classify("set recipe", err)
}

func (r *GormProductRepository) RecipeLines(ctx context.Context, productID uint) ([]domain.RecipeLine, error) {
	lines := []domain.RecipeLine{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, database.Classify("list recipe lines", err)
	}
	return lines, nil
}
