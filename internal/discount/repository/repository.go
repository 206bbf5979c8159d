package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/discount/domain"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
)

// GormDiscountRepository implements domain.DiscountRepository on GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GORM discount repository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

func (r *GormDiscountRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Discount{})
}

func (r *GormDiscountRepository) WithTx(tx *gorm.DB) domain.DiscountRepository {
	return &GormDiscountRepository{db: tx}
}

func (r *GormDiscountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	return database.Classify("create discount", r.db.WithContext(ctx).Create(discount).Error)
}

func (r *GormDiscountRepository) FindByID(ctx context.Context, id uint) (*domain.Discount, error) {
	var discount domain.Discount
	if err := r.db.WithContext(ctx).First(&discount, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("discount", id)
		}
		return nil, database.Classify("find discount", err)
	}
	return &discount, nil
}

// FindActive lists active discounts, largest value first
func (r *GormDiscountRepository) FindActive(ctx context.Context) ([]domain.Discount, error) {
	discounts := []domain.Discount{}
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("value DESC").
		Order("id").
		Find(&discounts).Error
	if err != nil {
		return nil, database.Classify("list discounts", err)
	}
	return discounts, nil
}

func (r *GormDiscountRepository) Update(ctx context.Context, id uint, update domain.DiscountUpdate) (*domain.Discount, error) {
	var discount domain.Discount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&discount, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("discount", id)
			}
			return err
		}

		changes := map[string]interface{}{"updated_at": time.Now().UTC()}
		if update.Name != nil {
			changes["name"] = *update.Name
		}
		if update.Type != nil {
			changes["type"] = *update.Type
		}
		if update.Value != nil {
			changes["value"] = *update.Value
		}
		if update.MinAmount != nil {
			changes["min_amount"] = *update.MinAmount
		}
		if update.Active != nil {
			changes["active"] = *update.Active
		}

		if err := tx.Model(&domain.Discount{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&discount, id).Error
	})
	if err != nil {
		return nil, database.Classify("update discount", err)
	}
	return &discount, nil
}
