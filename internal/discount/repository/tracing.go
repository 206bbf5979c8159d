package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/discount/domain"
)

var tracer = otel.Tracer("discount-repository")

// TracedDiscountRepository wraps a DiscountRepository with spans
type TracedDiscountRepository struct {
	next domain.DiscountRepository
}

func NewTracedDiscountRepository(next domain.DiscountRepository) *TracedDiscountRepository {
	return &TracedDiscountRepository{next: next}
}

func (r *TracedDiscountRepository) WithTx(tx *gorm.DB) domain.DiscountRepository {
	return &TracedDiscountRepository{next: r.next.WithTx(tx)}
}

func (r *TracedDiscountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	ctx, span := tracer.Start(ctx, "repository.CreateDiscount",
		trace.WithAttributes(
			attribute.String("discount.type", string(discount.Type)),
			attribute.String("discount.value", discount.Value.String()),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, discount); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("discount.id", int(discount.ID)))
	return nil
}

func (r *TracedDiscountRepository) FindByID(ctx context.Context, id uint) (*domain.Discount, error) {
	ctx, span := tracer.Start(ctx, "repository.FindDiscount",
		trace.WithAttributes(attribute.Int("discount.id", int(id))),
	)
	defer span.End()

	discount, err := r.next.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return discount, err
}

func (r *TracedDiscountRepository) FindActive(ctx context.Context) ([]domain.Discount, error) {
	ctx, span := tracer.Start(ctx, "repository.ListActiveDiscounts")
	defer span.End()

	discounts, err := r.next.FindActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(discounts)))
	return discounts, nil
}

func (r *TracedDiscountRepository) Update(ctx context.Context, id uint, update domain.DiscountUpdate) (*domain.Discount, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateDiscount",
		trace.WithAttributes(attribute.Int("discount.id", int(id))),
	)
	defer span.End()

	discount, err := r.next.Update(ctx, id, update)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return discount, err
}
