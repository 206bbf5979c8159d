package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracedSupplyRepository wraps a SupplyRepository with spans
type TracedSupplyRepository struct {
	next domain.SupplyRepository
}

// NewTracedSupplyRepository creates a new repository with tracing
func NewTracedSupplyRepository(next domain.SupplyRepository) *TracedSupplyRepository {
	return &TracedSupplyRepository{next: next}
}

func (r *TracedSupplyRepository) WithTx(tx *gorm.DB) domain.SupplyRepository {
	return &TracedSupplyRepository{next: r.next.WithTx(tx)}
}

func (r *TracedSupplyRepository) Create(ctx context.Context, supply *domain.Supply, actorID uint) error {
	ctx, span := tracer.Start(ctx, "repository.CreateSupply",
		trace.WithAttributes(
			attribute.String("supply.name", supply.Name),
			attribute.String("supply.stock", supply.Stock.String()),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, supply, actorID)
	if err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("supply.id", int(supply.ID)))
	return nil
}

func (r *TracedSupplyRepository) FindByID(ctx context.Context, id uint) (*domain.Supply, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSupply",
		trace.WithAttributes(attribute.Int("supply.id", int(id))),
	)
	defer span.End()

	supply, err := r.next.FindByID(ctx, id)
	recordError(span, err)
	return supply, err
}

func (r *TracedSupplyRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Supply, error) {
	ctx, span := tracer.Start(ctx, "repository.ListSupplies",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	supplies, err := r.next.FindAll(ctx, limit, offset)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(supplies)))
	return supplies, nil
}

func (r *TracedSupplyRepository) FindLowStock(ctx context.Context) ([]domain.Supply, error) {
	ctx, span := tracer.Start(ctx, "repository.ListLowStock")
	defer span.End()

	supplies, err := r.next.FindLowStock(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(supplies)))
	return supplies, nil
}

func (r *TracedSupplyRepository) LockByIDs(ctx context.Context, ids []uint) (map[uint]*domain.Supply, error) {
	ctx, span := tracer.Start(ctx, "repository.LockSupplies",
		trace.WithAttributes(attribute.Int("supply.count", len(ids))),
	)
	defer span.End()

	locked, err := r.next.LockByIDs(ctx, ids)
	recordError(span, err)
	return locked, err
}

func (r *TracedSupplyRepository) GetRecipe(ctx context.Context, productID uint) ([]domain.RecipeRequirement, error) {
	ctx, span := tracer.Start(ctx, "repository.GetRecipe",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	lines, err := r.next.GetRecipe(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("recipe.lines", len(lines)))
	return lines, nil
}

func (r *TracedSupplyRepository) ApplyDeduction(ctx context.Context, d domain.Deduction) (*domain.Supply, error) {
	ctx, span := tracer.Start(ctx, "repository.ApplyDeduction",
		trace.WithAttributes(
			attribute.Int("supply.id", int(d.SupplyID)),
			attribute.String("deduction.quantity", d.Quantity.String()),
			attribute.String("deduction.type", string(d.Type)),
		),
	)
	defer span.End()

	supply, err := r.next.ApplyDeduction(ctx, d)
	recordError(span, err)
	return supply, err
}

func (r *TracedSupplyRepository) Restock(ctx context.Context, supplyID uint, newStock decimal.Decimal, notes string, actorID uint) (decimal.Decimal, error) {
	ctx, span := tracer.Start(ctx, "repository.Restock",
		trace.WithAttributes(
			attribute.Int("supply.id", int(supplyID)),
			attribute.String("supply.new_stock", newStock.String()),
		),
	)
	defer span.End()

	delta, err := r.next.Restock(ctx, supplyID, newStock, notes, actorID)
	if err != nil {
		recordError(span, err)
		return delta, err
	}
	span.SetAttributes(attribute.String("restock.delta", delta.String()))
	return delta, nil
}

func (r *TracedSupplyRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "repository.ListHistory",
		trace.WithAttributes(
			attribute.Int("filter.supply_id", int(filter.SupplyID)),
			attribute.Int("filter.limit", filter.Limit),
		),
	)
	defer span.End()

	entries, err := r.next.ListHistory(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
