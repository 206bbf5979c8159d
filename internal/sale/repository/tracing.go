package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/sale/domain"
)

var tracer = otel.Tracer("sale-repository")

// TracedSaleRepository wraps a SaleRepository with spans. Inside a sale
// transaction the spans nest under the engine's sale.persist span.
type TracedSaleRepository struct {
	next domain.SaleRepository
}

// NewTracedSaleRepository creates a new repository with tracing
func NewTracedSaleRepository(next domain.SaleRepository) *TracedSaleRepository {
	return &TracedSaleRepository{next: next}
}

func (r *TracedSaleRepository) WithTx(tx *gorm.DB) domain.SaleRepository {
	return &TracedSaleRepository{next: r.next.WithTx(tx)}
}

func (r *TracedSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	ctx, span := tracer.Start(ctx, "repository.CreateSale",
		trace.WithAttributes(
			attribute.Int("product.id", int(sale.ProductID)),
			attribute.Int64("sale.quantity", sale.Quantity),
			attribute.String("sale.total", sale.TotalAmount.String()),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, sale); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("sale.id", int(sale.ID)))
	return nil
}

func (r *TracedSaleRepository) CreateUsage(ctx context.Context, usage *domain.SupplyUsage) error {
	ctx, span := tracer.Start(ctx, "repository.CreateSupplyUsage",
		trace.WithAttributes(
			attribute.Int("sale.id", int(usage.SaleID)),
			attribute.Int("supply.id", int(usage.SupplyID)),
			attribute.String("usage.quantity", usage.Quantity.String()),
		),
	)
	defer span.End()

	err := r.next.CreateUsage(ctx, usage)
	recordError(span, err)
	return err
}

func (r *TracedSaleRepository) FindByID(ctx context.Context, id uint) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSale",
		trace.WithAttributes(attribute.Int("sale.id", int(id))),
	)
	defer span.End()

	sale, err := r.next.FindByID(ctx, id)
	recordError(span, err)
	return sale, err
}

func (r *TracedSaleRepository) FindAll(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.ListSales",
		trace.WithAttributes(
			attribute.String("filter.from", filter.From.String()),
			attribute.String("filter.to", filter.To.String()),
			attribute.Int("filter.product_id", int(filter.ProductID)),
			attribute.Int("query.limit", filter.Limit),
		),
	)
	defer span.End()

	sales, err := r.next.FindAll(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(sales)))
	return sales, nil
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
