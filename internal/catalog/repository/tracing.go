package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracedProductRepository wraps a ProductRepository with spans
type TracedProductRepository struct {
	next domain.ProductRepository
}

// NewTracedProductRepository creates a new repository with tracing
func NewTracedProductRepository(next domain.ProductRepository) *TracedProductRepository {
	return &TracedProductRepository{next: next}
}

func (r *TracedProductRepository) WithTx(tx *gorm.DB) domain.ProductRepository {
	return &TracedProductRepository{next: r.next.WithTx(tx)}
}

func (r *TracedProductRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	ctx, span := tracer.Start(ctx, "repository.CreateCategory",
		trace.WithAttributes(attribute.String("category.name", category.Name)),
	)
	defer span.End()

	err := r.next.CreateCategory(ctx, category)
	if err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("category.id", int(category.ID)))
	return nil
}

func (r *TracedProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "repository.ListCategories")
	defer span.End()

	categories, err := r.next.ListCategories(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(categories)))
	return categories, nil
}

func (r *TracedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.CreateProduct",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.Bool("product.priced", product.Price.Valid),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, product)
	if err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

func (r *TracedProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindProduct",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	recordError(span, err)
	return product, err
}

func (r *TracedProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.ListProducts",
		trace.WithAttributes(
			attribute.Int("filter.category_id", int(filter.CategoryID)),
			attribute.String("filter.search", filter.Search),
			attribute.Bool("filter.include_inactive", filter.IncludeInactive),
			attribute.Int("query.limit", filter.Limit),
			attribute.Int("query.offset", filter.Offset),
		),
	)
	defer span.End()

	products, err := r.next.FindAll(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracedProductRepository) Update(ctx context.Context, id uint, update domain.ProductUpdate) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateProduct",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.next.Update(ctx, id, update)
	recordError(span, err)
	return product, err
}

func (r *TracedProductRepository) SetRecipe(ctx context.Context, productID uint, lines []domain.RecipeLine) error {
	ctx, span := tracer.Start(ctx, "repository.SetRecipe",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Int("recipe.lines", len(lines)),
		),
	)
	defer span.End()

	err := r.next.SetRecipe(ctx, productID, lines)
	recordError(span, err)
	return err
}

func (r *TracedProductRepository) RecipeLines(ctx context.Context, productID uint) ([]domain.RecipeLine, error) {
	ctx, span := tracer.Start(ctx, "repository.RecipeLines",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	lines, err := r.next.RecipeLines(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("recipe.lines", len(lines)))
	return lines, nil
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
