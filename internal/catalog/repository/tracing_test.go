package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/internal/testutil"
)

func TestTracedProductRepository(t *testing.T) {
	gormRepo, supplyIDs := setup(t)
	repo := NewTracedProductRepository(gormRepo)
	spans := testutil.RecordSpans(t)
	ctx := context.Background()

	product := &domain.Product{Name: "Cortado", Active: true}
	require.NoError(t, repo.Create(ctx, product))
	require.NoError(t, repo.SetRecipe(ctx, product.ID, []domain.RecipeLine{
		{SupplyID: supplyIDs[0], Quantity: dec("18")},
	}))
	_, err := repo.FindByID(ctx, 999)
	require.Error(t, err)

	ended := spans()
	assert.Equal(t, []string{"repository.CreateProduct", "repository.SetRecipe", "repository.FindProduct"}, testutil.SpanNames(ended))
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[2].Status().Code)
}

func TestTracedProductRepository_WithTxStaysTraced(t *testing.T) {
	gormRepo, _ := setup(t)
	repo := NewTracedProductRepository(gormRepo)
	spans := testutil.RecordSpans(t)

	err := gormRepo.db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.WithTx(tx).ListCategories(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"repository.ListCategories"}, testutil.SpanNames(spans()))
}
