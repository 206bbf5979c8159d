package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalog "github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/internal/testutil"
	"github.com/tair/pos-engine/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSupply(t *testing.T, repo *GormSupplyRepository, name, stock, min string) *domain.Supply {
	t.Helper()
	s := &domain.Supply{Name: name, Unit: "g", Stock: dec(stock), MinStock: dec(min)}
	require.NoError(t, repo.Create(context.Background(), s, 7))
	return s
}

func newProduct(t *testing.T, db *gorm.DB, name string, lines ...catalog.RecipeLine) *catalog.Product {
	t.Helper()
	p := &catalog.Product{Name: name, Active: true}
	require.NoError(t, db.Create(p).Error)
	for i := range lines {
		lines[i].ProductID = p.ID
	}
	if len(lines) > 0 {
		require.NoError(t, db.Create(&lines).Error)
	}
	return p
}

func TestCreate_RecordsOpeningStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()

	s := newSupply(t, repo, "Coffee beans", "500", "100")
	require.NotZero(t, s.ID)

	entries, err := repo.ListHistory(ctx, domain.HistoryFilter{SupplyID: s.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryRestock, entries[0].Type)
	assert.True(t, entries[0].QuantityChange.Equal(dec("500")))
	assert.Equal(t, uint(7), entries[0].UserID)
	assert.Nil(t, entries[0].SaleID)
}

func TestCreate_ZeroStockHasNoLedgerEntry(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)

	s := newSupply(t, repo, "Lids", "0", "10")

	entries, err := repo.ListHistory(context.Background(), domain.HistoryFilter{SupplyID: s.ID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := NewGormSupplyRepository(testutil.NewDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRestock_RecordsSignedDelta(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	s := newSupply(t, repo, "Milk", "400", "100")

	delta, err := repo.Restock(ctx, s.ID, dec("1000"), "", 3)
	require.NoError(t, err)
	assert.True(t, delta.Equal(dec("600")))

	delta, err = repo.Restock(ctx, s.ID, dec("250"), "Spoiled carton", 3)
	require.NoError(t, err)
	assert.True(t, delta.Equal(dec("-750")))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(dec("250")))

	entries, err := repo.ListHistory(ctx, domain.HistoryFilter{SupplyID: s.ID})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Spoiled carton", entries[0].Description)
	assert.Equal(t, "Inventory update", entries[1].Description)
}

func TestRestock_Validation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	s := newSupply(t, repo, "Milk", "400", "100")

	_, err := repo.Restock(ctx, s.ID, dec("-1"), "", 0)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = repo.Restock(ctx, 999, dec("10"), "", 0)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestApplyDeduction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	s := newSupply(t, repo, "Coffee beans", "100", "20")
	saleID := uint(11)

	updated, err := repo.ApplyDeduction(ctx, domain.Deduction{
		SupplyID:    s.ID,
		Quantity:    dec("36"),
		Type:        domain.HistorySale,
		Description: "Sale #11: 2 x Espresso",
		ActorID:     5,
		SaleID:      &saleID,
	})
	require.NoError(t, err)
	assert.True(t, updated.Stock.Equal(dec("64")))

	entries, err := repo.ListHistory(ctx, domain.HistoryFilter{SaleID: saleID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].QuantityChange.Equal(dec("-36")))
	assert.Equal(t, domain.HistorySale, entries[0].Type)
	require.NotNil(t, entries[0].SaleID)
	assert.Equal(t, saleID, *entries[0].SaleID)
}

func TestApplyDeduction_RejectsNonPositive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	s := newSupply(t, repo, "Coffee beans", "100", "20")

	_, err := repo.ApplyDeduction(context.Background(), domain.Deduction{SupplyID: s.ID, Quantity: decimal.Zero})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestGetRecipe(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	beans := newSupply(t, repo, "Coffee beans", "100", "20")
	milk := newSupply(t, repo, "Milk", "400", "100")

	latte := newProduct(t, db, "Latte",
		catalog.RecipeLine{SupplyID: milk.ID, Quantity: dec("150")},
		catalog.RecipeLine{SupplyID: beans.ID, Quantity: dec("18")},
		catalog.RecipeLine{SupplyID: beans.ID, Quantity: dec("2"), Optional: true},
	)

	lines, err := repo.GetRecipe(ctx, latte.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Milk", lines[0].SupplyName)
	assert.True(t, lines[0].Stock.Equal(dec("400")))
	assert.Equal(t, "g", lines[1].Unit)
	assert.True(t, lines[2].Optional)
	assert.Len(t, domain.Mandatory(lines), 2)
}

func TestGetRecipe_EmptyAndUnknown(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	water := newProduct(t, db, "Water")

	lines, err := repo.GetRecipe(ctx, water.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = repo.GetRecipe(ctx, 999)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFindLowStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	newSupply(t, repo, "Plenty", "100", "10")
	newSupply(t, repo, "At minimum", "10", "10")
	newSupply(t, repo, "Empty", "0", "5")

	low, err := repo.FindLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Empty", low[0].Name)
	assert.Equal(t, "At minimum", low[1].Name)
}

func TestLockByIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	a := newSupply(t, repo, "A", "1", "0")
	b := newSupply(t, repo, "B", "2", "0")

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).LockByIDs(context.Background(), []uint{b.ID, a.ID, 999})
		require.NoError(t, err)
		assert.Len(t, locked, 2)
		assert.True(t, locked[b.ID].Stock.Equal(dec("2")))
		return nil
	})
	require.NoError(t, err)

	locked, err := repo.LockByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, locked)
}

func TestListHistory_SinceAndLimit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormSupplyRepository(db)
	ctx := context.Background()
	s := newSupply(t, repo, "Milk", "10", "0")
	for _, n := range []string{"20", "30", "40"} {
		_, err := repo.Restock(ctx, s.ID, dec(n), "", 0)
		require.NoError(t, err)
	}

	old := time.Now().UTC().AddDate(0, 0, -60)
	require.NoError(t, db.Model(&domain.HistoryEntry{}).
		Where("supply_id = ? AND description = ?", s.ID, "Opening stock").
		Update("created_at", old).Error)

	recent, err := repo.ListHistory(ctx, domain.HistoryFilter{SupplyID: s.ID, Since: time.Now().UTC().AddDate(0, 0, -30)})
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	limited, err := repo.ListHistory(ctx, domain.HistoryFilter{SupplyID: s.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.True(t, limited[0].QuantityChange.Equal(dec("10")))
}
