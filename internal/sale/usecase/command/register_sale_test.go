package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"

	catalog "github.com/tair/pos-engine/internal/catalog/domain"
	catalogrepo "github.com/tair/pos-engine/internal/catalog/repository"
	discount "github.com/tair/pos-engine/internal/discount/domain"
	discountrepo "github.com/tair/pos-engine/internal/discount/repository"
	inventory "github.com/tair/pos-engine/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-engine/internal/inventory/repository"
	"github.com/tair/pos-engine/internal/sale/domain"
	salerepo "github.com/tair/pos-engine/internal/sale/repository"
	"github.com/tair/pos-engine/internal/testutil"
	"github.com/tair/pos-engine/kafka"
	"github.com/tair/pos-engine/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingPublisher struct {
	mu       sync.Mutex
	sales    []kafka.SaleRegisteredEvent
	lowStock []kafka.LowStockEvent
	err      error
}

func (p *recordingPublisher) PublishSaleRegistered(_ context.Context, e kafka.SaleRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sales = append(p.sales, e)
	return p.err
}

func (p *recordingPublisher) PublishLowStock(_ context.Context, e kafka.LowStockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lowStock = append(p.lowStock, e)
	return p.err
}

// failingSupplies fails the nth deduction made through any transaction
type failingSupplies struct {
	inventory.SupplyRepository
	failOn int
	calls  *int
}

func (f *failingSupplies) WithTx(tx *gorm.DB) inventory.SupplyRepository {
	return &failingSupplies{SupplyRepository: f.SupplyRepository.WithTx(tx), failOn: f.failOn, calls: f.calls}
}

func (f *failingSupplies) ApplyDeduction(ctx context.Context, d inventory.Deduction) (*inventory.Supply, error) {
	*f.calls++
	if *f.calls == f.failOn {
		return nil, errors.New("disk full")
	}
	return f.SupplyRepository.ApplyDeduction(ctx, d)
}

// conflictingSupplies reports a lock conflict on the first n lock attempts
type conflictingSupplies struct {
	inventory.SupplyRepository
	conflicts *int
}

func (c *conflictingSupplies) WithTx(tx *gorm.DB) inventory.SupplyRepository {
	return &conflictingSupplies{SupplyRepository: c.SupplyRepository.WithTx(tx), conflicts: c.conflicts}
}

func (c *conflictingSupplies) LockByIDs(ctx context.Context, ids []uint) (map[uint]*inventory.Supply, error) {
	if *c.conflicts > 0 {
		*c.conflicts--
		return nil, apperror.Conflict(errors.New("could not serialize access"))
	}
	return c.SupplyRepository.LockByIDs(ctx, ids)
}

type fixture struct {
	db        *gorm.DB
	supplies  *inventoryrepo.GormSupplyRepository
	products  *catalogrepo.GormProductRepository
	discounts *discountrepo.GormDiscountRepository
	sales     *salerepo.GormSaleRepository
	events    *recordingPublisher
	registry  *prometheus.Registry

	beans, milk, sugar *inventory.Supply
	latte              *catalog.Product
}

// newFixture seeds a latte made of 18 g beans and 150 ml milk, with 5 g of
// sugar as an optional line
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		supplies:  inventoryrepo.NewGormSupplyRepository(db),
		products:  catalogrepo.NewGormProductRepository(db),
		discounts: discountrepo.NewGormDiscountRepository(db),
		sales:     salerepo.NewGormSaleRepository(db),
		events:    &recordingPublisher{},
		registry:  prometheus.NewRegistry(),
	}
	ctx := context.Background()

	f.beans = &inventory.Supply{Name: "Coffee beans", Unit: "g", Stock: dec("100"), MinStock: dec("20")}
	f.milk = &inventory.Supply{Name: "Milk", Unit: "ml", Stock: dec("400"), MinStock: dec("100")}
	f.sugar = &inventory.Supply{Name: "Sugar", Unit: "g", Stock: dec("50"), MinStock: dec("0")}
	for _, s := range []*inventory.Supply{f.beans, f.milk, f.sugar} {
		require.NoError(t, f.supplies.Create(ctx, s, 1))
	}

	f.latte = &catalog.Product{Name: "Latte", Active: true, Price: decimal.NewNullDecimal(dec("3.50"))}
	require.NoError(t, f.products.Create(ctx, f.latte))
	require.NoError(t, f.products.SetRecipe(ctx, f.latte.ID, []catalog.RecipeLine{
		{SupplyID: f.beans.ID, Quantity: dec("18")},
		{SupplyID: f.milk.ID, Quantity: dec("150")},
		{SupplyID: f.sugar.ID, Quantity: dec("5"), Optional: true},
	}))
	return f
}

func (f *fixture) handler(supplies inventory.SupplyRepository, attempts MaxAttempts) *RegisterSaleHandler {
	return NewRegisterSaleHandler(
		f.db,
		f.sales,
		f.products,
		supplies,
		discount.NewResolver(f.discounts),
		f.events,
		NewMetrics(f.registry),
		attempts,
	)
}

func (f *fixture) stock(t *testing.T, s *inventory.Supply) decimal.Decimal {
	t.Helper()
	got, err := f.supplies.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	return got.Stock
}

func (f *fixture) saleCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&domain.Sale{}).Count(&n).Error)
	return n
}

func (f *fixture) historyCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&inventory.HistoryEntry{}).Count(&n).Error)
	return n
}

// assertUnchanged checks that a failed sale left no trace
func (f *fixture) assertUnchanged(t *testing.T) {
	t.Helper()
	assert.Zero(t, f.saleCount(t))
	assert.Equal(t, int64(3), f.historyCount(t))
	assert.True(t, f.stock(t, f.beans).Equal(dec("100")))
	assert.True(t, f.stock(t, f.milk).Equal(dec("400")))
	assert.True(t, f.stock(t, f.sugar).Equal(dec("50")))
	assert.Empty(t, f.events.sales)
}

func TestRegisterSale_Success(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	res, err := h.Handle(ctx, RegisterSaleCommand{ActorID: 9, ProductID: f.latte.ID, Quantity: 2})
	require.NoError(t, err)

	assert.NotZero(t, res.SaleID)
	assert.True(t, res.Subtotal.Equal(dec("7")))
	assert.True(t, res.DiscountAmount.IsZero())
	assert.True(t, res.TotalAmount.Equal(dec("7")))
	assert.Equal(t, discount.TypeNone, res.Discount.Type)

	// optional sugar is not deducted
	assert.True(t, f.stock(t, f.beans).Equal(dec("64")))
	assert.True(t, f.stock(t, f.milk).Equal(dec("100")))
	assert.True(t, f.stock(t, f.sugar).Equal(dec("50")))

	entries, err := f.supplies.ListHistory(ctx, inventory.HistoryFilter{SaleID: res.SaleID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, inventory.HistorySale, e.Type)
		assert.Equal(t, uint(9), e.UserID)
		assert.Contains(t, e.Description, "2 x Latte")
		assert.True(t, e.QuantityChange.IsNegative())
	}

	sale, err := f.sales.FindByID(ctx, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sale.Quantity)
	assert.Equal(t, uint(9), sale.UserID)
	assert.True(t, sale.TotalAmount.Equal(dec("7")))

	require.Len(t, f.events.sales, 1)
	assert.Equal(t, res.SaleID, f.events.sales[0].SaleID)
	assert.Equal(t, f.latte.ID, f.events.sales[0].ProductID)

	// milk hit its minimum
	require.Len(t, res.LowStock, 1)
	assert.Equal(t, f.milk.ID, res.LowStock[0].ID)
	require.Len(t, f.events.lowStock, 1)
	assert.Equal(t, "Milk", f.events.lowStock[0].SupplyName)

	assert.Equal(t, 1.0, promtest.ToFloat64(h.metrics.sales.WithLabelValues(OutcomeCommitted)))
	assert.Equal(t, 2.0, promtest.ToFloat64(h.metrics.deductions.WithLabelValues(string(inventory.HistorySale))))
}

func TestRegisterSale_StockConservation(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := h.Handle(ctx, RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
		require.NoError(t, err)
	}

	for _, s := range []*inventory.Supply{f.beans, f.milk, f.sugar} {
		entries, err := f.supplies.ListHistory(ctx, inventory.HistoryFilter{SupplyID: s.ID})
		require.NoError(t, err)
		sum := decimal.Zero
		for _, e := range entries {
			sum = sum.Add(e.QuantityChange)
		}
		assert.True(t, sum.Equal(f.stock(t, s)), "ledger of %s does not add up", s.Name)
	}
}

func TestRegisterSale_InsufficientStockChangesNothing(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)

	// 3 lattes need 54 g beans (ok) and 450 ml milk (only 400)
	_, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 3})
	require.True(t, apperror.Is(err, apperror.KindInsufficientStock))

	shortage, ok := apperror.ShortageOf(err)
	require.True(t, ok)
	assert.Equal(t, f.milk.ID, shortage.SupplyID)
	assert.True(t, shortage.Available.Equal(dec("400")))
	assert.True(t, shortage.Required.Equal(dec("450")))

	f.assertUnchanged(t)
	assert.Equal(t, 1.0, promtest.ToFloat64(h.metrics.sales.WithLabelValues(apperror.KindInsufficientStock.String())))
}

func TestRegisterSale_Validation(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	cases := map[string]RegisterSaleCommand{
		"no product":                 {Quantity: 1},
		"zero quantity":              {ProductID: f.latte.ID},
		"negative quantity":          {ProductID: f.latte.ID, Quantity: -2},
		"quantity over limit":        {ProductID: f.latte.ID, Quantity: domain.MaxQuantity + 1},
		"discretionary no id":        {ProductID: f.latte.ID, Quantity: 1, Discretionary: []DiscretionaryLine{{Quantity: dec("1")}}},
		"discretionary zero qty":     {ProductID: f.latte.ID, Quantity: 1, Discretionary: []DiscretionaryLine{{SupplyID: f.sugar.ID}}},
		"discretionary beyond scale": {ProductID: f.latte.ID, Quantity: 1, Discretionary: []DiscretionaryLine{{SupplyID: f.sugar.ID, Quantity: dec("0.0006")}}},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.Handle(ctx, cmd)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
		})
	}
	f.assertUnchanged(t)
}

func TestRegisterSale_DiscretionaryScale(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)

	// trailing zeros are within the column scale
	_, err := h.Handle(context.Background(), RegisterSaleCommand{
		ProductID:     f.latte.ID,
		Quantity:      1,
		Discretionary: []DiscretionaryLine{{SupplyID: f.sugar.ID, Quantity: dec("2.5000")}},
	})
	require.NoError(t, err)
	assert.True(t, f.stock(t, f.sugar).Equal(dec("47.5")))
}

func TestRegisterSale_SubtotalOverflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gold := &catalog.Product{Name: "Gold leaf", Active: true, Price: decimal.NewNullDecimal(dec("60000000"))}
	require.NoError(t, f.products.Create(ctx, gold))

	h := f.handler(f.supplies, 3)
	_, err := h.Handle(ctx, RegisterSaleCommand{ProductID: gold.ID, Quantity: 2})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation), err.Error())
	f.assertUnchanged(t)

	_, err = h.Handle(ctx, RegisterSaleCommand{ProductID: gold.ID, Quantity: 1})
	require.NoError(t, err)
}

func TestRegisterSale_RepositorySpansNestUnderSale(t *testing.T) {
	f := newFixture(t)
	h := NewRegisterSaleHandler(
		f.db,
		salerepo.NewTracedSaleRepository(f.sales),
		catalogrepo.NewTracedProductRepository(f.products),
		inventoryrepo.NewTracedSupplyRepository(f.supplies),
		discount.NewResolver(discountrepo.NewTracedDiscountRepository(f.discounts)),
		f.events,
		NewMetrics(f.registry),
		3,
	)
	spans := testutil.RecordSpans(t)

	_, err := h.Handle(context.Background(), RegisterSaleCommand{ActorID: 1, ProductID: f.latte.ID, Quantity: 1})
	require.NoError(t, err)

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range spans() {
		byName[s.Name()] = s
	}
	for _, name := range []string{"sale.register", "sale.persist", "repository.CreateSale", "repository.FindProduct"} {
		require.Contains(t, byName, name)
	}

	register := byName["sale.register"].SpanContext()
	assert.Equal(t, byName["sale.persist"].SpanContext().SpanID(), byName["repository.CreateSale"].Parent().SpanID())
	assert.Equal(t, register.TraceID(), byName["repository.FindProduct"].SpanContext().TraceID())
	assert.Equal(t, register.TraceID(), byName["repository.CreateSale"].SpanContext().TraceID())
}

func TestRegisterSale_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler(f.supplies, 3).Handle(context.Background(), RegisterSaleCommand{ProductID: 999, Quantity: 1})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	f.assertUnchanged(t)
}

func TestRegisterSale_FailureMidDeductionRollsBack(t *testing.T) {
	f := newFixture(t)
	calls := 0
	h := f.handler(&failingSupplies{SupplyRepository: f.supplies, failOn: 2, calls: &calls}, 3)

	_, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStore))
	assert.Equal(t, 2, calls)

	// the first deduction and the sale row were written, then rolled back
	f.assertUnchanged(t)
}

func TestRegisterSale_RetriesConflicts(t *testing.T) {
	f := newFixture(t)
	conflicts := 2
	h := f.handler(&conflictingSupplies{SupplyRepository: f.supplies, conflicts: &conflicts}, 3)

	res, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	require.NoError(t, err)
	assert.NotZero(t, res.SaleID)
	assert.Equal(t, int64(1), f.saleCount(t))
	assert.Equal(t, 2.0, promtest.ToFloat64(h.metrics.retries))
}

func TestRegisterSale_GivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture(t)
	conflicts := 5
	h := f.handler(&conflictingSupplies{SupplyRepository: f.supplies, conflicts: &conflicts}, 2)

	_, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, 3, conflicts)
	f.assertUnchanged(t)
}

func TestRegisterSale_ConcurrentSalesNeverOversell(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)

	// 100 g beans cover 5 lattes; milk (400 ml) covers only 2
	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
		short     int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				committed++
			case apperror.Is(err, apperror.KindInsufficientStock):
				short++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, committed)
	assert.Equal(t, attempts-2, short)
	assert.Equal(t, int64(2), f.saleCount(t))
	assert.True(t, f.stock(t, f.milk).Equal(dec("100")))
	assert.True(t, f.stock(t, f.beans).Equal(dec("64")))
}

func TestRegisterSale_DiscretionarySupplies(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	res, err := h.Handle(ctx, RegisterSaleCommand{
		ProductID: f.latte.ID,
		Quantity:  1,
		Discretionary: []DiscretionaryLine{
			{SupplyID: f.sugar.ID, Quantity: dec("10")},
		},
	})
	require.NoError(t, err)

	assert.True(t, f.stock(t, f.sugar).Equal(dec("40")))

	sale, err := f.sales.FindByID(ctx, res.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.SuppliesUsed, 1)
	assert.Equal(t, f.sugar.ID, sale.SuppliesUsed[0].SupplyID)
	assert.True(t, sale.SuppliesUsed[0].Quantity.Equal(dec("10")))

	entries, err := f.supplies.ListHistory(ctx, inventory.HistoryFilter{SupplyID: f.sugar.ID, SaleID: res.SaleID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inventory.HistoryDiscretionary, entries[0].Type)
	assert.True(t, entries[0].QuantityChange.Equal(dec("-10")))
}

func TestRegisterSale_DiscretionaryCountsAgainstRecipeDemand(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)

	// 2 lattes take 36 g beans; 70 g more exceeds the remaining 64
	_, err := h.Handle(context.Background(), RegisterSaleCommand{
		ProductID:     f.latte.ID,
		Quantity:      2,
		Discretionary: []DiscretionaryLine{{SupplyID: f.beans.ID, Quantity: dec("70")}},
	})
	require.True(t, apperror.Is(err, apperror.KindInsufficientStock))

	shortage, ok := apperror.ShortageOf(err)
	require.True(t, ok)
	assert.Equal(t, f.beans.ID, shortage.SupplyID)
	assert.True(t, shortage.Available.Equal(dec("64")))
	assert.True(t, shortage.Required.Equal(dec("70")))
	f.assertUnchanged(t)
}

func TestRegisterSale_UnknownDiscretionarySupply(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler(f.supplies, 3).Handle(context.Background(), RegisterSaleCommand{
		ProductID:     f.latte.ID,
		Quantity:      1,
		Discretionary: []DiscretionaryLine{{SupplyID: 999, Quantity: dec("1")}},
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	f.assertUnchanged(t)
}

func TestRegisterSale_DiscountSnapshotSurvivesDiscountChanges(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	d := &discount.Discount{Name: "Happy hour", Type: discount.TypePercentage, Value: dec("20"), Active: true}
	require.NoError(t, f.discounts.Create(ctx, d))

	res, err := h.Handle(ctx, RegisterSaleCommand{
		ProductID: f.latte.ID,
		Quantity:  2,
		Discount:  discount.Selection{DiscountID: &d.ID},
	})
	require.NoError(t, err)
	assert.True(t, res.DiscountAmount.Equal(dec("1.4")))
	assert.True(t, res.TotalAmount.Equal(dec("5.6")))

	value := dec("50")
	_, err = f.discounts.Update(ctx, d.ID, discount.DiscountUpdate{Value: &value})
	require.NoError(t, err)

	sale, err := f.sales.FindByID(ctx, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, discount.TypePercentage, sale.Discount.Type)
	assert.True(t, sale.Discount.Value.Equal(dec("20")))
	require.NotNil(t, sale.Discount.DiscountID)
	assert.Equal(t, d.ID, *sale.Discount.DiscountID)
	assert.True(t, sale.DiscountAmount.Equal(dec("1.4")))
}

func TestRegisterSale_DiscountErrorsRollBack(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	d := &discount.Discount{Name: "Big spender", Type: discount.TypeFixed, Value: dec("1"), MinAmount: dec("100"), Active: true}
	require.NoError(t, f.discounts.Create(ctx, d))

	_, err := h.Handle(ctx, RegisterSaleCommand{
		ProductID: f.latte.ID,
		Quantity:  1,
		Discount:  discount.Selection{DiscountID: &d.ID},
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	f.assertUnchanged(t)
}

func TestRegisterSale_DeactivatedProduct(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	first, err := h.Handle(ctx, RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	require.NoError(t, err)

	inactive := false
	_, err = f.products.Update(ctx, f.latte.ID, catalog.ProductUpdate{Active: &inactive})
	require.NoError(t, err)

	// past sales stay intact and the product can still be rung up
	sale, err := f.sales.FindByID(ctx, first.SaleID)
	require.NoError(t, err)
	assert.Equal(t, f.latte.ID, sale.ProductID)

	_, err = h.Handle(ctx, RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.saleCount(t))
}

func TestRegisterSale_EmptyRecipe(t *testing.T) {
	f := newFixture(t)
	h := f.handler(f.supplies, 3)
	ctx := context.Background()

	water := &catalog.Product{Name: "Water", Active: true}
	require.NoError(t, f.products.Create(ctx, water))

	res, err := h.Handle(ctx, RegisterSaleCommand{ProductID: water.ID, Quantity: 4})
	require.NoError(t, err)
	assert.True(t, res.TotalAmount.IsZero())
	assert.Empty(t, res.LowStock)
	assert.Equal(t, int64(3), f.historyCount(t))
}

func TestRegisterSale_PublishFailureKeepsSale(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	h := f.handler(f.supplies, 3)

	res, err := h.Handle(context.Background(), RegisterSaleCommand{ProductID: f.latte.ID, Quantity: 1})
	require.NoError(t, err)
	assert.NotZero(t, res.SaleID)
	assert.Equal(t, int64(1), f.saleCount(t))
}

func TestLockOrder(t *testing.T) {
	ids := lockOrder(
		[]inventory.RecipeRequirement{{SupplyID: 7}, {SupplyID: 2}},
		[]DiscretionaryLine{{SupplyID: 5}, {SupplyID: 2}},
	)
	assert.Equal(t, []uint{2, 5, 7}, ids)
}
