package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	catalog "github.com/tair/pos-engine/internal/catalog/domain"
	discount "github.com/tair/pos-engine/internal/discount/domain"
	inventory "github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/internal/sale/domain"
	"github.com/tair/pos-engine/kafka"
	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
	"github.com/tair/pos-engine/pkg/logger"
)

var tracer = otel.Tracer("sale-engine")

// MaxAttempts bounds how often a sale is retried after a transaction conflict
type MaxAttempts int

// DiscretionaryLine is a supply the caller consumed on top of the recipe
type DiscretionaryLine struct {
	SupplyID uint
	Quantity decimal.Decimal
}

// RegisterSaleCommand represents one sale request
type RegisterSaleCommand struct {
	ActorID       uint
	ProductID     uint
	Quantity      int64
	Discount      discount.Selection
	Discretionary []DiscretionaryLine
}

// SaleResult is returned once a sale has committed
type SaleResult struct {
	SaleID         uint               `json:"sale_id"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Discount       discount.Snapshot  `json:"discount"`
	CreatedAt      time.Time          `json:"created_at"`
	LowStock       []inventory.Supply `json:"low_stock,omitempty"`

	productID  uint
	quantity   int64
	deductions map[inventory.HistoryType]int
}

// RegisterSaleHandler runs the sale transaction: validate stock under row
// locks, price the sale, persist it and deduct every supply, all in one
// database transaction.
type RegisterSaleHandler struct {
	db          *gorm.DB
	sales       domain.SaleRepository
	products    catalog.ProductRepository
	supplies    inventory.SupplyRepository
	resolver    *discount.Resolver
	events      kafka.EventPublisher
	metrics     *Metrics
	maxAttempts int
}

// NewRegisterSaleHandler creates a new register sale handler
func NewRegisterSaleHandler(
	db *gorm.DB,
	sales domain.SaleRepository,
	products catalog.ProductRepository,
	supplies inventory.SupplyRepository,
	resolver *discount.Resolver,
	events kafka.EventPublisher,
	metrics *Metrics,
	maxAttempts MaxAttempts,
) *RegisterSaleHandler {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RegisterSaleHandler{
		db:          db,
		sales:       sales,
		products:    products,
		supplies:    supplies,
		resolver:    resolver,
		events:      events,
		metrics:     metrics,
		maxAttempts: int(maxAttempts),
	}
}

// Handle registers the sale. Any failure leaves sales, stock and history
// exactly as they were. Conflicts are retried up to the configured attempts.
func (h *RegisterSaleHandler) Handle(ctx context.Context, cmd RegisterSaleCommand) (*SaleResult, error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "sale.register",
		trace.WithAttributes(
			attribute.Int64("product.id", int64(cmd.ProductID)),
			attribute.Int64("sale.quantity", cmd.Quantity),
			attribute.Int("sale.discretionary_lines", len(cmd.Discretionary)),
		),
	)
	defer span.End()

	result, err := h.register(ctx, cmd)
	if err != nil {
		kind := apperror.KindOf(err)
		h.metrics.observe(kind.String(), time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())

		event := logger.Warn(ctx)
		if kind == apperror.KindStore {
			event = logger.Error(ctx)
		}
		event.Err(err).
			Str("reason", kind.String()).
			Uint("product_id", cmd.ProductID).
			Int64("quantity", cmd.Quantity).
			Msg("Sale aborted")
		return nil, err
	}

	h.metrics.observe(OutcomeCommitted, time.Since(start))
	for t, n := range result.deductions {
		h.metrics.deducted(t, n)
	}
	span.SetAttributes(attribute.Int64("sale.id", int64(result.SaleID)))

	logger.Info(ctx).
		Uint("sale_id", result.SaleID).
		Uint("product_id", cmd.ProductID).
		Int64("quantity", cmd.Quantity).
		Str("total_amount", result.TotalAmount.StringFixed(2)).
		Msg("Sale committed")

	h.publish(ctx, cmd, result)
	return result, nil
}

func (h *RegisterSaleHandler) register(ctx context.Context, cmd RegisterSaleCommand) (*SaleResult, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	var (
		result *SaleResult
		err    error
	)
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		result, err = h.attempt(ctx, cmd)
		if err == nil || !apperror.Is(err, apperror.KindConflict) {
			return result, err
		}
		if attempt < h.maxAttempts {
			h.metrics.retries.Inc()
			logger.Warn(ctx).Err(err).Int("attempt", attempt).Msg("Sale conflicted, retrying")
		}
	}
	return nil, err
}

func validate(cmd RegisterSaleCommand) error {
	if cmd.ProductID == 0 {
		return apperror.Validation("product_id is required")
	}
	if cmd.Quantity <= 0 {
		return apperror.Validation("quantity must be a positive integer")
	}
	if cmd.Quantity > domain.MaxQuantity {
		return apperror.Validation("quantity cannot exceed %d", domain.MaxQuantity)
	}
	for i, line := range cmd.Discretionary {
		if line.SupplyID == 0 {
			return apperror.Validation("supplies_used[%d]: supply_id is required", i)
		}
		if !line.Quantity.IsPositive() {
			return apperror.Validation("supplies_used[%d]: quantity must be positive", i)
		}
		if !inventory.FitsQuantityScale(line.Quantity) {
			return apperror.Validation("supplies_used[%d]: quantity allows at most %d decimal places", i, inventory.QuantityScale)
		}
	}
	return nil
}

// attempt runs one transaction. Every read and write goes through repositories
// bound to tx so that a single error rolls back all of them.
func (h *RegisterSaleHandler) attempt(ctx context.Context, cmd RegisterSaleCommand) (*SaleResult, error) {
	var result *SaleResult

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := h.products.WithTx(tx)
		supplies := h.supplies.WithTx(tx)
		sales := h.sales.WithTx(tx)
		resolver := h.resolver.WithTx(tx)

		product, mandatory, err := h.validateStock(ctx, products, supplies, cmd)
		if err != nil {
			return err
		}

		pricing, err := h.price(ctx, resolver, product, cmd)
		if err != nil {
			return err
		}

		sale, err := h.persist(ctx, sales, cmd, pricing)
		if err != nil {
			return err
		}

		low, counts, err := h.deduct(ctx, sales, supplies, cmd, sale, product, mandatory)
		if err != nil {
			return err
		}

		result = &SaleResult{
			SaleID:         sale.ID,
			Subtotal:       pricing.Subtotal,
			DiscountAmount: pricing.Amount,
			TotalAmount:    pricing.Total,
			Discount:       pricing.Snapshot,
			CreatedAt:      sale.CreatedAt,
			LowStock:       low,
			productID:      cmd.ProductID,
			quantity:       cmd.Quantity,
			deductions:     counts,
		}
		return nil
	})
	if err != nil {
		return nil, database.Classify("register sale", err)
	}
	return result, nil
}

// validateStock loads the product and its mandatory recipe, locks every
// supply the sale touches in ascending id order, and checks the combined
// demand against the locked stock.
func (h *RegisterSaleHandler) validateStock(
	ctx context.Context,
	products catalog.ProductRepository,
	supplies inventory.SupplyRepository,
	cmd RegisterSaleCommand,
) (*catalog.Product, []inventory.RecipeRequirement, error) {
	ctx, span := tracer.Start(ctx, "sale.validate")
	defer span.End()

	product, err := products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, nil, err
	}

	recipe, err := supplies.GetRecipe(ctx, cmd.ProductID)
	if err != nil {
		return nil, nil, err
	}
	mandatory := inventory.Mandatory(recipe)

	locked, err := supplies.LockByIDs(ctx, lockOrder(mandatory, cmd.Discretionary))
	if err != nil {
		return nil, nil, err
	}

	// Stock read before the lock may be stale
	for i := range mandatory {
		s, ok := locked[mandatory[i].SupplyID]
		if !ok {
			return nil, nil, apperror.NotFound("supply", mandatory[i].SupplyID)
		}
		mandatory[i].Stock = s.Stock
	}
	if err := inventory.CheckSufficiency(mandatory, cmd.Quantity); err != nil {
		return nil, nil, err
	}

	// A supply can appear both in the recipe and as a discretionary line
	ledger := inventory.NewLedger(locked)
	qty := decimal.NewFromInt(cmd.Quantity)
	for _, line := range mandatory {
		if err := ledger.Claim(line.SupplyID, line.Quantity.Mul(qty)); err != nil {
			return nil, nil, err
		}
	}
	for _, line := range cmd.Discretionary {
		if err := ledger.Claim(line.SupplyID, line.Quantity); err != nil {
			return nil, nil, err
		}
	}

	span.SetAttributes(attribute.Int("supplies.locked", len(locked)))
	return product, mandatory, nil
}

func (h *RegisterSaleHandler) price(
	ctx context.Context,
	resolver *discount.Resolver,
	product *catalog.Product,
	cmd RegisterSaleCommand,
) (discount.Resolution, error) {
	ctx, span := tracer.Start(ctx, "sale.price")
	defer span.End()

	subtotal := product.UnitPrice().Mul(decimal.NewFromInt(cmd.Quantity))
	if subtotal.GreaterThan(domain.MaxAmount) {
		return discount.Resolution{}, apperror.Validation("sale subtotal %s exceeds %s", subtotal.StringFixed(2), domain.MaxAmount.String())
	}
	res, err := resolver.Resolve(ctx, cmd.Discount, subtotal, cmd.Quantity)
	if err != nil {
		return discount.Resolution{}, err
	}

	span.SetAttributes(
		attribute.String("sale.subtotal", res.Subtotal.String()),
		attribute.String("sale.discount_type", string(res.Snapshot.Type)),
		attribute.String("sale.total", res.Total.String()),
	)
	return res, nil
}

func (h *RegisterSaleHandler) persist(
	ctx context.Context,
	sales domain.SaleRepository,
	cmd RegisterSaleCommand,
	pricing discount.Resolution,
) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "sale.persist")
	defer span.End()

	sale := &domain.Sale{
		UserID:         cmd.ActorID,
		ProductID:      cmd.ProductID,
		Quantity:       cmd.Quantity,
		Subtotal:       pricing.Subtotal,
		DiscountAmount: pricing.Amount,
		TotalAmount:    pricing.Total,
		Discount:       pricing.Snapshot,
	}
	if err := sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// deduct applies the mandatory recipe deductions and the discretionary
// usage. It returns the touched supplies left at or below minimum stock and
// the number of deductions per ledger type.
func (h *RegisterSaleHandler) deduct(
	ctx context.Context,
	sales domain.SaleRepository,
	supplies inventory.SupplyRepository,
	cmd RegisterSaleCommand,
	sale *domain.Sale,
	product *catalog.Product,
	mandatory []inventory.RecipeRequirement,
) ([]inventory.Supply, map[inventory.HistoryType]int, error) {
	ctx, span := tracer.Start(ctx, "sale.deduct")
	defer span.End()

	saleID := sale.ID
	after := make(map[uint]inventory.Supply)
	counts := make(map[inventory.HistoryType]int, 2)
	qty := decimal.NewFromInt(cmd.Quantity)

	for _, line := range mandatory {
		updated, err := supplies.ApplyDeduction(ctx, inventory.Deduction{
			SupplyID:    line.SupplyID,
			Quantity:    line.Quantity.Mul(qty),
			Type:        inventory.HistorySale,
			Description: fmt.Sprintf("Sale #%d: %d x %s", saleID, cmd.Quantity, product.Name),
			ActorID:     cmd.ActorID,
			SaleID:      &saleID,
		})
		if err != nil {
			return nil, nil, err
		}
		after[updated.ID] = *updated
		counts[inventory.HistorySale]++
	}

	for _, line := range cmd.Discretionary {
		if err := sales.CreateUsage(ctx, &domain.SupplyUsage{
			SaleID:   saleID,
			SupplyID: line.SupplyID,
			Quantity: line.Quantity,
		}); err != nil {
			return nil, nil, err
		}
		updated, err := supplies.ApplyDeduction(ctx, inventory.Deduction{
			SupplyID:    line.SupplyID,
			Quantity:    line.Quantity,
			Type:        inventory.HistoryDiscretionary,
			Description: fmt.Sprintf("Discretionary use for sale #%d", saleID),
			ActorID:     cmd.ActorID,
			SaleID:      &saleID,
		})
		if err != nil {
			return nil, nil, err
		}
		after[updated.ID] = *updated
		counts[inventory.HistoryDiscretionary]++
	}

	low := make([]inventory.Supply, 0)
	for _, s := range after {
		if s.IsLow() {
			low = append(low, s)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].ID < low[j].ID })

	span.SetAttributes(
		attribute.Int("deductions.sale", counts[inventory.HistorySale]),
		attribute.Int("deductions.discretionary", counts[inventory.HistoryDiscretionary]),
	)
	return low, counts, nil
}

// publish emits the post-commit events. The sale is already durable, so
// failures are only logged.
func (h *RegisterSaleHandler) publish(ctx context.Context, cmd RegisterSaleCommand, result *SaleResult) {
	if err := h.events.PublishSaleRegistered(ctx, kafka.SaleRegisteredEvent{
		SaleID:         result.SaleID,
		ProductID:      result.productID,
		Quantity:       result.quantity,
		UserID:         cmd.ActorID,
		Subtotal:       result.Subtotal,
		DiscountAmount: result.DiscountAmount,
		TotalAmount:    result.TotalAmount,
	}); err != nil {
		logger.Warn(ctx).Err(err).Uint("sale_id", result.SaleID).Msg("Failed to publish sale event")
	}

	for _, s := range result.LowStock {
		if err := h.events.PublishLowStock(ctx, kafka.LowStockEvent{
			SupplyID:   s.ID,
			SupplyName: s.Name,
			Unit:       s.Unit,
			Stock:      s.Stock,
			MinStock:   s.MinStock,
			SaleID:     result.SaleID,
		}); err != nil {
			logger.Warn(ctx).Err(err).Uint("supply_id", s.ID).Msg("Failed to publish low stock event")
		}
	}
}

// lockOrder returns the distinct supply ids touched by a sale, ascending
func lockOrder(mandatory []inventory.RecipeRequirement, discretionary []DiscretionaryLine) []uint {
	seen := make(map[uint]struct{}, len(mandatory)+len(discretionary))
	ids := make([]uint, 0, len(mandatory)+len(discretionary))
	add := func(id uint) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, line := range mandatory {
		add(line.SupplyID)
	}
	for _, line := range discretionary {
		add(line.SupplyID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
