// Package reporting answers read-only questions over sales and the inventory
// ledger. It runs on its own read-only connection and never writes.
package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/database"
)

// Summary aggregates the sales of a period
type Summary struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	SalesCount int64           `json:"sales_count"`
	UnitsSold  int64           `json:"units_sold"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discounts  decimal.Decimal `json:"discounts"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductSales aggregates the sales of one product in a period
type ProductSales struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Active      bool            `json:"active"`
	SalesCount  int64           `json:"sales_count"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// LedgerBalance compares a supply's stock with the sum of its ledger
type LedgerBalance struct {
	SupplyID    uint            `json:"supply_id"`
	SupplyName  string          `json:"supply_name"`
	Stock       decimal.Decimal `json:"stock"`
	LedgerTotal decimal.Decimal `json:"ledger_total"`
	Difference  decimal.Decimal `json:"difference"`
	Balanced    bool            `json:"balanced"`
}

// Reporter runs reporting queries as raw SQL; the dialector binds the
// placeholders
type Reporter struct {
	db *gorm.DB
}

// NewReporter creates a reporter on a read-only connection
func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{db: db}
}

func checkRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return apperror.Validation("from and to are required")
	}
	if !from.Before(to) {
		return apperror.Validation("from must be before to")
	}
	return nil
}

// SalesSummary totals the sales in [from, to)
func (r *Reporter) SalesSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	s := &Summary{From: from, To: to}
	row := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount_amount), 0),
		       COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE created_at >= ? AND created_at < ?`, from.UTC(), to.UTC()).Row()
	if err := row.Scan(&s.SalesCount, &s.UnitsSold, &s.Subtotal, &s.Discounts, &s.Revenue); err != nil {
		return nil, database.Classify("sales summary", err)
	}

	s.Subtotal = s.Subtotal.Round(2)
	s.Discounts = s.Discounts.Round(2)
	s.Revenue = s.Revenue.Round(2)
	return s, nil
}

// SalesByProduct groups the sales in [from, to) by product, best sellers
// by revenue first. Deactivated products are included.
func (r *Reporter) SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductSales, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.name, p.active,
		       COUNT(s.id),
		       COALESCE(SUM(s.quantity), 0),
		       COALESCE(SUM(s.total_amount), 0) AS revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.created_at >= ? AND s.created_at < ?
		GROUP BY p.id, p.name, p.active
		ORDER BY revenue DESC, p.id`, from.UTC(), to.UTC()).Rows()
	if err != nil {
		return nil, database.Classify("sales by product", err)
	}
	defer rows.Close()

	out := []ProductSales{}
	for rows.Next() {
		var ps ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.Active, &ps.SalesCount, &ps.UnitsSold, &ps.Revenue); err != nil {
			return nil, database.Classify("sales by product", err)
		}
		ps.Revenue = ps.Revenue.Round(2)
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("sales by product", err)
	}
	return out, nil
}

// ReconcileLedger checks every supply's stock against the running total of
// its inventory history
func (r *Reporter) ReconcileLedger(ctx context.Context) ([]LedgerBalance, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT s.id, s.name, s.stock, COALESCE(SUM(h.quantity_change), 0)
		FROM supplies s
		LEFT JOIN inventory_history h ON h.supply_id = s.id
		GROUP BY s.id, s.name, s.stock
		ORDER BY s.id`).Rows()
	if err != nil {
		return nil, database.Classify("reconcile ledger", err)
	}
	defer rows.Close()

	out := []LedgerBalance{}
	for rows.Next() {
		var b LedgerBalance
		if err := rows.Scan(&b.SupplyID, &b.SupplyName, &b.Stock, &b.LedgerTotal); err != nil {
			return nil, database.Classify("reconcile ledger", err)
		}
		b.Stock = b.Stock.Round(3)
		b.LedgerTotal = b.LedgerTotal.Round(3)
		b.Difference = b.Stock.Sub(b.LedgerTotal)
		b.Balanced = b.Difference.IsZero()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("reconcile ledger", err)
	}
	return out, nil
}
