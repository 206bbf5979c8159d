package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRegisteredEvent is published after a sale commits
type SaleRegisteredEvent struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SaleID         uint            `json:"sale_id"`
	ProductID      uint            `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UserID         uint            `json:"user_id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Timestamp      time.Time       `json:"timestamp"`
}

// LowStockEvent is published when a sale leaves a supply at or below its
// minimum stock
type LowStockEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	SupplyID   uint            `json:"supply_id"`
	SupplyName string          `json:"supply_name"`
	Unit       string          `json:"unit"`
	Stock      decimal.Decimal `json:"stock"`
	MinStock   decimal.Decimal `json:"min_stock"`
	SaleID     uint            `json:"sale_id"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRegistered = "sale.registered"
	EventTypeSupplyLowStock = "supply.low_stock"
)

// Kafka topics
const (
	TopicSales    = "pos-sales"
	TopicLowStock = "pos-supply-low-stock"
)
