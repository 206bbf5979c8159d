package query

import (
	"context"
	"time"

	"github.com/tair/pos-engine/internal/sale/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// GetSaleHandler handles get sale query
type GetSaleHandler struct {
	repo domain.SaleRepository
}

// NewGetSaleHandler creates a new get sale handler
func NewGetSaleHandler(repo domain.SaleRepository) *GetSaleHandler {
	return &GetSaleHandler{repo: repo}
}

// Handle returns the sale with its discretionary supply lines
func (h *GetSaleHandler) Handle(ctx context.Context, id uint) (*domain.Sale, error) {
	if id == 0 {
		return nil, apperror.Validation("invalid sale id")
	}
	return h.repo.FindByID(ctx, id)
}

// DefaultSalesWindow is the listing range when no start is given
const DefaultSalesWindow = 30 * 24 * time.Hour

// ListSalesQuery represents the query to list sales in [From, To)
type ListSalesQuery struct {
	From      time.Time
	To        time.Time
	ProductID uint
	Limit     int
	Offset    int
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.SaleRepository
	now  func() time.Time
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo, now: time.Now}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(ctx context.Context, query ListSalesQuery) ([]domain.Sale, error) {
	if query.To.IsZero() {
		query.To = h.now().UTC().Add(time.Second)
	}
	if query.From.IsZero() {
		query.From = query.To.Add(-DefaultSalesWindow)
	}
	if !query.From.Before(query.To) {
		return nil, apperror.Validation("from must be before to")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}
	if query.Limit > 1000 {
		query.Limit = 1000
	}

	return h.repo.FindAll(ctx, domain.SaleFilter{
		From:      query.From,
		To:        query.To,
		ProductID: query.ProductID,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
}
