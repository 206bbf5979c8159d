package query

import (
	"context"
	"time"

	"github.com/tair/pos-engine/internal/inventory/domain"
	"github.com/tair/pos-engine/pkg/apperror"
)

// DefaultHistoryDays is the lookback window when none is given
const DefaultHistoryDays = 30

// ListHistoryQuery represents the query to read the inventory ledger
type ListHistoryQuery struct {
	SupplyID uint
	SaleID   uint
	Days     int
	Limit    int
}

// ListHistoryHandler handles list history query
type ListHistoryHandler struct {
	repo domain.SupplyRepository
	now  func() time.Time
}

// NewListHistoryHandler creates a new list history handler
func NewListHistoryHandler(repo domain.SupplyRepository) *ListHistoryHandler {
	return &ListHistoryHandler{repo: repo, now: time.Now}
}

// Handle executes the list history query
func (h *ListHistoryHandler) Handle(ctx context.Context, query ListHistoryQuery) ([]domain.HistoryEntry, error) {
	if query.Days < 0 {
		return nil, apperror.Validation("days cannot be negative")
	}
	if query.Days == 0 {
		query.Days = DefaultHistoryDays
	}
	if query.Limit <= 0 || query.Limit > 1000 {
		query.Limit = 1000
	}

	return h.repo.ListHistory(ctx, domain.HistoryFilter{
		SupplyID: query.SupplyID,
		SaleID:   query.SaleID,
		Since:    h.now().UTC().AddDate(0, 0, -query.Days),
		Limit:    query.Limit,
	})
}
