//go:build wireinject
// +build wireinject

package pos

import (
	"net/http"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	catalogdomain "github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/kafka"
	"github.com/tair/pos-engine/pkg/config"
	"github.com/tair/pos-engine/pkg/database"
)

// InitializeRouter wires every module into the service's HTTP handler
func InitializeRouter(
	cfg *config.Config,
	db *gorm.DB,
	reportDB database.ReportingDB,
	cache catalogdomain.ListingCache,
	events kafka.EventPublisher,
	registry *prometheus.Registry,
) (http.Handler, error) {
	wire.Build(
		RepositorySet,
		InventorySet,
		CatalogSet,
		DiscountSet,
		SaleSet,
		ReportingSet,
		ServerSet,
	)
	return nil, nil
}
