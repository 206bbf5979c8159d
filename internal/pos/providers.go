// Package pos assembles the POS service: repositories, handlers and router.
package pos

import (
	"fmt"
	"net/http"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	catalogdelivery "github.com/tair/pos-engine/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/pos-engine/internal/catalog/domain"
	catalogrepo "github.com/tair/pos-engine/internal/catalog/repository"
	catalogcommand "github.com/tair/pos-engine/internal/catalog/usecase/command"
	catalogquery "github.com/tair/pos-engine/internal/catalog/usecase/query"
	discountdelivery "github.com/tair/pos-engine/internal/discount/delivery/http"
	discountdomain "github.com/tair/pos-engine/internal/discount/domain"
	discountrepo "github.com/tair/pos-engine/internal/discount/repository"
	discountcommand "github.com/tair/pos-engine/internal/discount/usecase/command"
	discountquery "github.com/tair/pos-engine/internal/discount/usecase/query"
	inventorydelivery "github.com/tair/pos-engine/internal/inventory/delivery/http"
	inventorydomain "github.com/tair/pos-engine/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-engine/internal/inventory/repository"
	inventorycommand "github.com/tair/pos-engine/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-engine/internal/inventory/usecase/query"
	"github.com/tair/pos-engine/internal/reporting"
	reportingdelivery "github.com/tair/pos-engine/internal/reporting/delivery/http"
	saledelivery "github.com/tair/pos-engine/internal/sale/delivery/http"
	saledomain "github.com/tair/pos-engine/internal/sale/domain"
	salerepo "github.com/tair/pos-engine/internal/sale/repository"
	salecommand "github.com/tair/pos-engine/internal/sale/usecase/command"
	salequery "github.com/tair/pos-engine/internal/sale/usecase/query"
	"github.com/tair/pos-engine/internal/server"
	"github.com/tair/pos-engine/pkg/config"
	"github.com/tair/pos-engine/pkg/database"
)

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	migrators := []interface{ AutoMigrate() error }{
		catalogrepo.NewGormProductRepository(db),
		inventoryrepo.NewGormSupplyRepository(db),
		discountrepo.NewGormDiscountRepository(db),
		salerepo.NewGormSaleRepository(db),
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return nil
}

// ProvideSupplyRepository provides the traced supply repository
func ProvideSupplyRepository(db *gorm.DB) inventorydomain.SupplyRepository {
	return inventoryrepo.NewTracedSupplyRepository(inventoryrepo.NewGormSupplyRepository(db))
}

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewTracedProductRepository(catalogrepo.NewGormProductRepository(db))
}

// ProvideDiscountRepository provides the discount repository
func ProvideDiscountRepository(db *gorm.DB) discountdomain.DiscountRepository {
	return discountrepo.NewTracedDiscountRepository(discountrepo.NewGormDiscountRepository(db))
}

// ProvideSaleRepository provides the sale repository
func ProvideSaleRepository(db *gorm.DB) saledomain.SaleRepository {
	return salerepo.NewTracedSaleRepository(salerepo.NewGormSaleRepository(db))
}

// ProvideMaxAttempts reads the sale retry budget from config
func ProvideMaxAttempts(cfg *config.Config) salecommand.MaxAttempts {
	return salecommand.MaxAttempts(cfg.SaleMaxAttempts)
}

// ProvideReporter provides the reporter over the read-only connection
func ProvideReporter(db database.ReportingDB) *reporting.Reporter {
	return reporting.NewReporter(db.DB)
}

// ProvideMiddlewareConfig provides the middleware configuration
func ProvideMiddlewareConfig(cfg *config.Config) server.MiddlewareConfig {
	mc := server.DefaultMiddlewareConfig()
	mc.EnableLogging = cfg.LogLevel != "disabled"
	return mc
}

// ProvideRouter builds the HTTP handler tree
func ProvideRouter(
	mc server.MiddlewareConfig,
	metrics *server.HTTPMetrics,
	registry *prometheus.Registry,
	db *gorm.DB,
	handlers server.Handlers,
) (http.Handler, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return server.NewRouter(mc, metrics, registry, sqlDB, handlers.Registrars()), nil
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSupplyRepository,
	ProvideProductRepository,
	ProvideDiscountRepository,
	ProvideSaleRepository,
)

var InventorySet = wire.NewSet(
	inventorycommand.NewCreateSupplyHandler,
	inventorycommand.NewRestockHandler,
	inventoryquery.NewGetSupplyHandler,
	inventoryquery.NewListSuppliesHandler,
	inventoryquery.NewListLowStockHandler,
	inventoryquery.NewListHistoryHandler,
	inventoryquery.NewGetRecipeHandler,
	inventoryquery.NewCheckAvailabilityHandler,
	inventorydelivery.NewSupplyHandler,
)

var CatalogSet = wire.NewSet(
	catalogcommand.NewCreateCategoryHandler,
	catalogcommand.NewCreateProductHandler,
	catalogcommand.NewUpdateProductHandler,
	catalogcommand.NewDeactivateProductHandler,
	catalogcommand.NewSetRecipeHandler,
	catalogquery.NewGetProductHandler,
	catalogquery.NewListProductsHandler,
	catalogquery.NewListCategoriesHandler,
	catalogquery.NewGetRecipeLinesHandler,
	catalogdelivery.NewCatalogHandler,
)

var DiscountSet = wire.NewSet(
	discountdomain.NewResolver,
	discountcommand.NewCreateDiscountHandler,
	discountcommand.NewUpdateDiscountHandler,
	discountcommand.NewDeactivateDiscountHandler,
	discountquery.NewListActiveDiscountsHandler,
	discountdelivery.NewDiscountHandler,
)

var SaleSet = wire.NewSet(
	ProvideMaxAttempts,
	salecommand.NewMetrics,
	salecommand.NewRegisterSaleHandler,
	salequery.NewGetSaleHandler,
	salequery.NewListSalesHandler,
	saledelivery.NewSaleHandler,
)

var ReportingSet = wire.NewSet(
	ProvideReporter,
	reportingdelivery.NewReportHandler,
)

var ServerSet = wire.NewSet(
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	ProvideMiddlewareConfig,
	server.NewHTTPMetrics,
	wire.Struct(new(server.Handlers), "*"),
	ProvideRouter,
)
