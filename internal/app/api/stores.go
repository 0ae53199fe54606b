package api

import (
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/cafe-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/cafe-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/cafe-api/internal/domains/catalog/ports"
	contactmemory "github.com/Apurer/cafe-api/internal/domains/contact/adapters/memory"
	contactpostgres "github.com/Apurer/cafe-api/internal/domains/contact/adapters/persistence/postgres"
	contactports "github.com/Apurer/cafe-api/internal/domains/contact/ports"
	identitymemory "github.com/Apurer/cafe-api/internal/domains/identity/adapters/memory"
	identitypostgres "github.com/Apurer/cafe-api/internal/domains/identity/adapters/persistence/postgres"
	identityports "github.com/Apurer/cafe-api/internal/domains/identity/ports"
	ordersmemory "github.com/Apurer/cafe-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/cafe-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	salesmemory "github.com/Apurer/cafe-api/internal/domains/sales/adapters/memory"
	salespostgres "github.com/Apurer/cafe-api/internal/domains/sales/adapters/persistence/postgres"
	salesports "github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

// stores holds one repository per bounded context, all backed by the same database.
type stores struct {
	products    catalogports.Repository
	identities  identityports.Repository
	orders      ordersports.Repository
	idempotency ordersports.IdempotencyStore
	snapshots   salesports.Repository
	contact     contactports.Repository
}

// buildStores returns postgres adapters when db is set, otherwise in-memory ones.
func buildStores(db *gorm.DB, logger *slog.Logger) stores {
	if db == nil {
		logger.Warn("using in-memory repositories, data is lost on restart")
		return stores{
			products:    catalogmemory.NewRepository(),
			identities:  identitymemory.NewRepository(),
			orders:      ordersmemory.NewRepository(),
			idempotency: ordersmemory.NewIdempotencyStore(),
			snapshots:   salesmemory.NewRepository(),
			contact:     contactmemory.NewRepository(),
		}
	}
	logger.Info("repositories configured with postgres")
	return stores{
		products:    catalogpostgres.NewRepository(db),
		identities:  identitypostgres.NewRepository(db),
		orders:      orderspostgres.NewRepository(db),
		idempotency: orderspostgres.NewIdempotencyStore(db),
		snapshots:   salespostgres.NewRepository(db),
		contact:     contactpostgres.NewRepository(db),
	}
}
