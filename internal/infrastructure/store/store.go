// Package store arma los repositorios según STORE_DRIVER (PostgreSQL o SQLite local).
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/kirana-pos/pkg/config"
)

// TxRunner transacciones de cuentas y de catálogo sobre el mismo backend.
type TxRunner interface {
	billing.BillingTxRunner
	inventory.CatalogTxRunner
}

// Store repositorios y runner transaccional de un mismo backend.
type Store struct {
	Driver    string
	Users     repository.UserRepository
	Inventory repository.InventoryRepository
	Bills     repository.BillRepository
	Days      repository.DailySessionRepository
	TxRunner  TxRunner

	close func()
}

// Open conecta al backend configurado y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.StoreDriverSQLite,
			Users:     sqlite.NewUserRepository(db),
			Inventory: sqlite.NewInventoryRepository(db),
			Bills:     sqlite.NewBillRepository(db),
			Days:      sqlite.NewDailySessionRepository(db),
			TxRunner:  sqlite.NewTxRunner(db),
			close:     func() { db.Close() },
		}, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.StoreDriverPostgres,
			Users:     postgres.NewUserRepository(pool),
			Inventory: postgres.NewInventoryRepository(pool),
			Bills:     postgres.NewBillRepository(pool),
			Days:      postgres.NewDailySessionRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
	}
}

// Close libera las conexiones.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
