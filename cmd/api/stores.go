package main

import (
	"context"
	"database/sql"
	"fmt"

	mem "medication-tracker/internal/adapters/storage/memory"
	pg "medication-tracker/internal/adapters/storage/postgres"
	"medication-tracker/internal/adapters/storage/sqlite"
	"medication-tracker/internal/config"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

type stores struct {
	medications medications.Repository
	doses       doses.Repository
	db          *sql.DB
}

func (s *stores) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// openStores elige el adaptador según cfg.Store.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return &stores{
			medications: mem.NewMedicationRepo(),
			doses:       mem.NewDoseRepo(),
		}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			medications: sqlite.NewMedicationsRepo(db),
			doses:       sqlite.NewDosesRepo(db),
			db:          db,
		}, nil

	case config.StorePostgres:
		db, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			medications: pg.NewMedicationsRepo(db),
			doses:       pg.NewDosesRepo(db),
			db:          db,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store: %s", cfg.Store)
	}
}
