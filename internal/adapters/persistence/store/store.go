package store

import (
	"context"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/adapters/supabase"
	"nova-library/internal/config"
	"nova-library/internal/pkg/logger"

	"gorm.io/gorm"
)

// Store bundles the table repositories of one backend
type Store struct {
	Inventory repositories.InventoryRepository
	Members   repositories.MemberRepository
	Rentals   repositories.RentalRepository

	health func(ctx context.Context) error
	close  func() error
}

// Open connects the backend selected by STORE_DRIVER
func Open(cfg *config.Config) (*Store, error) {
	log := logger.Get()

	if cfg.Store.Driver == "supabase" {
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Timeout)
		log.Info().Str("url", cfg.Supabase.URL).Msg("using supabase table API")
		return &Store{
			Inventory: supabase.NewInventoryRepository(client),
			Members:   supabase.NewMemberRepository(client),
			Rentals:   supabase.NewRentalRepository(client),
			health: func(ctx context.Context) error {
				return client.Ping(ctx, "lib_inventory")
			},
			close: func() error { return nil },
		}, nil
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Store.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			config.CloseDatabase()
			return nil, err
		}
		log.Info().Msg("database migration completed")
	}

	s := FromDB(db)
	s.health = func(ctx context.Context) error { return config.HealthCheck() }
	s.close = config.CloseDatabase
	return s, nil
}

// FromDB wraps an open gorm connection
func FromDB(db *gorm.DB) *Store {
	return &Store{
		Inventory: repositories.NewInventoryRepository(db),
		Members:   repositories.NewMemberRepository(db),
		Rentals:   repositories.NewRentalRepository(db),
		health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error { return nil },
	}
}

// HealthCheck pings the backend
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.health(ctx)
}

// Close releases the backend connection
func (s *Store) Close() error {
	return s.close()
}
