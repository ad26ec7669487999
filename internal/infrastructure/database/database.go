package database

import (
	"context"
	"fmt"

	"equitie-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Supabase/Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// Models lists every table in migration order; referenced tables come first.
func Models() []interface{} {
	return []interface{}{
		&domain.TransactionType{},
		&domain.FeeType{},
		&domain.Project{},
		&domain.Entity{},
		&domain.Transaction{},
		&domain.Fee{},
		&domain.Document{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Seed inserts the reference transaction and fee types. Existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range domain.DefaultTransactionTypes {
			row := domain.TransactionType{}
			if err := tx.Where(domain.TransactionType{TransactionTypeName: name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed transaction type %q: %w", name, err)
			}
		}
		for _, name := range domain.DefaultFeeTypes {
			row := domain.FeeType{}
			if err := tx.Where(domain.FeeType{FeeTypeName: name}).FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("seed fee type %q: %w", name, err)
			}
		}
		log.Info().
			Int("transaction_types", len(domain.DefaultTransactionTypes)).
			Int("fee_types", len(domain.DefaultFeeTypes)).
			Msg("reference data seeded")
		return nil
	})
}
