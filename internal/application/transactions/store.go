package transactions

import (
	"context"

	"equitie-backend/internal/application/fees"
	"equitie-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is everything a submission needs from the data store.
type Store interface {
	fees.Finder
	fees.Writer
	TransactionTypes(ctx context.Context) ([]domain.TransactionType, error)
	// UpsertTransaction inserts row or replaces the row with the same transaction_id
	// and returns the stored record.
	UpsertTransaction(ctx context.Context, row *domain.Transaction) (*domain.Transaction, error)
	// Atomic runs fn against a Store whose writes commit or roll back together.
	Atomic(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Store using GORM.
type GormStore struct {
	DB *gorm.DB
}

var upsertColumns = []string{
	"transaction_date", "transaction_type_id", "project_id", "buyer_id", "seller_id",
	"no_of_units", "net_capital_commit", "price_per_unit_usd", "underlying_valuation",
	"notes", "updated_at",
}

func (s *GormStore) TransactionTypes(ctx context.Context) ([]domain.TransactionType, error) {
	var out []domain.TransactionType
	if err := s.DB.WithContext(ctx).Order("transaction_type_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) UpsertTransaction(ctx context.Context, row *domain.Transaction) (*domain.Transaction, error) {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	var saved domain.Transaction
	if err := s.DB.WithContext(ctx).Where("transaction_id = ?", row.TransactionID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *GormStore) FindFeeTypeByName(ctx context.Context, name string) (*domain.FeeType, error) {
	return (&fees.GormRepository{DB: s.DB}).FindFeeTypeByName(ctx, name)
}

func (s *GormStore) InsertFees(ctx context.Context, rows []domain.Fee) error {
	return (&fees.GormRepository{DB: s.DB}).InsertFees(ctx, rows)
}

func (s *GormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}
