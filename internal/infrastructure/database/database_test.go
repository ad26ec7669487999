package database

import (
	"context"
	"testing"

	"equitie-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"transaction_types", "fee_types", "projects", "entities", "fact_transactions", "fees", "documents"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var txTypes, feeTypes int64
	db.Model(&domain.TransactionType{}).Count(&txTypes)
	db.Model(&domain.FeeType{}).Count(&feeTypes)
	assert.EqualValues(t, len(domain.DefaultTransactionTypes), txTypes)
	assert.EqualValues(t, len(domain.DefaultFeeTypes), feeTypes)

	var perf domain.FeeType
	require.NoError(t, db.Where("fee_type_name = ?", domain.FeeTypePerformance).First(&perf).Error)
}
