package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction type classifications that gate fee derivation.
const (
	ClassificationPrimaryInvestment = "Primary Investment"
	ClassificationSecondaryPurchase = "Secondary Purchase"
)

// Fee type names as stored in fee_types.fee_type_name.
const (
	FeeTypePerformance = "Performance Fee"
	FeeTypeManagement  = "Management Fee"
	FeeTypeStructuring = "Structuring Fee"
	FeeTypeAdmin       = "Admin Fee"
)

// DefaultTransactionTypes seeds transaction_types.
var DefaultTransactionTypes = []string{
	ClassificationPrimaryInvestment,
	ClassificationSecondaryPurchase,
	"Secondary Sale",
	"Distribution",
	"Capital Call",
}

// DefaultFeeTypes seeds fee_types.
var DefaultFeeTypes = []string{FeeTypePerformance, FeeTypeManagement, FeeTypeStructuring, FeeTypeAdmin}

type TransactionType struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TransactionTypeName string    `gorm:"column:transaction_type_name;uniqueIndex;not null" json:"transaction_type_name"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
}

func (TransactionType) TableName() string {
	return "transaction_types"
}

func (t *TransactionType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// DerivesFees reports whether transactions of this type cascade into fee records.
func (t TransactionType) DerivesFees() bool {
	return t.TransactionTypeName == ClassificationPrimaryInvestment ||
		t.TransactionTypeName == ClassificationSecondaryPurchase
}

type FeeType struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FeeTypeName string    `gorm:"column:fee_type_name;uniqueIndex;not null" json:"fee_type_name"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (FeeType) TableName() string {
	return "fee_types"
}

func (f *FeeType) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
