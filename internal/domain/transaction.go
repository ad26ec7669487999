package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction is one row of fact_transactions. TransactionID is the business
// identifier the portal shows and upserts on; ID is the row key other tables reference.
type Transaction struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TransactionID       string              `gorm:"column:transaction_id;uniqueIndex;not null" json:"transaction_id"`
	TransactionDate     datatypes.Date      `gorm:"column:transaction_date;not null" json:"transaction_date"`
	TransactionTypeID   uuid.UUID           `gorm:"column:transaction_type_id;type:uuid;not null" json:"transaction_type_id"`
	ProjectID           *uuid.UUID          `gorm:"column:project_id;type:uuid" json:"project_id"`
	BuyerID             *uuid.UUID          `gorm:"column:buyer_id;type:uuid" json:"buyer_id"`
	SellerID            *uuid.UUID          `gorm:"column:seller_id;type:uuid" json:"seller_id"`
	NoOfUnits           decimal.Decimal     `gorm:"column:no_of_units;type:decimal(24,8);not null" json:"no_of_units"`
	NetCapitalCommit    decimal.Decimal     `gorm:"column:net_capital_commit;type:decimal(20,2);not null" json:"net_capital_commit"`
	PricePerUnitUSD     decimal.Decimal     `gorm:"column:price_per_unit_usd;type:decimal(24,8);not null" json:"price_per_unit_usd"`
	UnderlyingValuation decimal.NullDecimal `gorm:"column:underlying_valuation;type:decimal(20,2)" json:"underlying_valuation"`
	Notes               *string             `gorm:"column:notes" json:"notes"`
	CreatedAt           time.Time           `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time           `gorm:"column:updated_at" json:"updated_at"`

	TransactionType *TransactionType `gorm:"foreignKey:TransactionTypeID;references:ID" json:"transaction_type,omitempty"`
	Project         *Project         `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Buyer           *Entity          `gorm:"foreignKey:BuyerID;references:ID" json:"buyer,omitempty"`
	Seller          *Entity          `gorm:"foreignKey:SellerID;references:ID" json:"seller,omitempty"`
}

func (Transaction) TableName() string {
	return "fact_transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
