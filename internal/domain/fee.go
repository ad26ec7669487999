package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fee statuses. Conventionally AGREED -> DUE -> PAID, but any status may be set directly.
const (
	FeeStatusAgreed = "AGREED"
	FeeStatusDue    = "DUE"
	FeeStatusPaid   = "PAID"
)

// FeeStatuses lists the allowed fee_status values.
var FeeStatuses = []string{FeeStatusAgreed, FeeStatusDue, FeeStatusPaid}

// DefaultCurrency is applied to fees created without a currency.
const DefaultCurrency = "USD"

type Fee struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FeeID         string          `gorm:"column:fee_id;uniqueIndex;not null" json:"fee_id"`
	FeeTypeID     uuid.UUID       `gorm:"column:fee_type_id;type:uuid;not null" json:"fee_type_id"`
	ProjectID     *uuid.UUID      `gorm:"column:project_id;type:uuid" json:"project_id"`
	TransactionID *uuid.UUID      `gorm:"column:transaction_id;type:uuid" json:"transaction_id"`
	FeeStatus     string          `gorm:"column:fee_status;type:varchar(10);not null" json:"fee_status"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Currency      string          `gorm:"column:currency;type:varchar(3);not null;default:'USD'" json:"currency"`
	DueDate       *datatypes.Date `gorm:"column:due_date" json:"due_date"`
	PaymentDate   *datatypes.Date `gorm:"column:payment_date" json:"payment_date"`
	Notes         *string         `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`

	FeeType     *FeeType     `gorm:"foreignKey:FeeTypeID;references:ID" json:"fee_type,omitempty"`
	Project     *Project     `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID;references:ID" json:"transaction,omitempty"`
}

func (Fee) TableName() string {
	return "fees"
}

func (f *Fee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
