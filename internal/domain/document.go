package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DocumentTypeProject     = "PROJECT"
	DocumentTypeTransaction = "TRANSACTION"
	DocumentTypeKYC         = "KYC"
	DocumentTypeOther       = "OTHER"
)

var DocumentTypes = []string{DocumentTypeProject, DocumentTypeTransaction, DocumentTypeKYC, DocumentTypeOther}

// Document is the metadata row for a file kept in the object store; DocumentURL is its public URL.
type Document struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DocumentID    string     `gorm:"column:document_id;uniqueIndex;not null" json:"document_id"`
	DocumentName  string     `gorm:"column:document_name;not null" json:"document_name"`
	DocumentType  string     `gorm:"column:document_type;type:varchar(20);not null" json:"document_type"`
	DocumentURL   string     `gorm:"column:document_url;not null" json:"document_url"`
	ProjectID     *uuid.UUID `gorm:"column:project_id;type:uuid" json:"project_id"`
	EntityID      *uuid.UUID `gorm:"column:entity_id;type:uuid" json:"entity_id"`
	TransactionID *uuid.UUID `gorm:"column:transaction_id;type:uuid" json:"transaction_id"`
	Notes         *string    `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Project     *Project     `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Entity      *Entity      `gorm:"foreignKey:EntityID;references:ID" json:"entity,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID;references:ID" json:"transaction,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
