package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityTypes are the investor/partner classifications offered by the portal.
var EntityTypes = []string{
	"Individual Investor",
	"Company Investor",
	"Partner",
	"EquiTie Company",
	"Investee Company",
}

type Entity struct {
	ID                              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EntityUUID                      string    `gorm:"column:entity_uuid;uniqueIndex;not null" json:"entity_uuid"`
	EntityLegalName                 string    `gorm:"column:entity_legal_name;not null" json:"entity_legal_name"`
	EntityType                      string    `gorm:"column:entity_type;not null" json:"entity_type"`
	CountryResidenceOrIncorporation *string   `gorm:"column:country_residence_or_incorporation" json:"country_residence_or_incorporation"`
	Email1                          *string   `gorm:"column:email1" json:"email1"`
	Email2                          *string   `gorm:"column:email2" json:"email2"`
	Address                         *string   `gorm:"column:address" json:"address"`
	CreatedAt                       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Entity) TableName() string {
	return "entities"
}

func (e *Entity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
