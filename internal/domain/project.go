package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ProjectTypes = []string{"Investment", "Advisory", "Advisory Shares"}

const ProjectStatusActive = "ACTIVE"

type Project struct {
	ID                         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProjectID                  string              `gorm:"column:project_id;uniqueIndex;not null" json:"project_id"`
	ProjectName                string              `gorm:"column:project_name;not null" json:"project_name"`
	ProjectType                string              `gorm:"column:project_type;not null" json:"project_type"`
	ProjectSeller              *string             `gorm:"column:project_seller" json:"project_seller"`
	ProjectDescription         *string             `gorm:"column:project_description" json:"project_description"`
	ProjectCommittedCapitalUSD decimal.NullDecimal `gorm:"column:project_committed_capital_usd;type:decimal(20,2)" json:"project_committed_capital_usd"`
	Status                     string              `gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt                  time.Time           `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                  time.Time           `gorm:"column:updated_at" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
