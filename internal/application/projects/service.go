package projects

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/ids"
	"equitie-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProjectNotFound = errors.New("Project not found")

type Input struct {
	ProjectID                  string              `json:"project_id"`
	ProjectName                string              `json:"project_name"`
	ProjectType                string              `json:"project_type"`
	ProjectSeller              *string             `json:"project_seller"`
	ProjectDescription         *string             `json:"project_description"`
	ProjectCommittedCapitalUSD decimal.NullDecimal `json:"project_committed_capital_usd"`
	Status                     string              `json:"status"`
}

// UnmarshalJSON reads a blank committed capital as not given.
func (in *Input) UnmarshalJSON(data []byte) error {
	type plain Input
	var p plain
	if err := json.Unmarshal(validation.BlankAsNull(data, "project_committed_capital_usd"), &p); err != nil {
		return err
	}
	*in = Input(p)
	return nil
}

func (in Input) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Required("project_name", in.ProjectName, "Project name is required")
	errs.Required("project_type", in.ProjectType, "Project type is required")
	if in.ProjectType != "" && !validation.OneOf(in.ProjectType, domain.ProjectTypes) {
		errs.Add("project_type", "Invalid project type")
	}
	if in.ProjectCommittedCapitalUSD.Valid && in.ProjectCommittedCapitalUSD.Decimal.IsNegative() {
		errs.Add("project_committed_capital_usd", "Committed capital must be positive")
	}
	return errs
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("list projects")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	var p domain.Project
	err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save inserts or replaces the project keyed on project_id.
func (s *Service) Save(ctx context.Context, in Input) (*domain.Project, error) {
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.ProjectStatusActive
	}
	row := domain.Project{
		ProjectID:                  ids.OrNew(in.ProjectID, ids.Project),
		ProjectName:                strings.TrimSpace(in.ProjectName),
		ProjectType:                in.ProjectType,
		ProjectSeller:              in.ProjectSeller,
		ProjectDescription:         in.ProjectDescription,
		ProjectCommittedCapitalUSD: in.ProjectCommittedCapitalUSD,
		Status:                     status,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"project_name", "project_type", "project_seller", "project_description",
			"project_committed_capital_usd", "status", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Error().Err(err).Str("project_id", row.ProjectID).Msg("save project")
		return nil, err
	}
	return s.Get(ctx, row.ProjectID)
}

func (s *Service) Delete(ctx context.Context, projectID string) error {
	res := s.DB.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
