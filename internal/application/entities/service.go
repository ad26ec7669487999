package entities

import (
	"context"
	"errors"
	"strings"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/ids"
	"equitie-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEntityNotFound = errors.New("Entity not found")

type Input struct {
	EntityUUID                      string  `json:"entity_uuid"`
	EntityLegalName                 string  `json:"entity_legal_name"`
	EntityType                      string  `json:"entity_type"`
	CountryResidenceOrIncorporation *string `json:"country_residence_or_incorporation"`
	Email1                          *string `json:"email1"`
	Email2                          *string `json:"email2"`
	Address                         *string `json:"address"`
}

func (in Input) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Required("entity_legal_name", in.EntityLegalName, "Legal name is required")
	errs.Required("entity_type", in.EntityType, "Entity type is required")
	if in.EntityType != "" && !validation.OneOf(in.EntityType, domain.EntityTypes) {
		errs.Add("entity_type", "Invalid entity type")
	}
	for field, email := range map[string]*string{"email1": in.Email1, "email2": in.Email2} {
		if e := trimmed(email); e != nil && !validation.IsValidEmail(*e) {
			errs.Add(field, "Invalid email format")
		}
	}
	return errs
}

// trimmed returns nil for a nil or blank string.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Entity, error) {
	var out []domain.Entity
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("list entities")
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, entityUUID string) (*domain.Entity, error) {
	var e domain.Entity
	err := s.DB.WithContext(ctx).Where("entity_uuid = ?", entityUUID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Save inserts or replaces the entity keyed on entity_uuid. Names and emails are trimmed.
func (s *Service) Save(ctx context.Context, in Input) (*domain.Entity, error) {
	row := domain.Entity{
		EntityUUID:                      ids.OrNew(in.EntityUUID, ids.Entity),
		EntityLegalName:                 strings.TrimSpace(in.EntityLegalName),
		EntityType:                      in.EntityType,
		CountryResidenceOrIncorporation: trimmed(in.CountryResidenceOrIncorporation),
		Email1:                          trimmed(in.Email1),
		Email2:                          trimmed(in.Email2),
		Address:                         trimmed(in.Address),
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"entity_legal_name", "entity_type", "country_residence_or_incorporation",
			"email1", "email2", "address", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Error().Err(err).Str("entity_uuid", row.EntityUUID).Msg("save entity")
		return nil, err
	}
	return s.Get(ctx, row.EntityUUID)
}

func (s *Service) Delete(ctx context.Context, entityUUID string) error {
	res := s.DB.WithContext(ctx).Where("entity_uuid = ?", entityUUID).Delete(&domain.Entity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntityNotFound
	}
	return nil
}
