package fees

import (
	"context"

	"equitie-backend/internal/domain"

	"gorm.io/gorm"
)

// GormRepository implements Finder and Writer using GORM.
type GormRepository struct {
	DB *gorm.DB
}

func (r *GormRepository) FindFeeTypeByName(ctx context.Context, name string) (*domain.FeeType, error) {
	var ft domain.FeeType
	if err := r.DB.WithContext(ctx).Where("fee_type_name = ?", name).First(&ft).Error; err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *GormRepository) InsertFees(ctx context.Context, rows []domain.Fee) error {
	return r.DB.WithContext(ctx).Create(&rows).Error
}
