package fees

import (
	"context"
	"errors"
	"fmt"

	"equitie-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finder looks up fee types by their display name.
type Finder interface {
	FindFeeTypeByName(ctx context.Context, name string) (*domain.FeeType, error)
}

// Resolver maps a fee type name onto its row id.
type Resolver struct {
	Finder Finder
}

// ResolveFeeTypeID returns the id of the fee type named exactly name.
// A missing row yields an error wrapping ErrFeeTypeNotFound.
func (r *Resolver) ResolveFeeTypeID(ctx context.Context, name string) (uuid.UUID, error) {
	ft, err := r.Finder.FindFeeTypeByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrFeeTypeNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrFeeTypeNotFound, name)
		}
		return uuid.Nil, fmt.Errorf("resolve fee type %q: %w", name, err)
	}
	return ft.ID, nil
}
