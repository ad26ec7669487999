package fees

import (
	"context"
	"strings"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/currency"
	"equitie-backend/internal/pkg/ids"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Spec describes a fee that has not been written yet.
type Spec struct {
	FeeTypeID     uuid.UUID
	ProjectID     *uuid.UUID
	TransactionID *uuid.UUID
	Status        string
	Amount        decimal.Decimal
	Currency      string
	DueDate       *datatypes.Date
	Notes         *string
}

// Writer persists a batch of fees in a single call.
type Writer interface {
	InsertFees(ctx context.Context, fees []domain.Fee) error
}

type Creator struct {
	Writer Writer
}

// CreateFees writes all specs in one batch. Each fee gets a fresh fee_id and
// USD when no currency was given. A rejected batch returns the writer's error as is.
func (c *Creator) CreateFees(ctx context.Context, specs []Spec) ([]domain.Fee, error) {
	if len(specs) == 0 {
		return []domain.Fee{}, nil
	}
	rows := make([]domain.Fee, len(specs))
	for i, s := range specs {
		cur := currency.Normalize(s.Currency)
		if cur == "" {
			cur = domain.DefaultCurrency
		}
		rows[i] = domain.Fee{
			FeeID:         ids.New(ids.Fee),
			FeeTypeID:     s.FeeTypeID,
			ProjectID:     s.ProjectID,
			TransactionID: s.TransactionID,
			FeeStatus:     strings.ToUpper(s.Status),
			Amount:        s.Amount,
			Currency:      cur,
			DueDate:       s.DueDate,
			Notes:         s.Notes,
		}
	}
	if err := c.Writer.InsertFees(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}
