package fees

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/currency"
	"equitie-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input is the body of a fee create or update. Optional references are sent
// as strings; an empty string means "not set".
type Input struct {
	FeeID         string          `json:"fee_id"`
	FeeTypeID     string          `json:"fee_type_id"`
	ProjectID     string          `json:"project_id"`
	TransactionID string          `json:"transaction_id"`
	FeeStatus     string          `json:"fee_status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	DueDate       string          `json:"due_date"`
	PaymentDate   string          `json:"payment_date"`
	Notes         *string         `json:"notes"`
}

// UnmarshalJSON reads a blank amount as not given.
func (in *Input) UnmarshalJSON(data []byte) error {
	type plain Input
	var p plain
	if err := json.Unmarshal(validation.BlankAsNull(data, "amount"), &p); err != nil {
		return err
	}
	*in = Input(p)
	return nil
}

// Validate reports per-field problems. today is the calendar day due dates are compared against.
func (in Input) Validate(today time.Time) validation.Errors {
	errs := validation.Errors{}
	errs.Required("fee_type_id", in.FeeTypeID, "Fee type is required")
	if in.FeeTypeID != "" {
		if _, err := uuid.Parse(in.FeeTypeID); err != nil {
			errs.Add("fee_type_id", "Invalid fee type")
		}
	}
	errs.Required("fee_status", in.FeeStatus, "Fee status is required")
	if in.FeeStatus != "" && !validation.OneOf(strings.ToUpper(in.FeeStatus), domain.FeeStatuses) {
		errs.Add("fee_status", "Invalid fee status")
	}
	if !in.Amount.IsPositive() {
		errs.Add("amount", "Amount must be positive")
	}
	if c := currency.Normalize(in.Currency); c != "" && !currency.IsValid(c) {
		errs.Add("currency", "Unknown currency code")
	}
	if in.DueDate != "" {
		d, err := domain.ParseDate(in.DueDate)
		if err != nil {
			errs.Add("due_date", "Invalid due date")
		} else {
			y, m, day := today.Date()
			if time.Time(d).Before(time.Date(y, m, day, 0, 0, 0, 0, time.UTC)) {
				errs.Add("due_date", "Due date cannot be in the past")
			}
		}
	}
	if in.PaymentDate != "" {
		if _, err := domain.ParseDate(in.PaymentDate); err != nil {
			errs.Add("payment_date", "Invalid payment date")
		}
	}
	for field, s := range map[string]string{"project_id": in.ProjectID, "transaction_id": in.TransactionID} {
		if s == "" {
			continue
		}
		if _, err := uuid.Parse(s); err != nil {
			errs.Add(field, "Invalid reference")
		}
	}
	return errs
}

// toFee builds the row for an input. Malformed references or dates yield ErrInvalidFee.
func (in Input) toFee() (domain.Fee, error) {
	typeID, err := uuid.Parse(in.FeeTypeID)
	if err != nil {
		return domain.Fee{}, fmt.Errorf("%w: fee_type_id: %v", ErrInvalidFee, err)
	}
	f := domain.Fee{
		FeeTypeID:     typeID,
		ProjectID:     optionalUUID(in.ProjectID),
		TransactionID: optionalUUID(in.TransactionID),
		FeeStatus:     strings.ToUpper(in.FeeStatus),
		Amount:        in.Amount,
		Currency:      currency.Normalize(in.Currency),
		Notes:         in.Notes,
	}
	if f.Currency == "" {
		f.Currency = domain.DefaultCurrency
	}
	if in.DueDate != "" {
		d, err := domain.ParseDate(in.DueDate)
		if err != nil {
			return domain.Fee{}, fmt.Errorf("%w: due_date: %v", ErrInvalidFee, err)
		}
		f.DueDate = &d
	}
	if in.PaymentDate != "" {
		d, err := domain.ParseDate(in.PaymentDate)
		if err != nil {
			return domain.Fee{}, fmt.Errorf("%w: payment_date: %v", ErrInvalidFee, err)
		}
		f.PaymentDate = &d
	}
	return f, nil
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
