package transactions

import (
	"encoding/json"
	"fmt"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/ids"
	"equitie-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionInput is the transaction form. References are strings so an
// unselected option can arrive as "". The four fee fields only matter for
// fee-deriving transaction types; zero means "not given".
type SubmissionInput struct {
	TransactionID       string              `json:"transaction_id"`
	TransactionDate     string              `json:"transaction_date"`
	TransactionTypeID   string              `json:"transaction_type_id"`
	ProjectID           string              `json:"project_id"`
	BuyerID             string              `json:"buyer_id"`
	SellerID            string              `json:"seller_id"`
	NoOfUnits           decimal.Decimal     `json:"no_of_units"`
	NetCapitalCommit    decimal.Decimal     `json:"net_capital_commit"`
	UnderlyingValuation decimal.NullDecimal `json:"underlying_valuation"`
	Notes               *string             `json:"notes"`

	PerformanceFeeAgreed  decimal.Decimal `json:"performance_fee_agreed"`
	AnnualManagementFee   decimal.Decimal `json:"annual_management_fee"`
	UpfrontStructuringFee decimal.Decimal `json:"upfront_structuring_fee"`
	AdminFeeFixed         decimal.Decimal `json:"admin_fee_fixed"`
}

// amountFields are the numeric form inputs; the portal sends an untouched one as "".
var amountFields = []string{
	"no_of_units", "net_capital_commit", "underlying_valuation",
	"performance_fee_agreed", "annual_management_fee", "upfront_structuring_fee", "admin_fee_fixed",
}

// UnmarshalJSON reads blank amounts as not given: zero, or null for the valuation.
func (in *SubmissionInput) UnmarshalJSON(data []byte) error {
	type plain SubmissionInput
	var p plain
	if err := json.Unmarshal(validation.BlankAsNull(data, amountFields...), &p); err != nil {
		return err
	}
	*in = SubmissionInput(p)
	return nil
}

// Validate applies the form rules and returns per-field messages.
func (in SubmissionInput) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Required("transaction_date", in.TransactionDate, "Transaction date is required")
	if in.TransactionDate != "" {
		if _, err := domain.ParseDate(in.TransactionDate); err != nil {
			errs.Add("transaction_date", "Invalid transaction date")
		}
	}
	errs.Required("transaction_type_id", in.TransactionTypeID, "Transaction type is required")
	if in.TransactionTypeID != "" {
		if _, err := uuid.Parse(in.TransactionTypeID); err != nil {
			errs.Add("transaction_type_id", "Invalid transaction type")
		}
	}
	if !in.NoOfUnits.IsPositive() {
		errs.Add("no_of_units", "Number of units must be positive")
	}
	if !PricePerUnit(in.NetCapitalCommit, in.NoOfUnits).IsPositive() {
		errs.Add("price_per_unit_usd", "Price per unit must be positive")
	}
	for field, s := range map[string]string{"project_id": in.ProjectID, "buyer_id": in.BuyerID, "seller_id": in.SellerID} {
		if _, err := parseOptionalUUID(s); err != nil {
			errs.Add(field, "Invalid reference")
		}
	}
	return errs
}

// transaction builds the row to upsert, generating a transaction_id when absent.
func (in SubmissionInput) transaction() (*domain.Transaction, error) {
	date, err := domain.ParseDate(in.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction_date: %v", ErrInvalidSubmission, err)
	}
	typeID, err := uuid.Parse(in.TransactionTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction_type_id: %v", ErrInvalidSubmission, err)
	}
	row := &domain.Transaction{
		TransactionID:       ids.OrNew(in.TransactionID, ids.Transaction),
		TransactionDate:     date,
		TransactionTypeID:   typeID,
		NoOfUnits:           in.NoOfUnits,
		NetCapitalCommit:    in.NetCapitalCommit,
		PricePerUnitUSD:     PricePerUnit(in.NetCapitalCommit, in.NoOfUnits),
		UnderlyingValuation: in.UnderlyingValuation,
		Notes:               in.Notes,
	}
	refs := []struct {
		name string
		raw  string
		dst  **uuid.UUID
	}{
		{"project_id", in.ProjectID, &row.ProjectID},
		{"buyer_id", in.BuyerID, &row.BuyerID},
		{"seller_id", in.SellerID, &row.SellerID},
	}
	for _, ref := range refs {
		id, err := parseOptionalUUID(ref.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSubmission, ref.name, err)
		}
		*ref.dst = id
	}
	return row, nil
}

// feeField is one of the form's fee inputs and the policy attached to it.
type feeField struct {
	FeeType string
	Status  string
	Amount  decimal.Decimal
}

// feeFields returns the nonzero fee inputs in form order. Performance and
// management fees are AGREED; structuring and admin fees are DUE.
func (in SubmissionInput) feeFields() []feeField {
	all := []feeField{
		{domain.FeeTypePerformance, domain.FeeStatusAgreed, in.PerformanceFeeAgreed},
		{domain.FeeTypeManagement, domain.FeeStatusAgreed, in.AnnualManagementFee},
		{domain.FeeTypeStructuring, domain.FeeStatusDue, in.UpfrontStructuringFee},
		{domain.FeeTypeAdmin, domain.FeeStatusDue, in.AdminFeeFixed},
	}
	out := all[:0]
	for _, f := range all {
		if !f.Amount.IsZero() {
			out = append(out, f)
		}
	}
	return out
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
