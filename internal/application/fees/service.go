package fees

import (
	"context"
	"errors"
	"fmt"
	"io"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/export"
	"equitie-backend/internal/pkg/ids"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// List returns all fees, newest first, with fee type, project and transaction expanded.
func (s *Service) List(ctx context.Context) ([]domain.Fee, error) {
	var out []domain.Fee
	err := s.DB.WithContext(ctx).
		Preload("FeeType").
		Preload("Project").
		Preload("Transaction").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Error().Err(err).Msg("list fees")
		return nil, err
	}
	return out, nil
}

// FeeTypes returns the fee_types reference list ordered by name.
func (s *Service) FeeTypes(ctx context.Context) ([]domain.FeeType, error) {
	var out []domain.FeeType
	if err := s.DB.WithContext(ctx).Order("fee_type_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts or replaces the fee keyed on fee_id; a blank fee_id gets a new one.
// Input that cannot be turned into a row fails with ErrInvalidFee.
func (s *Service) Save(ctx context.Context, in Input) (*domain.Fee, error) {
	row, err := in.toFee()
	if err != nil {
		return nil, err
	}
	row.FeeID = ids.OrNew(in.FeeID, ids.Fee)

	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "fee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fee_type_id", "project_id", "transaction_id", "fee_status", "amount",
			"currency", "due_date", "payment_date", "notes", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Error().Err(err).Str("fee_id", row.FeeID).Msg("save fee")
		return nil, err
	}
	return s.Get(ctx, row.FeeID)
}

func (s *Service) Get(ctx context.Context, feeID string) (*domain.Fee, error) {
	var f domain.Fee
	err := s.DB.WithContext(ctx).
		Preload("FeeType").
		Preload("Project").
		Preload("Transaction").
		Where("fee_id = ?", feeID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Service) Delete(ctx context.Context, feeID string) error {
	res := s.DB.WithContext(ctx).Where("fee_id = ?", feeID).Delete(&domain.Fee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFeeNotFound
	}
	return nil
}

// Export writes the fee list as an XLSX workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, len(list))
	for i, f := range list {
		var typeName, projectName, txnID, due, paid string
		if f.FeeType != nil {
			typeName = f.FeeType.FeeTypeName
		}
		if f.Project != nil {
			projectName = f.Project.ProjectName
		}
		if f.Transaction != nil {
			txnID = f.Transaction.TransactionID
		}
		if f.DueDate != nil {
			due = domain.FormatDate(*f.DueDate)
		}
		if f.PaymentDate != nil {
			paid = domain.FormatDate(*f.PaymentDate)
		}
		amount, _ := f.Amount.Float64()
		rows[i] = []interface{}{f.FeeID, typeName, projectName, txnID, f.FeeStatus, amount, f.Currency, due, paid}
	}
	err = export.WriteXLSX(w, export.Sheet{
		Name:    "Fees",
		Headers: []string{"Fee ID", "Fee Type", "Project", "Transaction", "Status", "Amount", "Currency", "Due Date", "Payment Date"},
		Rows:    rows,
		Widths:  []float64{32, 18, 28, 32, 10, 14, 10, 12, 14},
	})
	if err != nil {
		return fmt.Errorf("export fees: %w", err)
	}
	return nil
}
