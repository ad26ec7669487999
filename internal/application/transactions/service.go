package transactions

import (
	"context"
	"errors"
	"fmt"
	"io"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/export"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func (s *Service) expanded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("TransactionType").
		Preload("Project").
		Preload("Buyer").
		Preload("Seller")
}

// List returns all transactions, latest transaction_date first, with type,
// project, buyer and seller expanded.
func (s *Service) List(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := s.expanded(ctx).Order("transaction_date DESC").Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("list transactions")
		return nil, err
	}
	return out, nil
}

// Get returns the transaction with the given business id.
func (s *Service) Get(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.expanded(ctx).Where("transaction_id = ?", transactionID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the transaction and the fees derived from it. Documents
// attached to it are kept and unlinked.
func (s *Service) Delete(ctx context.Context, transactionID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t domain.Transaction
		if err := tx.Where("transaction_id = ?", transactionID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if err := tx.Where("transaction_id = ?", t.ID).Delete(&domain.Fee{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Document{}).Where("transaction_id = ?", t.ID).
			Update("transaction_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
}

// TransactionTypes returns the transaction_types reference list.
func (s *Service) TransactionTypes(ctx context.Context) ([]domain.TransactionType, error) {
	return (&GormStore{DB: s.DB}).TransactionTypes(ctx)
}

// Export writes the expanded transaction list as an XLSX workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, len(list))
	for i, t := range list {
		var typeName, projectName, buyer, seller string
		if t.TransactionType != nil {
			typeName = t.TransactionType.TransactionTypeName
		}
		if t.Project != nil {
			projectName = t.Project.ProjectName
		}
		if t.Buyer != nil {
			buyer = t.Buyer.EntityLegalName
		}
		if t.Seller != nil {
			seller = t.Seller.EntityLegalName
		}
		units, _ := t.NoOfUnits.Float64()
		commit, _ := t.NetCapitalCommit.Float64()
		price, _ := t.PricePerUnitUSD.Float64()
		rows[i] = []interface{}{
			t.TransactionID, domain.FormatDate(t.TransactionDate), typeName, projectName,
			buyer, seller, units, commit, price,
		}
	}
	err = export.WriteXLSX(w, export.Sheet{
		Name: "Transactions",
		Headers: []string{
			"Transaction ID", "Date", "Type", "Project", "Buyer", "Seller",
			"Units", "Net Capital Commit", "Price Per Unit (USD)",
		},
		Rows:   rows,
		Widths: []float64{32, 12, 20, 28, 28, 28, 14, 20, 20},
	})
	if err != nil {
		return fmt.Errorf("export transactions: %w", err)
	}
	return nil
}
