package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zayura-backend/internal/model"
)

func (s *gormStore) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	q := s.db.WithContext(ctx).Order("due_date")
	if filter.ResidentID != uuid.Nil {
		q = q.Where("resident_id = ?", filter.ResidentID)
	}
	if filter.TenancyID != uuid.Nil {
		q = q.Where("tenancy_id = ?", filter.TenancyID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		q = q.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.OnlyUnreminded {
		q = q.Where("reminded_at IS NULL")
	}

	var invoices []model.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *gormStore) GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return first[model.Invoice](ctx, s.db, id, "invoice")
}

func (s *gormStore) CreateInvoices(ctx context.Context, invoices []model.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit("Tenancy").Create(&invoices).Error; err != nil {
		return fmt.Errorf("failed to create %d invoices: %w", len(invoices), err)
	}
	return nil
}

func (s *gormStore) MarkInvoicePaid(ctx context.Context, id uuid.UUID) error {
	return updateColumns(ctx, s.db, &model.Invoice{}, id, "invoice", map[string]any{"status": model.InvoicePaid})
}

func (s *gormStore) MarkInvoiceReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return updateColumns(ctx, s.db, &model.Invoice{}, id, "invoice", map[string]any{"reminded_at": at})
}

func (s *gormStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	q := s.db.WithContext(ctx).Order("transaction_date DESC").Order("created_at DESC")
	if filter.From != nil {
		q = q.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("transaction_date < ?", *filter.To)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var txs []model.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (s *gormStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create %s transaction: %w", tx.Type, err)
	}
	return nil
}

func (s *gormStore) FindTransactionByInvoice(ctx context.Context, invoiceID uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := s.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction for invoice %s: %w", invoiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load transaction for invoice %s: %w", invoiceID, err)
	}
	return &tx, nil
}
