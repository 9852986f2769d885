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

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	// InTx runs fn against a Store bound to a single database transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status model.RoomStatus) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	ListResidents(ctx context.Context) ([]model.Resident, error)
	GetResident(ctx context.Context, id uuid.UUID) (*model.Resident, error)
	CreateResident(ctx context.Context, resident *model.Resident) error
	UpdateResident(ctx context.Context, resident *model.Resident) error

	ListTenancies(ctx context.Context, status model.TenancyStatus) ([]model.Tenancy, error)
	GetTenancy(ctx context.Context, id uuid.UUID) (*model.Tenancy, error)
	CreateTenancy(ctx context.Context, tenancy *model.Tenancy) error
	UpdateTenancyStatus(ctx context.Context, id uuid.UUID, status model.TenancyStatus) error
	UpdateTenancyEndDate(ctx context.Context, id uuid.UUID, end time.Time) error
	DeleteTenancy(ctx context.Context, id uuid.UUID) error
	CountActiveTenancies(ctx context.Context, roomID uuid.UUID) (int64, error)

	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	CreateInvoices(ctx context.Context, invoices []model.Invoice) error
	MarkInvoicePaid(ctx context.Context, id uuid.UUID) error
	MarkInvoiceReminded(ctx context.Context, id uuid.UUID, at time.Time) error

	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	FindTransactionByInvoice(ctx context.Context, invoiceID uuid.UUID) (*model.Transaction, error)

	ListLaundry(ctx context.Context) ([]model.Laundry, error)
	GetLaundry(ctx context.Context, id uuid.UUID) (*model.Laundry, error)
	CreateLaundry(ctx context.Context, order *model.Laundry) error
	UpdateLaundryStatus(ctx context.Context, id uuid.UUID, status model.LaundryStatus) error

	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	CreateEmployee(ctx context.Context, employee *model.Employee) error

	ListPayrolls(ctx context.Context, month string) ([]model.Payroll, error)
	EnsurePayrolls(ctx context.Context, month string, employees []model.Employee) error
	GetPayroll(ctx context.Context, id uuid.UUID) (*model.Payroll, error)
	MarkPayrollPaid(ctx context.Context, id uuid.UUID, at time.Time) error

	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	CountUsers(ctx context.Context) (int64, error)

	UpsertSubscription(ctx context.Context, sub *model.PushSubscription, residentIDs []uuid.UUID) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	ListSubscriptionsForResident(ctx context.Context, residentID uuid.UUID) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// InTx runs fn inside a transaction; any error returned by fn rolls it back.
func (s *gormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// LoadSnapshot reads every dashboard table with the orderings the UI expects.
func (s *gormStore) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Rooms, err = s.ListRooms(ctx); err != nil {
		return nil, err
	}
	if snap.Residents, err = s.ListResidents(ctx); err != nil {
		return nil, err
	}
	if snap.Tenancies, err = s.ListTenancies(ctx, ""); err != nil {
		return nil, err
	}
	if snap.Invoices, err = s.ListInvoices(ctx, InvoiceFilter{}); err != nil {
		return nil, err
	}
	if snap.Transactions, err = s.ListTransactions(ctx, TransactionFilter{}); err != nil {
		return nil, err
	}
	if snap.Laundry, err = s.ListLaundry(ctx); err != nil {
		return nil, err
	}
	if snap.Employees, err = s.ListEmployees(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

// first loads a single row by primary key, mapping a miss to ErrNotFound.
func first[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, what string) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", what, id, err)
	}
	return &out, nil
}

// updateColumns applies a column update to one row, mapping zero affected rows to ErrNotFound.
func updateColumns(ctx context.Context, db *gorm.DB, m any, id uuid.UUID, what string, values map[string]any) error {
	res := db.WithContext(ctx).Model(m).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s %s: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

// deleteByID removes one row, mapping zero affected rows to ErrNotFound.
func deleteByID(ctx context.Context, db *gorm.DB, m any, id uuid.UUID, what string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
