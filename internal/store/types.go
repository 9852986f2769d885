package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"zayura-backend/internal/model"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// InvoiceFilter narrows ListInvoices. Zero fields are ignored.
type InvoiceFilter struct {
	ResidentID     uuid.UUID
	TenancyID      uuid.UUID
	Status         model.InvoiceStatus
	DueBefore      *time.Time
	OnlyUnreminded bool
}

// TransactionFilter narrows ListTransactions. From is inclusive, To exclusive.
type TransactionFilter struct {
	From     *time.Time
	To       *time.Time
	Type     model.TransactionType
	Category string
	Limit    int
}

// Snapshot is every table the dashboard renders, loaded in one pass.
type Snapshot struct {
	Rooms        []model.Room        `json:"rooms"`
	Residents    []model.Resident    `json:"residents"`
	Tenancies    []model.Tenancy     `json:"tenancies"`
	Invoices     []model.Invoice     `json:"invoices"`
	Transactions []model.Transaction `json:"transactions"`
	Laundry      []model.Laundry     `json:"laundry"`
	Employees    []model.Employee    `json:"employees"`
}
