package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// Invoice is a rent obligation covering one billing block.
type Invoice struct {
	Base
	TenancyID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"tenancy_id"`
	ResidentID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"resident_id"`
	MonthYear   string        `gorm:"size:32;not null" json:"month_year"`
	Months      int           `gorm:"not null;default:1" json:"months"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Status      InvoiceStatus `gorm:"size:16;not null;index" json:"status"`
	DueDate     time.Time     `gorm:"not null;index" json:"due_date"`
	Description string        `gorm:"size:256;not null" json:"description"`
	PeriodStart *time.Time    `json:"period_start,omitempty"`
	PeriodEnd   *time.Time    `json:"period_end,omitempty"`
	RemindedAt  *time.Time    `json:"reminded_at,omitempty"`

	// Associations
	Tenancy *Tenancy `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
