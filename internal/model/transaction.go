package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentCash     PaymentMethod = "Cash"
)

// Ledger categories written by the application itself.
const (
	CategoryRent    = "Sewa Kamar"
	CategoryLaundry = "Laundry"
	CategorySalary  = "Gaji Karyawan"
)

// Transaction is a ledger entry recording actual money movement.
type Transaction struct {
	Base
	Type            TransactionType `gorm:"size:16;not null;index" json:"type"`
	Category        string          `gorm:"size:64;not null;index" json:"category"`
	Amount          int64           `gorm:"not null" json:"amount"`
	TransactionDate time.Time       `gorm:"not null;index" json:"date"`
	Description     string          `gorm:"size:512" json:"description"`
	PaymentMethod   PaymentMethod   `gorm:"size:16" json:"payment_method,omitempty"`
	ProofImage      string          `gorm:"type:text" json:"proof_image,omitempty"`
	InvoiceID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"invoice_id,omitempty"`
	PayrollID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"payroll_id,omitempty"`
}
