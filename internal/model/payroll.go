package model

import (
	"time"

	"github.com/google/uuid"
)

// PayrollStatus is the payment state of a monthly salary.
type PayrollStatus string

const (
	PayrollUnpaid PayrollStatus = "unpaid"
	PayrollPaid   PayrollStatus = "paid"
)

// Payroll is one employee's salary for one month ("2006-01").
type Payroll struct {
	Base
	EmployeeID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_employee_month" json:"employee_id"`
	Month      string        `gorm:"size:7;not null;uniqueIndex:idx_payroll_employee_month" json:"month"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Status     PayrollStatus `gorm:"size:16;not null;index" json:"status"`
	PaidAt     *time.Time    `json:"paid_at,omitempty"`

	// Associations
	Employee *Employee `gorm:"constraint:OnDelete:CASCADE" json:"employee,omitempty"`
}
