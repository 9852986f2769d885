package model

import (
	"time"

	"github.com/google/uuid"
)

// LaundryStatus is the progress of a laundry order.
type LaundryStatus string

const (
	LaundryProcess  LaundryStatus = "process"
	LaundryDone     LaundryStatus = "done"
	LaundryPickedUp LaundryStatus = "picked_up"
)

// Next returns the status that follows s, and false when s is terminal.
func (s LaundryStatus) Next() (LaundryStatus, bool) {
	switch s {
	case LaundryProcess:
		return LaundryDone, true
	case LaundryDone:
		return LaundryPickedUp, true
	}
	return "", false
}

// Laundry is a resident's laundry order.
type Laundry struct {
	Base
	ResidentID uuid.UUID     `gorm:"type:uuid;not null;index" json:"resident_id"`
	WeightKg   float64       `gorm:"not null" json:"weight_kg"`
	Price      int64         `gorm:"not null" json:"price"`
	Status     LaundryStatus `gorm:"size:16;not null;index" json:"status"`
	Date       time.Time     `gorm:"not null;index" json:"date"`

	// Associations
	Resident *Resident `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the singular table name used by the dashboard.
func (Laundry) TableName() string {
	return "laundry"
}
