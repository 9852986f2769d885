package model

import (
	"time"

	"github.com/google/uuid"
)

// TenancyStatus tracks whether a resident still occupies the room.
type TenancyStatus string

const (
	TenancyActive    TenancyStatus = "active"
	TenancyCompleted TenancyStatus = "completed"
)

// Tenancy is a resident's occupancy of a room over a date range.
type Tenancy struct {
	Base
	RoomID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"room_id"`
	ResidentID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"resident_id"`
	StartDate       time.Time     `gorm:"not null" json:"start_date"`
	ExpectedEndDate time.Time     `gorm:"not null" json:"expected_end_date"`
	Status          TenancyStatus `gorm:"size:16;not null;index" json:"status"`

	// Associations
	Room     *Room     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Resident *Resident `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
