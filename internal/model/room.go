package model

// RoomType is the size class of a room, which also selects its package rate.
type RoomType string

const (
	RoomSmall  RoomType = "Small"
	RoomMedium RoomType = "Medium"
	RoomLarge  RoomType = "Large"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomSmall, RoomMedium, RoomLarge:
		return true
	}
	return false
}

// RoomStatus is the stored availability of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Valid reports whether s is one of the known room statuses.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// Room represents a rentable room.
type Room struct {
	Base
	RoomNumber    string     `gorm:"uniqueIndex;size:32;not null" json:"room_number"`
	Floor         int        `gorm:"not null" json:"floor"`
	Type          RoomType   `gorm:"size:16;not null" json:"type"`
	Status        RoomStatus `gorm:"size:16;not null;index" json:"status"`
	PricePerMonth int64      `gorm:"not null" json:"price_per_month"`
}
