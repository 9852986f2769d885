package model

// Resident is a person who rents, or has rented, a room.
type Resident struct {
	Base
	FullName         string `gorm:"size:128;not null;index" json:"full_name"`
	PhoneNumber      string `gorm:"size:32;not null" json:"phone_number"`
	KTPNumber        string `gorm:"column:ktp_number;size:32" json:"ktp_number,omitempty"`
	Profession       string `gorm:"size:128" json:"profession,omitempty"`
	EmergencyContact string `gorm:"size:128" json:"emergency_contact,omitempty"`
}
