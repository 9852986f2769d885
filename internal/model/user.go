package model

// User is a dashboard operator account.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash []byte `gorm:"not null" json:"-"`
	Role         string `gorm:"size:32;not null;default:'admin'" json:"role"`
}
