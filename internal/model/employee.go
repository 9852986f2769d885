package model

import "time"

// Employee is a member of staff on the payroll.
type Employee struct {
	Base
	Name     string    `gorm:"size:128;not null;index" json:"name"`
	Position string    `gorm:"size:64;not null" json:"position"`
	Salary   int64     `gorm:"not null" json:"salary"`
	JoinDate time.Time `gorm:"not null" json:"join_date"`
}
