package models

import (
	"time"

	"gorm.io/gorm"
)

// Province: registration provinces for vehicle plates. Reference data,
// seeded once and rarely changed.
type Province struct {
	ID          uint   `gorm:"primaryKey"`
	NameTH      string `gorm:"size:150;not null"`
	NameEN      string `gorm:"size:150;not null"`
	GeographyID uint   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
