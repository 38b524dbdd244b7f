package models

import "time"

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:10;not null;unique"` // ELEC, FURN, FOOD
	NameTH      string `gorm:"size:100;not null"`
	NameEN      string `gorm:"size:100;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
