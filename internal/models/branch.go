package models

import "time"

type Branch struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"size:10;not null;unique"` // BKK, CNX, PKT
	NameTH    string `gorm:"size:150;not null"`
	NameEN    string `gorm:"size:150;not null"`
	Location  string
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
