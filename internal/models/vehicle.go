package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle: a delivery or pickup truck, identified by plate number and the
// province that issued the plate. The same physical vehicle is reused across
// items, so the (plate, province) pair is unique.
type Vehicle struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	PlateNumber string `gorm:"size:20;not null;uniqueIndex:idx_vehicles_plate_province"`
	ProvinceID  uint   `gorm:"not null;uniqueIndex:idx_vehicles_plate_province"`
	Province    Province
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
