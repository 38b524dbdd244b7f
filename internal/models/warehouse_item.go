package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseStatus string

const (
	StatusInStock        WarehouseStatus = "in_stock"
	StatusOutForDelivery WarehouseStatus = "out_for_delivery"
	StatusDelivered      WarehouseStatus = "delivered"
)

// ValidStatus reports whether s is one of the three known item states.
func ValidStatus(s WarehouseStatus) bool {
	switch s {
	case StatusInStock, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

type WarehouseItem struct {
	ID      string `gorm:"type:uuid;primaryKey"`
	StockID string `gorm:"size:50;not null;uniqueIndex"` // SKU: BKK-ELEC-20250115-0001

	BranchID   uint `gorm:"not null;index"`
	Branch     Branch
	CategoryID uint `gorm:"not null;index"`
	Category   Category

	ProductName  string `gorm:"size:255;not null"`
	ProductImage string // public URL in object storage

	StorageLocation string `gorm:"size:100;not null"`
	PalletCount     int    `gorm:"not null;default:1"`
	PackageCount    int    `gorm:"not null;default:1"`
	ItemCount       int    `gorm:"not null;default:1"`

	EntryDate         time.Time `gorm:"not null"`
	DeliveryVehicleID *string   `gorm:"type:uuid"`
	DeliveryVehicle   *Vehicle  `gorm:"foreignKey:DeliveryVehicleID"`
	ContainerNumber   string    `gorm:"size:50;not null"`

	ExitDate        *time.Time
	PickupVehicleID *string  `gorm:"type:uuid"`
	PickupVehicle   *Vehicle `gorm:"foreignKey:PickupVehicleID"`

	Status WarehouseStatus `gorm:"size:20;not null;default:in_stock"`

	QRCodeImage string // public URL of the generated QR code

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (w *WarehouseItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
