package warehouse

import (
	"time"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

type BranchInfo struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	NameTH   string `json:"nameTh"`
	NameEN   string `json:"nameEn"`
	Location string `json:"location"`
}

type CategoryInfo struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	NameTH string `json:"nameTh"`
	NameEN string `json:"nameEn"`
}

type VehicleInfo struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	ProvinceID  uint   `json:"provinceId"`
	ProvinceTH  string `json:"provinceTh"`
	ProvinceEN  string `json:"provinceEn"`
}

// ItemResponse is the nested item payload the frontend consumes, matching
// the shape of the list and detail endpoints.
type ItemResponse struct {
	ID              string        `json:"id"`
	StockID         string        `json:"stockId"`
	ProductName     string        `json:"productName"`
	ProductImage    string        `json:"productImage,omitempty"`
	StorageLocation string        `json:"storageLocation"`
	PalletCount     int           `json:"palletCount"`
	PackageCount    int           `json:"packageCount"`
	ItemCount       int           `json:"itemCount"`
	EntryDate       string        `json:"entryDate"`
	ContainerNumber string        `json:"containerNumber"`
	ExitDate        *string       `json:"exitDate"`
	Status          string        `json:"status"`
	QRCodeImage     string        `json:"qrCodeImage,omitempty"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	BranchID        uint          `json:"branchId"`
	CategoryID      uint          `json:"categoryId"`
	Branch          *BranchInfo   `json:"branch"`
	Category        *CategoryInfo `json:"category"`
	DeliveryVehicle *VehicleInfo  `json:"deliveryVehicle"`
	PickupVehicle   *VehicleInfo  `json:"pickupVehicle"`
}

func vehicleInfo(v *models.Vehicle) *VehicleInfo {
	if v == nil {
		return nil
	}
	return &VehicleInfo{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		ProvinceID:  v.ProvinceID,
		ProvinceTH:  v.Province.NameTH,
		ProvinceEN:  v.Province.NameEN,
	}
}

func itemResponse(item models.WarehouseItem) ItemResponse {
	res := ItemResponse{
		ID:              item.ID,
		StockID:         item.StockID,
		ProductName:     item.ProductName,
		ProductImage:    item.ProductImage,
		StorageLocation: item.StorageLocation,
		PalletCount:     item.PalletCount,
		PackageCount:    item.PackageCount,
		ItemCount:       item.ItemCount,
		EntryDate:       item.EntryDate.Format(time.RFC3339),
		ContainerNumber: item.ContainerNumber,
		Status:          string(item.Status),
		QRCodeImage:     item.QRCodeImage,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.Format(time.RFC3339),
		BranchID:        item.BranchID,
		CategoryID:      item.CategoryID,
		DeliveryVehicle: vehicleInfo(item.DeliveryVehicle),
		PickupVehicle:   vehicleInfo(item.PickupVehicle),
	}

	if item.ExitDate != nil {
		exit := item.ExitDate.Format(time.RFC3339)
		res.ExitDate = &exit
	}
	if item.Branch.ID != 0 {
		res.Branch = &BranchInfo{
			ID:       item.Branch.ID,
			Code:     item.Branch.Code,
			NameTH:   item.Branch.NameTH,
			NameEN:   item.Branch.NameEN,
			Location: item.Branch.Location,
		}
	}
	if item.Category.ID != 0 {
		res.Category = &CategoryInfo{
			ID:     item.Category.ID,
			Code:   item.Category.Code,
			NameTH: item.Category.NameTH,
			NameEN: item.Category.NameEN,
		}
	}
	return res
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Branch").
		Preload("Category").
		Preload("DeliveryVehicle.Province").
		Preload("PickupVehicle.Province")
}
