package catalog

import (
	"errors"
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VehicleResponse struct {
	ID          string            `json:"id"`
	PlateNumber string            `json:"plateNumber"`
	ProvinceID  uint              `json:"provinceId"`
	Province    *ProvinceResponse `json:"province,omitempty"`
}

type CreateVehicleRequest struct {
	PlateNumber string `json:"plateNumber"`
	ProvinceID  uint   `json:"provinceId"`
}

func vehicleResponse(v models.Vehicle) VehicleResponse {
	res := VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		ProvinceID:  v.ProvinceID,
	}
	if v.Province.ID != 0 {
		res.Province = &ProvinceResponse{
			ID:          v.Province.ID,
			NameTH:      v.Province.NameTH,
			NameEN:      v.Province.NameEN,
			GeographyID: v.Province.GeographyID,
		}
	}
	return res
}

// FindOrCreateVehicle returns the vehicle with the given plate and
// province, creating it if necessary. A concurrent create of the same pair
// trips the unique index; the loser re-reads the winner's row.
func FindOrCreateVehicle(db *gorm.DB, plateNumber string, provinceID uint) (*models.Vehicle, error) {
	plateNumber = strings.TrimSpace(plateNumber)

	var vehicle models.Vehicle
	err := db.Where("plate_number = ? AND province_id = ?", plateNumber, provinceID).First(&vehicle).Error
	if err == nil {
		return &vehicle, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vehicle = models.Vehicle{PlateNumber: plateNumber, ProvinceID: provinceID}
	err = db.Create(&vehicle).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Where("plate_number = ? AND province_id = ?", plateNumber, provinceID).First(&vehicle).Error
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GET /api/vehicles
func ListVehiclesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicles []models.Vehicle
		if err := database.DB.Preload("Province").Order("created_at desc").Find(&vehicles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list vehicles")
		}

		res := make([]VehicleResponse, 0, len(vehicles))
		for _, v := range vehicles {
			res = append(res, vehicleResponse(v))
		}
		return c.JSON(res)
	}
}

// POST /api/vehicles
func CreateVehicleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.PlateNumber = strings.TrimSpace(body.PlateNumber)
		if body.PlateNumber == "" || body.ProvinceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Plate number and province are required")
		}

		var province models.Province
		if err := database.DB.First(&province, "id = ?", body.ProvinceID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown province")
		}

		vehicle, err := FindOrCreateVehicle(database.DB, body.PlateNumber, body.ProvinceID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create vehicle")
		}
		vehicle.Province = province

		return c.Status(fiber.StatusCreated).JSON(vehicleResponse(*vehicle))
	}
}
