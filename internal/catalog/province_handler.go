package catalog

import (
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProvinceResponse struct {
	ID          uint   `json:"id"`
	NameTH      string `json:"nameTh"`
	NameEN      string `json:"nameEn"`
	GeographyID uint   `json:"geographyId"`
}

// GET /api/provinces — reference data for the vehicle plate form, ordered
// by Thai name.
func ListProvincesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var provinces []models.Province
		if err := database.DB.Order("name_th asc").Find(&provinces).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list provinces")
		}

		res := make([]ProvinceResponse, 0, len(provinces))
		for _, p := range provinces {
			res = append(res, ProvinceResponse{
				ID:          p.ID,
				NameTH:      p.NameTH,
				NameEN:      p.NameEN,
				GeographyID: p.GeographyID,
			})
		}
		return c.JSON(res)
	}
}
