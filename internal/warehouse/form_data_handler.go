package warehouse

import (
	"warehouse-backend/internal/catalog"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FormDataResponse struct {
	Branches   []catalog.BranchResponse   `json:"branches"`
	Categories []catalog.CategoryResponse `json:"categories"`
	Provinces  []catalog.ProvinceResponse `json:"provinces"`
}

// GET /api/warehouse-items/form-data
//
// One payload with everything the item form needs, so the frontend makes a
// single request instead of three.
func FormDataHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branches []models.Branch
		if err := database.DB.Order("name_th asc").Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load form data")
		}

		var categories []models.Category
		if err := database.DB.Order("name_th asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load form data")
		}

		var provinces []models.Province
		if err := database.DB.Order("name_th asc").Find(&provinces).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load form data")
		}

		res := FormDataResponse{
			Branches:   make([]catalog.BranchResponse, 0, len(branches)),
			Categories: make([]catalog.CategoryResponse, 0, len(categories)),
			Provinces:  make([]catalog.ProvinceResponse, 0, len(provinces)),
		}
		for _, b := range branches {
			res.Branches = append(res.Branches, catalog.BranchResponse{
				ID:        b.ID,
				Code:      b.Code,
				NameTH:    b.NameTH,
				NameEN:    b.NameEN,
				Location:  b.Location,
				IsActive:  b.IsActive,
				CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		for _, cat := range categories {
			res.Categories = append(res.Categories, catalog.CategoryResponse{
				ID:          cat.ID,
				Code:        cat.Code,
				NameTH:      cat.NameTH,
				NameEN:      cat.NameEN,
				Description: cat.Description,
				CreatedAt:   cat.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		for _, p := range provinces {
			res.Provinces = append(res.Provinces, catalog.ProvinceResponse{
				ID:          p.ID,
				NameTH:      p.NameTH,
				NameEN:      p.NameEN,
				GeographyID: p.GeographyID,
			})
		}

		return c.JSON(fiber.Map{"success": true, "data": res})
	}
}
