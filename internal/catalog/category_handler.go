package catalog

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	NameTH      string `json:"nameTh"`
	NameEN      string `json:"nameEn"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type CreateCategoryRequest struct {
	Code        string `json:"code"`
	NameTH      string `json:"nameTh"`
	NameEN      string `json:"nameEn"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	NameTH      *string `json:"nameTh"`
	NameEN      *string `json:"nameEn"`
	Description *string `json:"description"`
}

func categoryResponse(cat models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Code:        cat.Code,
		NameTH:      cat.NameTH,
		NameEN:      cat.NameEN,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
		body.NameTH = strings.TrimSpace(body.NameTH)
		body.NameEN = strings.TrimSpace(body.NameEN)

		if body.Code == "" || body.NameTH == "" || body.NameEN == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Code and names are required")
		}
		if len(body.Code) > 10 || strings.Contains(body.Code, "-") {
			return fiber.NewError(fiber.StatusBadRequest, "Category code must be at most 10 characters without hyphens")
		}

		cat := models.Category{
			Code:        body.Code,
			NameTH:      body.NameTH,
			NameEN:      body.NameEN,
			Description: body.Description,
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}

		return c.Status(fiber.StatusCreated).JSON(categoryResponse(cat))
	}
}

// GET /api/categories — ordered by Thai name.
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name_th asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			res = append(res, categoryResponse(cat))
		}
		return c.JSON(res)
	}
}

// PUT /api/categories/:id — code immutable, same reasoning as branches.
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.NameTH != nil {
			name := strings.TrimSpace(*body.NameTH)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Thai name cannot be empty")
			}
			cat.NameTH = name
		}
		if body.NameEN != nil {
			name := strings.TrimSpace(*body.NameEN)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "English name cannot be empty")
			}
			cat.NameEN = name
		}
		if body.Description != nil {
			cat.Description = *body.Description
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}
		return c.JSON(categoryResponse(cat))
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Delete(&models.Category{}, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
