package catalog

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BranchResponse struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	NameTH    string `json:"nameTh"`
	NameEN    string `json:"nameEn"`
	Location  string `json:"location"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type CreateBranchRequest struct {
	Code     string `json:"code"`
	NameTH   string `json:"nameTh"`
	NameEN   string `json:"nameEn"`
	Location string `json:"location"`
}

type UpdateBranchRequest struct {
	NameTH   *string `json:"nameTh"`
	NameEN   *string `json:"nameEn"`
	Location *string `json:"location"`
	IsActive *bool   `json:"isActive"`
}

func branchResponse(b models.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Code:      b.Code,
		NameTH:    b.NameTH,
		NameEN:    b.NameEN,
		Location:  b.Location,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/branches
func CreateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBranchRequest
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
			// Codes are embedded in stock IDs; a hyphen would break parsing.
			return fiber.NewError(fiber.StatusBadRequest, "Branch code must be at most 10 characters without hyphens")
		}

		branch := models.Branch{
			Code:     body.Code,
			NameTH:   body.NameTH,
			NameEN:   body.NameEN,
			Location: body.Location,
			IsActive: true,
		}

		if err := database.DB.Create(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create branch")
		}

		return c.Status(fiber.StatusCreated).JSON(branchResponse(branch))
	}
}

// GET /api/branches — active branches ordered by Thai name.
func ListBranchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branches []models.Branch
		if err := database.DB.Where("is_active = ?", true).Order("name_th asc").Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list branches")
		}

		res := make([]BranchResponse, 0, len(branches))
		for _, b := range branches {
			res = append(res, branchResponse(b))
		}
		return c.JSON(res)
	}
}

// GET /api/branches/:id
func GetBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		return c.JSON(branchResponse(branch))
	}
}

// PUT /api/branches/:id — the code is immutable once assigned, it is part
// of every stock ID issued for the branch.
func UpdateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}

		var body UpdateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.NameTH != nil {
			name := strings.TrimSpace(*body.NameTH)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Thai name cannot be empty")
			}
			branch.NameTH = name
		}
		if body.NameEN != nil {
			name := strings.TrimSpace(*body.NameEN)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "English name cannot be empty")
			}
			branch.NameEN = name
		}
		if body.Location != nil {
			branch.Location = *body.Location
		}
		if body.IsActive != nil {
			branch.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update branch")
		}
		return c.JSON(branchResponse(branch))
	}
}

// DELETE /api/branches/:id
func DeleteBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Delete(&models.Branch{}, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete branch")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
