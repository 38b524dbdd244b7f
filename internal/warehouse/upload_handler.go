package warehouse

import (
	"warehouse-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// POST /api/uploads (multipart field "file")
//
// Raw upload passthrough used by the image picker before the item form is
// submitted.
func UploadFileHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := saveFormImage(c, store, "file", "warehouses")
		if err != nil {
			return err
		}
		if url == "" {
			return fiber.NewError(fiber.StatusBadRequest, "No file provided")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"url":  url,
			"path": store.ObjectPath(url),
		})
	}
}

// DELETE /api/uploads?path=warehouses/123-a.png
func DeleteFileHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Query("path")
		if path == "" {
			return fiber.NewError(fiber.StatusBadRequest, "No path provided")
		}
		if err := store.Delete(c.Context(), path); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete file")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
