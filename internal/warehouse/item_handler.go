package warehouse

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"warehouse-backend/internal/catalog"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/logger"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/qr"
	"warehouse-backend/internal/sku"
	"warehouse-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxImageSize = 5 * 1024 * 1024

// Bounded retries for stock ID collisions (two concurrent creates can
// generate the same sequence number; the unique index catches the loser).
const maxCreateAttempts = 3

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// parseDate accepts the formats the frontend sends: RFC3339, datetime-local
// and plain dates.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// saveFormImage uploads the image file from the multipart field, if any.
// Returns the public URL, or "" when the field is absent.
func saveFormImage(c *fiber.Ctx, store storage.Storage, field, dir string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil || fileHeader.Size == 0 {
		return "", nil
	}

	if fileHeader.Size > maxImageSize {
		return "", fiber.NewError(fiber.StatusBadRequest, "Image must be at most 5MB")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fiber.NewError(fiber.StatusBadRequest, "Only JPG, PNG and WEBP images are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Could not read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Could not read uploaded image")
	}

	data, contentType = storage.NormalizeImage(data, contentType)

	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	url, err := store.Upload(c.Context(), dir+"/"+fileName, contentType, data)
	if err != nil {
		logger.Get().WithError(err).Error("image upload failed")
		return "", fiber.NewError(fiber.StatusInternalServerError, "Could not upload image")
	}
	return url, nil
}

// deleteImageByURL removes a previously uploaded object. Best-effort: a
// missing or foreign object is logged and ignored.
func deleteImageByURL(c *fiber.Ctx, store storage.Storage, url string) {
	if url == "" {
		return
	}
	path := store.ObjectPath(url)
	if path == "" {
		return
	}
	if err := store.Delete(c.Context(), path); err != nil {
		logger.Get().WithError(err).WithField("path", path).Warn("could not delete stored image")
	}
}

// POST /api/warehouse-items (multipart form)
func CreateItemHandler(gen *sku.Generator, store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err1 := strconv.ParseUint(c.FormValue("branchId"), 10, 32)
		categoryID, err2 := strconv.ParseUint(c.FormValue("categoryId"), 10, 32)
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Branch and category are required")
		}

		productName := strings.TrimSpace(c.FormValue("productName"))
		storageLocation := strings.TrimSpace(c.FormValue("storageLocation"))
		containerNumber := strings.TrimSpace(c.FormValue("containerNumber"))
		if productName == "" || storageLocation == "" || containerNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name, storage location and container number are required")
		}

		entryDateStr := c.FormValue("entryDate")
		if entryDateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Entry date is required")
		}
		entryDate, err := parseDate(entryDateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entry date")
		}

		var exitDate *time.Time
		if v := c.FormValue("exitDate"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid exit date")
			}
			exitDate = &t
		}

		palletCount, err := formCount(c, "palletCount")
		if err != nil {
			return err
		}
		packageCount, err := formCount(c, "packageCount")
		if err != nil {
			return err
		}
		itemCount, err := formCount(c, "itemCount")
		if err != nil {
			return err
		}

		status := models.WarehouseStatus(c.FormValue("status", string(models.StatusInStock)))
		if !models.ValidStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}

		// Delivery vehicle is mandatory, pickup is all-or-nothing.
		deliveryPlate := strings.TrimSpace(c.FormValue("deliveryVehiclePlateNumber"))
		deliveryProvinceID, err := strconv.ParseUint(c.FormValue("deliveryVehicleProvinceId"), 10, 32)
		if deliveryPlate == "" || err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Delivery vehicle plate and province are required")
		}

		pickupPlate := strings.TrimSpace(c.FormValue("pickupVehiclePlateNumber"))
		pickupProvinceStr := c.FormValue("pickupVehicleProvinceId")
		if (pickupPlate == "") != (pickupProvinceStr == "") {
			return fiber.NewError(fiber.StatusBadRequest, "Pickup vehicle requires both plate and province")
		}

		deliveryVehicle, err := catalog.FindOrCreateVehicle(database.DB, deliveryPlate, uint(deliveryProvinceID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save delivery vehicle")
		}

		var pickupVehicleID *string
		if pickupPlate != "" {
			pickupProvinceID, err := strconv.ParseUint(pickupProvinceStr, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid pickup vehicle province")
			}
			pickupVehicle, err := catalog.FindOrCreateVehicle(database.DB, pickupPlate, uint(pickupProvinceID))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not save pickup vehicle")
			}
			pickupVehicleID = &pickupVehicle.ID
		}

		productImage, err := saveFormImage(c, store, "image", "warehouse-items")
		if err != nil {
			return err
		}

		// Generate the stock ID and insert. The generator only reads a
		// count, so a concurrent create can produce the same stock ID;
		// the unique index rejects the duplicate and we regenerate.
		var item models.WarehouseItem
		for attempt := 1; ; attempt++ {
			stockID, err := gen.Generate(c.Context(), uint(branchID), uint(categoryID))
			if err != nil {
				var notFound *sku.NotFoundError
				if errors.As(err, &notFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Invalid "+notFound.Entity)
				}
				if errors.Is(err, sku.ErrSequenceOverflow) {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not allocate stock ID")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Could not generate stock ID")
			}

			item = models.WarehouseItem{
				StockID:           stockID,
				BranchID:          uint(branchID),
				CategoryID:        uint(categoryID),
				ProductName:       productName,
				ProductImage:      productImage,
				StorageLocation:   storageLocation,
				PalletCount:       palletCount,
				PackageCount:      packageCount,
				ItemCount:         itemCount,
				EntryDate:         entryDate,
				DeliveryVehicleID: &deliveryVehicle.ID,
				ContainerNumber:   containerNumber,
				ExitDate:          exitDate,
				PickupVehicleID:   pickupVehicleID,
				Status:            status,
			}

			err = database.DB.Create(&item).Error
			if err == nil {
				break
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxCreateAttempts {
				logger.Get().WithFields(logrus.Fields{
					"stockId": stockID,
					"attempt": attempt,
				}).Warn("stock ID collision, regenerating")
				continue
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not allocate stock ID")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create item")
		}

		// QR code generation is best-effort: the item exists either way
		// and the label can be regenerated later.
		if payload, err := qr.NewPayload(item.StockID); err == nil {
			fileName := fmt.Sprintf("warehouse-item-%s-%d.png", item.StockID, time.Now().UnixMilli())
			if url, err := qr.GenerateAndUpload(c.Context(), store, payload, fileName); err == nil {
				if err := database.DB.Model(&item).Update("qr_code_image", url).Error; err == nil {
					item.QRCodeImage = url
				}
			} else {
				logger.Get().WithError(err).WithField("stockId", item.StockID).Warn("qr code generation failed")
			}
		}

		var created models.WarehouseItem
		if err := withRelations(database.DB).First(&created, "id = ?", item.ID).Error; err != nil {
			return c.Status(fiber.StatusCreated).JSON(itemResponse(item))
		}
		return c.Status(fiber.StatusCreated).JSON(itemResponse(created))
	}
}

func formCount(c *fiber.Ctx, field string) (int, error) {
	value := c.FormValue(field)
	if value == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Counts must be positive integers")
	}
	return n, nil
}

// GET /api/warehouse-items
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.WarehouseItem
		if err := withRelations(database.DB).Order("created_at desc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list items")
		}

		res := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			res = append(res, itemResponse(item))
		}
		return c.JSON(res)
	}
}

// GET /api/warehouse-items/:id
//
// The key may be the item's UUID or its stock ID; ClassifyKey picks the
// column to match.
func GetItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("id")
		kind := sku.ClassifyKey(key)

		var item models.WarehouseItem
		err := withRelations(database.DB).Where(kind.Column()+" = ?", key).First(&item).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse item not found")
		}
		return c.JSON(itemResponse(item))
	}
}

// PATCH /api/warehouse-items/:id (multipart form, partial update)
//
// The stock ID is assigned once at creation and never changes, even when
// branch or category are edited afterwards.
func UpdateItemHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.WarehouseItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse item not found")
		}

		if v := strings.TrimSpace(c.FormValue("productName")); v != "" {
			item.ProductName = v
		}
		if v := strings.TrimSpace(c.FormValue("storageLocation")); v != "" {
			item.StorageLocation = v
		}
		if v := strings.TrimSpace(c.FormValue("containerNumber")); v != "" {
			item.ContainerNumber = v
		}
		for field, dst := range map[string]*int{
			"palletCount":  &item.PalletCount,
			"packageCount": &item.PackageCount,
			"itemCount":    &item.ItemCount,
		} {
			if c.FormValue(field) == "" {
				continue
			}
			n, err := formCount(c, field)
			if err != nil {
				return err
			}
			*dst = n
		}
		if v := c.FormValue("entryDate"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid entry date")
			}
			item.EntryDate = t
		}
		if v := c.FormValue("exitDate"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid exit date")
			}
			item.ExitDate = &t
		}
		if v := c.FormValue("status"); v != "" {
			status := models.WarehouseStatus(v)
			if !models.ValidStatus(status) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
			}
			item.Status = status
		}

		// Vehicles are re-pointed by plate+province, reusing existing rows.
		if plate, provinceStr := strings.TrimSpace(c.FormValue("deliveryVehiclePlateNumber")), c.FormValue("deliveryVehicleProvinceId"); plate != "" && provinceStr != "" {
			provinceID, err := strconv.ParseUint(provinceStr, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid delivery vehicle province")
			}
			vehicle, err := catalog.FindOrCreateVehicle(database.DB, plate, uint(provinceID))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not save delivery vehicle")
			}
			item.DeliveryVehicleID = &vehicle.ID
		}
		if plate, provinceStr := strings.TrimSpace(c.FormValue("pickupVehiclePlateNumber")), c.FormValue("pickupVehicleProvinceId"); plate != "" && provinceStr != "" {
			provinceID, err := strconv.ParseUint(provinceStr, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid pickup vehicle province")
			}
			vehicle, err := catalog.FindOrCreateVehicle(database.DB, plate, uint(provinceID))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not save pickup vehicle")
			}
			item.PickupVehicleID = &vehicle.ID
		}

		// A new image replaces the stored one; the old object is removed
		// after the upload succeeds.
		oldImage := item.ProductImage
		newImage, err := saveFormImage(c, store, "image", "warehouse-items")
		if err != nil {
			return err
		}
		if newImage != "" {
			deleteImageByURL(c, store, oldImage)
			item.ProductImage = newImage
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update item")
		}

		var updated models.WarehouseItem
		if err := withRelations(database.DB).First(&updated, "id = ?", item.ID).Error; err != nil {
			return c.JSON(itemResponse(item))
		}
		return c.JSON(itemResponse(updated))
	}
}

// DELETE /api/warehouse-items/:id
func DeleteItemHandler(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.WarehouseItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse item not found")
		}

		deleteImageByURL(c, store, item.ProductImage)
		deleteImageByURL(c, store, item.QRCodeImage)

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete item")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
