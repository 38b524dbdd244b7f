package report

import (
	"fmt"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var columns = []string{
	"Stock ID", "Product", "Branch", "Category", "Storage Location",
	"Pallets", "Packages", "Items", "Container", "Entry Date", "Exit Date", "Status",
}

// GET /api/reports/warehouse-items.xlsx
func ExportItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.WarehouseItem
		if err := database.DB.Preload("Branch").Preload("Category").
			Order("created_at desc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load items")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		for i, title := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, title)
		}

		for row, item := range items {
			exitDate := ""
			if item.ExitDate != nil {
				exitDate = item.ExitDate.Format("2006-01-02")
			}
			values := []interface{}{
				item.StockID,
				item.ProductName,
				item.Branch.Code,
				item.Category.Code,
				item.StorageLocation,
				item.PalletCount,
				item.PackageCount,
				item.ItemCount,
				item.ContainerNumber,
				item.EntryDate.Format("2006-01-02"),
				exitDate,
				string(item.Status),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		fileName := fmt.Sprintf("warehouse-items-%s.xlsx", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)

		if err := f.Write(c.Response().BodyWriter()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write report")
		}
		return nil
	}
}
