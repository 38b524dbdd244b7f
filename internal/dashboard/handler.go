package dashboard

import (
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Stats struct {
	InStockCount        int64 `json:"inStockCount"`
	OutForDeliveryCount int64 `json:"outForDeliveryCount"`
	DeliveredCount      int64 `json:"deliveredCount"`
	TotalCount          int64 `json:"totalCount"`
	TotalPallets        int64 `json:"totalPallets"`
	TotalPackages       int64 `json:"totalPackages"`
	TotalItems          int64 `json:"totalItems"`
	UniqueCategories    int   `json:"uniqueCategories"`
}

type CategoryStat struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryCode string `json:"categoryCode"`
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

type RecentActivity struct {
	ID              string `json:"id"`
	StockID         string `json:"stockId"`
	ProductName     string `json:"productName"`
	ProductImage    string `json:"productImage,omitempty"`
	StorageLocation string `json:"storageLocation"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	CategoryCode    string `json:"categoryCode"`
	CategoryNameTH  string `json:"categoryNameTh"`
	CategoryNameEN  string `json:"categoryNameEn"`
}

type Response struct {
	Stats                Stats            `json:"stats"`
	CategoryDistribution []CategoryStat   `json:"categoryDistribution"`
	RecentActivities     []RecentActivity `json:"recentActivities"`
}

// GET /api/dashboard
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var statusCounts []struct {
			Status models.WarehouseStatus
			Count  int64
		}
		if err := database.DB.Model(&models.WarehouseItem{}).
			Select("status, count(*) as count").
			Group("status").
			Scan(&statusCounts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard")
		}

		var totals struct {
			TotalPallets  int64
			TotalPackages int64
			TotalItems    int64
			TotalCount    int64
		}
		if err := database.DB.Model(&models.WarehouseItem{}).
			Select("coalesce(sum(pallet_count), 0) as total_pallets, coalesce(sum(package_count), 0) as total_packages, coalesce(sum(item_count), 0) as total_items, count(*) as total_count").
			Scan(&totals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard")
		}

		var distribution []CategoryStat
		if err := database.DB.Model(&models.WarehouseItem{}).
			Select("warehouse_items.category_id as category_id, categories.code as category_code, categories.name_en as category_name, count(*) as count").
			Joins("LEFT JOIN categories ON categories.id = warehouse_items.category_id").
			Group("warehouse_items.category_id, categories.code, categories.name_en").
			Order("count desc").
			Scan(&distribution).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard")
		}

		var recent []models.WarehouseItem
		if err := database.DB.Preload("Category").
			Order("created_at desc").
			Limit(10).
			Find(&recent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard")
		}

		res := Response{
			CategoryDistribution: distribution,
			RecentActivities:     make([]RecentActivity, 0, len(recent)),
		}
		for _, sc := range statusCounts {
			switch sc.Status {
			case models.StatusInStock:
				res.Stats.InStockCount = sc.Count
			case models.StatusOutForDelivery:
				res.Stats.OutForDeliveryCount = sc.Count
			case models.StatusDelivered:
				res.Stats.DeliveredCount = sc.Count
			}
		}
		res.Stats.TotalCount = totals.TotalCount
		res.Stats.TotalPallets = totals.TotalPallets
		res.Stats.TotalPackages = totals.TotalPackages
		res.Stats.TotalItems = totals.TotalItems
		res.Stats.UniqueCategories = len(distribution)

		for _, item := range recent {
			res.RecentActivities = append(res.RecentActivities, RecentActivity{
				ID:              item.ID,
				StockID:         item.StockID,
				ProductName:     item.ProductName,
				ProductImage:    item.ProductImage,
				StorageLocation: item.StorageLocation,
				Status:          string(item.Status),
				CreatedAt:       item.CreatedAt.Format(time.RFC3339),
				CategoryCode:    item.Category.Code,
				CategoryNameTH:  item.Category.NameTH,
				CategoryNameEN:  item.Category.NameEN,
			})
		}

		return c.JSON(res)
	}
}
