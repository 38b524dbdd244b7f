package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboard(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	branch := models.Branch{Code: "BKK", NameTH: "กรุงเทพ", NameEN: "Bangkok", IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	electronics := models.Category{Code: "ELEC", NameTH: "อิเล็กทรอนิกส์", NameEN: "Electronics"}
	require.NoError(t, db.Create(&electronics).Error)
	furniture := models.Category{Code: "FURN", NameTH: "เฟอร์นิเจอร์", NameEN: "Furniture"}
	require.NoError(t, db.Create(&furniture).Error)

	seed := []models.WarehouseItem{
		{StockID: "BKK-ELEC-20250115-0001", CategoryID: electronics.ID, Status: models.StatusInStock, PalletCount: 2, PackageCount: 4, ItemCount: 10},
		{StockID: "BKK-ELEC-20250115-0002", CategoryID: electronics.ID, Status: models.StatusOutForDelivery, PalletCount: 1, PackageCount: 1, ItemCount: 1},
		{StockID: "BKK-FURN-20250115-0001", CategoryID: furniture.ID, Status: models.StatusDelivered, PalletCount: 3, PackageCount: 5, ItemCount: 7},
	}
	for i := range seed {
		seed[i].BranchID = branch.ID
		seed[i].ProductName = fmt.Sprintf("Product %d", i+1)
		seed[i].StorageLocation = "A-01"
		seed[i].ContainerNumber = "CONT-1"
		seed[i].EntryDate = time.Now()
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	app := fiber.New()
	app.Get("/api/dashboard", Handler())
	return app
}

func TestDashboard(t *testing.T) {
	app := setupDashboard(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	assert.Equal(t, int64(1), body.Stats.InStockCount)
	assert.Equal(t, int64(1), body.Stats.OutForDeliveryCount)
	assert.Equal(t, int64(1), body.Stats.DeliveredCount)
	assert.Equal(t, int64(3), body.Stats.TotalCount)
	assert.Equal(t, int64(6), body.Stats.TotalPallets)
	assert.Equal(t, int64(10), body.Stats.TotalPackages)
	assert.Equal(t, int64(18), body.Stats.TotalItems)
	assert.Equal(t, 2, body.Stats.UniqueCategories)

	// Distribution is ordered by item count, largest category first.
	require.Len(t, body.CategoryDistribution, 2)
	assert.Equal(t, "ELEC", body.CategoryDistribution[0].CategoryCode)
	assert.Equal(t, int64(2), body.CategoryDistribution[0].Count)
	assert.Equal(t, "FURN", body.CategoryDistribution[1].CategoryCode)

	require.Len(t, body.RecentActivities, 3)
	for _, activity := range body.RecentActivities {
		assert.NotEmpty(t, activity.StockID)
		assert.NotEmpty(t, activity.CategoryCode)
	}
}

func TestDashboardEmpty(t *testing.T) {
	app := setupDashboard(t)
	require.NoError(t, database.DB.Where("1 = 1").Delete(&models.WarehouseItem{}).Error)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, int64(0), body.Stats.TotalCount)
	assert.Equal(t, int64(0), body.Stats.TotalPallets)
	assert.Empty(t, body.CategoryDistribution)
	assert.Empty(t, body.RecentActivities)
}
