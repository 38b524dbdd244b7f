package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/sku"
	"warehouse-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(_ context.Context, path, contentType string, data []byte) (string, error) {
	m.objects[path] = data
	return m.PublicURL(path), nil
}

func (m *memStorage) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memStorage) PublicURL(path string) string { return "https://cdn.test/" + path }

func (m *memStorage) ObjectPath(rawURL string) string {
	const prefix = "https://cdn.test/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):]
	}
	return ""
}

var _ storage.Storage = (*memStorage)(nil)

type testEnv struct {
	app   *fiber.App
	store *memStorage

	branch   models.Branch
	category models.Category
	province models.Province
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	env := &testEnv{store: newMemStorage()}

	env.branch = models.Branch{Code: "BKK", NameTH: "กรุงเทพ", NameEN: "Bangkok", IsActive: true}
	require.NoError(t, db.Create(&env.branch).Error)
	env.category = models.Category{Code: "ELEC", NameTH: "อิเล็กทรอนิกส์", NameEN: "Electronics"}
	require.NoError(t, db.Create(&env.category).Error)
	env.province = models.Province{NameTH: "กรุงเทพมหานคร", NameEN: "Bangkok", GeographyID: 2}
	require.NoError(t, db.Create(&env.province).Error)

	generator := sku.NewGenerator(sku.NewGormStore(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	api := app.Group("/api")
	api.Post("/warehouse-items", CreateItemHandler(generator, env.store))
	api.Get("/warehouse-items", ListItemsHandler())
	api.Get("/warehouse-items/:id", GetItemHandler())
	api.Patch("/warehouse-items/:id", UpdateItemHandler(env.store))
	api.Delete("/warehouse-items/:id", DeleteItemHandler(env.store))

	env.app = app
	return env
}

// itemForm builds a multipart body with sane defaults, overridable per test.
func (e *testEnv) itemForm(t *testing.T, overrides map[string]string) *http.Request {
	t.Helper()

	fields := map[string]string{
		"branchId":                   fmt.Sprint(e.branch.ID),
		"categoryId":                 fmt.Sprint(e.category.ID),
		"productName":                "LED TV 55 inch",
		"storageLocation":            "A-01-02",
		"containerNumber":            "CONT-7781",
		"entryDate":                  "2025-01-15",
		"deliveryVehiclePlateNumber": "1กข 1234",
		"deliveryVehicleProvinceId":  fmt.Sprint(e.province.ID),
	}
	for k, v := range overrides {
		if v == "" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/warehouse-items", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *testEnv) createItem(t *testing.T, overrides map[string]string) ItemResponse {
	t.Helper()

	res, err := e.app.Test(e.itemForm(t, overrides), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var item ItemResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&item))
	return item
}

func TestCreateItem(t *testing.T) {
	env := newTestEnv(t)

	item := env.createItem(t, nil)

	today := time.Now().Format("20060102")
	assert.Equal(t, "BKK-ELEC-"+today+"-0001", item.StockID)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]+-[A-Za-z0-9]+-\d{8}-\d{4}$`), item.StockID)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "LED TV 55 inch", item.ProductName)
	assert.Equal(t, string(models.StatusInStock), item.Status)

	// Counts default to 1 when omitted.
	assert.Equal(t, 1, item.PalletCount)
	assert.Equal(t, 1, item.PackageCount)
	assert.Equal(t, 1, item.ItemCount)

	require.NotNil(t, item.Branch)
	assert.Equal(t, "BKK", item.Branch.Code)
	require.NotNil(t, item.DeliveryVehicle)
	assert.Equal(t, "1กข 1234", item.DeliveryVehicle.PlateNumber)
	assert.Equal(t, "Bangkok", item.DeliveryVehicle.ProvinceEN)
	assert.Nil(t, item.PickupVehicle)

	// QR code was generated and stored.
	require.NotEmpty(t, item.QRCodeImage)
	png := env.store.objects[env.store.ObjectPath(item.QRCodeImage)]
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	// A second item the same day gets the next sequence.
	second := env.createItem(t, map[string]string{"productName": "Soundbar"})
	assert.Equal(t, "BKK-ELEC-"+today+"-0002", second.StockID)
}

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name      string
		overrides map[string]string
	}{
		{"missing product name", map[string]string{"productName": ""}},
		{"missing storage location", map[string]string{"storageLocation": ""}},
		{"missing container", map[string]string{"containerNumber": ""}},
		{"missing entry date", map[string]string{"entryDate": ""}},
		{"bad entry date", map[string]string{"entryDate": "not-a-date"}},
		{"missing branch", map[string]string{"branchId": ""}},
		{"zero pallet count", map[string]string{"palletCount": "0"}},
		{"bad status", map[string]string{"status": "lost"}},
		{"missing delivery vehicle", map[string]string{"deliveryVehiclePlateNumber": ""}},
		{"pickup plate without province", map[string]string{"pickupVehiclePlateNumber": "2คง 5678"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := env.app.Test(env.itemForm(t, tc.overrides), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestCreateItemUnknownBranch(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.app.Test(env.itemForm(t, map[string]string{"branchId": "999"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Invalid branch", body["error"])
}

func TestCreateItemReusesVehicleRow(t *testing.T) {
	env := newTestEnv(t)

	first := env.createItem(t, nil)
	second := env.createItem(t, map[string]string{"productName": "Router"})

	require.NotNil(t, first.DeliveryVehicle)
	require.NotNil(t, second.DeliveryVehicle)
	assert.Equal(t, first.DeliveryVehicle.ID, second.DeliveryVehicle.ID)

	var count int64
	require.NoError(t, database.DB.Model(&models.Vehicle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateItemStockIDCollision(t *testing.T) {
	env := newTestEnv(t)

	// A row holding today's first stock ID but created yesterday is invisible
	// to the day-window count, so every regeneration collides with it.
	today := time.Now().Format("20060102")
	occupied := models.WarehouseItem{
		StockID:         "BKK-ELEC-" + today + "-0001",
		BranchID:        env.branch.ID,
		CategoryID:      env.category.ID,
		ProductName:     "Ghost",
		StorageLocation: "Z-99",
		ContainerNumber: "CONT-0000",
		EntryDate:       time.Now(),
		Status:          models.StatusInStock,
	}
	require.NoError(t, database.DB.Create(&occupied).Error)
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, database.DB.Model(&occupied).UpdateColumn("created_at", yesterday).Error)

	res, err := env.app.Test(env.itemForm(t, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Could not allocate stock ID", body["error"])
}

func TestGetItemByEitherKey(t *testing.T) {
	env := newTestEnv(t)
	created := env.createItem(t, nil)

	for _, key := range []string{created.ID, created.StockID} {
		res, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/warehouse-items/"+key, nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		var item ItemResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&item))
		assert.Equal(t, created.ID, item.ID)
		assert.Equal(t, created.StockID, item.StockID)
	}

	res, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/warehouse-items/does-not-exist", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestListItemsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	first := env.createItem(t, nil)
	require.NoError(t, database.DB.Model(&models.WarehouseItem{}).
		Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	second := env.createItem(t, map[string]string{"productName": "Soundbar"})

	res, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/warehouse-items", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var items []ItemResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	created := env.createItem(t, nil)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("productName", "LED TV 65 inch"))
	require.NoError(t, w.WriteField("status", string(models.StatusOutForDelivery)))
	require.NoError(t, w.WriteField("palletCount", "3"))
	require.NoError(t, w.WriteField("exitDate", "2025-02-01"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/warehouse-items/"+created.ID, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var updated ItemResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	assert.Equal(t, "LED TV 65 inch", updated.ProductName)
	assert.Equal(t, string(models.StatusOutForDelivery), updated.Status)
	assert.Equal(t, 3, updated.PalletCount)
	require.NotNil(t, updated.ExitDate)

	// The stock ID never changes after creation.
	assert.Equal(t, created.StockID, updated.StockID)

	// Untouched fields survive a partial update.
	assert.Equal(t, created.StorageLocation, updated.StorageLocation)
	assert.Equal(t, created.ContainerNumber, updated.ContainerNumber)
}

func TestDeleteItem(t *testing.T) {
	env := newTestEnv(t)
	created := env.createItem(t, nil)

	qrPath := env.store.ObjectPath(created.QRCodeImage)
	require.Contains(t, env.store.objects, qrPath)

	res, err := env.app.Test(httptest.NewRequest(http.MethodDelete, "/api/warehouse-items/"+created.ID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.WarehouseItem{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The stored QR object goes with the row.
	assert.NotContains(t, env.store.objects, qrPath)

	res, err = env.app.Test(httptest.NewRequest(http.MethodDelete, "/api/warehouse-items/"+created.ID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}
