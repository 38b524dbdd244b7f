package main

import (
	"context"
	"strings"

	"warehouse-backend/internal/catalog"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/dashboard"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/logger"
	"warehouse-backend/internal/report"
	"warehouse-backend/internal/sku"
	"warehouse-backend/internal/storage"
	"warehouse-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log := logger.Get()

	cfg := config.Load()
	database.Init(cfg)

	store, err := storage.NewGCS(context.Background(), cfg.StorageBucket, cfg.GCSCredentialsJSON, cfg.StorageBaseURL)
	if err != nil {
		log.WithError(err).Fatal("could not initialize object storage")
	}
	defer store.Close()

	generator := sku.NewGenerator(sku.NewGormStore(database.DB))

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Warehouse items
	api.Post("/warehouse-items", warehouse.CreateItemHandler(generator, store))
	api.Get("/warehouse-items", warehouse.ListItemsHandler())
	api.Get("/warehouse-items/form-data", warehouse.FormDataHandler())
	api.Get("/warehouse-items/:id", warehouse.GetItemHandler())
	api.Patch("/warehouse-items/:id", warehouse.UpdateItemHandler(store))
	api.Delete("/warehouse-items/:id", warehouse.DeleteItemHandler(store))

	// Branches
	api.Post("/branches", catalog.CreateBranchHandler())
	api.Get("/branches", catalog.ListBranchesHandler())
	api.Get("/branches/:id", catalog.GetBranchHandler())
	api.Put("/branches/:id", catalog.UpdateBranchHandler())
	api.Delete("/branches/:id", catalog.DeleteBranchHandler())

	// Categories
	api.Post("/categories", catalog.CreateCategoryHandler())
	api.Get("/categories", catalog.ListCategoriesHandler())
	api.Put("/categories/:id", catalog.UpdateCategoryHandler())
	api.Delete("/categories/:id", catalog.DeleteCategoryHandler())

	// Provinces & vehicles
	api.Get("/provinces", catalog.ListProvincesHandler())
	api.Get("/vehicles", catalog.ListVehiclesHandler())
	api.Post("/vehicles", catalog.CreateVehicleHandler())

	// Raw file uploads
	api.Post("/uploads", warehouse.UploadFileHandler(store))
	api.Delete("/uploads", warehouse.DeleteFileHandler(store))

	// Dashboard
	api.Get("/dashboard", dashboard.Handler())

	// Reports
	api.Get("/reports/warehouse-items.xlsx", report.ExportItemsHandler())

	log.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
