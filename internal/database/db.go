package database

import (
	"log"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError is required: the item-creation workflow relies on
	// gorm.ErrDuplicatedKey to detect stock ID collisions and retry.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// Migrate applies the schema. Split out so tests can run it against their
// own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Branch{},
		&models.Category{},
		&models.Province{},
		&models.Vehicle{},
		&models.WarehouseItem{},
	)
}
