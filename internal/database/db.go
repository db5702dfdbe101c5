package database

import (
	"log"

	"github.com/lezzetli/recipe-api/internal/config"
	"github.com/lezzetli/recipe-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey so services can map them to domain errors.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
