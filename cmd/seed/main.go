package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/config"
	"github.com/lezzetli/recipe-api/internal/database"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/utils"
)

// Starter categories created on first seed. Slugs are derived from the
// names, same as the API does at runtime.
var starterCategories = []models.Category{
	{Name: "Breakfast", Description: "Start the day right"},
	{Name: "Main Course", Description: "Hearty dishes for lunch and dinner"},
	{Name: "Desserts", Description: "Sweet treats and baked goods"},
	{Name: "Soups & Stews", Description: "Warm bowls for every season"},
	{Name: "Salads", Description: "Fresh and light"},
	{Name: "Beverages", Description: "Drinks, smoothies and more"},
}

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedAdmin()
	seedCategories()
}

func seedAdmin() {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	var admin models.User
	result := database.DB.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Username)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		ID:           uuid.New(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created:", admin.Username)
}

func seedCategories() {
	for _, category := range starterCategories {
		category.Slug = utils.Slugify(category.Name)

		var existing models.Category
		result := database.DB.Where("slug = ?", category.Slug).First(&existing)
		if result.Error == nil {
			continue
		}

		if err := database.DB.Create(&category).Error; err != nil {
			log.Fatal("Failed to create category:", err)
		}
		log.Println("Category created:", category.Name)
	}
}
