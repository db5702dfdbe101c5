package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/utils"
	"gorm.io/gorm"
)

// CreateTestUser persists a user with a hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email, password string, isAdmin bool) *models.User {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory persists a category with a slug derived from the name.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{
		Name: name,
		Slug: utils.Slugify(name),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestRecipe persists a minimal valid recipe owned by the given user.
func CreateTestRecipe(t *testing.T, db *gorm.DB, title string, userID uuid.UUID, categoryID uint, published bool) *models.Recipe {
	recipe := &models.Recipe{
		Title:        title,
		Slug:         utils.Slugify(title),
		Instructions: "Mix everything and cook until done.",
		IsPublished:  published,
		UserID:       userID,
		CategoryID:   categoryID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}
	return recipe
}

// CreateTestIngredient persists an ingredient for the given recipe.
func CreateTestIngredient(t *testing.T, db *gorm.DB, recipeID uint, name string, order int) *models.Ingredient {
	ingredient := &models.Ingredient{
		Name:     name,
		Quantity: "1",
		Unit:     "cup",
		Order:    order,
		RecipeID: recipeID,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("Failed to create test ingredient: %v", err)
	}
	return ingredient
}

// CreateTestRating persists a rating by the given user on the given recipe.
func CreateTestRating(t *testing.T, db *gorm.DB, userID uuid.UUID, recipeID uint, score int) *models.Rating {
	rating := &models.Rating{
		Score:    score,
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := db.Create(rating).Error; err != nil {
		t.Fatalf("Failed to create test rating: %v", err)
	}
	return rating
}

// ActorFor builds the authenticated actor for a persisted user.
func ActorFor(user *models.User) authz.Actor {
	return authz.Actor{
		ID:            user.ID,
		IsAdmin:       user.IsAdmin,
		Authenticated: true,
	}
}
