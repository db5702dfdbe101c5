package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// RecipeFilter narrows ListRecipes. Nil pointer fields are not applied.
type RecipeFilter struct {
	CategoryID  *uint
	Difficulty  string
	UserID      *uuid.UUID
	IsPublished *bool
	Search      string
}

func (r *RecipeRepository) CreateRecipe(recipe *models.Recipe) error {
	return r.db.Create(recipe).Error
}

func (r *RecipeRepository) GetRecipeByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// SlugExists reports whether the slug is taken by a recipe other than excludeID.
func (r *RecipeRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Recipe{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RecipeRepository) ListRecipes(filter RecipeFilter, page, perPage int) ([]models.Recipe, int64, error) {
	base := r.db.Model(&models.Recipe{})

	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Difficulty != "" {
		base = base.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.UserID != nil {
		base = base.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsPublished != nil {
		base = base.Where("is_published = ?", *filter.IsPublished)
	}
	if filter.Search != "" {
		base = base.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&recipes).Error

	return recipes, total, err
}

func (r *RecipeRepository) UpdateRecipe(recipe *models.Recipe) error {
	return r.db.Save(recipe).Error
}

// DeleteRecipe removes the recipe and all its ingredients and ratings in
// one transaction (owned composition, cascade delete).
func (r *RecipeRepository) DeleteRecipe(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// CountByUser returns how many recipes a user has authored.
func (r *RecipeRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
