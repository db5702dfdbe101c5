package repository

import (
	"errors"

	"github.com/lezzetli/recipe-api/internal/models"
	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) CreateIngredient(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// CreateIngredients inserts a batch atomically; any failure rolls back the
// whole batch.
func (r *IngredientRepository) CreateIngredients(ingredients []*models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(ingredients).Error
	})
}

func (r *IngredientRepository) GetIngredient(recipeID, ingredientID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.Where("id = ? AND recipe_id = ?", ingredientID, recipeID).First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

// ListByRecipe returns a recipe's ingredients by sort order.
func (r *IngredientRepository) ListByRecipe(recipeID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.
		Where("recipe_id = ?", recipeID).
		Order("sort_order ASC, id ASC").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepository) UpdateIngredient(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// UpdateIngredients saves a batch atomically.
func (r *IngredientRepository) UpdateIngredients(ingredients []*models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, ingredient := range ingredients {
			if err := tx.Save(ingredient).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *IngredientRepository) DeleteIngredient(recipeID, ingredientID uint) error {
	return r.db.Where("id = ? AND recipe_id = ?", ingredientID, recipeID).Delete(&models.Ingredient{}).Error
}
