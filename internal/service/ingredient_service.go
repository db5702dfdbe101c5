package service

import (
	"errors"

	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"go.uber.org/zap"
)

// MaxBulkIngredients caps a single bulk create or update request.
const MaxBulkIngredients = 50

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrBulkLimitExceeded  = errors.New("too many ingredients in one request")
)

type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
	recipeRepo     *repository.RecipeRepository
}

func NewIngredientService(ingredientRepo *repository.IngredientRepository, recipeRepo *repository.RecipeRepository) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
	}
}

type IngredientInput struct {
	Name     string
	Quantity string
	Unit     string
	Notes    string
	Order    *int
}

// UpdateIngredientInput uses pointers so absent fields are left untouched.
type UpdateIngredientInput struct {
	Name     *string
	Quantity *string
	Unit     *string
	Notes    *string
	Order    *int
}

// BulkUpdateItem targets an existing ingredient of the recipe by ID.
type BulkUpdateItem struct {
	ID uint
	UpdateIngredientInput
}

func (s *IngredientService) loadRecipe(recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *IngredientService) ListIngredients(actor authz.Actor, recipeID uint) (*models.Recipe, []models.Ingredient, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionRead, recipe) {
		return nil, nil, ErrForbidden
	}

	ingredients, err := s.ingredientRepo.ListByRecipe(recipeID)
	return recipe, ingredients, err
}

func (s *IngredientService) GetIngredient(actor authz.Actor, recipeID, ingredientID uint) (*models.Ingredient, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionRead, recipe) {
		return nil, ErrForbidden
	}

	ingredient, err := s.ingredientRepo.GetIngredient(recipeID, ingredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	return ingredient, nil
}

func (s *IngredientService) AddIngredient(actor authz.Actor, recipeID uint, input IngredientInput) (*models.Ingredient, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionCreate, recipe) {
		logger.Log.Warn("Ingredient create denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("recipe_id", recipeID),
		)
		return nil, ErrForbidden
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	}

	ingredient := &models.Ingredient{
		Name:     input.Name,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Notes:    input.Notes,
		Order:    order,
		RecipeID: recipeID,
	}

	if err := s.ingredientRepo.CreateIngredient(ingredient); err != nil {
		logger.Log.Error("Failed to create ingredient", zap.Uint("recipe_id", recipeID), zap.Error(err))
		return nil, err
	}

	return ingredient, nil
}

// BulkAddIngredients creates up to MaxBulkIngredients in one transaction.
// When an item has no explicit order, its position in the submitted list
// becomes its order.
func (s *IngredientService) BulkAddIngredients(actor authz.Actor, recipeID uint, inputs []IngredientInput) ([]models.Ingredient, error) {
	if len(inputs) == 0 || len(inputs) > MaxBulkIngredients {
		return nil, ErrBulkLimitExceeded
	}

	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionCreate, recipe) {
		logger.Log.Warn("Bulk ingredient create denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("recipe_id", recipeID),
		)
		return nil, ErrForbidden
	}

	ingredients := make([]*models.Ingredient, 0, len(inputs))
	for idx, input := range inputs {
		order := idx
		if input.Order != nil {
			order = *input.Order
		}
		ingredients = append(ingredients, &models.Ingredient{
			Name:     input.Name,
			Quantity: input.Quantity,
			Unit:     input.Unit,
			Notes:    input.Notes,
			Order:    order,
			RecipeID: recipeID,
		})
	}

	if err := s.ingredientRepo.CreateIngredients(ingredients); err != nil {
		logger.Log.Error("Failed to bulk create ingredients",
			zap.Uint("recipe_id", recipeID),
			zap.Int("count", len(ingredients)),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Ingredients bulk created",
		zap.Uint("recipe_id", recipeID),
		zap.Int("count", len(ingredients)),
	)

	created := make([]models.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		created = append(created, *ingredient)
	}
	return created, nil
}

func (s *IngredientService) UpdateIngredient(actor authz.Actor, recipeID, ingredientID uint, input UpdateIngredientInput) (*models.Ingredient, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionUpdate, recipe) {
		return nil, ErrForbidden
	}

	ingredient, err := s.ingredientRepo.GetIngredient(recipeID, ingredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}

	applyIngredientUpdate(ingredient, input)

	if err := s.ingredientRepo.UpdateIngredient(ingredient); err != nil {
		logger.Log.Error("Failed to update ingredient", zap.Uint("ingredient_id", ingredientID), zap.Error(err))
		return nil, err
	}

	return ingredient, nil
}

// BulkUpdateIngredients updates up to MaxBulkIngredients in one
// transaction. Items whose ID doesn't belong to the recipe are skipped.
func (s *IngredientService) BulkUpdateIngredients(actor authz.Actor, recipeID uint, items []BulkUpdateItem) ([]models.Ingredient, error) {
	if len(items) == 0 || len(items) > MaxBulkIngredients {
		return nil, ErrBulkLimitExceeded
	}

	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionUpdate, recipe) {
		return nil, ErrForbidden
	}

	updated := make([]*models.Ingredient, 0, len(items))
	for _, item := range items {
		ingredient, err := s.ingredientRepo.GetIngredient(recipeID, item.ID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			continue
		}
		applyIngredientUpdate(ingredient, item.UpdateIngredientInput)
		updated = append(updated, ingredient)
	}

	if err := s.ingredientRepo.UpdateIngredients(updated); err != nil {
		logger.Log.Error("Failed to bulk update ingredients", zap.Uint("recipe_id", recipeID), zap.Error(err))
		return nil, err
	}

	result := make([]models.Ingredient, 0, len(updated))
	for _, ingredient := range updated {
		result = append(result, *ingredient)
	}
	return result, nil
}

func (s *IngredientService) DeleteIngredient(actor authz.Actor, recipeID, ingredientID uint) error {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return err
	}
	if !authz.CanAccessIngredients(actor, authz.ActionDelete, recipe) {
		return ErrForbidden
	}

	ingredient, err := s.ingredientRepo.GetIngredient(recipeID, ingredientID)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return ErrIngredientNotFound
	}

	return s.ingredientRepo.DeleteIngredient(recipeID, ingredientID)
}

func applyIngredientUpdate(ingredient *models.Ingredient, input UpdateIngredientInput) {
	if input.Name != nil {
		ingredient.Name = *input.Name
	}
	if input.Quantity != nil {
		ingredient.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		ingredient.Unit = *input.Unit
	}
	if input.Notes != nil {
		ingredient.Notes = *input.Notes
	}
	if input.Order != nil {
		ingredient.Order = *input.Order
	}
}
