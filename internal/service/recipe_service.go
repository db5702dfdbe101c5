package service

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/utils"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrSlugConflict = errors.New("recipe slug already exists")

type RecipeService struct {
	recipeRepo     *repository.RecipeRepository
	categoryRepo   *repository.CategoryRepository
	userRepo       *repository.UserRepository
	ingredientRepo *repository.IngredientRepository
	ratingRepo     *repository.RatingRepository
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	ingredientRepo *repository.IngredientRepository,
	ratingRepo *repository.RatingRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		ingredientRepo: ingredientRepo,
		ratingRepo:     ratingRepo,
	}
}

// RecipeSummary is a recipe plus the rating figures derived on read.
// AverageRating is nil, not zero, when the recipe has no ratings.
type RecipeSummary struct {
	models.Recipe
	TotalTime     int      `json:"total_time"`
	AverageRating *float64 `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
}

// RecipeDetail adds the owned child collections.
type RecipeDetail struct {
	RecipeSummary
	Ingredients []models.Ingredient `json:"ingredients"`
	Ratings     []models.Rating     `json:"ratings"`
}

type CreateRecipeInput struct {
	Title        string
	Description  string
	Instructions string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   string
	Image        string
	IsPublished  bool
	CategoryID   uint
}

type UpdateRecipeInput struct {
	Title        *string
	Description  *string
	Instructions *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	Image        *string
	IsPublished  *bool
	CategoryID   *uint
}

func (s *RecipeService) CreateRecipe(actor authz.Actor, input CreateRecipeInput) (*RecipeSummary, error) {
	if !authz.CanAccessRecipe(actor, authz.ActionCreate, &models.Recipe{}) {
		return nil, ErrForbidden
	}

	category, err := s.categoryRepo.GetCategoryByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug, err := ensureUniqueSlug(utils.Slugify(input.Title), func(slug string) (bool, error) {
		return s.recipeRepo.SlugExists(slug, 0)
	})
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        input.Title,
		Slug:         slug,
		Description:  input.Description,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   models.Difficulty(input.Difficulty),
		Image:        input.Image,
		IsPublished:  input.IsPublished,
		UserID:       actor.ID,
		CategoryID:   input.CategoryID,
	}

	if err := s.recipeRepo.CreateRecipe(recipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a slug race against a concurrent create.
			return nil, ErrSlugConflict
		}
		logger.Log.Error("Failed to create recipe", zap.String("title", input.Title), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Recipe created",
		zap.Uint("recipe_id", recipe.ID),
		zap.String("slug", recipe.Slug),
		zap.String("user_id", actor.ID.String()),
	)

	return s.summarize(recipe)
}

// GetRecipe returns the full detail (nested ingredients and ratings).
// Unpublished recipes are visible only to the owner or an admin; anyone
// else gets ErrForbidden — existence is not hidden.
func (s *RecipeService) GetRecipe(actor authz.Actor, id uint) (*RecipeDetail, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	if !authz.CanAccessRecipe(actor, authz.ActionRead, recipe) {
		return nil, ErrForbidden
	}

	summary, err := s.summarize(recipe)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.ingredientRepo.ListByRecipe(id)
	if err != nil {
		return nil, err
	}

	ratings, _, err := s.ratingRepo.ListByRecipe(id, 1, 100)
	if err != nil {
		return nil, err
	}

	return &RecipeDetail{
		RecipeSummary: *summary,
		Ingredients:   ingredients,
		Ratings:       ratings,
	}, nil
}

// ListRecipes applies the caller's filters. When the published filter is
// unset it defaults to published-only, so drafts never leak into listings.
func (s *RecipeService) ListRecipes(filter repository.RecipeFilter, page, perPage int) ([]RecipeSummary, int64, error) {
	if filter.IsPublished == nil {
		published := true
		filter.IsPublished = &published
	}

	recipes, total, err := s.recipeRepo.ListRecipes(filter, page, perPage)
	if err != nil {
		return nil, 0, err
	}

	summaries, err := s.summarizeAll(recipes)
	return summaries, total, err
}

// ListByUser returns a user's published recipes, verifying the user exists.
func (s *RecipeService) ListByUser(userID uuid.UUID, page, perPage int) (*models.User, []RecipeSummary, int64, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, 0, err
	}
	if user == nil {
		return nil, nil, 0, ErrUserNotFound
	}

	published := true
	recipes, total, err := s.recipeRepo.ListRecipes(repository.RecipeFilter{
		UserID:      &userID,
		IsPublished: &published,
	}, page, perPage)
	if err != nil {
		return nil, nil, 0, err
	}

	summaries, err := s.summarizeAll(recipes)
	return user, summaries, total, err
}

// ListByCategory returns a category's published recipes, verifying the
// category exists.
func (s *RecipeService) ListByCategory(categoryID uint, page, perPage int) (*models.Category, []RecipeSummary, int64, error) {
	category, err := s.categoryRepo.GetCategoryByID(categoryID)
	if err != nil {
		return nil, nil, 0, err
	}
	if category == nil {
		return nil, nil, 0, ErrCategoryNotFound
	}

	published := true
	recipes, total, err := s.recipeRepo.ListRecipes(repository.RecipeFilter{
		CategoryID:  &categoryID,
		IsPublished: &published,
	}, page, perPage)
	if err != nil {
		return nil, nil, 0, err
	}

	summaries, err := s.summarizeAll(recipes)
	return category, summaries, total, err
}

func (s *RecipeService) UpdateRecipe(actor authz.Actor, id uint, input UpdateRecipeInput) (*RecipeSummary, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	if !authz.CanAccessRecipe(actor, authz.ActionUpdate, recipe) {
		logger.Log.Warn("Recipe update denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("recipe_id", id),
		)
		return nil, ErrForbidden
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetCategoryByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		recipe.CategoryID = *input.CategoryID
	}

	// The slug is re-derived only when the title actually changes.
	if input.Title != nil && *input.Title != recipe.Title {
		slug, err := ensureUniqueSlug(utils.Slugify(*input.Title), func(slug string) (bool, error) {
			return s.recipeRepo.SlugExists(slug, id)
		})
		if err != nil {
			return nil, err
		}
		recipe.Title = *input.Title
		recipe.Slug = slug
	}

	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Instructions != nil {
		recipe.Instructions = *input.Instructions
	}
	if input.PrepTime != nil {
		recipe.PrepTime = input.PrepTime
	}
	if input.CookTime != nil {
		recipe.CookTime = input.CookTime
	}
	if input.Servings != nil {
		recipe.Servings = input.Servings
	}
	if input.Difficulty != nil {
		recipe.Difficulty = models.Difficulty(*input.Difficulty)
	}
	if input.Image != nil {
		recipe.Image = *input.Image
	}
	if input.IsPublished != nil {
		recipe.IsPublished = *input.IsPublished
	}

	if err := s.recipeRepo.UpdateRecipe(recipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugConflict
		}
		logger.Log.Error("Failed to update recipe", zap.Uint("recipe_id", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Recipe updated", zap.Uint("recipe_id", id), zap.String("actor_id", actor.ID.String()))
	return s.summarize(recipe)
}

func (s *RecipeService) DeleteRecipe(actor authz.Actor, id uint) error {
	recipe, err := s.recipeRepo.GetRecipeByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}

	if !authz.CanAccessRecipe(actor, authz.ActionDelete, recipe) {
		logger.Log.Warn("Recipe delete denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("recipe_id", id),
		)
		return ErrForbidden
	}

	if err := s.recipeRepo.DeleteRecipe(id); err != nil {
		logger.Log.Error("Failed to delete recipe", zap.Uint("recipe_id", id), zap.Error(err))
		return err
	}

	logger.Log.Info("Recipe deleted (with ingredients and ratings)",
		zap.Uint("recipe_id", id),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

func (s *RecipeService) summarize(recipe *models.Recipe) (*RecipeSummary, error) {
	scores, err := s.ratingRepo.ScoresByRecipe(recipe.ID)
	if err != nil {
		return nil, err
	}

	summary := &RecipeSummary{
		Recipe:      *recipe,
		TotalTime:   recipe.TotalTime(),
		RatingCount: len(scores),
	}
	if len(scores) > 0 {
		avg := math.Round(float64(lo.Sum(scores))/float64(len(scores))*100) / 100
		summary.AverageRating = &avg
	}
	return summary, nil
}

func (s *RecipeService) summarizeAll(recipes []models.Recipe) ([]RecipeSummary, error) {
	summaries := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summary, err := s.summarize(&recipes[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
