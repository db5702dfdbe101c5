package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAlreadyRated   = errors.New("user has already rated this recipe")
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidScore   = errors.New("score must be between 1 and 5")
)

type RatingService struct {
	ratingRepo *repository.RatingRepository
	recipeRepo *repository.RecipeRepository
	userRepo   *repository.UserRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, recipeRepo *repository.RecipeRepository, userRepo *repository.UserRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// RatingStats is the on-demand aggregate for a recipe's live rating set.
// AverageRating is nil when there are no ratings. Percentages are rounded
// independently to 1 decimal and may not sum to exactly 100.
type RatingStats struct {
	RecipeID     uint               `json:"recipe_id"`
	RecipeTitle  string             `json:"recipe_title"`
	TotalRatings int                `json:"total_ratings"`
	Average      *float64           `json:"average_rating"`
	Distribution map[string]int     `json:"distribution"`
	Percentages  map[string]float64 `json:"distribution_percentages,omitempty"`
}

func (s *RatingService) loadRecipe(recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// AddRating records a user's rating for a recipe. The existence pre-check
// gives a friendly error, but the composite unique constraint is what makes
// the invariant hold under concurrent requests; its violation is translated
// to ErrAlreadyRated rather than leaking as an unexpected failure.
func (s *RatingService) AddRating(actor authz.Actor, recipeID uint, score int, comment string) (*models.Rating, error) {
	if !authz.CanAccessRating(actor, authz.ActionCreate, &models.Rating{}) {
		return nil, ErrForbidden
	}
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}

	if _, err := s.loadRecipe(recipeID); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetUserRating(actor.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	rating := &models.Rating{
		Score:    score,
		Comment:  comment,
		UserID:   actor.ID,
		RecipeID: recipeID,
	}

	if err := s.ratingRepo.CreateRating(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		logger.Log.Error("Failed to create rating",
			zap.Uint("recipe_id", recipeID),
			zap.String("user_id", actor.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Rating added",
		zap.Uint("recipe_id", recipeID),
		zap.String("user_id", actor.ID.String()),
		zap.Int("score", score),
	)

	return rating, nil
}

func (s *RatingService) GetRating(recipeID, ratingID uint) (*models.Rating, error) {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.GetRating(recipeID, ratingID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	return rating, nil
}

func (s *RatingService) ListByRecipe(recipeID uint, page, perPage int) (*models.Recipe, []models.Rating, int64, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, nil, 0, err
	}

	ratings, total, err := s.ratingRepo.ListByRecipe(recipeID, page, perPage)
	return recipe, ratings, total, err
}

func (s *RatingService) ListByUser(userID uuid.UUID, page, perPage int) (*models.User, []models.Rating, int64, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, 0, err
	}
	if user == nil {
		return nil, nil, 0, ErrUserNotFound
	}

	ratings, total, err := s.ratingRepo.ListByUser(userID, page, perPage)
	return user, ratings, total, err
}

// UpdateRating requires exact authorship; admins get no override for ratings.
func (s *RatingService) UpdateRating(actor authz.Actor, recipeID, ratingID uint, score *int, comment *string) (*models.Rating, error) {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.GetRating(recipeID, ratingID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}

	if !authz.CanAccessRating(actor, authz.ActionUpdate, rating) {
		logger.Log.Warn("Rating update denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("rating_id", ratingID),
		)
		return nil, ErrForbidden
	}

	if score != nil {
		if *score < 1 || *score > 5 {
			return nil, ErrInvalidScore
		}
		rating.Score = *score
	}
	if comment != nil {
		rating.Comment = *comment
	}

	if err := s.ratingRepo.UpdateRating(rating); err != nil {
		logger.Log.Error("Failed to update rating", zap.Uint("rating_id", ratingID), zap.Error(err))
		return nil, err
	}

	return rating, nil
}

func (s *RatingService) DeleteRating(actor authz.Actor, recipeID, ratingID uint) error {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return err
	}

	rating, err := s.ratingRepo.GetRating(recipeID, ratingID)
	if err != nil {
		return err
	}
	if rating == nil {
		return ErrRatingNotFound
	}

	if !authz.CanAccessRating(actor, authz.ActionDelete, rating) {
		logger.Log.Warn("Rating delete denied",
			zap.String("actor_id", actor.ID.String()),
			zap.Uint("rating_id", ratingID),
		)
		return ErrForbidden
	}

	return s.ratingRepo.DeleteRating(recipeID, ratingID)
}

// Stats computes the aggregate from the live rating rows on every call.
// Nothing is cached or denormalized, so the result is always consistent
// with the mutations visible at read time.
func (s *RatingService) Stats(recipeID uint) (*RatingStats, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	scores, err := s.ratingRepo.ScoresByRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	stats := &RatingStats{
		RecipeID:     recipeID,
		RecipeTitle:  recipe.Title,
		TotalRatings: len(scores),
		Distribution: emptyDistribution(),
	}

	if len(scores) == 0 {
		return stats, nil
	}

	total := len(scores)
	average := math.Round(float64(lo.Sum(scores))/float64(total)*100) / 100
	stats.Average = &average

	counts := lo.CountValues(scores)
	stats.Percentages = make(map[string]float64, 5)
	for score := 1; score <= 5; score++ {
		key := bucketKey(score)
		count := counts[score]
		stats.Distribution[key] = count
		stats.Percentages[key] = math.Round(float64(count)/float64(total)*1000) / 10
	}

	return stats, nil
}

func emptyDistribution() map[string]int {
	dist := make(map[string]int, 5)
	for score := 1; score <= 5; score++ {
		dist[bucketKey(score)] = 0
	}
	return dist
}

func bucketKey(score int) string {
	if score == 1 {
		return "1_star"
	}
	return fmt.Sprintf("%d_stars", score)
}
