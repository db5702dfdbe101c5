package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// CreateRating inserts a rating. The composite unique index on
// (user_id, recipe_id) is the real duplicate guard; callers must treat
// gorm.ErrDuplicatedKey as "already rated".
func (r *RatingRepository) CreateRating(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r *RatingRepository) GetRating(recipeID, ratingID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("id = ? AND recipe_id = ?", ratingID, recipeID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) GetUserRating(userID uuid.UUID, recipeID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) ListByRecipe(recipeID uint, page, perPage int) ([]models.Rating, int64, error) {
	base := r.db.Model(&models.Rating{}).Where("recipe_id = ?", recipeID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []models.Rating
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&ratings).Error

	return ratings, total, err
}

func (r *RatingRepository) ListByUser(userID uuid.UUID, page, perPage int) ([]models.Rating, int64, error) {
	base := r.db.Model(&models.Rating{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []models.Rating
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&ratings).Error

	return ratings, total, err
}

// ScoresByRecipe returns the live score set for aggregation. Stats are
// always derived from these rows, never from a stored denormalized value.
func (r *RatingRepository) ScoresByRecipe(recipeID uint) ([]int, error) {
	var scores []int
	err := r.db.Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Pluck("score", &scores).Error
	return scores, err
}

func (r *RatingRepository) UpdateRating(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r *RatingRepository) DeleteRating(recipeID, ratingID uint) error {
	return r.db.Where("id = ? AND recipe_id = ?", ratingID, recipeID).Delete(&models.Rating{}).Error
}
