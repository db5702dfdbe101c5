package repository

import (
	"errors"

	"github.com/lezzetli/recipe-api/internal/models"
	"gorm.io/gorm"
)

// ErrCategoryInUse signals a delete attempt on a category that still
// classifies at least one recipe.
var ErrCategoryInUse = errors.New("category has recipes")

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// SlugExists reports whether the slug is taken by a category other than excludeID.
func (r *CategoryRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryRepository) ListCategories(page, perPage int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	if err := r.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&categories).Error

	return categories, total, err
}

// SearchCategories matches names case-insensitively by substring.
func (r *CategoryRepository) SearchCategories(query string, page, perPage int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	pattern := "%" + query + "%"
	base := r.db.Model(&models.Category{}).Where("LOWER(name) LIKE LOWER(?)", pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&categories).Error

	return categories, total, err
}

func (r *CategoryRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) CountRecipes(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// DeleteCategory removes a category only if no recipe references it; the
// guard runs inside the delete transaction so a concurrent recipe create
// cannot slip in between check and delete.
func (r *CategoryRepository) DeleteCategory(id uint) (int64, error) {
	var recipeCount int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("category_id = ?", id).Count(&recipeCount).Error; err != nil {
			return err
		}
		if recipeCount > 0 {
			return ErrCategoryInUse
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	return recipeCount, err
}
