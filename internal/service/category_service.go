package service

import (
	"errors"

	"github.com/lezzetli/recipe-api/internal/authz"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/utils"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameTaken  = errors.New("category with this name already exists")
	ErrCategoryHasRecipes = errors.New("category still has recipes")
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CategoryInput struct {
	Name        string
	Description string
	Image       string
}

func (s *CategoryService) CreateCategory(actor authz.Actor, input CategoryInput) (*models.Category, error) {
	if !authz.CanAccessCategory(actor, authz.ActionCreate) {
		logger.Log.Warn("Category create denied", zap.String("actor_id", actor.ID.String()))
		return nil, ErrForbidden
	}

	existing, err := s.categoryRepo.GetCategoryByName(input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	slug, err := ensureUniqueSlug(utils.Slugify(input.Name), func(slug string) (bool, error) {
		return s.categoryRepo.SlugExists(slug, 0)
	})
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
	}

	if err := s.categoryRepo.CreateCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		logger.Log.Error("Failed to create category", zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("slug", category.Slug),
		zap.String("actor_id", actor.ID.String()),
	)

	return category, nil
}

func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) ListCategories(page, perPage int) ([]models.Category, int64, error) {
	return s.categoryRepo.ListCategories(page, perPage)
}

func (s *CategoryService) SearchCategories(query string, page, perPage int) ([]models.Category, int64, error) {
	return s.categoryRepo.SearchCategories(query, page, perPage)
}

// UpdateCategoryInput uses pointers so absent fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
}

func (s *CategoryService) UpdateCategory(actor authz.Actor, id uint, input UpdateCategoryInput) (*models.Category, error) {
	if !authz.CanAccessCategory(actor, authz.ActionUpdate) {
		logger.Log.Warn("Category update denied", zap.String("actor_id", actor.ID.String()), zap.Uint("category_id", id))
		return nil, ErrForbidden
	}

	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != nil && *input.Name != category.Name {
		existing, err := s.categoryRepo.GetCategoryByName(*input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategoryNameTaken
		}

		slug, err := ensureUniqueSlug(utils.Slugify(*input.Name), func(slug string) (bool, error) {
			return s.categoryRepo.SlugExists(slug, id)
		})
		if err != nil {
			return nil, err
		}

		category.Name = *input.Name
		category.Slug = slug
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Image != nil {
		category.Image = *input.Image
	}

	if err := s.categoryRepo.UpdateCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		logger.Log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Category updated", zap.Uint("category_id", id), zap.String("actor_id", actor.ID.String()))
	return category, nil
}

func (s *CategoryService) DeleteCategory(actor authz.Actor, id uint) error {
	if !authz.CanAccessCategory(actor, authz.ActionDelete) {
		logger.Log.Warn("Category delete denied", zap.String("actor_id", actor.ID.String()), zap.Uint("category_id", id))
		return ErrForbidden
	}

	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if _, err := s.categoryRepo.DeleteCategory(id); err != nil {
		if errors.Is(err, repository.ErrCategoryInUse) {
			return ErrCategoryHasRecipes
		}
		logger.Log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return err
	}

	logger.Log.Info("Category deleted", zap.Uint("category_id", id), zap.String("actor_id", actor.ID.String()))
	return nil
}
