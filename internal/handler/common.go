package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}

func paginationMeta(page, perPage int, total int64) Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, 400, "Invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// respondServiceError maps domain errors to HTTP statuses in one place so
// the mapping cannot drift between endpoints.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrCategoryNameTaken),
		errors.Is(err, service.ErrCategoryHasRecipes),
		errors.Is(err, service.ErrSlugConflict),
		errors.Is(err, service.ErrAlreadyRated),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrBulkLimitExceeded),
		errors.Is(err, service.ErrInvalidInput):
		response.Error(c, 400, err.Error())
	default:
		logger.Log.Error("Unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		response.ServerError(c, "An unexpected error occurred")
	}
}
