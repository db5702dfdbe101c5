package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"omitempty"`
	Image       string `json:"image" binding:"omitempty,max=255"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty"`
	Image       *string `json:"image" binding:"omitempty,max=255"`
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	categories, total, err := h.categoryService.ListCategories(page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", gin.H{
		"categories": categories,
		"pagination": paginationMeta(page, perPage, total),
	})
}

// GET /api/v1/categories/search?q=
func (h *CategoryHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error(c, http.StatusBadRequest, "Search query parameter 'q' is required")
		return
	}

	page, perPage := parsePagination(c)

	categories, total, err := h.categoryService.SearchCategories(query, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category search results", gin.H{
		"categories":   categories,
		"search_query": query,
		"pagination":   paginationMeta(page, perPage, total),
	})
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

// POST /api/v1/categories (admin only)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(middleware.Actor(c), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

// PUT /api/v1/categories/:id (admin only)
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(middleware.Actor(c), id, service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", category)
}

// DELETE /api/v1/categories/:id (admin only; blocked while recipes reference it)
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(middleware.Actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
