package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

type CreateRecipeRequest struct {
	Title        string `json:"title" binding:"required,min=3,max=200"`
	Description  string `json:"description" binding:"omitempty"`
	Instructions string `json:"instructions" binding:"required,min=10"`
	PrepTime     *int   `json:"prep_time" binding:"omitempty,min=0"`
	CookTime     *int   `json:"cook_time" binding:"omitempty,min=0"`
	Servings     *int   `json:"servings" binding:"omitempty,min=1"`
	Difficulty   string `json:"difficulty" binding:"omitempty,difficulty"`
	Image        string `json:"image" binding:"omitempty,max=255"`
	IsPublished  bool   `json:"is_published"`
	CategoryID   uint   `json:"category_id" binding:"required"`
}

type UpdateRecipeRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description  *string `json:"description" binding:"omitempty"`
	Instructions *string `json:"instructions" binding:"omitempty,min=10"`
	PrepTime     *int    `json:"prep_time" binding:"omitempty,min=0"`
	CookTime     *int    `json:"cook_time" binding:"omitempty,min=0"`
	Servings     *int    `json:"servings" binding:"omitempty,min=1"`
	Difficulty   *string `json:"difficulty" binding:"omitempty,difficulty"`
	Image        *string `json:"image" binding:"omitempty,max=255"`
	IsPublished  *bool   `json:"is_published"`
	CategoryID   *uint   `json:"category_id"`
}

// GET /api/v1/recipes
// Filters: category_id, difficulty, user_id, is_published, search.
// Unset published filter defaults to published-only.
func (h *RecipeHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	var filter repository.RecipeFilter

	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = &id
		}
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		filter.Difficulty = difficulty
	}
	if raw := c.Query("is_published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			filter.IsPublished = &published
		}
	}
	filter.Search = c.Query("search")

	recipes, total, err := h.recipeService.ListRecipes(filter, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Recipes retrieved successfully", gin.H{
		"recipes":    recipes,
		"pagination": paginationMeta(page, perPage, total),
	})
}

// GET /api/v1/recipes/:id
// Includes nested ingredients and ratings. Unpublished recipes answer 403
// unless the caller is the owner or an admin.
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.recipeService.GetRecipe(middleware.Actor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Recipe retrieved successfully", detail)
}

// POST /api/v1/recipes (authenticated)
func (h *RecipeHandler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(middleware.Actor(c), service.CreateRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Image:        req.Image,
		IsPublished:  req.IsPublished,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Recipe created successfully", recipe)
}

// PUT /api/v1/recipes/:id (owner or admin)
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(middleware.Actor(c), id, service.UpdateRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Image:        req.Image,
		IsPublished:  req.IsPublished,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Recipe updated successfully", recipe)
}

// DELETE /api/v1/recipes/:id (owner or admin; cascades to ingredients and ratings)
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(middleware.Actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Recipe deleted successfully", nil)
}

// GET /api/v1/recipes/user/:user_id (published only)
func (h *RecipeHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user_id")
		return
	}

	page, perPage := parsePagination(c)

	user, recipes, total, err := h.recipeService.ListByUser(userID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User recipes retrieved successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
		"recipes":    recipes,
		"pagination": paginationMeta(page, perPage, total),
	})
}

// GET /api/v1/recipes/category/:category_id (published only)
func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "category_id")
	if !ok {
		return
	}

	page, perPage := parsePagination(c)

	category, recipes, total, err := h.recipeService.ListByCategory(categoryID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category recipes retrieved successfully", gin.H{
		"category": gin.H{
			"id":   category.ID,
			"name": category.Name,
			"slug": category.Slug,
		},
		"recipes":    recipes,
		"pagination": paginationMeta(page, perPage, total),
	})
}
