package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

type IngredientRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Quantity string `json:"quantity" binding:"omitempty,max=50"`
	Unit     string `json:"unit" binding:"omitempty,max=30"`
	Notes    string `json:"notes" binding:"omitempty,max=255"`
	Order    *int   `json:"order" binding:"omitempty,min=0"`
}

type UpdateIngredientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Quantity *string `json:"quantity" binding:"omitempty,max=50"`
	Unit     *string `json:"unit" binding:"omitempty,max=30"`
	Notes    *string `json:"notes" binding:"omitempty,max=255"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
}

type BulkIngredientsRequest struct {
	Ingredients []IngredientRequest `json:"ingredients" binding:"required,min=1,max=50,dive"`
}

type BulkUpdateIngredientsRequest struct {
	Ingredients []BulkUpdateIngredientItem `json:"ingredients" binding:"required,min=1,max=50,dive"`
}

type BulkUpdateIngredientItem struct {
	ID       uint    `json:"id" binding:"required"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Quantity *string `json:"quantity" binding:"omitempty,max=50"`
	Unit     *string `json:"unit" binding:"omitempty,max=30"`
	Notes    *string `json:"notes" binding:"omitempty,max=255"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
}

// GET /api/v1/recipes/:id/ingredients
func (h *IngredientHandler) List(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	recipe, ingredients, err := h.ingredientService.ListIngredients(middleware.Actor(c), recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ingredients retrieved successfully", gin.H{
		"recipe": gin.H{
			"id":    recipe.ID,
			"title": recipe.Title,
			"slug":  recipe.Slug,
		},
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// GET /api/v1/recipes/:id/ingredients/:ingredient_id
func (h *IngredientHandler) Get(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := parseUintParam(c, "ingredient_id")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(middleware.Actor(c), recipeID, ingredientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ingredient retrieved successfully", ingredient)
}

// POST /api/v1/recipes/:id/ingredients (owner or admin)
func (h *IngredientHandler) Create(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ingredient, err := h.ingredientService.AddIngredient(middleware.Actor(c), recipeID, service.IngredientInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
		Order:    req.Order,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Ingredient added successfully", ingredient)
}

// POST /api/v1/recipes/:id/ingredients/bulk (owner or admin, max 50 per call)
func (h *IngredientHandler) BulkCreate(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req BulkIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	inputs := make([]service.IngredientInput, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		inputs = append(inputs, service.IngredientInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Notes:    item.Notes,
			Order:    item.Order,
		})
	}

	ingredients, err := h.ingredientService.BulkAddIngredients(middleware.Actor(c), recipeID, inputs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Ingredients added successfully", gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// PUT /api/v1/recipes/:id/ingredients/:ingredient_id (owner or admin)
func (h *IngredientHandler) Update(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := parseUintParam(c, "ingredient_id")
	if !ok {
		return
	}

	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(middleware.Actor(c), recipeID, ingredientID, service.UpdateIngredientInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
		Order:    req.Order,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ingredient updated successfully", ingredient)
}

// PUT /api/v1/recipes/:id/ingredients/bulk (owner or admin)
// Items whose id does not belong to the recipe are skipped, not errors.
func (h *IngredientHandler) BulkUpdate(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req BulkUpdateIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]service.BulkUpdateItem, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		items = append(items, service.BulkUpdateItem{
			ID: item.ID,
			UpdateIngredientInput: service.UpdateIngredientInput{
				Name:     item.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
				Notes:    item.Notes,
				Order:    item.Order,
			},
		})
	}

	ingredients, err := h.ingredientService.BulkUpdateIngredients(middleware.Actor(c), recipeID, items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ingredients updated successfully", gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// DELETE /api/v1/recipes/:id/ingredients/:ingredient_id (owner or admin)
func (h *IngredientHandler) Delete(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := parseUintParam(c, "ingredient_id")
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(middleware.Actor(c), recipeID, ingredientID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ingredient deleted successfully", nil)
}
