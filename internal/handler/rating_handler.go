package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

type CreateRatingRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

type UpdateRatingRequest struct {
	Score   *int    `json:"score" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// GET /api/v1/recipes/:id/ratings
func (h *RatingHandler) ListByRecipe(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	page, perPage := parsePagination(c)

	recipe, ratings, total, err := h.ratingService.ListByRecipe(recipeID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ratings retrieved successfully", gin.H{
		"recipe": gin.H{
			"id":    recipe.ID,
			"title": recipe.Title,
			"slug":  recipe.Slug,
		},
		"ratings":    ratings,
		"pagination": paginationMeta(page, perPage, total),
	})
}

// POST /api/v1/recipes/:id/ratings (authenticated, one rating per user per recipe)
func (h *RatingHandler) Create(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rating, err := h.ratingService.AddRating(middleware.Actor(c), recipeID, req.Score, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Rating added successfully", rating)
}

// GET /api/v1/recipes/:id/ratings/:rating_id
func (h *RatingHandler) Get(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ratingID, ok := parseUintParam(c, "rating_id")
	if !ok {
		return
	}

	rating, err := h.ratingService.GetRating(recipeID, ratingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Rating retrieved successfully", rating)
}

// PUT /api/v1/recipes/:id/ratings/:rating_id (author only)
func (h *RatingHandler) Update(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ratingID, ok := parseUintParam(c, "rating_id")
	if !ok {
		return
	}

	var req UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rating, err := h.ratingService.UpdateRating(middleware.Actor(c), recipeID, ratingID, req.Score, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Rating updated successfully", rating)
}

// DELETE /api/v1/recipes/:id/ratings/:rating_id (author only)
func (h *RatingHandler) Delete(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	ratingID, ok := parseUintParam(c, "rating_id")
	if !ok {
		return
	}

	if err := h.ratingService.DeleteRating(middleware.Actor(c), recipeID, ratingID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Rating deleted successfully", nil)
}

// GET /api/v1/recipes/:id/ratings/stats
func (h *RatingHandler) Stats(c *gin.Context) {
	recipeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.ratingService.Stats(recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Rating statistics retrieved successfully", stats)
}

// GET /api/v1/users/:user_id/ratings
func (h *RatingHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user_id")
		return
	}

	page, perPage := parsePagination(c)

	user, ratings, total, err := h.ratingService.ListByUser(userID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User ratings retrieved successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
		"ratings":    ratings,
		"pagination": paginationMeta(page, perPage, total),
	})
}
