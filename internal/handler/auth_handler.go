package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/response"
	"github.com/lezzetli/recipe-api/internal/service"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authPayload struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed", zap.String("ip", c.ClientIP()), zap.Error(err))
		response.BindError(c, err)
		return
	}

	logger.Log.Info("User registration attempt",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	user, tokens, err := h.authService.Register(req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", authPayload{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed", zap.String("ip", c.ClientIP()), zap.Error(err))
		response.BindError(c, err)
		return
	}

	user, tokens, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", authPayload{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// POST /api/v1/auth/refresh (refresh token required)
func (h *AuthHandler) Refresh(c *gin.Context) {
	actor := middleware.Actor(c)

	accessToken, err := h.authService.Refresh(actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Access token refreshed successfully", gin.H{
		"access_token": accessToken,
	})
}

// POST /api/v1/auth/logout (access token required)
// Tokens are stateless; the client discards them.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "Logout successful. Please remove tokens from client.", nil)
}

// GET /api/v1/auth/profile (access token required)
func (h *AuthHandler) Profile(c *gin.Context) {
	actor := middleware.Actor(c)

	user, recipeCount, err := h.authService.Profile(actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user":         user,
		"recipe_count": recipeCount,
	})
}
