package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lezzetli/recipe-api/internal/models"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/utils"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserAlreadyExists     = errors.New("email or username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// TokenPair carries a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	userRepo      *repository.UserRepository
	recipeRepo    *repository.RecipeRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, recipeRepo *repository.RecipeRepository, jwtSecret string, accessExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		recipeRepo:    recipeRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *AuthService) Register(username, email, password, fullName string) (*models.User, *TokenPair, error) {
	start := time.Now()

	if err := s.validateRegisterInput(username, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, nil, err
	}

	// Friendly pre-checks. The unique indexes remain the authority; two
	// concurrent registrations can both pass these.
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence", zap.String("email", email), zap.Error(err))
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence", zap.String("username", username), zap.Error(err))
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUsernameAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration.
			return nil, nil, ErrUserAlreadyExists
		}
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, nil, err
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		logger.Log.Error("Failed to generate tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
		zap.Duration("duration", time.Since(start)),
	)

	return user, tokens, nil
}

func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password", zap.String("email", email), zap.Error(err))
		return nil, nil, err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password", zap.String("user_id", user.ID.String()))
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		logger.Log.Error("Failed to generate tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, nil, err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return user, tokens, nil
}

// Refresh issues a new access token for the holder of a valid refresh token.
// The refresh token itself is not rotated.
func (s *AuthService) Refresh(userID uuid.UUID) (string, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Log.Error("Failed to load user for refresh", zap.String("user_id", userID.String()), zap.Error(err))
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	token, err := utils.GenerateToken(user, utils.TokenTypeAccess, s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate access token", zap.String("user_id", userID.String()), zap.Error(err))
		return "", err
	}

	logger.Log.Info("Access token refreshed", zap.String("user_id", userID.String()))
	return token, nil
}

// Profile returns the user and their authored-recipe count.
func (s *AuthService) Profile(userID uuid.UUID) (*models.User, int64, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	recipeCount, err := s.recipeRepo.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	return user, recipeCount, nil
}

func (s *AuthService) issueTokenPair(user *models.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(user, utils.TokenTypeAccess, s.jwtSecret, s.accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user, utils.TokenTypeRefresh, s.jwtSecret, s.refreshExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) validateRegisterInput(username, email, password string) error {
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrInvalidInput)
	}
	if len(username) > 80 {
		return fmt.Errorf("%w: username must be at most 80 characters", ErrInvalidInput)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(email) > 120 {
		return fmt.Errorf("%w: email too long", ErrInvalidInput)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if len(password) > 128 {
		return fmt.Errorf("%w: password too long", ErrInvalidInput)
	}

	return nil
}
