package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lezzetli/recipe-api/internal/config"
	"github.com/lezzetli/recipe-api/internal/database"
	"github.com/lezzetli/recipe-api/internal/handler"
	"github.com/lezzetli/recipe-api/internal/middleware"
	"github.com/lezzetli/recipe-api/internal/repository"
	"github.com/lezzetli/recipe-api/internal/service"
	"github.com/lezzetli/recipe-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Info("Config loaded", zap.String("environment", cfg.Environment))

	database.Connect(cfg)
	database.Migrate()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	handler.RegisterValidators()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	recipeRepo := repository.NewRecipeRepository(database.DB)
	ingredientRepo := repository.NewIngredientRepository(database.DB)
	ratingRepo := repository.NewRatingRepository(database.DB)

	// Services
	authService := service.NewAuthService(userRepo, recipeRepo, cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	categoryService := service.NewCategoryService(categoryRepo)
	recipeService := service.NewRecipeService(recipeRepo, categoryRepo, userRepo, ingredientRepo, ratingRepo)
	ingredientService := service.NewIngredientService(ingredientRepo, recipeRepo)
	ratingService := service.NewRatingService(ratingRepo, recipeRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Recipe API",
			"version": "v1",
			"status":  "ok",
			"docs":    "/api/v1",
		})
	})

	api := router.Group("/api/v1")
	api.Use(rateLimiter.Middleware())

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", middleware.RequireRefresh(cfg.JWTSecret), authHandler.Refresh)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.GET("/profile", requireAuth, authHandler.Profile)
	}

	// Categories: reads are public, mutations are admin-only (enforced by
	// the policy layer, so mutations still need an authenticated actor).
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/search", categoryHandler.Search)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("", requireAuth, categoryHandler.Create)
		categories.PUT("/:id", requireAuth, categoryHandler.Update)
		categories.DELETE("/:id", requireAuth, categoryHandler.Delete)
	}

	// Recipes and their owned sub-resources.
	recipes := api.Group("/recipes")
	{
		recipes.GET("", recipeHandler.List)
		recipes.GET("/user/:user_id", recipeHandler.ListByUser)
		recipes.GET("/category/:category_id", recipeHandler.ListByCategory)
		recipes.GET("/:id", optionalAuth, recipeHandler.Get)
		recipes.POST("", requireAuth, recipeHandler.Create)
		recipes.PUT("/:id", requireAuth, recipeHandler.Update)
		recipes.DELETE("/:id", requireAuth, recipeHandler.Delete)

		recipes.GET("/:id/ingredients", optionalAuth, ingredientHandler.List)
		recipes.GET("/:id/ingredients/:ingredient_id", optionalAuth, ingredientHandler.Get)
		recipes.POST("/:id/ingredients", requireAuth, ingredientHandler.Create)
		recipes.POST("/:id/ingredients/bulk", requireAuth, ingredientHandler.BulkCreate)
		recipes.PUT("/:id/ingredients/bulk", requireAuth, ingredientHandler.BulkUpdate)
		recipes.PUT("/:id/ingredients/:ingredient_id", requireAuth, ingredientHandler.Update)
		recipes.DELETE("/:id/ingredients/:ingredient_id", requireAuth, ingredientHandler.Delete)

		recipes.GET("/:id/ratings", ratingHandler.ListByRecipe)
		recipes.GET("/:id/ratings/stats", ratingHandler.Stats)
		recipes.GET("/:id/ratings/:rating_id", ratingHandler.Get)
		recipes.POST("/:id/ratings", requireAuth, ratingHandler.Create)
		recipes.PUT("/:id/ratings/:rating_id", requireAuth, ratingHandler.Update)
		recipes.DELETE("/:id/ratings/:rating_id", requireAuth, ratingHandler.Delete)
	}

	api.GET("/users/:user_id/ratings", ratingHandler.ListByUser)

	logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
