package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handlers"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	categoryRepo := repository.NewCategoryRepository(database.GetDB())

	// Initialize services
	tokenService, err := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	authService := services.NewAuthService(userRepo, tokenService)
	oauthService := services.NewOAuthService(userRepo, tokenService, cfg.OAuthRedirectURI)
	taskService := services.NewTaskService(taskRepo, userRepo, categoryRepo)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(oauthService,
		services.NewGitHubVerifier(cfg.GitHubClientID, cfg.GitHubClientSecret))
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	r := gin.Default()

	requireAuth := middleware.RequireAuth(tokenService, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskflow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/password-reset", userHandler.RequestPasswordReset)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// OAuth callback (public, provider redirects here)
		api.GET("/oauth/callback/github", oauthHandler.Callback)

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/me/preferences", userHandler.GetPreferences)
			users.PUT("/me/preferences", userHandler.UpdatePreferences)
			users.PUT("/me/password", userHandler.ChangePassword)
			users.GET("/assignable", userHandler.ListAssignable)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/bulk", taskHandler.CreateBulkTasks)
			tasks.PATCH("/bulk", taskHandler.UpdateBulkTasks)
			tasks.DELETE("/bulk", taskHandler.DeleteBulkTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
