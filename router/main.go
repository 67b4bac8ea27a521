package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/config"
	"github.com/sahilchouksey/campus-bridge/database"
	"github.com/sahilchouksey/campus-bridge/handlers"
	auth_handlers "github.com/sahilchouksey/campus-bridge/handlers/auth"
	collab_handlers "github.com/sahilchouksey/campus-bridge/handlers/collab"
	company_handlers "github.com/sahilchouksey/campus-bridge/handlers/company"
	job_handlers "github.com/sahilchouksey/campus-bridge/handlers/job"
	university_handlers "github.com/sahilchouksey/campus-bridge/handlers/university"
	"github.com/sahilchouksey/campus-bridge/services"
	"github.com/sahilchouksey/campus-bridge/services/spaces"
	"github.com/sahilchouksey/campus-bridge/utils"
	"github.com/sahilchouksey/campus-bridge/utils/auth"
	"github.com/sahilchouksey/campus-bridge/utils/cache"
	"github.com/sahilchouksey/campus-bridge/utils/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campus-bridge-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection and list caching
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and caching will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize auth handler with brute force protection
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)

	// Profile and job posting handlers
	companyHandler := company_handlers.NewCompanyHandler(db)
	universityHandler := university_handlers.NewUniversityHandler(db)
	jobHandler := job_handlers.NewJobHandler(db)

	// Object storage for message attachments (optional)
	var spacesClient *spaces.Client
	if env, err := config.Get(); err == nil && env.SPACES_ACCESS_KEY != "" {
		spacesClient, err = spaces.NewClient(spaces.ConfigFromEnv(env))
		if err != nil {
			log.Printf("Warning: Failed to initialize object storage: %v. Uploads will be disabled.", err)
		}
	}

	// Collaboration workspace services and handler
	collabService := services.NewCollaborationService(db, redisCache)
	boardService := services.NewBoardService(db, collabService)
	messageService := services.NewMessageService(db, collabService)
	mouService := services.NewMoUService(db, collabService)
	uploadService := services.NewUploadService(db, collabService, spacesClient)
	collabHandler := collab_handlers.NewCollabHandler(collabService, boardService, messageService, mouService, uploadService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Company profiles
	companies := api.Group("/companies")
	companies.Get("/", companyHandler.ListCompanies)                                 // Public: List companies
	companies.Get("/:id", companyHandler.GetCompany)                                 // Public: Get company by ID
	companies.Post("/", authMiddleware.Required(), companyHandler.CreateCompany)     // Protected: Create own profile
	companies.Put("/:id", authMiddleware.Required(), companyHandler.UpdateCompany)   // Protected: Owner or admin

	// University profiles
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)                               // Public: List universities
	universities.Get("/:id", universityHandler.GetUniversity)                               // Public: Get university by ID
	universities.Post("/", authMiddleware.Required(), universityHandler.CreateUniversity)   // Protected: Create own profile
	universities.Put("/:id", authMiddleware.Required(), universityHandler.UpdateUniversity) // Protected: Owner or admin

	// Job postings
	jobs := api.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs)                                 // Public: List/search jobs
	jobs.Get("/:id", jobHandler.GetJob)                                // Public: Get job by ID
	jobs.Post("/", authMiddleware.Required(), jobHandler.CreateJob)    // Protected: Company posts a job
	jobs.Put("/:id", authMiddleware.Required(), jobHandler.UpdateJob)  // Protected: Owner or admin
	jobs.Delete("/:id", authMiddleware.Required(), jobHandler.DeleteJob)

	// Collaboration workspace (all protected - participants only)
	collaborations := api.Group("/collaborations", authMiddleware.Required())
	collaborations.Get("/", collabHandler.ListCollaborations)
	collaborations.Post("/", collabHandler.StartCollaboration)
	collaborations.Get("/:id", collabHandler.GetCollaboration)
	collaborations.Patch("/:id", collabHandler.UpdateCollaboration)

	// Task board
	collaborations.Get("/:id/board", collabHandler.GetBoard)
	collaborations.Post("/:id/tasks", collabHandler.AddTask)
	collaborations.Patch("/:id/tasks/:task_id", collabHandler.UpdateTask)

	// Message log
	collaborations.Get("/:id/messages", collabHandler.ListMessages)
	collaborations.Post("/:id/messages", collabHandler.PostMessage)

	// MoU
	collaborations.Post("/:id/mou", collabHandler.SaveMoU)
	collaborations.Post("/:id/mou/sign", collabHandler.SignMoU)

	// Timeline
	collaborations.Get("/:id/timeline", collabHandler.GetTimeline)

	// Attachments
	collaborations.Post("/:id/uploads", collabHandler.Upload)
}
