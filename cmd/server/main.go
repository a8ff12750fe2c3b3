package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightfold/studio-backend/internal/audit"
	"github.com/brightfold/studio-backend/internal/config"
	"github.com/brightfold/studio-backend/internal/database"
	"github.com/brightfold/studio-backend/internal/handler"
	"github.com/brightfold/studio-backend/internal/mailer"
	"github.com/brightfold/studio-backend/internal/middleware"
	"github.com/brightfold/studio-backend/internal/repository"
	"github.com/brightfold/studio-backend/internal/service"
	"github.com/brightfold/studio-backend/internal/views"
	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect(cfg)
	database.Migrate()

	auditLog, err := audit.Open(cfg.AuditPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	defer auditLog.Close()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	articleRepo := repository.NewArticleRepository(database.DB)
	projectRepo := repository.NewProjectRepository(database.DB)
	caseStudyRepo := repository.NewCaseStudyRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	contactRepo := repository.NewContactRepository(database.DB)

	// Redis-backed pieces are optional: without REDIS_URL the API runs
	// with no rate limiting and views written straight through.
	var (
		rateLimiter *middleware.RateLimiter
		viewCounter *views.Counter
	)
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rateLimiter = middleware.NewRateLimiter(redis.NewClient(opt), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})

		viewCounter, err = views.NewCounter(cfg.RedisURL, articleRepo, cfg.ViewFlushInterval)
		if err != nil {
			log.Fatalf("Failed to initialize view counter: %v", err)
		}
		viewCounter.Start()
		defer viewCounter.Stop()
	}

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	articleService := service.NewArticleService(articleRepo)
	projectService := service.NewProjectService(projectRepo)
	caseStudyService := service.NewCaseStudyService(caseStudyRepo)
	reviewService := service.NewReviewService(reviewRepo)
	sender := mailer.NewResendSender(cfg.ResendAPIKey, cfg.ContactFromAddr)
	contactService := service.NewContactService(contactRepo, sender, cfg.ContactRecipients)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, auditLog)
	articleHandler := handler.NewArticleHandler(articleService, viewCounter, auditLog)
	projectHandler := handler.NewProjectHandler(projectService, auditLog)
	caseStudyHandler := handler.NewCaseStudyHandler(caseStudyService, auditLog)
	reviewHandler := handler.NewReviewHandler(reviewService, auditLog)
	contactHandler := handler.NewContactHandler(contactService, cfg.IsProduction())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Convenience redirects handed out in outbound campaigns
	router.GET("/go/demos", func(c *gin.Context) {
		c.Redirect(http.StatusFound, cfg.FrontendBaseURL+"/demos")
	})
	router.GET("/go/contact", func(c *gin.Context) {
		c.Redirect(http.StatusFound, cfg.FrontendBaseURL+"/contact")
	})

	// Auth
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleLogin)

		adminUsers := auth.Group("/users")
		adminUsers.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
		{
			adminUsers.GET("", authHandler.GetUsers)
			adminUsers.PUT("/:id/role", authHandler.UpdateRole)
		}
	}

	// Public content reads run with optional auth so admin sessions see
	// unpublished documents through the same endpoints.
	public := router.Group("/api")
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		public.GET("/articles", articleHandler.List)
		public.GET("/articles/:slug", articleHandler.Get)
		public.GET("/projects", projectHandler.List)
		public.GET("/projects/:slug", projectHandler.Get)
		public.GET("/case-studies", caseStudyHandler.List)
		public.GET("/case-studies/:slug", caseStudyHandler.Get)
		public.GET("/reviews", reviewHandler.List)
		public.GET("/reviews/:id", reviewHandler.Get)
	}

	// Admin content mutations
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		admin.POST("/articles", articleHandler.Create)
		admin.PUT("/articles/:id", articleHandler.Update)
		admin.DELETE("/articles/:id", articleHandler.Delete)

		admin.POST("/projects", projectHandler.Create)
		admin.PUT("/projects/:id", projectHandler.Update)
		admin.DELETE("/projects/:id", projectHandler.Delete)

		admin.POST("/case-studies", caseStudyHandler.Create)
		admin.PUT("/case-studies/:id", caseStudyHandler.Update)
		admin.DELETE("/case-studies/:id", caseStudyHandler.Delete)

		admin.POST("/reviews", reviewHandler.Create)
		admin.PUT("/reviews/:id", reviewHandler.Update)
		admin.DELETE("/reviews/:id", reviewHandler.Delete)

		admin.GET("/contact/submissions", contactHandler.Submissions)
	}

	// Contact form, rate limited when Redis is configured
	contact := router.Group("/api/contact")
	if rateLimiter != nil {
		contact.Use(rateLimiter.Middleware())
	}
	contact.POST("/submit", contactHandler.Submit)

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
