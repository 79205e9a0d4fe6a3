package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/internal/cache"
	"github.com/mentorwise/mentorwise-api/internal/handlers"
	"github.com/mentorwise/mentorwise-api/internal/middleware"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/internal/services"
	"github.com/mentorwise/mentorwise-api/pkg/googleauth"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/mailer"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
	"github.com/mentorwise/mentorwise-api/pkg/mongodb"
	"github.com/mentorwise/mentorwise-api/pkg/profiling"
	"github.com/mentorwise/mentorwise-api/pkg/tracing"
)

// registerAuthRoutes registers the public authentication routes
func registerAuthRoutes(
	group *gin.RouterGroup,
	authRateLimiter, forgotRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
) {
	auth := group.Group("/auth")
	auth.POST("/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), authHandler.Signup)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), authHandler.Login)
	auth.POST("/google/verify", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), authHandler.GoogleVerify)
	auth.POST("/google/complete", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), authHandler.GoogleComplete)
	auth.POST("/forgot-password", forgotRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), authHandler.ForgotPassword)
	auth.POST("/reset-password/:token", forgotRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), authHandler.ResetPassword)
}

// registerProtectedRoutes registers the routes behind the session gate
func registerProtectedRoutes(
	group *gin.RouterGroup,
	generalRateLimiter *middleware.RateLimiter,
	sessionAuth gin.HandlerFunc,
	mentorHandler *handlers.MentorHandler,
	profileHandler *handlers.ProfileHandler,
	connectionHandler *handlers.ConnectionHandler,
) {
	user := group.Group("/user", generalRateLimiter.Middleware(), sessionAuth)
	user.GET("/mentors/search", mentorHandler.Search)

	profile := group.Group("/profile", generalRateLimiter.Middleware(), sessionAuth)
	profile.GET("/me", profileHandler.Me)
	profile.PUT("/update", middleware.BodySizeLimitMiddleware(64*1024), profileHandler.Update)

	connections := group.Group("/connections", generalRateLimiter.Middleware(), sessionAuth)
	connections.POST("/request", middleware.BodySizeLimitMiddleware(16*1024), connectionHandler.Send)
	connections.GET("/requests/received", connectionHandler.Received)
	connections.GET("/requests/sent", connectionHandler.Sent)
	connections.PATCH("/requests/:requestId", middleware.BodySizeLimitMiddleware(16*1024), connectionHandler.Resolve)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorWise API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Connect to MongoDB
	mongoClient, err := mongodb.New(context.Background(), cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := mongoClient.Close(ctx); closeErr != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(closeErr))
		}
	}()

	// The unique indexes are correctness guards (duplicate emails, duplicate
	// connection requests), so they must exist before traffic is served.
	// cmd/indexes can also be run standalone for a fresh deployment.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mongoClient.EnsureIndexes(ctx); err != nil {
			cancel()
			logger.Fatal("Failed to ensure MongoDB indexes", zap.Error(err))
		}
		cancel()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoClient.Users())
	requestRepo := repository.NewConnectionRequestRepository(mongoClient.ConnectionRequests())

	// Search cache
	var searchCache *cache.SearchCache
	if cfg.Cache.DisableSearchCache {
		logger.Warn("Mentor search cache is DISABLED - querying MongoDB on every search")
	} else {
		searchCache = cache.NewSearchCache(cfg.Cache.SearchTTLSeconds)
	}

	// External integrations
	googleVerifier := googleauth.NewIDTokenVerifier(cfg.Google.ClientID)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	googleAuthService := services.NewGoogleAuthService(userRepo, googleVerifier, cfg)
	resetService := services.NewPasswordResetService(userRepo, smtpMailer, cfg)
	profileService := services.NewProfileService(userRepo, searchCache)
	mentorService := services.NewMentorService(userRepo, searchCache)
	connectionService := services.NewConnectionService(requestRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, googleAuthService, resetService)
	profileHandler := handlers.NewProfileHandler(profileService)
	mentorHandler := handlers.NewMentorHandler(mentorService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	healthHandler := handlers.NewHealthHandler(mongoClient.Ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(5, 10)       // 5 req/sec, burst of 10 (credential stuffing)
	forgotRateLimiter := middleware.NewRateLimiter(0.0333, 3) // 2 req/min, burst of 3 (email abuse)

	// API routes
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	registerAuthRoutes(api, authRateLimiter, forgotRateLimiter, authHandler)

	sessionAuth := middleware.SessionAuthMiddleware(authService.TokenManager())
	registerProtectedRoutes(api, generalRateLimiter, sessionAuth, mentorHandler, profileHandler, connectionHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
