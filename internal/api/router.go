package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/chronoworks/timetrack-system/internal/api/handler"
	"github.com/chronoworks/timetrack-system/internal/api/middleware"
	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/service"
	mongodb "github.com/chronoworks/timetrack-system/internal/infrastructure/db/mongo"
	redisdb "github.com/chronoworks/timetrack-system/internal/infrastructure/db/redis"
	"github.com/chronoworks/timetrack-system/internal/pkg/config"
	"github.com/chronoworks/timetrack-system/pkg/logger"
)

// Route policies. Ownership is checked against the :userId path
// parameter; Bypass lists the roles that may act on someone else's
// resources, Allowed gates the operation itself.
var (
	profileBypass   = []string{domain.RoleSuperAdmin, domain.RoleUserManager}
	timeTrackBypass = []string{domain.RoleSuperAdmin}

	managersOnly = []string{domain.RoleUserManager, domain.RoleSuperAdmin}
	selfTrackers = []string{domain.RoleUser, domain.RoleSuperAdmin}
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem: "timetrack",
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	trackRepo := mongodb.NewTimeTrackRepository(db)
	reportCache := redisdb.NewReportCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	userService := service.NewUserService(userRepo, logger.Get())
	trackService := service.NewTimeTrackService(trackRepo, reportCache, logger.Get())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	trackHandler := handler.NewTimeTrackHandler(trackService)

	authenticate := middleware.Authenticate(authService)

	// --- Health probes and operational surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	if cfg.Env != "production" {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(rdb, cfg.LoginRatePerMinute))

	// --- Account directory ---
	users := e.Group("/v1/users", authenticate)
	users.POST("", userHandler.Create,
		middleware.Authorize(domain.Policy{Allowed: managersOnly}))
	users.GET("", userHandler.List,
		middleware.Authorize(domain.Policy{Allowed: managersOnly}))
	users.GET("/search", userHandler.Search,
		middleware.Authorize(domain.Policy{Allowed: managersOnly}))
	users.GET("/profile", userHandler.Profile,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole}))
	users.GET("/:userId", userHandler.Get,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: profileBypass}))
	users.PATCH("/:userId", userHandler.Update,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: profileBypass}))
	users.DELETE("/:userId", userHandler.Delete,
		middleware.Authorize(domain.Policy{Allowed: managersOnly, Bypass: profileBypass}))

	// --- Per-user work ledger ---
	tracks := e.Group("/v1/users/:userId/time-tracks", authenticate)
	tracks.POST("", trackHandler.Create,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))
	tracks.GET("", trackHandler.List,
		middleware.Authorize(domain.Policy{Allowed: selfTrackers, Bypass: timeTrackBypass}))
	tracks.GET("/search", trackHandler.Search,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))
	tracks.GET("/filter-by-date", trackHandler.FilterByDate,
		middleware.Authorize(domain.Policy{Allowed: selfTrackers, Bypass: timeTrackBypass}))
	tracks.GET("/generate-report", trackHandler.Report,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))
	tracks.GET("/:trackId", trackHandler.Get,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))
	tracks.PATCH("/:trackId", trackHandler.Update,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))
	tracks.DELETE("/:trackId", trackHandler.Delete,
		middleware.Authorize(domain.Policy{Allowed: domain.AnyRole, Bypass: timeTrackBypass}))

	return e
}
