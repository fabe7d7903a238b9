package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskboard/task-system/docs"
	"github.com/taskboard/task-system/internal/api/handler"
	"github.com/taskboard/task-system/internal/api/middleware"
	"github.com/taskboard/task-system/internal/core/service"
	"github.com/taskboard/task-system/internal/infrastructure/config"
	mongodb "github.com/taskboard/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/task-system/internal/infrastructure/db/redis"
	"github.com/taskboard/task-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
	}))
	e.Use(echoprometheus.NewMiddleware("taskboard"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, 10, time.Minute)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminEmails(), log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService, limiter)
	taskHandler := handler.NewTaskHandler(taskService)

	authMW := middleware.Auth(cfg.JWTSecret)
	adminMW := middleware.AdminOnly()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMW)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMW, adminMW)
	admin.GET("/employees", authHandler.ListEmployees)
	admin.GET("/tasks", taskHandler.ListAll)
	admin.POST("/tasks", taskHandler.Create)

	// --- Employee routes ---
	tasks := e.Group("/api/tasks", authMW)
	tasks.GET("", taskHandler.ListOwn)
	tasks.PUT("/:taskId", taskHandler.Update)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	health := handlers.NewHealthHandler(db, rdb)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	return e
}
