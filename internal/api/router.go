package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskvault/todo-api/docs"
	"github.com/taskvault/todo-api/internal/api/handler"
	"github.com/taskvault/todo-api/internal/api/middleware"
	"github.com/taskvault/todo-api/internal/core/ports"
	"github.com/taskvault/todo-api/internal/core/service"
	mongodb "github.com/taskvault/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskvault/todo-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is optional: pass nil to run without the token cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)

	var cache ports.TokenCache
	if rdb != nil {
		cache = redisdb.NewTokenCache(rdb)
	}

	codec := service.NewJWTCodec(jwtSecret)
	sessions := service.NewSessionService(userRepo, codec, cache, log)
	todos := service.NewTodoService(todoRepo, log)

	userHandler := handler.NewUserHandler(sessions)
	todoHandler := handler.NewTodoHandler(todos)
	auth := middleware.Auth(codec, userRepo, cache)

	// --- User routes ---
	e.POST("/users", userHandler.Register)
	e.POST("/users/login", userHandler.Login)
	e.GET("/users/me", userHandler.Me, auth)
	e.DELETE("/users/me/token", userHandler.Logout, auth)

	// --- Todo routes (all owner-scoped) ---
	e.POST("/todos", todoHandler.Create, auth)
	e.GET("/todos", todoHandler.List, auth)
	e.GET("/todos/:id", todoHandler.Get, auth)
	e.PATCH("/todos/:id", todoHandler.Update, auth)
	e.DELETE("/todos/:id", todoHandler.Delete, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
