// Package api wires the gin router, middleware chain, and HTTP server for
// the onboarding service.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/onboarding/internal/auth"
	"github.com/jonesrussell/onboarding/internal/config"
	"github.com/jonesrussell/onboarding/internal/handlers"
	"github.com/jonesrussell/onboarding/internal/logger"
)

const corsMaxAgeHours = 12

// RouterDeps carries everything the router needs to register routes.
type RouterDeps struct {
	Config    *config.Config
	Logger    logger.Logger
	Tokens    *auth.TokenManager
	DB        handlers.Pinger
	Employees handlers.EmployeeStore
	Documents handlers.DocumentStore
	Publisher handlers.EventPublisher
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(ginLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Security.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))
	router.Use(metricsMiddleware())

	systemHandler := handlers.NewSystemHandler(cfg)
	healthHandler := handlers.NewHealthHandler(deps.DB, cfg.App.Version, deps.Logger)
	employeeHandler := handlers.NewEmployeeHandler(deps.Employees, deps.Publisher, deps.Logger)
	documentHandler := handlers.NewDocumentHandler(
		deps.Documents, deps.Employees, deps.Publisher, cfg.Uploads, deps.Logger)

	router.GET("/", systemHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.HEAD("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/metrics", metricsHandler())

	docs := router.Group("/", docsGuard(deps.Tokens, cfg.IsDevelopment()))
	docs.GET("/docs", serveDocs)
	docs.GET("/openapi.json", serveOpenAPI)

	if cfg.Uploads.StaticDir != "" {
		router.Static("/static", cfg.Uploads.StaticDir)
	}

	v1 := router.Group(cfg.API.V1Prefix)

	employees := v1.Group("/employees")
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.POST("/import", employeeHandler.Import)
	employees.GET("/:id", employeeHandler.GetByID)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)
	employees.POST("/:id/documents", documentHandler.Upload)
	employees.GET("/:id/documents", documentHandler.List)

	documents := v1.Group("/documents")
	documents.GET("/:docID", documentHandler.Download)
	documents.DELETE("/:docID", documentHandler.Delete)

	return router
}
