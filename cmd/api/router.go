package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(c.Log),
		middleware.RequestID(),
		middleware.Logger(c.Log),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	api := router.Group("/api")
	{
		// Anonymous
		api.GET("/health", healthCheckHandler(c))
		api.GET("/home", c.HomeHandler.Get)
		setupUserRoutes(api, c)

		// Everything else needs a bearer token
		secured := api.Group("", middleware.AuthMiddleware(c.JWTManager))
		setupAuthorRoutes(secured, c)
		setupBookRoutes(secured, c)
	}

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	{
		users.POST("", c.UserHandler.Login)
		users.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := middleware.RequireRole(model.RoleAdministrator)

	author := api.Group("/authors")
	{
		author.GET("", c.AuthorHandler.GetAll)
		author.GET("/:id", c.AuthorHandler.GetByID)
		author.POST("", admin, c.AuthorHandler.Create)
		author.PUT("/:id", admin, c.AuthorHandler.Update)
		author.DELETE("/:id", admin, c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := middleware.RequireRole(model.RoleAdministrator)

	book := api.Group("/books")
	{
		book.GET("", c.BookHandler.GetAll)
		book.GET("/:id", c.BookHandler.GetByID)
		book.POST("", admin, c.BookHandler.Create)
		book.PUT("/:id", admin, c.BookHandler.Update)
		book.DELETE("/:id", admin, c.BookHandler.Delete)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				appCtx.Log.Error("database health check failed", err, nil)
				dbStatus = "error"
				health["status"] = "degraded"
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		// Check cache
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disabled"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				appCtx.Log.Warn("cache ping failed", map[string]interface{}{"error": err.Error()})
				cacheStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
