package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/shared/middleware"
	"dashboard-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Language(),
		middleware.ClientIP(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPostRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// The {uid} routes answer their own 401 body, so claims are optional here.
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(c.JWTManager))
	{
		public.GET("/posts/:uid/count", c.PostHandler.CountPosts)
		public.POST("/posts/:uid", c.PostHandler.CreatePost)
		public.GET("/post/slug", c.PostHandler.PreviewSlug)
	}

	owned := v1.Group("/post")
	owned.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		owned.GET("/:id", c.PostHandler.GetPost)
		owned.PUT("/:id", c.PostHandler.UpdatePost)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/user/:uid", middleware.OptionalAuth(c.JWTManager), c.UserHandler.GetUser)
	v1.GET("/languages", c.UserHandler.ListLanguages)

	me := v1.Group("/users/me")
	me.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		me.PUT("/password", c.UserHandler.ChangePassword)
		me.PUT("/language", c.UserHandler.UpdateLanguage)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
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
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
