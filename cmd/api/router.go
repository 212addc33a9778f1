package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heritage-site/internal/shared/middleware"
	"heritage-site/pkg/container"
)

const contentPrefix = "/api/content"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Preview(c.Tokens),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupContentRoutes(api, c)
		setupFormRoutes(api, c)
		setupPreviewRoutes(api, c)
		setupRevalidateRoutes(api, c)
	}

	setupSEORoutes(router, c)

	return router
}

// ========================================
// CONTENT ROUTES
// ========================================
func setupContentRoutes(api *gin.RouterGroup, c *container.Container) {
	h := c.ContentHandler

	content := api.Group("/content", middleware.PageCache(c.Cache, contentPrefix))
	{
		content.GET("/settings", h.GetSettings)
		content.GET("/partners", h.ListPartners)
		content.GET("/team", h.ListTeamMembers)

		content.GET("/digital-museum", h.ListArtefacts)
		content.GET("/digital-museum/:slug", h.GetArtefact)

		content.GET("/news", h.ListNewsPosts)
		content.GET("/news/:slug", h.GetNewsPost)

		content.GET("/events", h.ListEvents)
		content.GET("/events/:slug", h.GetEvent)

		content.GET("/timeline", h.ListTimeline)

		content.GET("/research", h.ListResearch)
		content.GET("/research/:slug", h.GetResearch)
	}

	// search results are never cached
	api.GET("/search", h.Search)
}

// ========================================
// FORM ROUTES
// ========================================
func setupFormRoutes(api *gin.RouterGroup, c *container.Container) {
	h := c.FormsHandler
	limited := c.RateLimiter.Middleware()

	api.POST("/contact", limited, h.SubmitContact)
	api.POST("/newsletter", limited, h.SubscribeNewsletter)

	api.GET("/newsletter/unsubscribe", h.UnsubscribePage)
	api.POST("/newsletter/unsubscribe", limited, h.Unsubscribe)
}

// ========================================
// PREVIEW ROUTES
// ========================================
func setupPreviewRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/preview", c.PreviewHandler.Enter)
	api.GET("/exit-preview", c.PreviewHandler.Exit)
}

// ========================================
// REVALIDATE ROUTES
// ========================================
func setupRevalidateRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/revalidate", c.RevalidateHandler.RevalidateByType)
	api.GET("/revalidate", c.RevalidateHandler.RevalidateByPath)
}

// ========================================
// SEO ROUTES
// ========================================
func setupSEORoutes(router *gin.Engine, c *container.Container) {
	router.GET("/sitemap.xml", c.SEOHandler.Sitemap)
	router.GET("/robots.txt", c.SEOHandler.Robots)
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
		}

		// Check content store
		contentStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := appCtx.PublicClient.Ping(ctx); err != nil {
			contentStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"content": contentStatus,
			"redis":   redisStatus,
		}

		statusCode := http.StatusOK
		if contentStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
