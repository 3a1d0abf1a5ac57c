package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"delish/handlers"
	"delish/middleware"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Stores  *handlers.StoreHandler
	Search  *handlers.SearchHandler
	Reviews *handlers.ReviewHandler
	Uploads *handlers.UploadHandler
}

func SetupRouter(h Handlers, jwtSecret string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required)
	router.POST("/api/register", h.Auth.Register)
	router.POST("/api/login", h.Auth.Login)
	router.POST("/api/account/forgot", h.Auth.Forgot)
	router.GET("/api/account/reset/:token", h.Auth.ShowReset)
	router.POST("/api/account/reset/:token", h.Auth.Reset)

	router.GET("/api/stores", h.Stores.List)
	router.GET("/api/stores/page/:page", h.Stores.List)
	router.GET("/api/store/:slug", h.Stores.GetBySlug)
	router.GET("/api/tags", h.Stores.Tags)
	router.GET("/api/tags/:tag", h.Stores.Tags)
	router.GET("/api/top", h.Stores.Top)
	router.GET("/api/search", h.Search.Search)
	router.GET("/api/stores/near", h.Search.Near)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))

	protected.POST("/stores", h.Stores.Create)
	protected.PUT("/stores/:id", h.Stores.Update)
	protected.POST("/stores/:id/heart", h.Stores.ToggleHeart)
	protected.GET("/hearts", h.Stores.Hearts)
	protected.POST("/stores/:id/reviews", h.Reviews.Create)
	protected.POST("/upload", h.Uploads.Upload)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
