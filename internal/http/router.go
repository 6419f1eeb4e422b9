package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Tag every request with a correlation ID
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Database)

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Bookshelf API.",
		})
	})
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	cfg.AuthController.RegisterRoutes(router)

	// Everything under /api except auth requires a bearer token
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/auth/me", cfg.AuthController.Me)

	protected.POST("/books", booksController.CreateBook)
	protected.GET("/books", booksController.ListBooks)
	protected.GET("/books/stats", booksController.GetBookStats)
	protected.GET("/books/:id", booksController.GetBook)
	protected.PUT("/books/:id", booksController.UpdateBook)
	protected.DELETE("/books/:id", booksController.DeleteBook)

	return router
}
