package http

import (
	"bookshelf/internal/auth"
	"bookshelf/internal/database"
)

// RouterConfig holds all dependencies for building the HTTP router.
type RouterConfig struct {
	Database       *database.Database
	AuthController *auth.AuthController
	AuthMiddleware *auth.Middleware
	Version        string
}
