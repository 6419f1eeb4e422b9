package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf/internal/auth"
	"bookshelf/internal/config"
	"bookshelf/internal/database"
	http_controllers "bookshelf/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf API v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if cfg.Seed.DemoBooks {
		if _, err := db.SeedDemoBooks(); err != nil {
			log.Fatalf("Failed to seed demo books: %v", err)
		}
	}

	if cfg.Auth.JWTSecret == "" {
		log.Printf("Generated JWT secret (set AUTH_JWT_SECRET to keep tokens valid across restarts)")
	}

	issuer, err := auth.NewTokenIssuer(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}

	authService := auth.NewService(db, cfg.Auth)
	authController := auth.NewAuthController(authService, issuer)
	authMiddleware := auth.NewMiddleware(authService, issuer)

	userCount, _ := db.GetUserCount()
	if userCount == 0 {
		log.Printf("No users found. Register via POST /api/auth/register or the create-user command.")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		AuthController: authController,
		AuthMiddleware: authMiddleware,
		Version:        version,
	})

	Serve(router, cfg)
}
