package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	internalhttp "github.com/driftpoint/beaconhub/internal/api/http"
	"github.com/driftpoint/beaconhub/internal/auth"
	"github.com/driftpoint/beaconhub/internal/directive"
	"github.com/driftpoint/beaconhub/internal/registry"
	"github.com/driftpoint/beaconhub/internal/settings"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var AppVersion string

func main() {
	InitConfig()

	slog.Info("BeaconHub Server", "version", AppVersion)

	authService := auth.NewService(auth.Config{
		AdminUsername:     config.Auth.AdminUsername,
		AdminPassword:     config.Auth.AdminPassword,
		AdminPasswordHash: config.Auth.AdminPasswordHash,
		JWT:               auth.JWTConfig{Secret: config.Auth.Secret},
	})

	settingsStore := settings.NewStore(config.Settings.Path)
	if err := settingsStore.Load(); err != nil {
		// A broken snapshot is not fatal; the compiled-in defaults serve.
		slog.Error("Failed to load settings snapshot", "path", config.Settings.Path, "error", err)
	}

	services := &internalhttp.Services{
		Auth:      authService,
		JWTSecret: config.Auth.Secret,
		Registry:  registry.NewRegistry(),
		Directive: directive.NewStore(),
		Settings:  settingsStore,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("Panic in request handler", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}))
	internalhttp.SetupRoute(engine, services)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Http.Port),
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		slog.Error("Server error", "error", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
