package http

import (
	"net/http"

	"github.com/driftpoint/beaconhub/internal/api/http/handler"
	"github.com/driftpoint/beaconhub/internal/api/http/middleware"
	"github.com/driftpoint/beaconhub/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoute(engine *gin.Engine, srvs *Services) {
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.Metrics())

	healthHandler := handler.NewHealthHandler()
	engine.GET("/health", healthHandler.Check)

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		telemetry.Registry, promhttp.HandlerOpts{})))

	authHandler := handler.NewAuthHandler(srvs.Auth)
	clientsHandler := handler.NewClientsHandler(srvs.Registry)
	killHandler := handler.NewKillHandler(srvs.Directive)
	settingsHandler := handler.NewSettingsHandler(srvs.Settings)

	operator := middleware.JWTAuth(srvs.JWTSecret)

	api := engine.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		// Clients are unauthenticated polling processes.
		api.POST("/heartbeat", clientsHandler.Heartbeat)
		api.GET("/kill", killHandler.Get)
		api.GET("/config", settingsHandler.Get)

		api.GET("/clients", operator, clientsHandler.List)
		api.POST("/kill", operator, killHandler.Set)
		api.POST("/kill/clear", operator, killHandler.Clear)
		api.POST("/config", operator, settingsHandler.Update)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})
}
