package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, registry *prometheus.Registry) {
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	agent := router.Group("/agent")
	agent.POST("/run", handler.AgentRun) // POST /agent/run

	webchat := router.Group("/webchat")
	webchat.POST("/message", handler.WebchatMessage)      // POST /webchat/message
	webchat.GET("/categories", handler.WebchatCategories) // GET /webchat/categories
	webchat.POST("/media/analyze", handler.MediaAnalyze)  // POST /webchat/media/analyze
}
