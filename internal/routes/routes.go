package routes

import (
	"net/http"
	"time"

	"jobtrack_backend/internal/handlers"
	"jobtrack_backend/internal/logger"
	"jobtrack_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP and WebSocket routes.
func RegisterRoutes(
	router *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Server is running",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
	}

	// Token verification happens inside ServeWS, before the upgrade, so the
	// handshake can carry the token as a query parameter.
	router.GET("/ws", wsHandler.ServeWS)
	logger.Info("WebSocket route /ws registered")
}
