package routes

import (
	"amora_backend/internal/handlers"
	"amora_backend/internal/logger"
	"amora_backend/internal/middleware"
	"amora_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api/v1")

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		appHandlers.UserHandler.RegisterRoutes(authed)
		appHandlers.SwipeHandler.RegisterRoutes(authed)
		appHandlers.MatchHandler.RegisterRoutes(authed)
		appHandlers.ChatHandler.RegisterRoutes(authed)
		appHandlers.VenueHandler.RegisterRoutes(authed)
		appHandlers.DiscoveryHandler.RegisterRoutes(authed)
	}

	appHandlers.AuthHandler.RegisterRoutes(api, authed)

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
