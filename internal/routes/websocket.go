package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/pkg/service"
	"worktrack-portal/pkg/websocket"
)

func runWebSocketRouter(api *echo.Group, hub *websocket.Hub, jwtSvc service.JWTService, logger *zap.Logger) {
	ctrl := controllers.NewWebSocketController(hub, jwtSvc, logger)

	// Токен в query: браузерный WebSocket не ставит заголовки.
	api.GET("/ws", ctrl.ServeWs)
}
