package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/internal/repositories"
	syncpkg "worktrack-portal/internal/sync"
	"worktrack-portal/pkg/service"
)

func runSessionRouter(
	api *echo.Group,
	secureGroup *echo.Group,
	manager *syncpkg.Manager,
	jwtSvc service.JWTService,
	profileRepo repositories.ProfileRepositoryInterface,
	logger *zap.Logger,
) {
	ctrl := controllers.NewSessionController(manager, jwtSvc, profileRepo, logger)

	// Установление сессии - публичный маршрут: токен передается в теле.
	api.POST("/session", ctrl.StartSession)

	secureGroup.GET("/session", ctrl.GetSessionState)
	secureGroup.DELETE("/session", ctrl.StopSession)
	secureGroup.GET("/session/orders", ctrl.GetOrders)
}
