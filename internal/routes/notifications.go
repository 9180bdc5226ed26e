package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	syncpkg "worktrack-portal/internal/sync"
)

func runNotificationRouter(secureGroup *echo.Group, manager *syncpkg.Manager, logger *zap.Logger) {
	ctrl := controllers.NewNotificationController(manager, logger)

	secureGroup.GET("/notifications", ctrl.GetNotifications)
	secureGroup.POST("/notifications/read-all", ctrl.MarkAllRead)
	secureGroup.POST("/notifications/:id/open", ctrl.OpenNotification)
}
