package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/internal/services"
)

func runReportRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewReportController(orderService, logger)

	secureGroup.GET("/reports/orders", ctrl.ExportOrders)
}
