package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/internal/services"
)

func runOrderRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewOrderController(orderService, logger)

	secureGroup.GET("/orders", ctrl.GetOrders)
	secureGroup.GET("/orders/:id", ctrl.FindOrder)
	secureGroup.POST("/orders", ctrl.CreateOrder)
	secureGroup.PUT("/orders/:id", ctrl.UpdateOrder)
}
