package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/internal/services"
)

func runOrderCommentRouter(secureGroup *echo.Group, commentService services.OrderCommentServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewOrderCommentController(commentService, logger)

	secureGroup.GET("/orders/:orderId/comments", ctrl.GetOrderComments)
	secureGroup.POST("/orders/:orderId/comments", ctrl.CreateOrderComment)
}
