package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/controllers"
	"worktrack-portal/internal/services"
)

func runOrderFileRouter(api *echo.Group, secureGroup *echo.Group, fileService services.OrderFileServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewOrderFileController(fileService, logger)

	secureGroup.GET("/orders/:orderId/files", ctrl.GetOrderFiles)
	secureGroup.POST("/orders/:orderId/files", ctrl.UploadOrderFile)

	// Скачивание по подписанной ссылке: авторизация - сам токен в query.
	api.GET("/files/download", ctrl.DownloadFile)
}
