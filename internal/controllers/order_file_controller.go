package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/services"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/utils"
)

type OrderFileController struct {
	fileService services.OrderFileServiceInterface
	logger      *zap.Logger
}

func NewOrderFileController(fileService services.OrderFileServiceInterface, logger *zap.Logger) *OrderFileController {
	return &OrderFileController{fileService: fileService, logger: logger}
}

func (c *OrderFileController) GetOrderFiles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseUUIDParam(ctx.Param("orderId"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	files, err := c.fileService.ListByOrder(reqCtx, scope, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, files, "Файлы успешно получены", http.StatusOK)
}

func (c *OrderFileController) UploadOrderFile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseUUIDParam(ctx.Param("orderId"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("файл не передан: %w", apperrors.ErrBadRequest))
	}

	var d dto.UploadOrderFileDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка данных в запросе: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	file, err := c.fileService.UploadOrderFile(reqCtx, scope, orderID, fileHeader, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, file, "Файл успешно загружен", http.StatusCreated)
}

// DownloadFile отдает файл по подписанной короткоживущей ссылке.
// Маршрут публичный: авторизацией служит сам токен в query.
func (c *OrderFileController) DownloadFile(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return utils.ErrorResponse(ctx, fmt.Errorf("токен не передан: %w", apperrors.ErrBadRequest))
	}

	rc, file, err := c.fileService.OpenByToken(ctx.Request().Context(), token)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	defer rc.Close()

	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	return ctx.Stream(http.StatusOK, file.MimeType, rc)
}
