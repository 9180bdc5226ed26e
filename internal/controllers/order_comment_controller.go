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

type OrderCommentController struct {
	commentService services.OrderCommentServiceInterface
	logger         *zap.Logger
}

func NewOrderCommentController(commentService services.OrderCommentServiceInterface, logger *zap.Logger) *OrderCommentController {
	return &OrderCommentController{commentService: commentService, logger: logger}
}

func (c *OrderCommentController) GetOrderComments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseUUIDParam(ctx.Param("orderId"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	comments, err := c.commentService.ListByOrder(reqCtx, scope, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, comments, "Комментарии успешно получены", http.StatusOK)
}

func (c *OrderCommentController) CreateOrderComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseUUIDParam(ctx.Param("orderId"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var d dto.CreateOrderCommentDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка данных в запросе: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	comment, err := c.commentService.CreateOrderComment(reqCtx, scope, orderID, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, comment, "Комментарий успешно создан", http.StatusCreated)
}
