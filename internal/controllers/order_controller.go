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

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var filter dto.ListOrdersDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка параметров запроса: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&filter); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	orders, total, err := c.orderService.ListOrders(reqCtx, scope, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, map[string]interface{}{
		"orders": orders,
		"total":  total,
	}, "Заказы успешно получены", http.StatusOK)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	id, err := parseUUIDParam(ctx.Param("id"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.FindOrder(reqCtx, scope, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно найден", http.StatusOK)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var d dto.CreateOrderDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка данных в запросе: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.CreateOrder(reqCtx, scope, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно создан", http.StatusCreated)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	scope, err := scopeFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	id, err := parseUUIDParam(ctx.Param("id"), "ID заказа")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var d dto.UpdateOrderDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка данных в запросе: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.UpdateOrder(reqCtx, scope, id, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно обновлен", http.StatusOK)
}
