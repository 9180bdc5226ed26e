package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	syncpkg "worktrack-portal/internal/sync"
	"worktrack-portal/pkg/utils"
)

// NotificationController отдает инбокс сессии. Уведомления живут
// только в памяти: никакого репозитория за этим контроллером нет.
type NotificationController struct {
	manager *syncpkg.Manager
	logger  *zap.Logger
}

func NewNotificationController(manager *syncpkg.Manager, logger *zap.Logger) *NotificationController {
	return &NotificationController{manager: manager, logger: logger}
}

func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	session, err := c.sessionFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, map[string]interface{}{
		"notifications": session.Notifications(),
		"unread_count":  session.UnreadCount(),
	}, "Уведомления получены", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	session, err := c.sessionFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	session.MarkAllRead()
	return utils.SuccessResponse(ctx, struct{}{}, "Все уведомления прочитаны", http.StatusOK)
}

// OpenNotification помечает уведомление прочитанным и возвращает
// связанный заказ; интент навигации уходит во вкладки через websocket.
func (c *NotificationController) OpenNotification(ctx echo.Context) error {
	session, err := c.sessionFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	id, err := parseUUIDParam(ctx.Param("id"), "ID уведомления")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := session.Open(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if order == nil {
		return utils.SuccessResponse(ctx, struct{}{}, "Уведомление прочитано", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, order, "Уведомление открыто", http.StatusOK)
}

func (c *NotificationController) sessionFromCtx(ctx echo.Context) (*syncpkg.Session, error) {
	scope, err := scopeFromCtx(ctx.Request().Context())
	if err != nil {
		return nil, err
	}
	return c.manager.SessionFor(scope.ViewerID)
}
