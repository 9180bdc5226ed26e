package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/repositories"
	syncpkg "worktrack-portal/internal/sync"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/service"
	"worktrack-portal/pkg/utils"
)

// SessionController управляет жизненным циклом сессии синхронизации:
// установление при входе, состояние, завершение при выходе.
type SessionController struct {
	manager     *syncpkg.Manager
	jwtService  service.JWTService
	profileRepo repositories.ProfileRepositoryInterface
	logger      *zap.Logger
}

func NewSessionController(
	manager *syncpkg.Manager,
	jwtService service.JWTService,
	profileRepo repositories.ProfileRepositoryInterface,
	logger *zap.Logger,
) *SessionController {
	return &SessionController{
		manager:     manager,
		jwtService:  jwtService,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// StartSession устанавливает сессию по access-токену зрителя:
// снимок, сброс состояния дедупликации, запуск фида.
func (c *SessionController) StartSession(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var d dto.StartSessionDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("ошибка данных в запросе: %w", apperrors.ErrBadRequest))
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	claims, err := c.jwtService.ValidateToken(d.Token)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrInvalidToken)
	}

	viewerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrInvalidToken)
	}
	viewer, err := c.profileRepo.FindProfile(reqCtx, viewerID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	session, err := c.manager.StartSession(reqCtx, viewer)
	if err != nil {
		c.logger.Error("Не удалось установить сессию синхронизации", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, c.stateDTO(session), "Сессия установлена", http.StatusCreated)
}

// GetSessionState - текущее состояние сессии зрителя.
func (c *SessionController) GetSessionState(ctx echo.Context) error {
	session, err := c.sessionFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, c.stateDTO(session), "Состояние сессии", http.StatusOK)
}

// StopSession завершает сессию. Инбокс и состояние дедупликации
// при этом исчезают безвозвратно.
func (c *SessionController) StopSession(ctx echo.Context) error {
	scope, err := scopeFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.manager.SessionFor(scope.ViewerID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	c.manager.StopSession()
	return utils.SuccessResponse(ctx, struct{}{}, "Сессия завершена", http.StatusOK)
}

// GetOrders - локальная коллекция заказов сессии, свежие сверху.
func (c *SessionController) GetOrders(ctx echo.Context) error {
	session, err := c.sessionFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, session.Orders(), "Заказы сессии", http.StatusOK)
}

func (c *SessionController) sessionFromCtx(ctx echo.Context) (*syncpkg.Session, error) {
	scope, err := scopeFromCtx(ctx.Request().Context())
	if err != nil {
		return nil, err
	}
	return c.manager.SessionFor(scope.ViewerID)
}

func (c *SessionController) stateDTO(session *syncpkg.Session) dto.SessionStateDTO {
	return dto.SessionStateDTO{
		ViewerID:    session.Viewer().ID.String(),
		ViewerRole:  session.Viewer().Role,
		UnreadCount: session.UnreadCount(),
		OrderCount:  len(session.Orders()),
	}
}
