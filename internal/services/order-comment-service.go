package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/repositories"
	apperrors "worktrack-portal/pkg/errors"
)

type OrderCommentServiceInterface interface {
	CreateOrderComment(ctx context.Context, scope repositories.Scope, orderID uuid.UUID, d dto.CreateOrderCommentDTO) (*entities.OrderComment, error)
	ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]entities.OrderComment, error)
}

type OrderCommentService struct {
	commentRepository repositories.OrderCommentRepositoryInterface
	orderService      OrderServiceInterface
	logger            *zap.Logger
}

func NewOrderCommentService(
	commentRepository repositories.OrderCommentRepositoryInterface,
	orderService OrderServiceInterface,
	logger *zap.Logger,
) OrderCommentServiceInterface {
	return &OrderCommentService{
		commentRepository: commentRepository,
		orderService:      orderService,
		logger:            logger,
	}
}

func (s *OrderCommentService) CreateOrderComment(ctx context.Context, scope repositories.Scope, orderID uuid.UUID, d dto.CreateOrderCommentDTO) (*entities.OrderComment, error) {
	// Видимость заказа проверяет сервис заказов: клиент не может
	// комментировать чужой заказ.
	if _, err := s.orderService.FindOrder(ctx, scope, orderID); err != nil {
		return nil, err
	}

	// Внутренние комментарии пишет только staff/admin.
	if d.IsInternal && !scope.StaffTier() {
		return nil, apperrors.ErrForbidden
	}

	comment, err := s.commentRepository.CreateOrderComment(ctx, orderID, scope.ViewerID, d)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Добавлен комментарий к заказу",
		zap.String("order_id", orderID.String()),
		zap.String("comment_id", comment.ID.String()),
		zap.Bool("is_internal", comment.IsInternal),
	)
	return comment, nil
}

func (s *OrderCommentService) ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]entities.OrderComment, error) {
	if _, err := s.orderService.FindOrder(ctx, scope, orderID); err != nil {
		return nil, err
	}
	return s.commentRepository.ListByOrder(ctx, scope, orderID)
}
