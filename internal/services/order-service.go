package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/repositories"
	apperrors "worktrack-portal/pkg/errors"
)

type OrderServiceInterface interface {
	ListOrders(ctx context.Context, scope repositories.Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, scope repositories.Scope, id uuid.UUID) (*entities.Order, error)
	CreateOrder(ctx context.Context, scope repositories.Scope, d dto.CreateOrderDTO) (*entities.Order, error)
	UpdateOrder(ctx context.Context, scope repositories.Scope, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error)
}

type OrderService struct {
	orderRepository repositories.OrderRepositoryInterface
	logger          *zap.Logger
}

func NewOrderService(orderRepository repositories.OrderRepositoryInterface, logger *zap.Logger) OrderServiceInterface {
	return &OrderService{
		orderRepository: orderRepository,
		logger:          logger,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, scope repositories.Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error) {
	if filter.Limit == 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.orderRepository.ListOrders(ctx, scope, filter)
}

// FindOrder отдает заказ только если зритель имеет на него право:
// чужой заказ для клиента неотличим от несуществующего.
func (s *OrderService) FindOrder(ctx context.Context, scope repositories.Scope, id uuid.UUID) (*entities.Order, error) {
	order, err := s.orderRepository.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.StaffTier() && !order.OwnedBy(scope.ViewerID) {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, scope repositories.Scope, d dto.CreateOrderDTO) (*entities.Order, error) {
	if d.BudgetMin.Valid && d.BudgetMax.Valid && d.BudgetMin.Float64 > d.BudgetMax.Float64 {
		return nil, apperrors.NewInvalidInputError("минимальный бюджет не может превышать максимальный")
	}

	clientID := scope.ViewerID
	if d.ClientID.Valid && d.ClientID.String != "" {
		// Создать заказ от имени клиента может только staff/admin.
		if !scope.StaffTier() {
			return nil, apperrors.ErrForbidden
		}
		parsed, err := uuid.Parse(d.ClientID.String)
		if err != nil {
			return nil, fmt.Errorf("неверный ID клиента: %w", apperrors.ErrBadRequest)
		}
		clientID = parsed
	}

	order, err := s.orderRepository.CreateOrder(ctx, clientID, scope.ViewerID, d)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создан заказ",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
		zap.String("created_by", scope.ViewerID.String()),
	)
	return order, nil
}

// UpdateOrder: статусом и исполнителем управляет только staff/admin.
// Клиент может править описательные поля собственного заказа.
func (s *OrderService) UpdateOrder(ctx context.Context, scope repositories.Scope, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error) {
	if _, err := s.FindOrder(ctx, scope, id); err != nil {
		return nil, err
	}

	if !scope.StaffTier() && (d.Status.Valid || d.AssignedTo.Valid) {
		return nil, apperrors.ErrForbidden
	}
	if d.BudgetMin.Valid && d.BudgetMax.Valid && d.BudgetMin.Float64 > d.BudgetMax.Float64 {
		return nil, apperrors.NewInvalidInputError("минимальный бюджет не может превышать максимальный")
	}

	order, err := s.orderRepository.UpdateOrder(ctx, id, d)
	if err != nil {
		return nil, err
	}

	if d.Status.Valid {
		s.logger.Info("Изменен статус заказа",
			zap.String("order_id", order.ID.String()),
			zap.String("status", order.Status),
			zap.String("updated_by", scope.ViewerID.String()),
		)
	}
	return order, nil
}
