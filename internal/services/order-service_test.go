package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/constants"
	apperrors "worktrack-portal/pkg/errors"
)

type stubOrderRepo struct {
	orders  map[uuid.UUID]entities.Order
	created *dto.CreateOrderDTO
	updated *dto.UpdateOrderDTO
}

func (r *stubOrderRepo) FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *stubOrderRepo) ListOrders(ctx context.Context, scope repositories.Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error) {
	return nil, 0, nil
}

func (r *stubOrderRepo) ListUpdatedSince(ctx context.Context, scope repositories.Scope, since time.Time, limit uint64) ([]entities.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) CreateOrder(ctx context.Context, clientID, createdBy uuid.UUID, d dto.CreateOrderDTO) (*entities.Order, error) {
	r.created = &d
	return &entities.Order{
		ID:       uuid.New(),
		Code:     "WT-100",
		Title:    d.Title,
		Status:   constants.StatusNotStarted,
		ClientID: uuid.NullUUID{UUID: clientID, Valid: true},
	}, nil
}

func (r *stubOrderRepo) UpdateOrder(ctx context.Context, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error) {
	r.updated = &d
	o := r.orders[id]
	if d.Status.Valid {
		o.Status = d.Status.String
	}
	return &o, nil
}

func clientScope() repositories.Scope {
	return repositories.Scope{ViewerID: uuid.New(), Role: constants.RoleClient}
}

func staffScope() repositories.Scope {
	return repositories.Scope{ViewerID: uuid.New(), Role: constants.RoleStaff}
}

func TestFindOrderHidesForeignOrderFromClient(t *testing.T) {
	scope := clientScope()
	foreign := entities.Order{ID: uuid.New(), ClientID: uuid.NullUUID{UUID: uuid.New(), Valid: true}}
	repo := &stubOrderRepo{orders: map[uuid.UUID]entities.Order{foreign.ID: foreign}}
	svc := NewOrderService(repo, zap.NewNop())

	_, err := svc.FindOrder(context.Background(), scope, foreign.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "чужой заказ неотличим от несуществующего")

	_, err = svc.FindOrder(context.Background(), staffScope(), foreign.ID)
	assert.NoError(t, err, "staff видит все заказы")
}

func TestCreateOrderClientCannotActOnBehalf(t *testing.T) {
	repo := &stubOrderRepo{orders: map[uuid.UUID]entities.Order{}}
	svc := NewOrderService(repo, zap.NewNop())

	d := dto.CreateOrderDTO{
		Title:    "Лендинг",
		ClientID: null.StringFrom(uuid.New().String()),
	}
	_, err := svc.CreateOrder(context.Background(), clientScope(), d)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	order, err := svc.CreateOrder(context.Background(), staffScope(), d)
	require.NoError(t, err)
	assert.Equal(t, "Лендинг", order.Title)
}

func TestCreateOrderDefaultsClientToViewer(t *testing.T) {
	scope := clientScope()
	repo := &stubOrderRepo{orders: map[uuid.UUID]entities.Order{}}
	svc := NewOrderService(repo, zap.NewNop())

	order, err := svc.CreateOrder(context.Background(), scope, dto.CreateOrderDTO{Title: "Аудит сайта"})
	require.NoError(t, err)
	assert.Equal(t, scope.ViewerID, order.ClientID.UUID)
}

func TestCreateOrderValidatesBudgetRange(t *testing.T) {
	repo := &stubOrderRepo{orders: map[uuid.UUID]entities.Order{}}
	svc := NewOrderService(repo, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), clientScope(), dto.CreateOrderDTO{
		Title:     "Логотип",
		BudgetMin: null.Float64From(500),
		BudgetMax: null.Float64From(100),
	})
	var inputErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestUpdateOrderStatusIsStaffOnly(t *testing.T) {
	scope := clientScope()
	own := entities.Order{ID: uuid.New(), ClientID: uuid.NullUUID{UUID: scope.ViewerID, Valid: true}, Status: constants.StatusNotStarted}
	repo := &stubOrderRepo{orders: map[uuid.UUID]entities.Order{own.ID: own}}
	svc := NewOrderService(repo, zap.NewNop())

	_, err := svc.UpdateOrder(context.Background(), scope, own.ID, dto.UpdateOrderDTO{
		Status: null.StringFrom(constants.StatusCompleted),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Описательные поля собственного заказа клиент править может.
	_, err = svc.UpdateOrder(context.Background(), scope, own.ID, dto.UpdateOrderDTO{
		Description: null.StringFrom("уточнение по задаче"),
	})
	assert.NoError(t, err)

	// staff меняет статус свободно.
	updated, err := svc.UpdateOrder(context.Background(), staffScope(), own.ID, dto.UpdateOrderDTO{
		Status: null.StringFrom(constants.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, updated.Status)
}
