package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	apperrors "worktrack-portal/pkg/errors"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, code, title, description, business_type, status, priority,
	budget_min, budget_max, currency, due_date, client_id, assigned_to, created_by,
	created_at, updated_at`

type OrderRepositoryInterface interface {
	FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	ListOrders(ctx context.Context, scope Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error)
	// ListUpdatedSince - инкрементальная выборка для pull-опроса:
	// только строки с updated_at строго позже курсора.
	ListUpdatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.Order, error)
	CreateOrder(ctx context.Context, clientID, createdBy uuid.UUID, d dto.CreateOrderDTO) (*entities.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error)
}

type OrderRepository struct {
	storage querier
}

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{storage: storage}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.Code, &o.Title, &o.Description, &o.BusinessType, &o.Status,
		&o.Priority, &o.BudgetMin, &o.BudgetMax, &o.Currency, &o.DueDate,
		&o.ClientID, &o.AssignedTo, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]entities.Order, error) {
	defer rows.Close()
	var orders []entities.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// scopeOrders ограничивает выборку границами видимости зрителя:
// клиент видит только свои заказы, staff/admin - все.
func scopeOrders(builder sq.SelectBuilder, scope Scope) sq.SelectBuilder {
	if !scope.StaffTier() {
		builder = builder.Where(sq.Eq{"client_id": scope.ViewerID})
	}
	return builder
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	o, err := scanOrder(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска заказа: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, scope Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error) {
	countBuilder := scopeOrders(psql.Select("COUNT(*)").From("orders"), scope)
	listBuilder := scopeOrders(psql.Select(orderColumns).From("orders"), scope).
		OrderBy("created_at DESC")

	if filter.Status != "" {
		countBuilder = countBuilder.Where(sq.Eq{"status": filter.Status})
		listBuilder = listBuilder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		listBuilder = listBuilder.Offset(filter.Offset)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заказов: %w", err)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе заказов: %w", err)
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) ListUpdatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.Order, error) {
	builder := scopeOrders(psql.Select(orderColumns).From("orders"), scope).
		Where(sq.Gt{"updated_at": since}).
		OrderBy("updated_at ASC").
		Limit(limit)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка инкрементальной выборки заказов: %w", err)
	}
	return scanOrders(rows)
}

func (r *OrderRepository) CreateOrder(ctx context.Context, clientID, createdBy uuid.UUID, d dto.CreateOrderDTO) (*entities.Order, error) {
	// id, code, status и таймстемпы назначает сервер (defaults в схеме).
	query := fmt.Sprintf(`
		INSERT INTO orders (title, description, business_type, priority,
			budget_min, budget_max, currency, due_date, client_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, orderColumns)

	o, err := scanOrder(r.storage.QueryRow(ctx, query,
		d.Title, d.Description, d.BusinessType, d.Priority,
		d.BudgetMin, d.BudgetMax, d.Currency, d.DueDate, clientID, createdBy,
	))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error) {
	builder := psql.Update("orders").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(fmt.Sprintf("RETURNING %s", orderColumns))

	if d.Title.Valid {
		builder = builder.Set("title", d.Title.String)
	}
	if d.Description.Valid {
		builder = builder.Set("description", d.Description)
	}
	if d.BusinessType.Valid {
		builder = builder.Set("business_type", d.BusinessType)
	}
	if d.Status.Valid {
		builder = builder.Set("status", d.Status.String)
	}
	if d.Priority.Valid {
		builder = builder.Set("priority", d.Priority)
	}
	if d.BudgetMin.Valid {
		builder = builder.Set("budget_min", d.BudgetMin)
	}
	if d.BudgetMax.Valid {
		builder = builder.Set("budget_max", d.BudgetMax)
	}
	if d.Currency.Valid {
		builder = builder.Set("currency", d.Currency)
	}
	if d.DueDate.Valid {
		builder = builder.Set("due_date", d.DueDate)
	}
	if d.AssignedTo.Valid {
		assignedTo, err := uuid.Parse(d.AssignedTo.String)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("недопустимый assigned_to: %v", err)
		}
		builder = builder.Set("assigned_to", assignedTo)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	o, err := scanOrder(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления заказа: %w", err)
	}
	return o, nil
}
