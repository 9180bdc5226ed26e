package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
)

const commentColumns = `c.id, c.order_id, c.author_id, c.content, c.is_internal, c.created_at`

type OrderCommentRepositoryInterface interface {
	CreateOrderComment(ctx context.Context, orderID, authorID uuid.UUID, d dto.CreateOrderCommentDTO) (*entities.OrderComment, error)
	ListByOrder(ctx context.Context, scope Scope, orderID uuid.UUID) ([]entities.OrderComment, error)
	// ListCreatedSince - инкрементальная выборка для pull-опроса,
	// ограниченная видимостью зрителя (клиент не видит внутренние
	// комментарии и чужие заказы - как этого требовала бы политика
	// на уровне данных).
	ListCreatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.OrderComment, error)
}

type OrderCommentRepository struct {
	storage querier
}

func NewOrderCommentRepository(storage *pgxpool.Pool) OrderCommentRepositoryInterface {
	return &OrderCommentRepository{storage: storage}
}

func scanComments(rows pgx.Rows, withAuthor bool) ([]entities.OrderComment, error) {
	defer rows.Close()
	var comments []entities.OrderComment
	for rows.Next() {
		var c entities.OrderComment
		dest := []any{&c.ID, &c.OrderID, &c.AuthorID, &c.Content, &c.IsInternal, &c.CreatedAt}
		if withAuthor {
			dest = append(dest, &c.AuthorName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// scopeComments повторяет границы видимости зрителя в фильтре выборки.
func scopeComments(builder sq.SelectBuilder, scope Scope) sq.SelectBuilder {
	if !scope.StaffTier() {
		builder = builder.
			Join("orders o ON o.id = c.order_id").
			Where(sq.Eq{"o.client_id": scope.ViewerID}).
			Where(sq.Eq{"c.is_internal": false})
	}
	return builder
}

func (r *OrderCommentRepository) CreateOrderComment(ctx context.Context, orderID, authorID uuid.UUID, d dto.CreateOrderCommentDTO) (*entities.OrderComment, error) {
	query := `
		INSERT INTO order_comments (order_id, author_id, content, is_internal)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, author_id, content, is_internal, created_at`

	var c entities.OrderComment
	err := r.storage.QueryRow(ctx, query, orderID, authorID, d.Content, d.IsInternal).
		Scan(&c.ID, &c.OrderID, &c.AuthorID, &c.Content, &c.IsInternal, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания комментария: %w", err)
	}
	return &c, nil
}

func (r *OrderCommentRepository) ListByOrder(ctx context.Context, scope Scope, orderID uuid.UUID) ([]entities.OrderComment, error) {
	builder := scopeComments(
		psql.Select(commentColumns+", p.full_name").
			From("order_comments c").
			LeftJoin("profiles p ON p.id = c.author_id").
			Where(sq.Eq{"c.order_id": orderID}).
			OrderBy("c.created_at ASC"),
		scope,
	)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе комментариев: %w", err)
	}
	return scanComments(rows, true)
}

func (r *OrderCommentRepository) ListCreatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.OrderComment, error) {
	builder := scopeComments(
		psql.Select(commentColumns).
			From("order_comments c").
			Where(sq.Gt{"c.created_at": since}).
			OrderBy("c.created_at ASC").
			Limit(limit),
		scope,
	)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка инкрементальной выборки комментариев: %w", err)
	}
	return scanComments(rows, false)
}
