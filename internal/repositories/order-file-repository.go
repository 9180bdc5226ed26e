package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/internal/entities"
	apperrors "worktrack-portal/pkg/errors"
)

const fileColumns = `f.id, f.order_id, f.uploaded_by, f.file_name, f.file_size,
	f.mime_type, f.category, f.storage_path, f.created_at`

type OrderFileRepositoryInterface interface {
	CreateOrderFile(ctx context.Context, file *entities.OrderFile) (*entities.OrderFile, error)
	FindOrderFile(ctx context.Context, id uuid.UUID) (*entities.OrderFile, error)
	// FindOrderFileByPath - обратный поиск по пути в хранилище;
	// нужен при скачивании по подписанной ссылке.
	FindOrderFileByPath(ctx context.Context, storagePath string) (*entities.OrderFile, error)
	ListByOrder(ctx context.Context, scope Scope, orderID uuid.UUID) ([]entities.OrderFile, error)
	ListCreatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.OrderFile, error)
}

type OrderFileRepository struct {
	storage querier
}

func NewOrderFileRepository(storage *pgxpool.Pool) OrderFileRepositoryInterface {
	return &OrderFileRepository{storage: storage}
}

func scanFiles(rows pgx.Rows) ([]entities.OrderFile, error) {
	defer rows.Close()
	var files []entities.OrderFile
	for rows.Next() {
		var f entities.OrderFile
		err := rows.Scan(&f.ID, &f.OrderID, &f.UploadedBy, &f.FileName, &f.FileSize,
			&f.MimeType, &f.Category, &f.StoragePath, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования файла: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func scopeFiles(builder sq.SelectBuilder, scope Scope) sq.SelectBuilder {
	if !scope.StaffTier() {
		builder = builder.
			Join("orders o ON o.id = f.order_id").
			Where(sq.Eq{"o.client_id": scope.ViewerID})
	}
	return builder
}

func (r *OrderFileRepository) CreateOrderFile(ctx context.Context, file *entities.OrderFile) (*entities.OrderFile, error) {
	query := `
		INSERT INTO order_files (order_id, uploaded_by, file_name, file_size, mime_type, category, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, order_id, uploaded_by, file_name, file_size, mime_type, category, storage_path, created_at`

	var f entities.OrderFile
	err := r.storage.QueryRow(ctx, query,
		file.OrderID, file.UploadedBy, file.FileName, file.FileSize,
		file.MimeType, file.Category, file.StoragePath,
	).Scan(&f.ID, &f.OrderID, &f.UploadedBy, &f.FileName, &f.FileSize,
		&f.MimeType, &f.Category, &f.StoragePath, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записи о файле: %w", err)
	}
	return &f, nil
}

func (r *OrderFileRepository) FindOrderFile(ctx context.Context, id uuid.UUID) (*entities.OrderFile, error) {
	query := `
		SELECT id, order_id, uploaded_by, file_name, file_size, mime_type, category, storage_path, created_at
		FROM order_files WHERE id = $1`

	var f entities.OrderFile
	err := r.storage.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.OrderID, &f.UploadedBy, &f.FileName, &f.FileSize,
			&f.MimeType, &f.Category, &f.StoragePath, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска файла: %w", err)
	}
	return &f, nil
}

func (r *OrderFileRepository) FindOrderFileByPath(ctx context.Context, storagePath string) (*entities.OrderFile, error) {
	query := `
		SELECT id, order_id, uploaded_by, file_name, file_size, mime_type, category, storage_path, created_at
		FROM order_files WHERE storage_path = $1`

	var f entities.OrderFile
	err := r.storage.QueryRow(ctx, query, storagePath).
		Scan(&f.ID, &f.OrderID, &f.UploadedBy, &f.FileName, &f.FileSize,
			&f.MimeType, &f.Category, &f.StoragePath, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска файла по пути: %w", err)
	}
	return &f, nil
}

func (r *OrderFileRepository) ListByOrder(ctx context.Context, scope Scope, orderID uuid.UUID) ([]entities.OrderFile, error) {
	builder := scopeFiles(
		psql.Select(fileColumns).
			From("order_files f").
			Where(sq.Eq{"f.order_id": orderID}).
			OrderBy("f.created_at ASC"),
		scope,
	)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе файлов: %w", err)
	}
	return scanFiles(rows)
}

func (r *OrderFileRepository) ListCreatedSince(ctx context.Context, scope Scope, since time.Time, limit uint64) ([]entities.OrderFile, error) {
	builder := scopeFiles(
		psql.Select(fileColumns).
			From("order_files f").
			Where(sq.Gt{"f.created_at": since}).
			OrderBy("f.created_at ASC").
			Limit(limit),
		scope,
	)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка инкрементальной выборки файлов: %w", err)
	}
	return scanFiles(rows)
}
