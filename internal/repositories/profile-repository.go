package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/internal/entities"
	apperrors "worktrack-portal/pkg/errors"
)

type ProfileRepositoryInterface interface {
	FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error)
}

type ProfileRepository struct {
	storage querier
}

func NewProfileRepository(storage *pgxpool.Pool) ProfileRepositoryInterface {
	return &ProfileRepository{storage: storage}
}

func (r *ProfileRepository) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	query := `SELECT id, email, full_name, role, created_at FROM profiles WHERE id = $1`

	var p entities.Profile
	err := r.storage.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска профиля: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	query := `SELECT id, email, full_name, role, created_at FROM profiles WHERE email = $1`

	var p entities.Profile
	err := r.storage.QueryRow(ctx, query, email).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска профиля по email: %w", err)
	}
	return &p, nil
}
