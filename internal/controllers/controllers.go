package controllers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"worktrack-portal/internal/repositories"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/utils"
)

// scopeFromCtx собирает Scope зрителя из контекста запроса.
// Контекст наполняет auth middleware.
func scopeFromCtx(ctx context.Context) (repositories.Scope, error) {
	idStr, err := utils.GetViewerIDFromCtx(ctx)
	if err != nil {
		return repositories.Scope{}, err
	}
	role, err := utils.GetViewerRoleFromCtx(ctx)
	if err != nil {
		return repositories.Scope{}, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return repositories.Scope{}, fmt.Errorf("неверный ID зрителя в контексте: %w", apperrors.ErrUnauthorized)
	}
	return repositories.Scope{ViewerID: id, Role: role}, nil
}

func parseUUIDParam(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("неверный %s: %w", name, apperrors.ErrBadRequest)
	}
	return id, nil
}
