package utils

import (
	"context"

	"worktrack-portal/pkg/contextkeys"
	apperrors "worktrack-portal/pkg/errors"
)

// GetViewerIDFromCtx извлекает ID зрителя, положенный туда auth middleware.
func GetViewerIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextkeys.ViewerIDKey).(string)
	if !ok || id == "" {
		return "", apperrors.ErrViewerNotFoundInContext
	}
	return id, nil
}

func GetViewerRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.ViewerRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrViewerNotFoundInContext
	}
	return role, nil
}

func WithViewer(ctx context.Context, id, role string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.ViewerIDKey, id)
	return context.WithValue(ctx, contextkeys.ViewerRoleKey, role)
}
