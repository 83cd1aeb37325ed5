package utils

import (
	"context"

	"ticketdesk/pkg/contextkeys"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/types"
)

// GetUserIDFromCtx достает идентификатор профиля (uuid), положенный auth-мидлвэром.
func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

// GetRoleFromCtx достает роль дашборда, уже свернутую из строки профиля.
func GetRoleFromCtx(ctx context.Context) (types.DashboardRole, error) {
	role, ok := ctx.Value(contextkeys.RoleKey).(types.DashboardRole)
	if !ok {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}
