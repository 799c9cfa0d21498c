package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"adclad/internal/shared/contextkeys"
)

func TestGetSetContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithUserID(ctx, "65f0c0ffee0000000000beef")
	ctx = WithUserRole(ctx, "vendor")
	ctx = WithUserEmail(ctx, "vendor@example.com")
	ctx = WithRequestID(ctx, "req1")
	ctx = WithComponent(ctx, "ads")
	ctx = WithOperation(ctx, "update")

	userID, err := GetUserIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "65f0c0ffee0000000000beef", userID)

	role, err := GetUserRoleFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "vendor", role)

	email, err := GetUserEmailFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "vendor@example.com", email)

	assert.Equal(t, "req1", GetRequestIDOrDefault(ctx, "none"))
	assert.Equal(t, "ads", ctx.Value(contextkeys.ComponentKey))
	assert.Equal(t, "update", ctx.Value(contextkeys.OperationKey))
}

func TestContextUtils_MissingValues(t *testing.T) {
	ctx := context.Background()
	_, err := GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserIDNotFound)
	assert.Equal(t, "none", GetRequestIDOrDefault(ctx, "none"))
}

func TestContextUtils_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextkeys.UserRoleKey, 42)
	_, err := GetUserRoleFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserRoleNotString)
}
