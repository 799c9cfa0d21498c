package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "adclad context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, UserIDKey, "user-123")
	ctx = context.WithValue(ctx, UserEmailKey, "vendor@example.com")
	ctx = context.WithValue(ctx, UserRoleKey, "vendor")
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")
	ctx = context.WithValue(ctx, ComponentKey, "ads")
	ctx = context.WithValue(ctx, OperationKey, "update")

	assert.Equal(t, "user-123", ctx.Value(UserIDKey))
	assert.Equal(t, "vendor@example.com", ctx.Value(UserEmailKey))
	assert.Equal(t, "vendor", ctx.Value(UserRoleKey))
	assert.Equal(t, "req-456", ctx.Value(RequestIDKey))
	assert.Equal(t, "ads", ctx.Value(ComponentKey))
	assert.Equal(t, "update", ctx.Value(OperationKey))
	assert.Nil(t, ctx.Value(PrincipalKey))
}
