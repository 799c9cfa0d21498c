package utils

import (
	"context"
	"errors"

	"adclad/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound     = errors.New("userID not found in context")
	ErrUserIDNotString    = errors.New("userID in context is not a string")
	ErrUserRoleNotFound   = errors.New("userRole not found in context")
	ErrUserRoleNotString  = errors.New("userRole in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
	ErrUserEmailNotFound  = errors.New("userEmail not found in context")
	ErrUserEmailNotString = errors.New("userEmail in context is not a string")
)

func stringValue(ctx context.Context, key interface{}, missing, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", missing
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetUserIDFromContext retrieves the authenticated user's hex id
func GetUserIDFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.UserIDKey, ErrUserIDNotFound, ErrUserIDNotString)
}

// GetUserRoleFromContext retrieves the authenticated user's role
func GetUserRoleFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.UserRoleKey, ErrUserRoleNotFound, ErrUserRoleNotString)
}

// GetUserEmailFromContext retrieves the authenticated user's e-mail
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.UserEmailKey, ErrUserEmailNotFound, ErrUserEmailNotString)
}

// GetRequestIDFromContext retrieves the request id
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringValue(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// GetRequestIDOrDefault returns the request id or defaultValue
func GetRequestIDOrDefault(ctx context.Context, defaultValue string) string {
	if id, err := GetRequestIDFromContext(ctx); err == nil {
		return id
	}
	return defaultValue
}

// WithUserID adds the user id to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserRole adds the user role to the context
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

// WithUserEmail adds the user e-mail to the context
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, email)
}

// WithRequestID adds the request id to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds the component name to the context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds the operation name to the context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}
