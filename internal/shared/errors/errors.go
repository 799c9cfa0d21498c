package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for the advertisement backend
type ErrorType string

const (
	ErrorTypeInvalidArgument   ErrorType = "INVALID_ARGUMENT"
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeBadRequest        ErrorType = "BAD_REQUEST"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInsufficientFunds ErrorType = "INSUFFICIENT_FUNDS"
	ErrorTypeConflict          ErrorType = "CONFLICT_ERROR"
	ErrorTypeAuthentication    ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeAuthorization     ErrorType = "AUTHORIZATION_ERROR"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

// Common application errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnrestrictedDelete = errors.New("bad request: cannot delete all documents")
	ErrInsufficientFunds  = errors.New("insufficient balance")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewInvalidArgumentError is returned for malformed filters, ids and pagination input
func NewInvalidArgumentError(message string) *AppError {
	return NewAppError(ErrorTypeInvalidArgument, message, http.StatusBadRequest)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(ErrorTypeBadRequest, message, http.StatusBadRequest)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound).
		WithCause(ErrNotFound)
}

// NewInsufficientFundsError is the balance gate rejection
func NewInsufficientFundsError() *AppError {
	return NewAppError(ErrorTypeInsufficientFunds, "Insufficient balance", http.StatusNotAcceptable).
		WithCause(ErrInsufficientFunds)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewAuthenticationError creates an authentication error
func NewAuthenticationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthentication, message, http.StatusUnauthorized)
}

// NewAuthorizationError creates an authorization error
func NewAuthorizationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthorization, message, http.StatusForbidden)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// ValidationError represents validation errors for multiple fields
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve.Errors[0].Message)
}

// NewValidationErrors creates a new validation errors instance
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}

// Add adds a validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) *ValidationErrors {
	ve.Errors = append(ve.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
	return ve
}

// HasErrors returns true if there are validation errors
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts validation errors to an AppError. Returns nil when
// nothing was collected so callers can `return ve.ToAppError()` directly.
func (ve *ValidationErrors) ToAppError() error {
	if !ve.HasErrors() {
		return nil
	}

	appErr := NewValidationError(ve.Error())
	appErr.Details["validation_errors"] = ve.Errors
	return appErr
}

// IsType reports whether err (or anything it wraps) is an AppError of the given type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound) || errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return IsType(err, ErrorTypeInvalidArgument)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsBadRequest checks if an error is a bad request error
func IsBadRequest(err error) bool {
	return IsType(err, ErrorTypeBadRequest) || errors.Is(err, ErrUnrestrictedDelete)
}

// IsInsufficientFunds checks if an error is a balance gate rejection
func IsInsufficientFunds(err error) bool {
	return IsType(err, ErrorTypeInsufficientFunds) || errors.Is(err, ErrInsufficientFunds)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

// IsAuthentication checks if an error is an authentication error
func IsAuthentication(err error) bool {
	return IsType(err, ErrorTypeAuthentication) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}

// IsAuthorization checks if an error is an authorization error
func IsAuthorization(err error) bool {
	return IsType(err, ErrorTypeAuthorization) || errors.Is(err, ErrForbidden)
}

// HTTPStatus maps an error to the status code the route layer should answer with.
// Anything that is not an AppError (store failures included) is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
