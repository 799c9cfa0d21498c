package model

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adclad/internal/shared/contextkeys"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/repository"
)

// Role is a principal's permission scope
type Role string

const (
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleAdmin
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail checks the address format
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// User represents a user in the system
type User struct {
	repository.Base `bson:",inline"`
	FirstName       string `json:"firstName" bson:"firstName"`
	LastName        string `json:"lastName" bson:"lastName"`
	Email           string `json:"email" bson:"email"`
	Password        string `json:"-" bson:"password,omitempty"`
	Role            Role   `json:"role" bson:"role"`
	DeviceID        string `json:"deviceId,omitempty" bson:"deviceId,omitempty"`
	IsActive        bool   `json:"isActive" bson:"isActive"`
	IsDeleted       bool   `json:"isDeleted" bson:"isDeleted"`
}

// NewUser builds an active vendor account. Names and e-mail are stored lower-cased.
func NewUser(firstName, lastName, email, passwordHash, deviceID string) *User {
	return &User{
		FirstName: strings.ToLower(strings.TrimSpace(firstName)),
		LastName:  strings.ToLower(strings.TrimSpace(lastName)),
		Email:     NormalizeEmail(email),
		Password:  passwordHash,
		Role:      RoleVendor,
		DeviceID:  deviceID,
		IsActive:  true,
	}
}

// NormalizeEmail trims and lower-cases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate enforces the stored-document rules
func (u *User) Validate() error {
	ve := apperrors.NewValidationErrors()
	if u.FirstName == "" {
		ve.Add("firstName", "firstName is required", nil)
	}
	if u.LastName == "" {
		ve.Add("lastName", "lastName is required", nil)
	}
	if !ValidEmail(u.Email) {
		ve.Add("email", "email must be a valid address", u.Email)
	}
	if u.Password == "" {
		ve.Add("password", "password is required", nil)
	}
	if u.Role == "" {
		u.Role = RoleVendor
	}
	if !u.Role.Valid() {
		ve.Add("role", "role must be vendor or admin", u.Role)
	}
	return ve.ToAppError()
}

// Summary is the public view returned by signup and login
type Summary struct {
	ID    primitive.ObjectID `json:"_id"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}

// Summary returns the public view of the user
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Principal is the authenticated caller attached to a request
type Principal struct {
	ID    primitive.ObjectID
	Email string
	Role  Role
}

// IsAdmin reports whether the principal has the admin scope
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasRole reports whether the principal holds any of roles
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Principal returns the caller view of the user
func (u *User) Principal() *Principal {
	return &Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// WithPrincipal stores p in ctx, together with the plain id/e-mail/role keys the logger reads
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, contextkeys.PrincipalKey, p)
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, p.ID.Hex())
	ctx = context.WithValue(ctx, contextkeys.UserEmailKey, p.Email)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, string(p.Role))
	return ctx
}

// PrincipalFromContext returns the authenticated caller, if any
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextkeys.PrincipalKey).(*Principal)
	return p, ok && p != nil
}
