package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/auth/domain/model"
	sharedrepo "adclad/internal/shared/repository"
)

// UserRepository defines the data operations on users
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetActiveByEmail returns the active, non-deleted user with that e-mail, or nil
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	// EmailInUse reports whether a non-deleted user already holds email
	EmailInUse(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id string, updates bson.M) (*model.User, error)
	ListVendors(ctx context.Context, searchText string, opts sharedrepo.QueryOptions) (*sharedrepo.Page[model.User], error)
}

// EmailAddress is a named mailbox
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// EmailOptions are the envelope fields of an outgoing message
type EmailOptions struct {
	Subject string       `json:"subject"`
	To      EmailAddress `json:"to"`
}

// Mail templates
const (
	TemplateWelcome = "welcome"
	TemplateForgot  = "forget"
)

// Mailer delivers templated e-mail
type Mailer interface {
	SendEmail(ctx context.Context, opts EmailOptions, template string, data interface{}) error
}
