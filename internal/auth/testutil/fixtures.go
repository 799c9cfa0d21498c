package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"adclad/internal/auth/config"
	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/domain/repository"
	sharedrepo "adclad/internal/shared/repository"
)

// DefaultPassword is the clear-text password of fixture users
const DefaultPassword = "secret123"

// Config returns an auth config with the cheapest bcrypt cost
func Config() *config.Config {
	cfg := config.Default()
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

// UserFixture provides test data for User model
type UserFixture struct{}

// NewUserFixture creates a new UserFixture instance
func NewUserFixture() *UserFixture {
	return &UserFixture{}
}

func hash(password string) string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hashed)
}

// Vendor returns an active vendor whose password is DefaultPassword
func (f *UserFixture) Vendor(email string) *model.User {
	u := model.NewUser("vendor", "user", email, hash(DefaultPassword), "")
	u.ID = primitive.NewObjectID()
	return u
}

// Admin returns an active admin whose password is DefaultPassword
func (f *UserFixture) Admin(email string) *model.User {
	u := f.Vendor(email)
	u.Role = model.RoleAdmin
	return u
}

// UserWithPassword returns a vendor with a specific password
func (f *UserFixture) UserWithPassword(email, password string) *model.User {
	u := model.NewUser("vendor", "user", email, hash(password), "")
	u.ID = primitive.NewObjectID()
	return u
}

// MockUserRepository is a testify mock of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *model.User) *model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, updates bson.M) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListVendors(ctx context.Context, searchText string, opts sharedrepo.QueryOptions) (*sharedrepo.Page[model.User], error) {
	args := m.Called(ctx, searchText, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharedrepo.Page[model.User]), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// SentMail is one message captured by RecordingMailer
type SentMail struct {
	Options  repository.EmailOptions
	Template string
	Data     interface{}
}

// RecordingMailer captures messages and optionally fails
type RecordingMailer struct {
	mu   sync.Mutex
	Err  error
	Sent []SentMail
	// Done receives one value per SendEmail call when non-nil
	Done chan struct{}
}

// SendEmail records the message
func (m *RecordingMailer) SendEmail(ctx context.Context, opts repository.EmailOptions, template string, data interface{}) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentMail{Options: opts, Template: template, Data: data})
	m.mu.Unlock()
	if m.Done != nil {
		m.Done <- struct{}{}
	}
	return m.Err
}

// Messages returns a copy of the captured messages
func (m *RecordingMailer) Messages() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.Sent...)
}

var _ repository.Mailer = (*RecordingMailer)(nil)
