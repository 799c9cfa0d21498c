package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/usecase"
	sharedrepo "adclad/internal/shared/repository"
)

// mockAuthUsecase is a shared mock type for the AuthUsecaseInterface
type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Signup(ctx context.Context, req usecase.SignupRequest) (*usecase.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResponse), args.Error(1)
}

func (m *mockAuthUsecase) CheckEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req usecase.LoginRequest) (*usecase.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResponse), args.Error(1)
}

func (m *mockAuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthUsecase) ChangePassword(ctx context.Context, principal *model.Principal, password string) (string, error) {
	args := m.Called(ctx, principal, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthUsecase) UpdateProfile(ctx context.Context, principal *model.Principal, req usecase.ProfileRequest) error {
	return m.Called(ctx, principal, req).Error(0)
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, email, password string) (*model.Principal, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Principal), args.Error(1)
}

func (m *mockAuthUsecase) ListVendors(ctx context.Context, req usecase.ListUsersRequest) (*sharedrepo.Page[model.User], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharedrepo.Page[model.User]), args.Error(1)
}

func (m *mockAuthUsecase) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ usecase.AuthUsecaseInterface = (*mockAuthUsecase)(nil)
