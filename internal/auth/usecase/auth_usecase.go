package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"adclad/internal/auth/config"
	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/domain/repository"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// Field length limits
const (
	minNameLength     = 3
	maxNameLength     = 10
	minPasswordLength = 6
	maxPasswordLength = 50
)

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	CheckEmail(ctx context.Context, email string) error
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, principal *model.Principal, password string) (string, error)
	UpdateProfile(ctx context.Context, principal *model.Principal, req ProfileRequest) error
	Authenticate(ctx context.Context, email, password string) (*model.Principal, error)
	ListVendors(ctx context.Context, req ListUsersRequest) (*sharedrepo.Page[model.User], error)
	DeleteUser(ctx context.Context, id string) error
}

// SignupRequest represents the vendor signup payload
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	DeviceID  string `json:"deviceId,omitempty"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId,omitempty"`
}

// ProfileRequest represents the profile update payload
type ProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ListUsersRequest represents the admin vendor listing payload
type ListUsersRequest struct {
	Sort       string   `json:"sort"`
	Order      *float64 `json:"order"`
	Limit      *float64 `json:"limit"`
	Skip       *float64 `json:"skip"`
	SearchText string   `json:"searchText"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	User       model.Summary `json:"user"`
	AuthHeader string        `json:"authHeader"`
}

// BasicAuthHeader builds the Authorization header value for email:password
func BasicAuthHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo   repository.UserRepository
	mailer repository.Mailer
	config *config.Config
	logger logger.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(repo repository.UserRepository, mailer repository.Mailer, cfg *config.Config, log logger.Logger) *AuthUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AuthUsecase{
		repo:   repo,
		mailer: mailer,
		config: cfg,
		logger: log.WithComponent("auth"),
	}
}

func lengthBetween(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(s)
	return n >= minLen && n <= maxLen
}

func validateName(ve *apperrors.ValidationErrors, field, value string) {
	if !lengthBetween(strings.TrimSpace(value), minNameLength, maxNameLength) {
		ve.Add(field, fmt.Sprintf("%s must be between %d and %d characters", field, minNameLength, maxNameLength), value)
	}
}

func validatePassword(ve *apperrors.ValidationErrors, password string) {
	if !lengthBetween(password, minPasswordLength, maxPasswordLength) {
		ve.Add("password", fmt.Sprintf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength), nil)
	}
}

func validateEmail(ve *apperrors.ValidationErrors, email string) {
	if !model.ValidEmail(model.NormalizeEmail(email)) {
		ve.Add("email", "email must be a valid address", email)
	}
}

func (uc *AuthUsecase) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), uc.config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckEmail fails with a conflict when a non-deleted user already holds email
func (uc *AuthUsecase) CheckEmail(ctx context.Context, email string) error {
	ve := apperrors.NewValidationErrors()
	validateEmail(ve, email)
	if err := ve.ToAppError(); err != nil {
		return err
	}

	inUse, err := uc.repo.EmailInUse(ctx, email)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.NewConflictError("Email already in use.")
	}
	return nil
}

// Signup creates a vendor account and sends the welcome mail in the background
func (uc *AuthUsecase) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	ve := apperrors.NewValidationErrors()
	validateName(ve, "firstName", req.FirstName)
	validateName(ve, "lastName", req.LastName)
	validateEmail(ve, req.Email)
	validatePassword(ve, req.Password)
	if err := ve.ToAppError(); err != nil {
		return nil, err
	}

	if err := uc.CheckEmail(ctx, req.Email); err != nil {
		return nil, err
	}

	hashed, err := uc.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.Create(ctx, model.NewUser(req.FirstName, req.LastName, req.Email, hashed, req.DeviceID))
	if err != nil {
		return nil, err
	}

	uc.sendWelcome(ctx, user)

	return &AuthResponse{
		User:       user.Summary(),
		AuthHeader: BasicAuthHeader(user.Email, req.Password),
	}, nil
}

func (uc *AuthUsecase) sendWelcome(ctx context.Context, user *model.User) {
	if uc.mailer == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	opts := repository.EmailOptions{
		Subject: "Your account",
		To:      repository.EmailAddress{Name: user.FirstName, Address: user.Email},
	}
	data := map[string]string{"FirstName": user.FirstName, "LastName": user.LastName, "Email": user.Email}
	go func() {
		if err := uc.mailer.SendEmail(detached, opts, repository.TemplateWelcome, data); err != nil {
			uc.logger.WithContext(detached).Warnf("sending welcome email failed: %v", err)
		}
	}()
}

// findByCredentials returns the active user whose password matches, or nil
func (uc *AuthUsecase) findByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := uc.repo.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return user, nil
}

// Login verifies credentials, records the device id and returns the Basic header
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	ve := apperrors.NewValidationErrors()
	validateEmail(ve, req.Email)
	validatePassword(ve, req.Password)
	if err := ve.ToAppError(); err != nil {
		return nil, err
	}

	user, err := uc.findByCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewAuthenticationError("Incorrect email or password").WithCause(apperrors.ErrInvalidCredentials)
	}

	if req.DeviceID != "" {
		if _, err := uc.repo.Update(ctx, user.ID.Hex(), bson.M{"deviceId": req.DeviceID}); err != nil {
			return nil, err
		}
	}

	return &AuthResponse{
		User:       user.Summary(),
		AuthHeader: BasicAuthHeader(user.Email, req.Password),
	}, nil
}

// Authenticate resolves Basic credentials into a principal
func (uc *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*model.Principal, error) {
	user, err := uc.findByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewAuthenticationError("Invalid credentials").WithCause(apperrors.ErrInvalidCredentials)
	}
	return user.Principal(), nil
}

func (uc *AuthUsecase) generatePassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:uc.config.GeneratedPasswordLength]
}

// ForgotPassword issues a new random password and mails it. A mail failure is returned.
func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	ve := apperrors.NewValidationErrors()
	validateEmail(ve, email)
	if err := ve.ToAppError(); err != nil {
		return err
	}

	user, err := uc.repo.GetActiveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("User").WithDetail("reason", "User not registered")
	}

	password := uc.generatePassword()
	hashed, err := uc.hash(password)
	if err != nil {
		return err
	}
	if _, err := uc.repo.Update(ctx, user.ID.Hex(), bson.M{"password": hashed}); err != nil {
		return err
	}

	name := user.FirstName + " " + user.LastName
	opts := repository.EmailOptions{
		Subject: "Reset Password",
		To:      repository.EmailAddress{Name: name, Address: user.Email},
	}
	data := map[string]string{"Name": name, "Email": user.Email, "Password": password}
	if uc.mailer == nil {
		return apperrors.NewInternalError("mailer is not configured")
	}
	if err := uc.mailer.SendEmail(ctx, opts, repository.TemplateForgot, data); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// ChangePassword stores a new hash for the caller and returns the new Basic header
func (uc *AuthUsecase) ChangePassword(ctx context.Context, principal *model.Principal, password string) (string, error) {
	if principal == nil {
		return "", apperrors.NewAuthenticationError("Authentication required")
	}
	ve := apperrors.NewValidationErrors()
	validatePassword(ve, password)
	if err := ve.ToAppError(); err != nil {
		return "", err
	}

	hashed, err := uc.hash(password)
	if err != nil {
		return "", err
	}
	if _, err := uc.repo.Update(ctx, principal.ID.Hex(), bson.M{"password": hashed}); err != nil {
		return "", err
	}
	return BasicAuthHeader(principal.Email, password), nil
}

// UpdateProfile changes the caller's names
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, principal *model.Principal, req ProfileRequest) error {
	if principal == nil {
		return apperrors.NewAuthenticationError("Authentication required")
	}
	ve := apperrors.NewValidationErrors()
	validateName(ve, "firstName", req.FirstName)
	validateName(ve, "lastName", req.LastName)
	if err := ve.ToAppError(); err != nil {
		return err
	}

	_, err := uc.repo.Update(ctx, principal.ID.Hex(), bson.M{
		"firstName": strings.TrimSpace(req.FirstName),
		"lastName":  strings.TrimSpace(req.LastName),
	})
	return err
}

// ListVendors pages through vendor accounts, newest update first by default
func (uc *AuthUsecase) ListVendors(ctx context.Context, req ListUsersRequest) (*sharedrepo.Page[model.User], error) {
	if len(req.SearchText) > 50 {
		return nil, apperrors.NewValidationError("searchText must be at most 50 characters")
	}
	opts := sharedrepo.QueryOptions{
		Skip:  req.Skip,
		Limit: req.Limit,
		Sort:  req.Sort,
		Order: req.Order,
	}
	if opts.Sort == "" {
		opts.Sort = "updatedAt"
	}
	if opts.Order == nil {
		opts.Order = sharedrepo.Num(-1)
	}
	if opts.Limit == nil {
		opts.Limit = sharedrepo.Num(20)
	}
	return uc.repo.ListVendors(ctx, req.SearchText, opts)
}

// DeleteUser soft-deletes the user with id
func (uc *AuthUsecase) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("_id is required")
	}
	_, err := uc.repo.Update(ctx, id, bson.M{"isDeleted": true})
	return err
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
