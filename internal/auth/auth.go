package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	authhttp "adclad/internal/auth/adapter/http"
	"adclad/internal/auth/adapter/mail"
	"adclad/internal/auth/adapter/persistence/mongodb"
	"adclad/internal/auth/config"
	"adclad/internal/auth/domain/repository"
	"adclad/internal/auth/usecase"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	repository repository.UserRepository
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates a new authentication module instance.
// A nil mailer falls back to the logging mailer.
func NewAuthModule(provider sharedrepo.CollectionProvider, cfg *config.Config, mailer repository.Mailer, log logger.Logger) (*AuthModule, error) {
	if provider == nil {
		return nil, errors.New("auth module requires a collection provider")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if mailer == nil {
		mailer = mail.NewLogMailer(cfg.MailFromName, cfg.MailFromAddress, log)
	}

	userRepo := mongodb.NewMongoUserRepository(provider)
	authUsecase := usecase.NewAuthUsecase(userRepo, mailer, cfg, log)

	return &AuthModule{
		repository: userRepo,
		usecase:    authUsecase,
		handler:    authhttp.NewAuthHTTPHandler(authUsecase, log),
		middleware: authhttp.NewAuthMiddleware(authUsecase, cfg.Realm),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers account routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutesWithMiddleware(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware other modules protect their routes with
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// GetRepository returns the user repository, used by the seeder
func (am *AuthModule) GetRepository() repository.UserRepository {
	return am.repository
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
