package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/usecase"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/response"
	"adclad/internal/shared/utils"
)

// fiber.Locals keys written by the request id and credentials middleware
const (
	requestIDLocal = "requestid"
	emailLocal     = "auth_email"
	passwordLocal  = "auth_password"
)

// AuthMiddleware provides HTTP Basic authentication middleware for Fiber
type AuthMiddleware struct {
	usecase     usecase.AuthUsecaseInterface
	realm       string
	credentials fiber.Handler
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, realm string) *AuthMiddleware {
	if realm == "" {
		realm = "adclad"
	}
	m := &AuthMiddleware{
		usecase: uc,
		realm:   realm,
	}
	m.credentials = basicauth.New(basicauth.Config{
		Realm:           realm,
		Authorizer:      func(email, _ string) bool { return email != "" },
		Unauthorized:    func(c *fiber.Ctx) error { return c.Next() },
		ContextUsername: emailLocal,
		ContextPassword: passwordLocal,
	})
	return m
}

// Credentials parses the Basic Authorization header into request locals.
// It never rejects a request; Protect, RequireRole and OptionalAuth decide
// what missing or malformed credentials mean, so it must be mounted before them.
func (m *AuthMiddleware) Credentials() fiber.Handler {
	return m.credentials
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RequestID assigns a uuid request id unless the caller sent one
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	})
}

// RequestContext stores the request id set by RequestID in the user context
func (m *AuthMiddleware) RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// Protect returns middleware that requires valid Basic credentials.
// When roles are given the principal must hold one of them.
func (m *AuthMiddleware) Protect(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := m.authenticate(c)
		if err != nil {
			return m.challenge(c, err)
		}
		if len(roles) > 0 && !principal.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		c.SetUserContext(model.WithPrincipal(c.UserContext(), principal))
		return c.Next()
	}
}

// RequireRole returns middleware that requires one of roles.
// It reuses the principal set by Protect and authenticates on its own otherwise.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := model.PrincipalFromContext(c.UserContext())
		if !ok {
			var err error
			principal, err = m.authenticate(c)
			if err != nil {
				return m.challenge(c, err)
			}
			c.SetUserContext(model.WithPrincipal(c.UserContext(), principal))
		}

		if !principal.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// OptionalAuth attaches the principal when valid credentials are sent and continues otherwise
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email, _ := c.Locals(emailLocal).(string); email == "" {
			return c.Next()
		}
		principal, err := m.authenticate(c)
		if err != nil {
			return c.Next()
		}
		c.SetUserContext(model.WithPrincipal(c.UserContext(), principal))
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.Principal, error) {
	email, _ := c.Locals(emailLocal).(string)
	if email == "" {
		return nil, apperrors.NewAuthenticationError("Authentication required")
	}
	password, _ := c.Locals(passwordLocal).(string)
	return m.usecase.Authenticate(c.UserContext(), email, password)
}

func (m *AuthMiddleware) challenge(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeAuthentication {
		return response.Error(c, err)
	}
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+m.realm+`"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": appErr.Message,
	})
}

// GetPrincipal helper function to get the authenticated caller from a request
func GetPrincipal(c *fiber.Ctx) (*model.Principal, bool) {
	return model.PrincipalFromContext(c.UserContext())
}
