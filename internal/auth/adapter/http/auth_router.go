package http

import (
	"github.com/gofiber/fiber/v2"

	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/usecase"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/logger"
	"adclad/internal/shared/response"
)

// AuthHTTPHandler handles HTTP requests for accounts and authentication
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	logger  logger.Logger
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, log logger.Logger) *AuthHTTPHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AuthHTTPHandler{
		usecase: uc,
		logger:  log.WithComponent("auth_http"),
	}
}

// SetupAuthRoutesWithMiddleware sets up account routes with middleware
func (h *AuthHTTPHandler) SetupAuthRoutesWithMiddleware(router fiber.Router, middleware *AuthMiddleware) {
	staff := middleware.Protect(model.RoleAdmin, model.RoleVendor)
	admin := middleware.Protect(model.RoleAdmin)

	// Public routes (no authentication required)
	router.Post("/signup", h.Signup)
	router.Post("/checkemail", h.CheckEmail)
	router.Post("/login", h.Login)
	router.Post("/login/forgot", h.ForgotPassword)

	// Protected routes
	router.Put("/profile", staff, h.UpdateProfile)
	router.Patch("/login/changepassword", staff, h.ChangePassword)

	// Admin routes
	router.Post("/user", admin, h.ListVendors)
	router.Delete("/user", admin, h.DeleteUser)
}

func (h *AuthHTTPHandler) fail(c *fiber.Ctx, err error) error {
	if apperrors.HTTPStatus(err) >= fiber.StatusInternalServerError {
		h.logger.WithContext(c.UserContext()).Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return response.Error(c, err)
}

// Signup handles vendor registration
func (h *AuthHTTPHandler) Signup(c *fiber.Ctx) error {
	var req usecase.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	resp, err := h.usecase.Signup(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", resp)
}

// CheckEmail answers 409 when the address is already registered
func (h *AuthHTTPHandler) CheckEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	if err := h.usecase.CheckEmail(c.UserContext(), req.Email); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", nil)
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	resp, err := h.usecase.Login(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", resp)
}

// ForgotPassword mails a freshly generated password
func (h *AuthHTTPHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	if err := h.usecase.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}

// ChangePassword replaces the caller's password and returns the new Basic header
func (h *AuthHTTPHandler) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	principal, _ := GetPrincipal(c)
	header, err := h.usecase.ChangePassword(c.UserContext(), principal, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, fiber.Map{"authHeader": header})
}

// UpdateProfile changes the caller's names
func (h *AuthHTTPHandler) UpdateProfile(c *fiber.Ctx) error {
	var req usecase.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	principal, _ := GetPrincipal(c)
	if err := h.usecase.UpdateProfile(c.UserContext(), principal, req); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "Profile updated", nil)
}

// ListVendors returns a page of vendor accounts
func (h *AuthHTTPHandler) ListVendors(c *fiber.Ctx) error {
	var req usecase.ListUsersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.InvalidBody(c)
		}
	}

	page, err := h.usecase.ListVendors(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

// DeleteUser soft-deletes a user
func (h *AuthHTTPHandler) DeleteUser(c *fiber.Ctx) error {
	var req struct {
		ID string `json:"_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	if err := h.usecase.DeleteUser(c.UserContext(), req.ID); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}
