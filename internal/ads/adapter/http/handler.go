package http

import (
	"github.com/gofiber/fiber/v2"

	"adclad/internal/ads/usecase"
	authhttp "adclad/internal/auth/adapter/http"
	authmodel "adclad/internal/auth/domain/model"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/logger"
	"adclad/internal/shared/response"
)

// Usecases groups the business logic the ads routes call into
type Usecases struct {
	Ads        usecase.AdsUsecaseInterface
	DefaultAds usecase.DefaultAdsUsecaseInterface
	Sponsors   usecase.SponsorUsecaseInterface
	Events     usecase.EventUsecaseInterface
	Posts      usecase.PostUsecaseInterface
	Categories usecase.CategoryUsecaseInterface
}

// AdsHTTPHandler handles HTTP requests for advertisements and end-user content
type AdsHTTPHandler struct {
	uc     Usecases
	logger logger.Logger
}

// NewAdsHTTPHandler creates a new ads HTTP handler
func NewAdsHTTPHandler(uc Usecases, log logger.Logger) *AdsHTTPHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AdsHTTPHandler{
		uc:     uc,
		logger: log.WithComponent("ads_http"),
	}
}

// SetupRoutesWithMiddleware mounts every ads and content route on router
func (h *AdsHTTPHandler) SetupRoutesWithMiddleware(router fiber.Router, mw *authhttp.AuthMiddleware) {
	staff := mw.Protect(authmodel.RoleAdmin, authmodel.RoleVendor)
	admin := mw.Protect(authmodel.RoleAdmin)

	h.setupAdsRoutes(router.Group("/ads"), staff, admin)
	h.setupDefaultAdsRoutes(router.Group("/defaultads"), admin)
	h.setupSponsorRoutes(router.Group("/sponsors"), admin)
	h.setupEventRoutes(router.Group("/events"), admin)
	h.setupPostRoutes(router.Group("/post"), staff)
	h.setupCategoryRoutes(router.Group("/category"), admin)
}

func (h *AdsHTTPHandler) fail(c *fiber.Ctx, err error) error {
	if apperrors.HTTPStatus(err) >= fiber.StatusInternalServerError {
		h.logger.WithContext(c.UserContext()).Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return response.Error(c, err)
}

// parseBody decodes the JSON body into out; an empty body leaves out untouched
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(out) == nil
}

// listRequest reads pagination input from the body of POST listings and
// from the query string of GET listings
func listRequest(c *fiber.Ctx) (usecase.ListRequest, bool) {
	var req usecase.ListRequest
	if c.Method() == fiber.MethodGet {
		return req, c.QueryParser(&req) == nil
	}
	return req, parseBody(c, &req)
}

func principal(c *fiber.Ctx) *authmodel.Principal {
	p, _ := authhttp.GetPrincipal(c)
	return p
}
