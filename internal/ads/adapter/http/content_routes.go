package http

import (
	"github.com/gofiber/fiber/v2"

	"adclad/internal/ads/usecase"
	"adclad/internal/shared/response"
)

func (h *AdsHTTPHandler) setupDefaultAdsRoutes(router fiber.Router, admin fiber.Handler) {
	router.Use(admin)

	router.Put("/", h.CreateDefaultAd)
	router.Get("/admin/:id", h.GetDefaultAd)
	router.Post("/admin", h.ListDefaultAds)
	router.Patch("/", h.UpdateDefaultAd)
	router.Patch("/status", h.SetDefaultAdStatus)
	router.Delete("/", h.DeleteDefaultAd)
}

func (h *AdsHTTPHandler) setupSponsorRoutes(router fiber.Router, admin fiber.Handler) {
	// Public
	router.Get("/", h.ActiveSponsors)

	router.Put("/", admin, h.CreateSponsor)
	router.Post("/admin", admin, h.ListSponsors)
	router.Get("/admin/:id", admin, h.GetSponsor)
	router.Patch("/", admin, h.UpdateSponsor)
	router.Patch("/status", admin, h.SetSponsorStatus)
	router.Delete("/", admin, h.DeleteSponsor)
}

func (h *AdsHTTPHandler) setupEventRoutes(router fiber.Router, admin fiber.Handler) {
	router.Use(admin)

	router.Post("/", h.CreateEvent)
	router.Get("/admin", h.ListEvents)
	router.Get("/admin/:id", h.GetEvent)
	router.Patch("/status", h.SetEventStatus)
	router.Put("/:id", h.UpdateEvent)
	router.Delete("/:id", h.DeleteEvent)
}

func (h *AdsHTTPHandler) setupPostRoutes(router fiber.Router, staff fiber.Handler) {
	router.Post("/", staff, h.CreatePost)
	router.Post("/comment", staff, h.CommentPost)

	// Public
	router.Get("/", h.ListPosts)
	router.Get("/:id", h.GetPost)
}

func (h *AdsHTTPHandler) setupCategoryRoutes(router fiber.Router, admin fiber.Handler) {
	router.Get("/", h.ListCategories)
	router.Post("/", admin, h.CreateCategory)
}

// Default advertisements

func (h *AdsHTTPHandler) CreateDefaultAd(c *fiber.Ctx) error {
	var req usecase.DefaultAdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	ad, err := h.uc.DefaultAds.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

func (h *AdsHTTPHandler) GetDefaultAd(c *fiber.Ctx) error {
	ad, err := h.uc.DefaultAds.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", ad)
}

func (h *AdsHTTPHandler) ListDefaultAds(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}
	page, err := h.uc.DefaultAds.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

func (h *AdsHTTPHandler) UpdateDefaultAd(c *fiber.Ctx) error {
	var req usecase.DefaultAdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	ad, err := h.uc.DefaultAds.Update(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

func (h *AdsHTTPHandler) SetDefaultAdStatus(c *fiber.Ctx) error {
	var req usecase.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	ad, err := h.uc.DefaultAds.SetStatus(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

func (h *AdsHTTPHandler) DeleteDefaultAd(c *fiber.Ctx) error {
	var req usecase.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	if err := h.uc.DefaultAds.Delete(c.UserContext(), req.ID); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}

// Sponsors

// ActiveSponsors lists the sponsors shown to end-users
func (h *AdsHTTPHandler) ActiveSponsors(c *fiber.Ctx) error {
	sponsors, err := h.uc.Sponsors.Active(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", sponsors)
}

func (h *AdsHTTPHandler) CreateSponsor(c *fiber.Ctx) error {
	var req usecase.SponsorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	sponsor, err := h.uc.Sponsors.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, sponsor)
}

func (h *AdsHTTPHandler) ListSponsors(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}
	page, err := h.uc.Sponsors.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

func (h *AdsHTTPHandler) GetSponsor(c *fiber.Ctx) error {
	sponsor, err := h.uc.Sponsors.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", sponsor)
}

func (h *AdsHTTPHandler) UpdateSponsor(c *fiber.Ctx) error {
	var req usecase.SponsorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	sponsor, err := h.uc.Sponsors.Update(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, sponsor)
}

func (h *AdsHTTPHandler) SetSponsorStatus(c *fiber.Ctx) error {
	var req usecase.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	sponsor, err := h.uc.Sponsors.SetStatus(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, sponsor)
}

func (h *AdsHTTPHandler) DeleteSponsor(c *fiber.Ctx) error {
	var req usecase.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	if err := h.uc.Sponsors.Delete(c.UserContext(), req.ID); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}

// Events

func (h *AdsHTTPHandler) CreateEvent(c *fiber.Ctx) error {
	var req usecase.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	event, err := h.uc.Events.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, event)
}

func (h *AdsHTTPHandler) UpdateEvent(c *fiber.Ctx) error {
	var req usecase.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	event, err := h.uc.Events.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, event)
}

func (h *AdsHTTPHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.uc.Events.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", event)
}

func (h *AdsHTTPHandler) ListEvents(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}
	page, err := h.uc.Events.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

func (h *AdsHTTPHandler) SetEventStatus(c *fiber.Ctx) error {
	var req usecase.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	event, err := h.uc.Events.SetStatus(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, event)
}

func (h *AdsHTTPHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.uc.Events.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}

// Posts

func (h *AdsHTTPHandler) CreatePost(c *fiber.Ctx) error {
	var req usecase.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	post, err := h.uc.Posts.Create(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, post)
}

func (h *AdsHTTPHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.uc.Posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", post)
}

func (h *AdsHTTPHandler) ListPosts(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}
	page, err := h.uc.Posts.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

// CommentPost appends the caller's comment to a post
func (h *AdsHTTPHandler) CommentPost(c *fiber.Ctx) error {
	var req usecase.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	post, err := h.uc.Posts.Comment(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, post)
}

// Categories

func (h *AdsHTTPHandler) CreateCategory(c *fiber.Ctx) error {
	var req usecase.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}
	category, err := h.uc.Categories.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, category)
}

func (h *AdsHTTPHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.uc.Categories.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", categories)
}
