package http

import (
	"github.com/gofiber/fiber/v2"

	"adclad/internal/ads/usecase"
	"adclad/internal/shared/response"
)

func (h *AdsHTTPHandler) setupAdsRoutes(router fiber.Router, staff, admin fiber.Handler) {
	router.Put("/", staff, h.CreateAd)
	router.Get("/admin/:id", staff, h.GetAd)
	router.Post("/admin", staff, h.ListAds)
	router.Patch("/", staff, h.UpdateAd)
	router.Patch("/status", staff, h.SetAdStatus)
	router.Delete("/", staff, h.DeleteAd)
	router.Get("/history/:id", admin, h.AdHistory)
}

// CreateAd stores a new advertisement for the caller
func (h *AdsHTTPHandler) CreateAd(c *fiber.Ctx) error {
	var req usecase.AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	ad, err := h.uc.Ads.Create(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

// GetAd returns one advertisement
func (h *AdsHTTPHandler) GetAd(c *fiber.Ctx) error {
	ad, err := h.uc.Ads.Get(c.UserContext(), principal(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", ad)
}

// ListAds returns a page of advertisements
func (h *AdsHTTPHandler) ListAds(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}

	page, err := h.uc.Ads.List(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}

// UpdateAd replaces the editable fields of an advertisement
func (h *AdsHTTPHandler) UpdateAd(c *fiber.Ctx) error {
	var req usecase.AdvertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	ad, err := h.uc.Ads.Update(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

// SetAdStatus toggles isActive or isApproved
func (h *AdsHTTPHandler) SetAdStatus(c *fiber.Ctx) error {
	var req usecase.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	ad, err := h.uc.Ads.SetStatus(c.UserContext(), principal(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, ad)
}

// DeleteAd soft-deletes an advertisement
func (h *AdsHTTPHandler) DeleteAd(c *fiber.Ctx) error {
	var req usecase.IDRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidBody(c)
	}

	if err := h.uc.Ads.Delete(c.UserContext(), principal(c), req.ID); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, response.Success, nil)
}

// AdHistory returns the audit trail of one advertisement
func (h *AdsHTTPHandler) AdHistory(c *fiber.Ctx) error {
	req, ok := listRequest(c)
	if !ok {
		return response.InvalidBody(c)
	}

	page, err := h.uc.Ads.History(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, "", page)
}
