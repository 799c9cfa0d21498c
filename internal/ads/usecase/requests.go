package usecase

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/model"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

// Request limits
const (
	maxDuration      = 30
	maxSearchLength  = 50
	minSortLength    = 3
	maxSortLength    = 50
	minEventImages   = 1
	maxEventImages   = 8
	defaultSortField = "updatedAt"
)

// Status fields an ad status patch may target
const (
	StatusFieldActive   = "isActive"
	StatusFieldApproved = "isApproved"
)

// LocationInput is the latitude/longitude pair clients send
type LocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l *LocationInput) location() (model.Location, bool) {
	if l == nil || l.Latitude == nil || l.Longitude == nil {
		return nil, false
	}
	return model.NewLocation(*l.Latitude, *l.Longitude), true
}

func validURI(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func positive(ve *apperrors.ValidationErrors, field string, v *float64, required bool) {
	if v == nil {
		if required {
			ve.Add(field, field+" is required", nil)
		}
		return
	}
	if *v <= 0 {
		ve.Add(field, field+" must be positive", *v)
	}
}

func requireID(ve *apperrors.ValidationErrors, id string) {
	if strings.TrimSpace(id) == "" {
		ve.Add("_id", "_id is required", nil)
	}
}

func validateMedia(ve *apperrors.ValidationErrors, adType model.AdType, rawURL string) {
	if !adType.Valid() {
		ve.Add("type", "type must be image or video", adType)
	}
	if !validURI(rawURL) {
		ve.Add("url", "url must be a valid URI", rawURL)
	}
}

func validateLocation(ve *apperrors.ValidationErrors, loc *LocationInput) {
	if _, ok := loc.location(); !ok {
		ve.Add("location", "location requires latitude and longitude", nil)
	}
}

// AdvertisementRequest is the create and full-update payload of an ad
type AdvertisementRequest struct {
	ID            string         `json:"_id,omitempty"`
	Type          model.AdType   `json:"type"`
	URL           string         `json:"url"`
	Duration      *float64       `json:"duration"`
	BiddingAmount *float64       `json:"biddingAmount"`
	DailyBudget   *float64       `json:"dailyBudget"`
	MonthlyBudget *float64       `json:"monthlyBudget"`
	LocationName  string         `json:"locationName"`
	Location      *LocationInput `json:"location"`
	Radius        *float64       `json:"radius,omitempty"`
}

// Validate checks the payload. withID is set for updates.
func (r AdvertisementRequest) Validate(withID bool) error {
	ve := apperrors.NewValidationErrors()
	if withID {
		requireID(ve, r.ID)
	}
	validateMedia(ve, r.Type, r.URL)
	positive(ve, "duration", r.Duration, true)
	if r.Duration != nil && *r.Duration > maxDuration {
		ve.Add("duration", fmt.Sprintf("duration must be at most %d", maxDuration), *r.Duration)
	}
	positive(ve, "biddingAmount", r.BiddingAmount, true)
	positive(ve, "dailyBudget", r.DailyBudget, true)
	positive(ve, "monthlyBudget", r.MonthlyBudget, true)
	positive(ve, "radius", r.Radius, false)
	validateLocation(ve, r.Location)
	return ve.ToAppError()
}

func (r AdvertisementRequest) apply(ad *model.Advertisement) {
	ad.Type = r.Type
	ad.URL = r.URL
	ad.Duration = *r.Duration
	ad.BiddingAmount = *r.BiddingAmount
	ad.DailyBudget = *r.DailyBudget
	ad.MonthlyBudget = *r.MonthlyBudget
	ad.LocationName = r.LocationName
	ad.Location, _ = r.Location.location()
	if r.Radius != nil {
		ad.Radius = *r.Radius
	}
}

// updates returns the stored field set of a validated payload
func (r AdvertisementRequest) updates() bson.M {
	loc, _ := r.Location.location()
	set := bson.M{
		"type":          r.Type,
		"url":           r.URL,
		"duration":      *r.Duration,
		"biddingAmount": *r.BiddingAmount,
		"dailyBudget":   *r.DailyBudget,
		"monthlyBudget": *r.MonthlyBudget,
		"locationName":  r.LocationName,
		"location":      loc,
	}
	if r.Radius != nil {
		set["radius"] = *r.Radius
	}
	return set
}

// DefaultAdvertisementRequest is the create and update payload of a default ad
type DefaultAdvertisementRequest struct {
	ID           string         `json:"_id,omitempty"`
	Type         model.AdType   `json:"type"`
	URL          string         `json:"url"`
	Duration     *float64       `json:"duration"`
	LocationName string         `json:"locationName"`
	Location     *LocationInput `json:"location,omitempty"`
	Radius       *float64       `json:"radius,omitempty"`
}

// Validate checks the payload. withID is set for updates.
func (r DefaultAdvertisementRequest) Validate(withID bool) error {
	ve := apperrors.NewValidationErrors()
	if withID {
		requireID(ve, r.ID)
	}
	validateMedia(ve, r.Type, r.URL)
	positive(ve, "duration", r.Duration, true)
	if r.Duration != nil && *r.Duration > maxDuration {
		ve.Add("duration", fmt.Sprintf("duration must be at most %d", maxDuration), *r.Duration)
	}
	positive(ve, "radius", r.Radius, false)
	if r.Location != nil {
		validateLocation(ve, r.Location)
	}
	return ve.ToAppError()
}

func (r DefaultAdvertisementRequest) updates() bson.M {
	set := bson.M{
		"type":         r.Type,
		"url":          r.URL,
		"duration":     *r.Duration,
		"locationName": r.LocationName,
	}
	if loc, ok := r.Location.location(); ok {
		set["location"] = loc
	}
	if r.Radius != nil {
		set["radius"] = *r.Radius
	}
	return set
}

// ListRequest is the pagination payload shared by every admin listing
type ListRequest struct {
	Sort       string   `json:"sort" query:"sort"`
	Order      *float64 `json:"order" query:"order"`
	Limit      *float64 `json:"limit" query:"limit"`
	Skip       *float64 `json:"skip" query:"skip"`
	SearchText string   `json:"searchText" query:"searchText"`
	IsActive   *bool    `json:"isActive,omitempty" query:"isActive"`
}

// Options validates the request and fills the listing defaults
func (r ListRequest) Options(defaultLimit int) (sharedrepo.QueryOptions, error) {
	ve := apperrors.NewValidationErrors()
	if r.Sort != "" {
		if n := utf8.RuneCountInString(r.Sort); n < minSortLength || n > maxSortLength {
			ve.Add("sort", fmt.Sprintf("sort must be between %d and %d characters", minSortLength, maxSortLength), r.Sort)
		}
	}
	if r.Order != nil && *r.Order > 1 {
		ve.Add("order", "order must be at most 1", *r.Order)
	}
	if utf8.RuneCountInString(r.SearchText) > maxSearchLength {
		ve.Add("searchText", fmt.Sprintf("searchText must be at most %d characters", maxSearchLength), nil)
	}
	if err := ve.ToAppError(); err != nil {
		return sharedrepo.QueryOptions{}, err
	}

	opts := sharedrepo.QueryOptions{
		Skip:  r.Skip,
		Limit: r.Limit,
		Sort:  r.Sort,
		Order: r.Order,
	}
	if opts.Sort == "" {
		opts.Sort = defaultSortField
	}
	if opts.Order == nil {
		opts.Order = sharedrepo.Num(-1)
	}
	if opts.Limit == nil {
		opts.Limit = sharedrepo.Num(float64(defaultLimit))
	}
	return opts, nil
}

// StatusRequest toggles one boolean flag of a document
type StatusRequest struct {
	ID     string `json:"_id"`
	Status *bool  `json:"status"`
	Field  string `json:"field,omitempty"`
}

// Validate checks the payload against the fields the caller may toggle
func (r StatusRequest) Validate(fields ...string) error {
	ve := apperrors.NewValidationErrors()
	requireID(ve, r.ID)
	if r.Status == nil {
		ve.Add("status", "status is required", nil)
	}
	if r.Field != "" {
		known := false
		for _, f := range fields {
			if r.Field == f {
				known = true
				break
			}
		}
		if !known {
			ve.Add("field", "field must be one of "+strings.Join(fields, ", "), r.Field)
		}
	}
	return ve.ToAppError()
}

func (r StatusRequest) field() string {
	if r.Field == "" {
		return StatusFieldActive
	}
	return r.Field
}

// IDRequest carries the target of a delete or lookup
type IDRequest struct {
	ID string `json:"_id"`
}

// SponsorRequest is the create and update payload of a sponsor
type SponsorRequest struct {
	ID        string   `json:"_id,omitempty"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	SortOrder *float64 `json:"sortOrder,omitempty"`
}

// Validate checks the payload. withID is set for updates.
func (r SponsorRequest) Validate(withID bool) error {
	ve := apperrors.NewValidationErrors()
	if withID {
		requireID(ve, r.ID)
	}
	if strings.TrimSpace(r.Name) == "" {
		ve.Add("name", "name is required", nil)
	}
	if !validURI(r.URL) {
		ve.Add("url", "url must be a valid URI", r.URL)
	}
	return ve.ToAppError()
}

func (r SponsorRequest) updates() bson.M {
	set := bson.M{"name": strings.TrimSpace(r.Name), "url": r.URL}
	if r.SortOrder != nil {
		set["sortOrder"] = *r.SortOrder
	}
	return set
}

// EventRequest is the create and update payload of an event
type EventRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	LocationName string         `json:"locationName"`
	Location     *LocationInput `json:"location"`
	Images       []model.Media  `json:"images"`
}

// Validate checks the payload
func (r EventRequest) Validate() error {
	ve := apperrors.NewValidationErrors()
	if strings.TrimSpace(r.Title) == "" {
		ve.Add("title", "title is required", nil)
	}
	validateLocation(ve, r.Location)
	if n := len(r.Images); n < minEventImages || n > maxEventImages {
		ve.Add("images", fmt.Sprintf("images must hold between %d and %d items", minEventImages, maxEventImages), n)
	}
	for i, img := range r.Images {
		if !img.Type.Valid() || !validURI(img.URL) {
			ve.Add(fmt.Sprintf("images[%d]", i), "image requires a valid type and url", img.URL)
		}
	}
	return ve.ToAppError()
}

func (r EventRequest) updates() bson.M {
	loc, _ := r.Location.location()
	return bson.M{
		"title":        strings.TrimSpace(r.Title),
		"description":  r.Description,
		"locationName": r.LocationName,
		"location":     loc,
		"images":       r.Images,
	}
}

// PostRequest is the create payload of a post
type PostRequest struct {
	Title    string `json:"title"`
	ImgURL   string `json:"imgUrl"`
	Category string `json:"category"`
}

// Validate checks the payload
func (r PostRequest) Validate() error {
	ve := apperrors.NewValidationErrors()
	if strings.TrimSpace(r.Title) == "" {
		ve.Add("title", "title is required", nil)
	}
	if !validURI(r.ImgURL) {
		ve.Add("imgUrl", "imgUrl must be a valid URI", r.ImgURL)
	}
	if strings.TrimSpace(r.Category) == "" {
		ve.Add("category", "category is required", nil)
	}
	return ve.ToAppError()
}

// CommentRequest appends a comment to a post
type CommentRequest struct {
	PostID  string `json:"_id"`
	Comment string `json:"comment"`
	Reply   string `json:"reply,omitempty"`
}

// Validate checks the payload
func (r CommentRequest) Validate() error {
	ve := apperrors.NewValidationErrors()
	requireID(ve, r.PostID)
	if strings.TrimSpace(r.Comment) == "" {
		ve.Add("comment", "comment is required", nil)
	}
	return ve.ToAppError()
}

// CategoryRequest is the create payload of a category
type CategoryRequest struct {
	Name   string `json:"name"`
	ImgURL string `json:"imgUrl"`
}

// Validate checks the payload
func (r CategoryRequest) Validate() error {
	ve := apperrors.NewValidationErrors()
	if strings.TrimSpace(r.Name) == "" {
		ve.Add("name", "name is required", nil)
	}
	if r.ImgURL != "" && !validURI(r.ImgURL) {
		ve.Add("imgUrl", "imgUrl must be a valid URI", r.ImgURL)
	}
	return ve.ToAppError()
}
