package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

// Collection names
const (
	AdsCollection        = "ads"
	DefaultAdsCollection = "defaultads"
	HistoryCollection    = "adshistories"
	AccountsCollection   = "accounts"
	UsersCollection      = "users"
)

// AdType is the media kind of an advertisement
type AdType string

const (
	AdTypeImage AdType = "image"
	AdTypeVideo AdType = "video"
)

// Valid reports whether t is a known media kind
func (t AdType) Valid() bool {
	return t == AdTypeImage || t == AdTypeVideo
}

// Advertisement is a vendor-owned, geotagged ad
type Advertisement struct {
	sharedrepo.Base `bson:",inline"`
	Type            AdType         `json:"type" bson:"type"`
	URL             string         `json:"url" bson:"url"`
	Duration        float64        `json:"duration" bson:"duration"`
	BiddingAmount   float64        `json:"biddingAmount" bson:"biddingAmount"`
	DailyBudget     float64        `json:"dailyBudget" bson:"dailyBudget"`
	MonthlyBudget   float64        `json:"monthlyBudget" bson:"monthlyBudget"`
	LocationName    string         `json:"locationName" bson:"locationName"`
	Location        Location       `json:"location" bson:"location"`
	Radius          float64        `json:"radius" bson:"radius"`
	Creator         sharedrepo.Ref `json:"creator,omitempty" bson:"creator,omitempty"`
	IsApproved      bool           `json:"isApproved" bson:"isApproved"`
	IsActive        bool           `json:"isActive" bson:"isActive"`
	IsDeleted       bool           `json:"isDeleted" bson:"isDeleted"`
}

// NewAdvertisement returns an ad with the stored defaults applied
func NewAdvertisement(creator primitive.ObjectID) *Advertisement {
	return &Advertisement{
		Type:       AdTypeVideo,
		Radius:     1,
		Creator:    sharedrepo.NewRef(creator),
		IsApproved: true,
		IsActive:   true,
	}
}

// Validate checks the stored fields before insert
func (a *Advertisement) Validate() error {
	if a.Type == "" {
		a.Type = AdTypeVideo
	}
	if a.Radius == 0 {
		a.Radius = 1
	}
	ve := apperrors.NewValidationErrors()
	if !a.Type.Valid() {
		ve.Add("type", "type must be image or video", a.Type)
	}
	if a.URL == "" {
		ve.Add("url", "url is required", nil)
	}
	if !a.Location.Valid() {
		ve.Add("location", "location requires latitude and longitude", nil)
	}
	return ve.ToAppError()
}

// DefaultAdvertisement is the admin-owned fallback shown when no paid ad matches
type DefaultAdvertisement struct {
	sharedrepo.Base `bson:",inline"`
	Type            AdType   `json:"type" bson:"type"`
	URL             string   `json:"url" bson:"url"`
	Duration        float64  `json:"duration" bson:"duration"`
	LocationName    string   `json:"locationName" bson:"locationName"`
	Location        Location `json:"location" bson:"location"`
	Radius          float64  `json:"radius" bson:"radius"`
	IsActive        bool     `json:"isActive" bson:"isActive"`
	IsDeleted       bool     `json:"isDeleted" bson:"isDeleted"`
}

// Validate checks the stored fields before insert
func (a *DefaultAdvertisement) Validate() error {
	if a.Type == "" {
		a.Type = AdTypeVideo
	}
	if a.Radius == 0 {
		a.Radius = 1
	}
	ve := apperrors.NewValidationErrors()
	if !a.Type.Valid() {
		ve.Add("type", "type must be image or video", a.Type)
	}
	if a.URL == "" {
		ve.Add("url", "url is required", nil)
	}
	return ve.ToAppError()
}

// Change is one scalar field difference recorded by the audit
type Change struct {
	Key      string      `json:"key" bson:"key"`
	OldValue interface{} `json:"oldValue" bson:"oldValue"`
	NewValue interface{} `json:"newValue" bson:"newValue"`
}

// AdvertisementHistory is an immutable audit record of one ad update
type AdvertisementHistory struct {
	sharedrepo.Base `bson:",inline"`
	Advertisement   sharedrepo.Ref `json:"advertisement" bson:"advertisement"`
	UpdatedBy       sharedrepo.Ref `json:"updatedBy" bson:"updatedBy"`
	Changes         []Change       `json:"changes" bson:"changes"`
}

// Account holds a vendor's spendable balance
type Account struct {
	sharedrepo.Base `bson:",inline"`
	Owner           sharedrepo.Ref `json:"owner" bson:"owner"`
	Balance         *float64       `json:"balance" bson:"balance"`
	IsDeleted       bool           `json:"isDeleted" bson:"isDeleted"`
}

// AdvertisementChange is the payload of every advertisement event
type AdvertisementChange struct {
	AdvertisementID string         `json:"advertisementId"`
	Actor           string         `json:"actor"`
	Changes         []Change       `json:"changes,omitempty"`
	Advertisement   *Advertisement `json:"advertisement,omitempty"`
}
