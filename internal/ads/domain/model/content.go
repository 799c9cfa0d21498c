package model

import (
	"time"

	sharedrepo "adclad/internal/shared/repository"
)

// Collection names of the end-user content
const (
	CategoriesCollection = "categories"
	SponsorsCollection   = "sponsors"
	EventsCollection     = "events"
	PostsCollection      = "posts"
)

// Category groups posts
type Category struct {
	sharedrepo.Base `bson:",inline"`
	Name            string `json:"name" bson:"name"`
	ImgURL          string `json:"imgUrl" bson:"imgUrl"`
	IsActive        bool   `json:"isActive" bson:"isActive"`
	IsDeleted       bool   `json:"isDeleted" bson:"isDeleted"`
}

// Sponsor is a logo link shown to end-users in sortOrder
type Sponsor struct {
	sharedrepo.Base `bson:",inline"`
	Name            string  `json:"name" bson:"name"`
	URL             string  `json:"url" bson:"url"`
	SortOrder       float64 `json:"sortOrder" bson:"sortOrder"`
	IsActive        bool    `json:"isActive" bson:"isActive"`
	IsDeleted       bool    `json:"isDeleted" bson:"isDeleted"`
}

// Media is one image or video attached to an event
type Media struct {
	Type AdType `json:"type" bson:"type"`
	URL  string `json:"url" bson:"url"`
}

// Event is an admin-published happening at a location
type Event struct {
	sharedrepo.Base `bson:",inline"`
	Title           string   `json:"title" bson:"title"`
	Description     string   `json:"description" bson:"description"`
	LocationName    string   `json:"locationName" bson:"locationName"`
	Location        Location `json:"location" bson:"location"`
	Images          []Media  `json:"images" bson:"images"`
	IsActive        bool     `json:"isActive" bson:"isActive"`
	IsDeleted       bool     `json:"isDeleted" bson:"isDeleted"`
}

// Comment is a reply left on a post
type Comment struct {
	Comment   string         `json:"comment" bson:"comment"`
	CommentBy sharedrepo.Ref `json:"commentBy" bson:"commentBy"`
	Reply     string         `json:"reply" bson:"reply"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Post is a vendor or admin article in a category
type Post struct {
	sharedrepo.Base `bson:",inline"`
	Title           string         `json:"title" bson:"title"`
	ImgURL          string         `json:"imgUrl" bson:"imgUrl"`
	Category        sharedrepo.Ref `json:"category" bson:"category"`
	Creator         sharedrepo.Ref `json:"creator" bson:"creator"`
	Comments        []Comment      `json:"comments,omitempty" bson:"comments,omitempty"`
	IsActive        bool           `json:"isActive" bson:"isActive"`
	IsDeleted       bool           `json:"isDeleted" bson:"isDeleted"`
}
