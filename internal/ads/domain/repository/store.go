package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/model"
	sharedrepo "adclad/internal/shared/repository"
)

// Store is the data access contract of one entity kind. The generic
// Mongo repository implements it for every model in this module.
type Store[T any] interface {
	GetOneByID(ctx context.Context, id string) (*T, error)
	GetOne(ctx context.Context, condition bson.M, projection bson.M) (*T, error)
	Find(ctx context.Context, condition bson.M) ([]T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	UpdateOne(ctx context.Context, id string, updates bson.M, opts sharedrepo.UpdateOptions) (*T, error)
	UpdateOneByQuery(ctx context.Context, query bson.M, updates bson.M, opts sharedrepo.UpdateOptions) (*T, error)
	FindAndPopulate(ctx context.Context, condition bson.M, refs []sharedrepo.Populate, limit int64) ([]T, error)
	FindOneAndPopulate(ctx context.Context, condition bson.M, refs []sharedrepo.Populate) (*T, error)
	Paginate(ctx context.Context, condition bson.M, opts sharedrepo.QueryOptions) (*sharedrepo.Page[T], error)
	Search(ctx context.Context, text string, condition bson.M, opts sharedrepo.QueryOptions) (*sharedrepo.Page[T], error)
}

// Stores bundles the collections the ads module reads and writes
type Stores struct {
	Ads        Store[model.Advertisement]
	DefaultAds Store[model.DefaultAdvertisement]
	History    Store[model.AdvertisementHistory]
	Accounts   Store[model.Account]
	Categories Store[model.Category]
	Sponsors   Store[model.Sponsor]
	Events     Store[model.Event]
	Posts      Store[model.Post]
}
