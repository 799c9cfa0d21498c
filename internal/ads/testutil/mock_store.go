package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	authmodel "adclad/internal/auth/domain/model"
	sharedrepo "adclad/internal/shared/repository"
)

// MockStore is a testify mock of repository.Store for any model
type MockStore[T any] struct {
	mock.Mock
}

func one[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) GetOneByID(ctx context.Context, id string) (*T, error) {
	return one[T](m.Called(ctx, id))
}

func (m *MockStore[T]) GetOne(ctx context.Context, condition bson.M, projection bson.M) (*T, error) {
	return one[T](m.Called(ctx, condition, projection))
}

func (m *MockStore[T]) Find(ctx context.Context, condition bson.M) ([]T, error) {
	args := m.Called(ctx, condition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

// Create returns its input when the mock was set up with a nil document
// and no error, which covers the common "store accepts anything" case
func (m *MockStore[T]) Create(ctx context.Context, doc *T) (*T, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil && args.Error(1) == nil {
		return doc, nil
	}
	return one[T](args)
}

func (m *MockStore[T]) UpdateOne(ctx context.Context, id string, updates bson.M, opts sharedrepo.UpdateOptions) (*T, error) {
	return one[T](m.Called(ctx, id, updates, opts))
}

func (m *MockStore[T]) UpdateOneByQuery(ctx context.Context, query bson.M, updates bson.M, opts sharedrepo.UpdateOptions) (*T, error) {
	return one[T](m.Called(ctx, query, updates, opts))
}

func (m *MockStore[T]) FindAndPopulate(ctx context.Context, condition bson.M, refs []sharedrepo.Populate, limit int64) ([]T, error) {
	args := m.Called(ctx, condition, refs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) FindOneAndPopulate(ctx context.Context, condition bson.M, refs []sharedrepo.Populate) (*T, error) {
	return one[T](m.Called(ctx, condition, refs))
}

func (m *MockStore[T]) Paginate(ctx context.Context, condition bson.M, opts sharedrepo.QueryOptions) (*sharedrepo.Page[T], error) {
	args := m.Called(ctx, condition, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharedrepo.Page[T]), args.Error(1)
}

func (m *MockStore[T]) Search(ctx context.Context, text string, condition bson.M, opts sharedrepo.QueryOptions) (*sharedrepo.Page[T], error) {
	args := m.Called(ctx, text, condition, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharedrepo.Page[T]), args.Error(1)
}

// MockStores holds one mock per collection of repository.Stores
type MockStores struct {
	Ads        *MockStore[model.Advertisement]
	DefaultAds *MockStore[model.DefaultAdvertisement]
	History    *MockStore[model.AdvertisementHistory]
	Accounts   *MockStore[model.Account]
	Categories *MockStore[model.Category]
	Sponsors   *MockStore[model.Sponsor]
	Events     *MockStore[model.Event]
	Posts      *MockStore[model.Post]
}

// NewMockStores creates fresh mocks for every collection
func NewMockStores() *MockStores {
	return &MockStores{
		Ads:        &MockStore[model.Advertisement]{},
		DefaultAds: &MockStore[model.DefaultAdvertisement]{},
		History:    &MockStore[model.AdvertisementHistory]{},
		Accounts:   &MockStore[model.Account]{},
		Categories: &MockStore[model.Category]{},
		Sponsors:   &MockStore[model.Sponsor]{},
		Events:     &MockStore[model.Event]{},
		Posts:      &MockStore[model.Post]{},
	}
}

// Stores exposes the mocks through the repository contract
func (m *MockStores) Stores() repository.Stores {
	return repository.Stores{
		Ads:        m.Ads,
		DefaultAds: m.DefaultAds,
		History:    m.History,
		Accounts:   m.Accounts,
		Categories: m.Categories,
		Sponsors:   m.Sponsors,
		Events:     m.Events,
		Posts:      m.Posts,
	}
}

// AssertExpectations checks every mock
func (m *MockStores) AssertExpectations(t mock.TestingT) {
	m.Ads.AssertExpectations(t)
	m.DefaultAds.AssertExpectations(t)
	m.History.AssertExpectations(t)
	m.Accounts.AssertExpectations(t)
	m.Categories.AssertExpectations(t)
	m.Sponsors.AssertExpectations(t)
	m.Events.AssertExpectations(t)
	m.Posts.AssertExpectations(t)
}

// Vendor returns a vendor principal with a fresh id
func Vendor() *authmodel.Principal {
	return &authmodel.Principal{ID: primitive.NewObjectID(), Email: "vendor@example.com", Role: authmodel.RoleVendor}
}

// Admin returns an admin principal with a fresh id
func Admin() *authmodel.Principal {
	return &authmodel.Principal{ID: primitive.NewObjectID(), Email: "admin@example.com", Role: authmodel.RoleAdmin}
}

// Balance returns an account holding amount
func Balance(owner primitive.ObjectID, amount float64) *model.Account {
	return &model.Account{Owner: sharedrepo.NewRef(owner), Balance: &amount}
}

// Ad returns a stored advertisement owned by creator
func Ad(creator primitive.ObjectID) *model.Advertisement {
	ad := model.NewAdvertisement(creator)
	ad.ID = primitive.NewObjectID()
	ad.URL = "https://cdn.example.com/a.mp4"
	ad.Duration = 10
	ad.BiddingAmount = 2
	ad.DailyBudget = 50
	ad.MonthlyBudget = 1000
	ad.LocationName = "Bangalore"
	ad.Location = model.NewLocation(12.97, 77.59)
	return ad
}
