package mongodb

import (
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	sharedrepo "adclad/internal/shared/repository"
)

// Descriptors of the collections owned by the ads module
var (
	AdsDescriptor = sharedrepo.Descriptor{
		Collection:   model.AdsCollection,
		SearchFields: []string{"locationName", "url", "type"},
	}
	DefaultAdsDescriptor = sharedrepo.Descriptor{
		Collection:   model.DefaultAdsCollection,
		SearchFields: []string{"locationName", "url"},
	}

	HistoryDescriptor  = sharedrepo.Descriptor{Collection: model.HistoryCollection}
	AccountsDescriptor = sharedrepo.Descriptor{Collection: model.AccountsCollection}

	CategoriesDescriptor = sharedrepo.Descriptor{
		Collection:   model.CategoriesCollection,
		SearchFields: []string{"name"},
	}
	SponsorsDescriptor = sharedrepo.Descriptor{
		Collection:   model.SponsorsCollection,
		SearchFields: []string{"name", "url"},
	}
	EventsDescriptor = sharedrepo.Descriptor{
		Collection:   model.EventsCollection,
		SearchFields: []string{"title", "description", "locationName"},
	}
	PostsDescriptor = sharedrepo.Descriptor{
		Collection:   model.PostsCollection,
		SearchFields: []string{"title"},
	}
)

// NewStores builds one generic repository per collection on provider
func NewStores(provider sharedrepo.CollectionProvider) repository.Stores {
	return repository.Stores{
		Ads:        sharedrepo.New[model.Advertisement](provider, AdsDescriptor),
		DefaultAds: sharedrepo.New[model.DefaultAdvertisement](provider, DefaultAdsDescriptor),
		History:    sharedrepo.New[model.AdvertisementHistory](provider, HistoryDescriptor),
		Accounts:   sharedrepo.New[model.Account](provider, AccountsDescriptor),
		Categories: sharedrepo.New[model.Category](provider, CategoriesDescriptor),
		Sponsors:   sharedrepo.New[model.Sponsor](provider, SponsorsDescriptor),
		Events:     sharedrepo.New[model.Event](provider, EventsDescriptor),
		Posts:      sharedrepo.New[model.Post](provider, PostsDescriptor),
	}
}

var (
	_ repository.Store[model.Advertisement]        = (*sharedrepo.Repository[model.Advertisement])(nil)
	_ repository.Store[model.AdvertisementHistory] = (*sharedrepo.Repository[model.AdvertisementHistory])(nil)
	_ repository.Store[model.Account]              = (*sharedrepo.Repository[model.Account])(nil)
)
