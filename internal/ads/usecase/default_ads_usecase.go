package usecase

import (
	"context"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// DefaultAdsUsecaseInterface defines the admin fallback-ad use cases
type DefaultAdsUsecaseInterface interface {
	Create(ctx context.Context, req DefaultAdvertisementRequest) (*model.DefaultAdvertisement, error)
	Get(ctx context.Context, id string) (*model.DefaultAdvertisement, error)
	List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.DefaultAdvertisement], error)
	Update(ctx context.Context, req DefaultAdvertisementRequest) (*model.DefaultAdvertisement, error)
	SetStatus(ctx context.Context, req StatusRequest) (*model.DefaultAdvertisement, error)
	Delete(ctx context.Context, id string) error
}

// DefaultAdsUsecase implements DefaultAdsUsecaseInterface
type DefaultAdsUsecase struct {
	ads    catalog[model.DefaultAdvertisement]
	config *config.Config
	logger logger.Logger
}

// NewDefaultAdsUsecase creates a new DefaultAdsUsecase
func NewDefaultAdsUsecase(store repository.Store[model.DefaultAdvertisement], cfg *config.Config, log logger.Logger) *DefaultAdsUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &DefaultAdsUsecase{
		ads:    newCatalog(store, "Default advertisement"),
		config: cfg,
		logger: log.WithComponent("defaultads"),
	}
}

func (uc *DefaultAdsUsecase) Create(ctx context.Context, req DefaultAdvertisementRequest) (*model.DefaultAdvertisement, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	ad := &model.DefaultAdvertisement{
		Type:         req.Type,
		URL:          req.URL,
		Duration:     *req.Duration,
		LocationName: req.LocationName,
		Radius:       1,
		IsActive:     true,
	}
	ad.Location, _ = req.Location.location()
	if req.Radius != nil {
		ad.Radius = *req.Radius
	}
	created, err := uc.ads.store.Create(ctx, ad)
	if err != nil {
		return nil, err
	}
	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"default_ad_id": created.Hex(),
	}).Info("Default advertisement created")
	return created, nil
}

func (uc *DefaultAdsUsecase) Get(ctx context.Context, id string) (*model.DefaultAdvertisement, error) {
	return uc.ads.get(ctx, id, nil)
}

func (uc *DefaultAdsUsecase) List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.DefaultAdvertisement], error) {
	return uc.ads.list(ctx, req, uc.config.DefaultPageLimit, nil, nil)
}

func (uc *DefaultAdsUsecase) Update(ctx context.Context, req DefaultAdvertisementRequest) (*model.DefaultAdvertisement, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	return uc.ads.update(ctx, req.ID, nil, req.updates())
}

func (uc *DefaultAdsUsecase) SetStatus(ctx context.Context, req StatusRequest) (*model.DefaultAdvertisement, error) {
	return uc.ads.setStatus(ctx, req)
}

func (uc *DefaultAdsUsecase) Delete(ctx context.Context, id string) error {
	return uc.ads.remove(ctx, id, nil)
}
