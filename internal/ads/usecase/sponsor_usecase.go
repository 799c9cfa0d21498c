package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// SponsorUsecaseInterface defines the sponsor use cases
type SponsorUsecaseInterface interface {
	Create(ctx context.Context, req SponsorRequest) (*model.Sponsor, error)
	Get(ctx context.Context, id string) (*model.Sponsor, error)
	List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Sponsor], error)
	Update(ctx context.Context, req SponsorRequest) (*model.Sponsor, error)
	SetStatus(ctx context.Context, req StatusRequest) (*model.Sponsor, error)
	Delete(ctx context.Context, id string) error
	Active(ctx context.Context) ([]model.Sponsor, error)
}

// SponsorUsecase implements SponsorUsecaseInterface
type SponsorUsecase struct {
	sponsors catalog[model.Sponsor]
	config   *config.Config
	logger   logger.Logger
}

// NewSponsorUsecase creates a new SponsorUsecase
func NewSponsorUsecase(store repository.Store[model.Sponsor], cfg *config.Config, log logger.Logger) *SponsorUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SponsorUsecase{
		sponsors: newCatalog(store, "Sponsor"),
		config:   cfg,
		logger:   log.WithComponent("sponsors"),
	}
}

func (uc *SponsorUsecase) Create(ctx context.Context, req SponsorRequest) (*model.Sponsor, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	sponsor := &model.Sponsor{
		Name:     strings.TrimSpace(req.Name),
		URL:      req.URL,
		IsActive: true,
	}
	if req.SortOrder != nil {
		sponsor.SortOrder = *req.SortOrder
	}
	return uc.sponsors.store.Create(ctx, sponsor)
}

func (uc *SponsorUsecase) Get(ctx context.Context, id string) (*model.Sponsor, error) {
	return uc.sponsors.get(ctx, id, nil)
}

func (uc *SponsorUsecase) List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Sponsor], error) {
	return uc.sponsors.list(ctx, req, uc.config.DefaultPageLimit, nil, nil)
}

func (uc *SponsorUsecase) Update(ctx context.Context, req SponsorRequest) (*model.Sponsor, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	return uc.sponsors.update(ctx, req.ID, nil, req.updates())
}

func (uc *SponsorUsecase) SetStatus(ctx context.Context, req StatusRequest) (*model.Sponsor, error) {
	return uc.sponsors.setStatus(ctx, req)
}

func (uc *SponsorUsecase) Delete(ctx context.Context, id string) error {
	return uc.sponsors.remove(ctx, id, nil)
}

// Active lists every live, active sponsor in ascending sortOrder
func (uc *SponsorUsecase) Active(ctx context.Context) ([]model.Sponsor, error) {
	page, err := uc.sponsors.store.Paginate(ctx, live(bson.M{"isActive": true}), sharedrepo.QueryOptions{
		Sort:  "sortOrder",
		Order: sharedrepo.Num(1),
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
