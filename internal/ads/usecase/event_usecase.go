package usecase

import (
	"context"
	"strings"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// EventUsecaseInterface defines the event use cases
type EventUsecaseInterface interface {
	Create(ctx context.Context, req EventRequest) (*model.Event, error)
	Update(ctx context.Context, id string, req EventRequest) (*model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Event], error)
	SetStatus(ctx context.Context, req StatusRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventUsecase implements EventUsecaseInterface
type EventUsecase struct {
	events catalog[model.Event]
	config *config.Config
	logger logger.Logger
}

// NewEventUsecase creates a new EventUsecase
func NewEventUsecase(store repository.Store[model.Event], cfg *config.Config, log logger.Logger) *EventUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &EventUsecase{
		events: newCatalog(store, "Event"),
		config: cfg,
		logger: log.WithComponent("events"),
	}
}

func (uc *EventUsecase) Create(ctx context.Context, req EventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	event := &model.Event{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		LocationName: req.LocationName,
		Images:       req.Images,
		IsActive:     true,
	}
	event.Location, _ = req.Location.location()
	return uc.events.store.Create(ctx, event)
}

func (uc *EventUsecase) Update(ctx context.Context, id string, req EventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return uc.events.update(ctx, id, nil, req.updates())
}

func (uc *EventUsecase) Get(ctx context.Context, id string) (*model.Event, error) {
	return uc.events.get(ctx, id, nil)
}

func (uc *EventUsecase) List(ctx context.Context, req ListRequest) (*sharedrepo.Page[model.Event], error) {
	return uc.events.list(ctx, req, uc.config.DefaultPageLimit, nil, nil)
}

func (uc *EventUsecase) SetStatus(ctx context.Context, req StatusRequest) (*model.Event, error) {
	return uc.events.setStatus(ctx, req)
}

func (uc *EventUsecase) Delete(ctx context.Context, id string) error {
	return uc.events.remove(ctx, id, nil)
}
