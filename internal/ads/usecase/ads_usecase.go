package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	authmodel "adclad/internal/auth/domain/model"
	apperrors "adclad/internal/shared/errors"
	"adclad/internal/shared/eventbus"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

const (
	advertisementResource = "Advertisement"
	eventSource           = "ads"
)

// AdsUsecaseInterface defines the advertisement use cases
type AdsUsecaseInterface interface {
	Create(ctx context.Context, principal *authmodel.Principal, req AdvertisementRequest) (*model.Advertisement, error)
	Get(ctx context.Context, principal *authmodel.Principal, id string) (*model.Advertisement, error)
	List(ctx context.Context, principal *authmodel.Principal, req ListRequest) (*sharedrepo.Page[model.Advertisement], error)
	Update(ctx context.Context, principal *authmodel.Principal, req AdvertisementRequest) (*model.Advertisement, error)
	SetStatus(ctx context.Context, principal *authmodel.Principal, req StatusRequest) (*model.Advertisement, error)
	Delete(ctx context.Context, principal *authmodel.Principal, id string) error
	History(ctx context.Context, id string, req ListRequest) (*sharedrepo.Page[model.AdvertisementHistory], error)
}

// AdsUsecase implements the advertisement logic
type AdsUsecase struct {
	ads     catalog[model.Advertisement]
	history repository.Store[model.AdvertisementHistory]
	gate    *BalanceGate
	audit   *AuditRecorder
	bus     eventbus.Bus
	config  *config.Config
	logger  logger.Logger
}

// NewAdsUsecase creates a new AdsUsecase. bus may be nil.
func NewAdsUsecase(stores repository.Stores, bus eventbus.Bus, cfg *config.Config, log logger.Logger) *AdsUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AdsUsecase{
		ads:     newCatalog(stores.Ads, advertisementResource),
		history: stores.History,
		gate:    NewBalanceGate(stores.Accounts),
		audit:   NewAuditRecorder(stores.History),
		bus:     bus,
		config:  cfg,
		logger:  log.WithComponent("ads"),
	}
}

// scope limits vendors to the ads they created
func scope(principal *authmodel.Principal) bson.M {
	if principal.IsAdmin() {
		return nil
	}
	return bson.M{"creator": principal.ID}
}

func requirePrincipal(principal *authmodel.Principal) error {
	if principal == nil {
		return apperrors.NewAuthenticationError("Authentication required")
	}
	return nil
}

func (uc *AdsUsecase) publish(ctx context.Context, eventType string, principal *authmodel.Principal, ad *model.Advertisement, changes []model.Change) {
	if uc.bus == nil || ad == nil {
		return
	}
	uc.bus.PublishAndForget(ctx, eventbus.NewEvent(eventType, model.AdvertisementChange{
		AdvertisementID: ad.Hex(),
		Actor:           principal.ID.Hex(),
		Changes:         changes,
		Advertisement:   ad,
	}, eventSource))
}

// Create stores a new ad owned by the caller once the balance gate passes
func (uc *AdsUsecase) Create(ctx context.Context, principal *authmodel.Principal, req AdvertisementRequest) (*model.Advertisement, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	if _, err := uc.gate.Check(ctx, principal, *req.DailyBudget); err != nil {
		return nil, err
	}

	ad := model.NewAdvertisement(principal.ID)
	req.apply(ad)
	created, err := uc.ads.store.Create(ctx, ad)
	if err != nil {
		return nil, err
	}

	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"advertisement_id": created.Hex(),
		"creator":          principal.ID.Hex(),
	}).Info("Advertisement created")
	uc.publish(ctx, eventbus.EventTypeAdvertisementCreated, principal, created, nil)
	return created, nil
}

// Get returns one live ad visible to the caller
func (uc *AdsUsecase) Get(ctx context.Context, principal *authmodel.Principal, id string) (*model.Advertisement, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	return uc.ads.get(ctx, id, scope(principal))
}

// List pages through the ads visible to the caller. A search text switches
// the listing to a text search over the searchable fields.
func (uc *AdsUsecase) List(ctx context.Context, principal *authmodel.Principal, req ListRequest) (*sharedrepo.Page[model.Advertisement], error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	return uc.ads.list(ctx, req, uc.config.DefaultPageLimit, scope(principal), nil)
}

// Update replaces the editable fields of an ad and audits the difference
func (uc *AdsUsecase) Update(ctx context.Context, principal *authmodel.Principal, req AdvertisementRequest) (*model.Advertisement, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	if _, err := uc.gate.Check(ctx, principal, *req.DailyBudget); err != nil {
		return nil, err
	}

	updated, changes, err := uc.updateWithHistory(ctx, principal, req.ID, req.updates())
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, eventbus.EventTypeAdvertisementUpdated, principal, updated, changes)
	return updated, nil
}

// SetStatus toggles isActive, or isApproved for admins
func (uc *AdsUsecase) SetStatus(ctx context.Context, principal *authmodel.Principal, req StatusRequest) (*model.Advertisement, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(StatusFieldActive, StatusFieldApproved); err != nil {
		return nil, err
	}
	field := req.field()
	if field == StatusFieldApproved && !principal.IsAdmin() {
		return nil, apperrors.NewAuthorizationError("Only admins can approve advertisements")
	}

	updated, changes, err := uc.updateWithHistory(ctx, principal, req.ID, bson.M{field: *req.Status})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, eventbus.EventTypeAdvertisementStatus, principal, updated, changes)
	return updated, nil
}

// Delete soft-deletes an ad
func (uc *AdsUsecase) Delete(ctx context.Context, principal *authmodel.Principal, id string) error {
	if err := requirePrincipal(principal); err != nil {
		return err
	}
	deleted, changes, err := uc.updateWithHistory(ctx, principal, id, bson.M{"isDeleted": true})
	if err != nil {
		return err
	}
	uc.publish(ctx, eventbus.EventTypeAdvertisementDeleted, principal, deleted, changes)
	return nil
}

// History pages through the audit records of one ad, newest first
func (uc *AdsUsecase) History(ctx context.Context, id string, req ListRequest) (*sharedrepo.Page[model.AdvertisementHistory], error) {
	oid, err := sharedrepo.ParseID(id)
	if err != nil {
		return nil, err
	}
	if req.Sort == "" {
		req.Sort = "createdAt"
	}
	opts, err := req.Options(uc.config.DefaultPageLimit)
	if err != nil {
		return nil, err
	}
	opts.Populate = []sharedrepo.Populate{{
		Path:   "updatedBy",
		From:   model.UsersCollection,
		Select: []string{"firstName", "lastName", "email", "role"},
	}}
	return uc.history.Paginate(ctx, bson.M{"advertisement": oid}, opts)
}

// updateWithHistory fetches the stored ad, applies updates and writes the
// scalar difference as one history record. The update is not rolled back
// when the history write fails.
func (uc *AdsUsecase) updateWithHistory(ctx context.Context, principal *authmodel.Principal, id string, updates bson.M) (*model.Advertisement, []model.Change, error) {
	old, err := uc.ads.get(ctx, id, scope(principal))
	if err != nil {
		return nil, nil, err
	}
	oldDoc, err := toDocument(old)
	if err != nil {
		return nil, nil, err
	}
	changes := DiffChanges(oldDoc, updates)

	updated, err := uc.ads.update(ctx, id, scope(principal), updates)
	if err != nil {
		return nil, nil, err
	}

	if _, err := uc.audit.Record(ctx, old.ID, principal.ID, changes); err != nil {
		uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"advertisement_id": id,
			"changes":          len(changes),
			"error":            err.Error(),
		}).Error("Advertisement updated without history")
		return nil, nil, err
	}
	return updated, changes, nil
}
