package ads

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	adshttp "adclad/internal/ads/adapter/http"
	"adclad/internal/ads/adapter/persistence"
	"adclad/internal/ads/adapter/persistence/mongodb"
	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/repository"
	"adclad/internal/ads/usecase"
	authhttp "adclad/internal/auth/adapter/http"
	"adclad/internal/shared/eventbus"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// AdsModule represents the advertisement and content module
type AdsModule struct {
	stores     repository.Stores
	usecases   adshttp.Usecases
	handler    *adshttp.AdsHTTPHandler
	feed       *adshttp.FeedHandler
	eventStore *persistence.RedisEventStore
	config     *config.Config
	logger     logger.Logger
}

// NewAdsModule creates a new ads module instance.
// A nil bus disables change events; a nil redis client disables the event stream.
func NewAdsModule(provider sharedrepo.CollectionProvider, cfg *config.Config, bus eventbus.Bus, redisClient redis.Cmdable, log logger.Logger) (*AdsModule, error) {
	if provider == nil {
		return nil, errors.New("ads module requires a collection provider")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	stores := mongodb.NewStores(provider)
	usecases := adshttp.Usecases{
		Ads:        usecase.NewAdsUsecase(stores, bus, cfg, log),
		DefaultAds: usecase.NewDefaultAdsUsecase(stores.DefaultAds, cfg, log),
		Sponsors:   usecase.NewSponsorUsecase(stores.Sponsors, cfg, log),
		Events:     usecase.NewEventUsecase(stores.Events, cfg, log),
		Posts:      usecase.NewPostUsecase(stores.Posts, stores.Categories, cfg, log),
		Categories: usecase.NewCategoryUsecase(stores.Categories, log),
	}

	m := &AdsModule{
		stores:   stores,
		usecases: usecases,
		handler:  adshttp.NewAdsHTTPHandler(usecases, log),
		feed:     adshttp.NewFeedHandler(cfg, log),
		config:   cfg,
		logger:   log.WithComponent("ads_module"),
	}

	if bus != nil {
		m.feed.Attach(bus)
		if redisClient != nil {
			m.eventStore = persistence.NewRedisEventStore(redisClient, cfg.Redis.Stream, cfg.Redis.StreamMaxLen, log)
			m.eventStore.Attach(bus)
		}
	}

	return m, nil
}

// RegisterRoutes mounts the REST routes on router
func (m *AdsModule) RegisterRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	m.handler.SetupRoutesWithMiddleware(router, mw)
}

// RegisterFeed mounts the realtime advertisement feed
func (m *AdsModule) RegisterFeed(router fiber.Router, mw *authhttp.AuthMiddleware) {
	m.feed.RegisterRoutes(router, mw)
	m.logger.Infof("Advertisement feed registered on %s", m.config.WebSocketPath)
}

// GetUsecases returns the module's business logic
func (m *AdsModule) GetUsecases() adshttp.Usecases {
	return m.usecases
}

// GetStores returns the module's collections, used by the seeder
func (m *AdsModule) GetStores() repository.Stores {
	return m.stores
}

// GetFeed returns the realtime feed hub
func (m *AdsModule) GetFeed() *adshttp.FeedHandler {
	return m.feed
}

// GetEventStore returns the Redis event stream, nil when disabled
func (m *AdsModule) GetEventStore() *persistence.RedisEventStore {
	return m.eventStore
}

// Stop disconnects every feed client
func (m *AdsModule) Stop() error {
	m.feed.Close()
	return nil
}
