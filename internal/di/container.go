package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"adclad/internal/ads"
	adsconfig "adclad/internal/ads/config"
	"adclad/internal/auth"
	authconfig "adclad/internal/auth/config"
	"adclad/internal/shared/database"
	"adclad/internal/shared/eventbus"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// Container owns the process-wide handles and the modules built on them
type Container struct {
	mu sync.RWMutex
	// Module instances
	AuthModule *auth.AuthModule
	AdsModule  *ads.AdsModule
	// Connections
	Store    *database.Store
	Redis    *redis.Client
	provider sharedrepo.CollectionProvider
	// EventBus carries advertisement changes to the feed and the stream
	EventBus *eventbus.EventBus
	// Logger
	Logger logger.Logger
}

// NewContainer creates an empty container
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Container{
		EventBus: eventbus.NewEventBus(log),
		Logger:   log,
	}
}

// InitializeDatabase opens the document store and creates the default indexes
func (c *Container) InitializeDatabase(ctx context.Context, cfg database.Config) error {
	store, err := database.Open(ctx, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.EnsureIndexes(ctx, database.DefaultIndexes()); err != nil {
		_ = store.Close(context.Background())
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Store = store
	c.provider = store
	return nil
}

// UseProvider makes the modules read and write through provider instead of an opened store
func (c *Container) UseProvider(provider sharedrepo.CollectionProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = provider
}

// InitializeAuth initializes the authentication module
func (c *Container) InitializeAuth(cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return errors.New("database must be initialized before auth module")
	}

	authModule, err := auth.NewAuthModule(c.provider, cfg, nil, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	return nil
}

// InitializeAds initializes the ads module. When Redis is enabled the
// connection is verified before the event stream is attached.
func (c *Container) InitializeAds(ctx context.Context, cfg *adsconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return errors.New("database must be initialized before ads module")
	}
	if cfg == nil {
		cfg = adsconfig.Default()
	}

	var client redis.Cmdable
	if cfg.Redis.Enabled {
		rc := adsconfig.NewRedisClient(cfg.Redis)
		if err := rc.Ping(ctx).Err(); err != nil {
			_ = rc.Close()
			return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr(), err)
		}
		c.Redis = rc
		client = rc
	}

	adsModule, err := ads.NewAdsModule(c.provider, cfg, c.EventBus, client, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create ads module: %w", err)
	}
	c.AdsModule = adsModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetAdsModule returns the ads module instance
func (c *Container) GetAdsModule() *ads.AdsModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AdsModule
}

// HealthCheck pings every open connection
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Store != nil {
		if err := c.Store.Ping(ctx); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup shuts modules down in reverse order of initialization, then closes the connections
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.AdsModule != nil {
		if err := c.AdsModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop ads module: %w", err))
		}
		c.AdsModule = nil
	}
	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.Redis = nil
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		c.Store = nil
	}
	c.provider = nil

	return errors.Join(errs...)
}

// Close gracefully shuts down everything in the container with a timeout
func (c *Container) Close() error {
	c.Logger.Info("Closing DI container resources...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("Cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("DI container resources closed")
	return nil
}
