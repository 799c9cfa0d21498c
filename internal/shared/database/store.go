package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"adclad/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStoreClosed is returned by operations on a Store after Close
var ErrStoreClosed = errors.New("store is closed")

// Config holds connection settings for the document store
type Config struct {
	URI               string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName      string        `env:"DATABASE_NAME" envDefault:"adclad"`
	ConnectionTimeout time.Duration `env:"CONNECTION_TIMEOUT" envDefault:"30s"`
	MaxPoolSize       uint64        `env:"MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize       uint64        `env:"MIN_POOL_SIZE" envDefault:"2"`
}

// Store is the process-wide handle on the document store. It is opened once
// at startup, shared by every repository and closed at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger

	mu     sync.RWMutex
	closed bool
}

// IndexSpec describes an index to create on a collection at startup
type IndexSpec struct {
	Collection string
	Model      mongo.IndexModel
}

// Open connects to the store and verifies the connection with a ping
func Open(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is required")
	}
	if cfg.DatabaseName == "" {
		return nil, errors.New("database name is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectionTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"database_name": cfg.DatabaseName,
	}).Info("MongoDB connection established")

	return NewStore(client, cfg.DatabaseName, log), nil
}

// NewStore wraps an already connected client
func NewStore(client *mongo.Client, databaseName string, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Store{
		client: client,
		db:     client.Database(databaseName),
		logger: log,
	}
}

// Database returns the underlying database
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Collection returns a handle on the named collection
func (s *Store) Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection {
	return s.db.Collection(name, opts...)
}

// Ping checks the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.client.Ping(ctx, nil)
}

// EnsureIndexes creates the given indexes. Existing identical indexes are a no-op on the server.
func (s *Store) EnsureIndexes(ctx context.Context, specs []IndexSpec) error {
	for _, spec := range specs {
		if _, err := s.db.Collection(spec.Collection).Indexes().CreateOne(ctx, spec.Model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", spec.Collection, err)
		}
	}
	return nil
}

// DropDatabase removes the whole database. Used by the seed tool with --reset.
func (s *Store) DropDatabase(ctx context.Context) error {
	return s.db.Drop(ctx)
}

// Close disconnects from the store. It is safe to call more than once.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	s.logger.Info("MongoDB connection closed")
	return nil
}

// DefaultIndexes are the indexes every deployment needs
func DefaultIndexes() []IndexSpec {
	return []IndexSpec{
		{Collection: "users", Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{Collection: "ads", Model: mongo.IndexModel{Keys: bson.D{{Key: "location", Value: "2d"}}}},
		{Collection: "ads", Model: mongo.IndexModel{Keys: bson.D{{Key: "creator", Value: 1}, {Key: "isDeleted", Value: 1}}}},
		{Collection: "defaultads", Model: mongo.IndexModel{Keys: bson.D{{Key: "location", Value: "2d"}}}},
		{Collection: "events", Model: mongo.IndexModel{Keys: bson.D{{Key: "location", Value: "2d"}}}},
		{Collection: "accounts", Model: mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}}}},
		{Collection: "adshistories", Model: mongo.IndexModel{Keys: bson.D{{Key: "advertisement", Value: 1}}}},
	}
}
