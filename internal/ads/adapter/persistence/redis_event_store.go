package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"adclad/internal/shared/eventbus"
	"adclad/internal/shared/logger"
)

// RedisEventStore appends advertisement change events to a Redis stream so
// other processes can consume them
type RedisEventStore struct {
	client redis.Cmdable
	stream string
	maxLen int64
	logger logger.Logger
}

// NewRedisEventStore creates a store writing into stream, trimmed to about maxLen entries
func NewRedisEventStore(client redis.Cmdable, stream string, maxLen int64, log logger.Logger) *RedisEventStore {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedisEventStore{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: log.WithComponent("ads_event_store"),
	}
}

// Attach subscribes the store to every advertisement event on bus
func (r *RedisEventStore) Attach(bus eventbus.Bus) {
	bus.SubscribeMany(eventbus.AdvertisementEventTypes(), r.StoreEvent)
}

// encodeEvent renders event as stream entry fields
func encodeEvent(event eventbus.Event) (map[string]interface{}, error) {
	data, err := json.Marshal(event.Data())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event data: %w", err)
	}
	return map[string]interface{}{
		"type":      event.Type(),
		"source":    event.Source(),
		"data":      string(data),
		"timestamp": event.Timestamp().UnixNano(),
	}, nil
}

// StoreEvent is the bus handler form of Append
func (r *RedisEventStore) StoreEvent(ctx context.Context, event eventbus.Event) error {
	_, err := r.Append(ctx, event)
	return err
}

// Append adds event to the stream and returns the entry id
func (r *RedisEventStore) Append(ctx context.Context, event eventbus.Event) (string, error) {
	values, err := encodeEvent(event)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{"event_type": event.Type()}).Error(err.Error())
		return "", err
	}

	args := &redis.XAddArgs{Stream: r.stream, Values: values}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"stream":     r.stream,
			"event_type": event.Type(),
			"error":      err.Error(),
		}).Error("Failed to store event in Redis")
		return "", err
	}

	r.logger.WithFields(map[string]interface{}{
		"stream":     r.stream,
		"event_type": event.Type(),
		"entry_id":   id,
	}).Debug("Event stored in Redis")
	return id, nil
}

// Ping checks the connection
func (r *RedisEventStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
