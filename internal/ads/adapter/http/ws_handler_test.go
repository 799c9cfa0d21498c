package http

import (
	"context"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adclad/internal/ads/config"
	"adclad/internal/ads/domain/model"
	"adclad/internal/shared/eventbus"
)

// greeting takes the connected message every new client starts with
func greeting(t *testing.T, c *feedClient) {
	t.Helper()
	msg := <-c.send
	require.Equal(t, MessageTypeConnected, msg.Type)
	assert.Equal(t, c.id, msg.Data.(fiber.Map)["subscriberId"])
}

func TestFeedHandler_RegisterQueuesGreeting(t *testing.T) {
	h := NewFeedHandler(nil, nil)
	c := h.register()
	require.Len(t, c.send, 1)
	greeting(t, c)
}

func TestFeedHandler_BroadcastQueuesOnEveryClient(t *testing.T) {
	h := NewFeedHandler(nil, nil)
	a, b := h.register(), h.register()
	assert.Equal(t, 2, h.ClientCount())

	event := eventbus.NewEvent(eventbus.EventTypeAdvertisementCreated, model.AdvertisementChange{AdvertisementID: "abc"}, "ads")
	require.NoError(t, h.Broadcast(context.Background(), event))

	for _, c := range []*feedClient{a, b} {
		greeting(t, c)
		msg := <-c.send
		assert.Equal(t, eventbus.EventTypeAdvertisementCreated, msg.Type)
		assert.Equal(t, "abc", msg.Data.(model.AdvertisementChange).AdvertisementID)
	}
}

func TestFeedHandler_FullQueueDropsEvent(t *testing.T) {
	cfg := config.Default()
	cfg.ClientSendChannelBuffer = 2
	h := NewFeedHandler(cfg, nil)
	c := h.register()

	event := eventbus.NewEvent(eventbus.EventTypeAdvertisementUpdated, nil, "ads")
	require.NoError(t, h.Broadcast(context.Background(), event))
	require.NoError(t, h.Broadcast(context.Background(), event))

	require.Len(t, c.send, 2)
	greeting(t, c)
	assert.Equal(t, eventbus.EventTypeAdvertisementUpdated, (<-c.send).Type)
}

func TestFeedHandler_AttachAndClose(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	h := NewFeedHandler(nil, nil)
	h.Attach(bus)
	for _, et := range eventbus.AdvertisementEventTypes() {
		assert.Equal(t, 1, bus.SubscriberCount(et))
	}

	c := h.register()
	greeting(t, c)
	require.NoError(t, bus.Publish(context.Background(), eventbus.NewEvent(eventbus.EventTypeAdvertisementDeleted, nil, "ads")))
	assert.Equal(t, eventbus.EventTypeAdvertisementDeleted, (<-c.send).Type)

	h.Close()
	assert.Equal(t, 0, h.ClientCount())
	_, open := <-c.send
	assert.False(t, open)

	h.unregister(c)
}

func TestFeedHandler_RegisterDuringClose(t *testing.T) {
	h := NewFeedHandler(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := h.register()
			h.unregister(c)
		}()
		go func() {
			defer wg.Done()
			h.Close()
		}()
	}
	wg.Wait()

	h.Close()
	assert.Equal(t, 0, h.ClientCount())
}
