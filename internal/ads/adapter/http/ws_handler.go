package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"adclad/internal/ads/config"
	authhttp "adclad/internal/auth/adapter/http"
	authmodel "adclad/internal/auth/domain/model"
	"adclad/internal/shared/eventbus"
	"adclad/internal/shared/logger"
)

const (
	feedReadTimeout  = 60 * time.Second
	feedWriteTimeout = 10 * time.Second

	MessageTypeConnected = "connected"
)

// FeedMessage is one frame written to a realtime feed client
type FeedMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

type feedClient struct {
	id   string
	send chan FeedMessage
}

// FeedHandler streams advertisement change events to connected admins
type FeedHandler struct {
	mu      sync.RWMutex
	clients map[string]*feedClient
	path    string
	buffer  int
	log     logger.Logger
}

// NewFeedHandler creates a FeedHandler
func NewFeedHandler(cfg *config.Config, log logger.Logger) *FeedHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &FeedHandler{
		clients: make(map[string]*feedClient),
		path:    cfg.WebSocketPath,
		buffer:  cfg.ClientSendChannelBuffer,
		log:     log.WithComponent("ads_feed"),
	}
}

// Attach subscribes the feed to every advertisement event on bus
func (h *FeedHandler) Attach(bus eventbus.Bus) {
	bus.SubscribeMany(eventbus.AdvertisementEventTypes(), h.Broadcast)
}

// RegisterRoutes mounts the feed endpoint. Only admins may connect.
func (h *FeedHandler) RegisterRoutes(router fiber.Router, mw *authhttp.AuthMiddleware) {
	router.Use(h.path, mw.Protect(authmodel.RoleAdmin), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get(h.path, websocket.New(h.handleConnection))
}

// Broadcast queues event on every client. A client whose queue is full
// misses the event.
func (h *FeedHandler) Broadcast(_ context.Context, event eventbus.Event) error {
	msg := FeedMessage{Type: event.Type(), Data: event.Data(), Timestamp: event.Timestamp()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- msg:
		default:
			h.log.WithFields(map[string]interface{}{
				"subscriber_id": client.id,
				"event_type":    event.Type(),
			}).Warn("Feed client queue full, dropping event")
		}
	}
	return nil
}

// ClientCount returns the number of connected clients
func (h *FeedHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *FeedHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
}

// register adds a client whose queue already holds the connected greeting.
// The greeting is queued under the lock so Close cannot close the queue first.
func (h *FeedHandler) register() *feedClient {
	client := &feedClient{id: uuid.NewString(), send: make(chan FeedMessage, h.buffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.id] = client
	select {
	case client.send <- FeedMessage{
		Type:      MessageTypeConnected,
		Data:      fiber.Map{"subscriberId": client.id},
		Timestamp: time.Now().UTC(),
	}:
	default:
	}
	return client
}

func (h *FeedHandler) unregister(client *feedClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; ok {
		close(client.send)
		delete(h.clients, client.id)
	}
}

func (h *FeedHandler) handleConnection(conn *websocket.Conn) {
	client := h.register()
	log := h.log.WithFields(map[string]interface{}{"subscriber_id": client.id})
	log.Info("Feed client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.send {
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				log.Warnf("Feed write failed: %v", err)
				return
			}
		}
	}()

	// Reads only detect disconnection; clients send nothing meaningful
	for {
		conn.SetReadDeadline(time.Now().Add(feedReadTimeout))
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("Feed connection error: %v", err)
			}
			break
		}
	}

	h.unregister(client)
	<-done
	log.Info("Feed client disconnected")
}
