package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/nithinvarma411/concizee/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub is the correlation channel between connected browsers and the
// completion gateway. Connections are addressed by an ephemeral,
// server-generated id that dies with the connection; ids are never reused
// and nothing is queued for absent connections.
type Hub struct {
	// Registered clients map: ConnectionID -> Client
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ConnID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conn_id": client.ConnID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ConnID]; ok {
				delete(h.clients, client.ConnID)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"conn_id": client.ConnID})
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an event to exactly the addressed connection. Delivery is
// best-effort: an unknown or closed connection id is a silent no-op.
func (h *Hub) Send(connID uuid.UUID, event string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})

	// Check locally first
	h.mu.RLock()
	client, localFound := h.clients[connID]
	h.mu.RUnlock()

	if localFound {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"conn_id": connID})
			h.unregister <- client
		}
		return
	}

	// Not local: relay through Redis so the owning instance can deliver.
	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_conn_id": connID.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "push_events", envelope)
	}
}

// Connected reports whether the hub currently holds a live connection for
// this instance. Remote instances are not consulted.
func (h *Hub) Connected(connID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to "push_events"; each message names a
	// target connection id and only the instance holding it delivers.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "push_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetConnID string          `json:"target_conn_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		connID, err := uuid.Parse(payload.TargetConnID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		client, ok := h.clients[connID]
		h.mu.RUnlock()

		if ok {
			select {
			case client.Send <- payload.Message:
			default:
				h.unregister <- client
			}
		}
	}
}
