package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"teen-coach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TurnUpdate is the payload pushed to a connected client when one of their
// turns finishes processing.
type TurnUpdate struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	TurnId        uuid.UUID `json:"turn_id"`
	Reply         string    `json:"reply"`
	Crisis        bool      `json:"crisis"`
	Intent        string    `json:"intent"`
	RiskLevel     string    `json:"risk_level"`
	CreatedAt     time.Time `json:"created_at"`
}

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
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
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendTurnUpdate pushes a completed turn to every device the user has open.
func (h *Hub) SendTurnUpdate(userID uuid.UUID, update TurnUpdate) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "turn_update",
		"data": update,
	})

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		// Run's unregister case owns closing Send; here we only signal.
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
				h.unregister <- client
			}
		}
	}

	// Publish to Redis for other instances (multi-device across nodes)
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// BroadcastCrisisAlert notifies ALL connected clients. Used for the
// moderation dashboard when a crisis turn is recorded.
func (h *Hub) BroadcastCrisisAlert(alert map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "crisis_alert",
		"data": alert,
	})

	// Signal stalled clients only after releasing the lock; Run needs the
	// write lock to process unregisters.
	var stalled []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.unregister <- client
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": "*", // Wildcard for broadcast
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message arrives,
	// deliver it if the target user is connected locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		// Check for Broadcast
		if payload.TargetUserID == "*" {
			var stalled []*Client
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						stalled = append(stalled, client)
					}
				}
			}
			h.mu.RUnlock()
			for _, client := range stalled {
				h.unregister <- client
			}
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
