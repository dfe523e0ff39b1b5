package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestHub() *Hub {
	h := NewHub(nil, noopLogger{})
	go h.Run()
	return h
}

func registeredClient(t *testing.T, h *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	before := clientCount(h, userID)
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, buffer)}
	h.register <- client

	// register is handled on the hub goroutine; wait until it lands.
	deadline := time.After(time.Second)
	for clientCount(h, userID) == before {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		case <-time.After(time.Millisecond):
		}
	}
	return client
}

func clientCount(h *Hub, userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func TestSendTurnUpdateDelivers(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	client := registeredClient(t, h, userID, 1)

	h.SendTurnUpdate(userID, TurnUpdate{Reply: "hello"})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), "turn_update")
		assert.Contains(t, string(msg), "hello")
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestSendTurnUpdateDropsStalledClient(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	client := registeredClient(t, h, userID, 0)

	// The unbuffered Send channel has no reader, so the client is stalled.
	// The hub must unregister it exactly once without panicking.
	h.SendTurnUpdate(userID, TurnUpdate{Reply: "first"})

	deadline := time.After(time.Second)
	for clientCount(h, userID) != 0 {
		select {
		case <-deadline:
			t.Fatal("stalled client never unregistered")
		case <-time.After(time.Millisecond):
		}
	}

	// Send must be closed by the unregister path.
	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("Send channel was not closed")
	}
}

func TestBroadcastCrisisAlertSkipsStalledClients(t *testing.T) {
	h := newTestHub()
	stalledID := uuid.New()
	healthyID := uuid.New()
	registeredClient(t, h, stalledID, 0)
	healthy := registeredClient(t, h, healthyID, 1)

	h.BroadcastCrisisAlert(map[string]interface{}{"chat_session_id": "s1"})

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "crisis_alert")
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive the alert")
	}

	deadline := time.After(time.Second)
	for clientCount(h, stalledID) != 0 {
		select {
		case <-deadline:
			t.Fatal("stalled client never unregistered")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestUnregisterRemovesOneDevice(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	first := registeredClient(t, h, userID, 1)
	_ = registeredClient(t, h, userID, 1)

	assert.Equal(t, 2, clientCount(h, userID))

	h.unregister <- first

	deadline := time.After(time.Second)
	for clientCount(h, userID) != 1 {
		select {
		case <-deadline:
			t.Fatal("device was not removed")
		case <-time.After(time.Millisecond):
		}
	}
}
