package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestHub_SendToUnknownConnectionIsSilent(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	// Nothing is queued and nothing panics for an absent connection.
	hub.Send(uuid.New(), "botResponse", map[string]string{"response": "dropped"})
	assert.False(t, hub.Connected(uuid.New()))
}

func TestHub_SendDeliversToRegisteredConnection(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, ConnID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.Connected(client.ConnID)
	}, time.Second, 5*time.Millisecond)

	hub.Send(client.ConnID, "botResponse", map[string]string{"response": "hi"})

	select {
	case raw := <-client.Send:
		var envelope struct {
			Event string            `json:"event"`
			Data  map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "botResponse", envelope.Event)
		assert.Equal(t, "hi", envelope.Data["response"])
	case <-time.After(time.Second):
		t.Fatal("expected a delivered message")
	}
}

func TestHub_UnregisterFreesTheConnectionID(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, ConnID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.Connected(client.ConnID)
	}, time.Second, 5*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return !hub.Connected(client.ConnID)
	}, time.Second, 5*time.Millisecond)

	// A send after disconnect is a no-op, never a redelivery to a newcomer.
	hub.Send(client.ConnID, "botResponse", map[string]string{"response": "late"})
}
