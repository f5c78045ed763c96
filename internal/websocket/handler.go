package websocket

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a new connection to the hub. A fresh connection id is
// generated per upgrade and announced to the client so it can correlate
// completion requests with this push channel.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := &Client{Hub: hub, Conn: c, ConnID: uuid.New(), Send: make(chan []byte, 256)}
	client.Hub.register <- client

	// Tell the client its id before anything else is pushed.
	hello, _ := json.Marshal(map[string]interface{}{
		"event": "connected",
		"data":  map[string]string{"socketId": client.ConnID.String()},
	})
	client.Send <- hello

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}

// UpgradeHandler is the fiber route for GET /ws.
func UpgradeHandler(hub *Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return websocket.New(func(conn *websocket.Conn) {
				ServeWs(hub, conn)
			})(c)
		}
		return fiber.ErrUpgradeRequired
	}
}
