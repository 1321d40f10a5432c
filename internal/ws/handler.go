package ws

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler bridges fiber routes to gorilla/websocket. Fiber's fasthttp request
// cannot be upgraded directly, so the route is adapted to net/http first.
type Handler struct {
	hub    *Hub
	logger *log.Logger
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{hub: hub, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream is read-only for clients and carries no credentials, so any
	// origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleReadinessWS upgrades the connection and subscribes it to
// readiness_updated events until either side closes.
func (h *Handler) HandleReadinessWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandlerFunc(h.upgrade)(c)
}

func (h *Handler) upgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("WS upgrade error | error=%v", err)
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
