package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vraelian/experimental-sub000/internal/telemetry"
)

// wsMessage is the frame pushed to subscribers. Only notices flow today;
// the type field leaves room for other frame kinds.
type wsMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// client is one connected subscriber with a buffered outbound queue.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans domain notifications out to every connected presentation
// client. Register, unregister and broadcast all flow through channels so
// the client set is only ever touched by Run's goroutine.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    map[*client]bool{},
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// A subscriber that cannot keep up is dropped.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// BroadcastNotice pushes one notice frame to every subscriber. Safe to
// call with no subscribers connected.
func (h *Hub) BroadcastNotice(n telemetry.Notice) {
	b, err := json.Marshal(wsMessage{Type: "notice", Payload: n})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- b:
	default:
		h.logger.Printf(`{"level":"warn","msg":"ws_broadcast_dropped"}`)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and subscribes it to the notice feed.
// The stream is push-only; inbound frames are read solely to detect close.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf(`{"level":"error","msg":"ws_upgrade_failed","error":%q}`, err.Error())
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
