package services

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tradepulse/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Envelope wraps every message sent over the stream so one socket can carry
// both market quotes and event notifications.
type Envelope struct {
	Type string `json:"type"` // "quote" or "notification"
	Data any    `json:"data"`
}

type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan Envelope
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	log        *zap.Logger
}

type WebSocketClient struct {
	hub      *WebSocketHub
	conn     *websocket.Conn
	send     chan []byte
	username string
}

func NewWebSocketHub(log *zap.Logger) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan Envelope, 256),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
		log:        log,
	}
}

func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("client connected",
				zap.String("username", client.username),
				zap.Int("total", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("client disconnected", zap.Int("total", len(h.clients)))
			}

		case envelope := <-h.broadcast:
			message, err := json.Marshal(envelope)
			if err != nil {
				h.log.Error("failed to marshal broadcast", zap.Error(err))
				continue
			}

			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastQuote fans a quote out to every connected client. Broadcasts are
// fire-and-forget; when the hub's buffer is full the message is dropped.
func (h *WebSocketHub) BroadcastQuote(stock models.Stock) {
	h.send(Envelope{Type: "quote", Data: stock})
}

// BroadcastNotification fans an event toast out to every connected client.
func (h *WebSocketHub) BroadcastNotification(n models.Notification) {
	h.send(Envelope{Type: "notification", Data: n})
}

func (h *WebSocketHub) send(envelope Envelope) {
	select {
	case h.broadcast <- envelope:
	default:
		h.log.Warn("broadcast buffer full, dropping message", zap.String("type", envelope.Type))
	}
}

func (h *WebSocketHub) RegisterClient(conn *websocket.Conn, username string) *WebSocketClient {
	client := &WebSocketClient{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		username: username,
	}
	h.register <- client
	return client
}

func (c *WebSocketClient) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
	}
}

func (c *WebSocketClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
