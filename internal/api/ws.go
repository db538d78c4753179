package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"launchops/internal/recon"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Hub fans engine events out to connected dashboard clients. It implements
// recon.Publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*wsClient]bool)}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Publish broadcasts an engine event to every connected client. Slow
// clients drop messages rather than block the engine.
func (h *Hub) Publish(ev recon.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ws: marshal event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Println("ws: client buffer full, dropping event")
		}
	}
}

// Handle upgrades the connection and starts the client pumps.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: failed to upgrade connection: %v", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 256)}
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	client.conn.Close()
}

// readPump discards inbound frames; the feed is one-way. Its job is to
// notice the close.
func (h *Hub) readPump(client *wsClient) {
	defer h.remove(client)

	client.conn.SetReadLimit(4 * 1024)
	client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error: %v", err)
			}
			return
		}
	}
}

// writePump pumps events to the client with periodic pings.
func (h *Hub) writePump(client *wsClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
