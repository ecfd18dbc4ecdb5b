package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

type Client struct {
	ID          string
	UserID      uuid.UUID
	CommunityID string
	Conn        *WebSocketConn
	Send        chan []byte
}

type message struct {
	communityID string
	payload     []byte
}

// Hub fans events out to the websocket sessions of one process. Delivery is
// scoped by community; cross-process fanout goes through the Redis bridge.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// BroadcastJSON delivers v to every session of the given community.
func (h *Hub) BroadcastJSON(communityID string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal broadcast payload", "error", err)
		return
	}
	h.broadcast <- message{communityID: communityID, payload: b}
}

// SendToUser delivers data to every session of one user.
func (h *Hub) SendToUser(communityID string, userID uuid.UUID, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.CommunityID == communityID && client.UserID == userID {
			select {
			case client.Send <- payload:
			default:
				// slow consumer, skip rather than block
			}
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			slog.Info("websocket client registered", "client_id", client.ID, "user_id", client.UserID.String())

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				if client.CommunityID != msg.communityID {
					continue
				}
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}
