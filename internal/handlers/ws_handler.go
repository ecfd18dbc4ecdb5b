package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-hub/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WSHandler upgrades authenticated clients onto the event stream. Browsers
// cannot set Authorization headers on websocket requests, so the access token
// travels in the token query parameter.
type WSHandler struct {
	hub *realtime.Hub
	cfg *config.Config
}

func NewWSHandler(hub *realtime.Hub, cfg *config.Config) *WSHandler {
	return &WSHandler{hub: hub, cfg: cfg}
}

// Upgrade validates the token before the connection is upgraded and stores
// the resolved identity in locals for Serve to pick up.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, communityID, err := h.parseToken(c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}

	c.Locals("ws_user_id", userID)
	c.Locals("ws_community_id", communityID)
	return c.Next()
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID := conn.Locals("ws_user_id").(uuid.UUID)
		communityID := conn.Locals("ws_community_id").(string)

		client := &realtime.Client{
			ID:          uuid.NewString(),
			UserID:      userID,
			CommunityID: communityID,
			Conn:        realtime.NewWebSocketConn(conn),
			Send:        make(chan []byte, 64),
		}

		h.hub.RegisterClient(client)
		defer h.hub.UnregisterClient(client)

		go h.writePump(client)
		h.readPump(client)
	})
}

// readPump drains the connection until the client goes away. Inbound frames
// carry no commands; all writes happen over REST.
func (h *WSHandler) readPump(client *realtime.Client) {
	conn := client.Conn.Conn
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "client_id", client.ID, "error", err)
			}
			return
		}
	}
}

func (h *WSHandler) writePump(client *realtime.Client) {
	conn := client.Conn.Conn
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) parseToken(raw string) (uuid.UUID, string, error) {
	if raw == "" {
		return uuid.Nil, "", fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	communityID, _ := claims["community_id"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil || communityID == "" {
		return uuid.Nil, "", fmt.Errorf("malformed identity claims")
	}
	return userID, communityID, nil
}
