package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event is what gets pushed to connected clients: contact requests
// arriving, requests being accepted, project invitations.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const (
	EventContactRequest  = "contact.request"
	EventContactAccepted = "contact.accepted"
	EventMemberAdded     = "project.member_added"
)

// Hub tracks websocket connections per user and fans events out to them.
// Delivery is best effort: a user with no open connection simply misses
// the event.
type Hub struct {
	clients        map[uint]map[*websocket.Conn]bool
	mu             sync.RWMutex
	logger         *zap.Logger
	allowedOrigins []string
}

func NewHub(logger *zap.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		clients:        make(map[uint]map[*websocket.Conn]bool),
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

// Push sends event to every open connection of userID.
func (h *Hub) Push(userID uint, event Event) {
	h.mu.RLock()
	conns, exists := h.clients[userID]
	if !exists || len(conns) == 0 {
		h.mu.RUnlock()
		return
	}

	connsCopy := make([]*websocket.Conn, 0, len(conns))
	for conn := range conns {
		connsCopy = append(connsCopy, conn)
	}
	h.mu.RUnlock()

	for _, conn := range connsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.logger.Warn("failed to set write deadline", zap.Uint("user_id", userID), zap.Error(err))
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("failed to push event", zap.Uint("user_id", userID), zap.Error(err))
			h.remove(userID, conn)
			conn.Close()
		}
	}
}

// Serve upgrades the request and keeps the connection registered for
// userID until it closes.
func (h *Hub) Serve(ctx *gin.Context, userID uint) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Warn("failed to set read deadline", zap.Error(err))
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()

	defer func() {
		h.remove(userID, conn)
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	if err := conn.WriteJSON(Event{Type: "connected"}); err != nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket closed unexpectedly", zap.Uint("user_id", userID), zap.Error(err))
			}
			break
		}
	}
}

func (h *Hub) remove(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.clients[userID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}
