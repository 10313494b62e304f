package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// wsClient serializes writes; gorilla connections allow one writer at a time.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *wsClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// NotificationHub keeps the open sockets of each user and pushes committed
// notifications to them.
type NotificationHub struct {
	mu       sync.RWMutex
	clients  map[uint]map[*wsClient]bool
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewNotificationHub(log *logrus.Logger, allowedOrigins []string) *NotificationHub {
	h := &NotificationHub{
		clients: make(map[uint]map[*wsClient]bool),
		log:     log,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

func (h *NotificationHub) register(userID uint, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*wsClient]bool)
	}
	h.clients[userID][c] = true
}

func (h *NotificationHub) unregister(userID uint, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, exists := h.clients[userID]; exists {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Connections reports how many sockets the user has open.
func (h *NotificationHub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends the notification to every socket of its recipient. Failed
// sockets are dropped; the stored notification is unaffected.
func (h *NotificationHub) Publish(n models.Notification) {
	h.mu.RLock()
	clients := h.clients[n.UserID]
	// Copy so the lock is not held while writing
	targets := make([]*wsClient, 0, len(clients))
	for c := range clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	message := gin.H{"type": "notification", "notification": toNotificationResponse(n)}
	for _, c := range targets {
		if err := c.writeJSON(message); err != nil {
			h.log.WithFields(logrus.Fields{"user_id": n.UserID, "notification_id": n.ID}).
				WithError(err).Warn("Failed to push notification, dropping socket")
			h.unregister(n.UserID, c)
			c.conn.Close()
		}
	}
}

// ServeWS upgrades an authenticated request into a notification socket.
func (h *NotificationHub) ServeWS(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated", "kind": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &wsClient{conn: conn}
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(userID, client)
	defer func() {
		h.unregister(userID, client)
		conn.Close()
		h.log.WithField("user_id", userID).Debug("WebSocket connection closed")
	}()

	if err := client.writeJSON(gin.H{"type": "connected", "message": "WebSocket connection established"}); err != nil {
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
				if err := client.write(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithField("user_id", userID).WithError(err).Warn("WebSocket error")
			}
			return
		}
	}
}
