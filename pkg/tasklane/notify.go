package tasklane

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tasklane/pkg/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin browser clients are expected; session tokens gate
		// access, not the Origin header.
		return true
	},
}

// Hub fans notifications out to the websocket connections of the user they
// belong to. A user can hold several connections at once, one per open tab.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	publish    chan hubMessage
	log        zerolog.Logger
}

type hubMessage struct {
	userID models.UserID
	data   []byte
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID models.UserID
	send   chan []byte
}

// NewHub starts the fan-out loop and returns the hub.
func NewHub(log zerolog.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		publish:    make(chan hubMessage, 64),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.publish:
			for c := range h.clients {
				if c.userID != msg.userID {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					// Slow consumer. Drop the connection rather than
					// blocking delivery to everyone else.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Publish pushes a notification to every live connection of the user.
// Delivery is best effort; the stored notification is the durable copy.
func (h *Hub) Publish(userID models.UserID, n *models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal notification")
		return
	}
	h.publish <- hubMessage{userID: userID, data: data}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// Clients do not send application messages; the read loop exists to
		// notice closes and answer pings.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (a *App) handleNotificationsWS(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{hub: a.hub, conn: conn, userID: user.ID, send: make(chan []byte, 16)}
	a.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// notify stores a notification and pushes it to the recipient's open
// websocket connections. Store failures are logged, not surfaced; a missed
// notification should not fail the operation that produced it.
func (a *App) notify(ctx context.Context, workspaceID models.WorkspaceID, userID models.UserID, kind models.NotificationKind, title, body string, data models.JSONMap) {
	n := &models.Notification{
		ID:          models.NewNotificationID(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		Data:        data,
	}
	if err := a.store.CreateNotification(ctx, n); err != nil {
		a.log.Error().Err(err).Str("user", userID.String()).Msg("failed to store notification")
		return
	}
	a.hub.Publish(userID, n)
}

// handleListNotifications lists the current user's notifications, newest
// first per store ordering. ?unread=true narrows to unread ones.
func (a *App) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := a.store.ListNotifications(r.Context(), currentUser(r).ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if r.URL.Query().Get("unread") == "true" {
		unread := notifications[:0]
		for _, n := range notifications {
			if n.ReadAt == nil {
				unread = append(unread, n)
			}
		}
		notifications = unread
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (a *App) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseNotificationID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification ID")
		return
	}
	n, err := a.store.GetNotification(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n == nil || n.UserID != currentUser(r).ID {
		respondError(w, http.StatusNotFound, "notification not found")
		return
	}
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
		if err := a.store.UpdateNotification(r.Context(), n); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, n)
}
