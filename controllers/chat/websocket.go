package chatControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub is the in-memory connection registry, keyed by chat session. It is
// process-local; messages survive restarts only as rows.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) add(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
}

func (h *Hub) remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions[sessionID], conn)
	if len(h.sessions[sessionID]) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Broadcast sends a message to every connection on a session. The exclusive
// lock serializes writers: gorilla conns support one concurrent writer only.
func (h *Hub) Broadcast(sessionID string, msg *models.ChatMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.sessions[sessionID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("websocket write failed")
		}
	}
}

type wsInbound struct {
	Content string `json:"content"`
}

// GET /ws/:session_id
func WebSocketHandler(db *gorm.DB, rdb *redis.Client, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		if _, err := services.GetChatHistory(db, sessionID); err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hub.add(sessionID, conn)
		defer hub.remove(sessionID, conn)

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var in wsInbound
			if err := json.Unmarshal(raw, &in); err != nil || in.Content == "" {
				continue
			}

			userMsg, err := services.SaveChatMessage(db, sessionID, models.ChatSenderUser, in.Content)
			if err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("failed to save chat message")
				continue
			}
			hub.Broadcast(sessionID, userMsg)

			reply := services.BotReply(c.Request.Context(), rdb, sessionID, in.Content)
			botMsg, err := services.SaveChatMessage(db, sessionID, models.ChatSenderBot, reply)
			if err != nil {
				continue
			}
			hub.Broadcast(sessionID, botMsg)
		}
	}
}
