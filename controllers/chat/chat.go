package chatControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/services"
)

type CreateSessionInput struct {
	Topic string `json:"topic"`
}

// POST /api/v1/chat/sessions
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateSessionInput
		_ = c.ShouldBindJSON(&input)

		session, err := services.CreateChatSession(db, c.GetString("user_id"), input.Topic)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat session"})
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// GET /api/v1/chat/sessions/:sessionID/messages
func GetHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := services.GetChatHistory(db, c.Param("sessionID"))
		if err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// POST /api/v1/chat/sessions/:sessionID/messages
// HTTP fallback for clients without websockets: stores the message, answers
// with the bot reply, and pushes both to any live connections.
func SendMessage(db *gorm.DB, rdb *redis.Client, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")

		var input SendMessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userMsg, err := services.SaveChatMessage(db, sessionID, models.ChatSenderUser, input.Content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}
		hub.Broadcast(sessionID, userMsg)

		reply := services.BotReply(c.Request.Context(), rdb, sessionID, input.Content)
		botMsg, err := services.SaveChatMessage(db, sessionID, models.ChatSenderBot, reply)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bot reply"})
			return
		}
		hub.Broadcast(sessionID, botMsg)

		c.JSON(http.StatusOK, botMsg)
	}
}
