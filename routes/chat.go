package routes

import (
	"github.com/gin-gonic/gin"

	chatControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/chat"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/middleware"
)

// SetupChatRoutes registers the chat REST endpoints and the websocket. The
// websocket lives at the engine root, outside /api/v1.
func SetupChatRoutes(r *gin.Engine, api *gin.RouterGroup, deps Deps) {
	chat := api.Group("/chat")
	chat.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		chat.POST("/sessions", chatControllers.CreateSession(deps.DB))
		chat.GET("/sessions/:sessionID/messages", chatControllers.GetHistory(deps.DB))
		chat.POST("/sessions/:sessionID/messages", chatControllers.SendMessage(deps.DB, deps.Redis, deps.ChatHub))
	}

	r.GET("/ws/:session_id", chatControllers.WebSocketHandler(deps.DB, deps.Redis, deps.ChatHub))
}
