package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/auth"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	chatControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/chat"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
)

// Deps is everything the route tree needs.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Config   *config.Config
	Gateways payment.Registry
	Google   *auth.GoogleVerifier
	ChatHub  *chatControllers.Hub
}

// SetupRoutes wires every route group onto the engine.
func SetupRoutes(r *gin.Engine, deps Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	SetupAuthRoutes(api, deps)
	SetupUserRoutes(api, deps)
	SetupOrderRoutes(api, deps)
	SetupPaymentRoutes(api, deps)
	SetupChatRoutes(r, api, deps)
	SetupAdminRoutes(api, deps)
}
