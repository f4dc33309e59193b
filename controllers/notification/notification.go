package notificationControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/services"
)

// GET /api/v1/notifications
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := services.ListNotifications(db, c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/v1/notifications/:id/read
func MarkRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
			return
		}

		if err := services.MarkNotificationRead(db, c.GetString("user_id"), uint(id)); err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
	}
}
