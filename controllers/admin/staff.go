package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// ListPendingStaff returns staff accounts awaiting approval.
func ListPendingStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.User
		if err := db.Where("role = ? AND approved = ?", models.RoleStaff, false).
			Select("id", "email", "name", "created_at").
			Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending staff"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

type staffRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ApproveStaff activates a pending staff account.
func ApproveStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req staffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var user models.User
		if err := db.Where("email = ? AND role = ?", req.Email, models.RoleStaff).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff account not found"})
			return
		}

		if err := db.Model(&user).Update("approved", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve staff"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Staff approved"})
	}
}

// PromoteStaff turns an ordinary user into a pending staff account.
func PromoteStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req staffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		res := db.Model(&models.User{}).
			Where("email = ? AND role = ?", req.Email, models.RoleUser).
			Updates(map[string]interface{}{"role": models.RoleStaff, "approved": false})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote user"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User promoted to pending staff"})
	}
}

// RejectStaff demotes a pending staff account back to a regular user.
func RejectStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req staffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if err := db.Model(&models.User{}).
			Where("email = ? AND role = ?", req.Email, models.RoleStaff).
			Updates(map[string]interface{}{"role": models.RoleUser, "approved": true}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject staff"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Staff rejected"})
	}
}
