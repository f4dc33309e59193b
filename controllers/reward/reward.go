package rewardControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/services"
)

// GET /api/v1/rewards
func GetSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := services.GetRewardSummary(db, c.GetString("user_id"))
		if err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// GET /api/v1/rewards/history
func GetHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := services.ListRewardHistory(db, c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// GET /api/v1/rewards/vouchers
func GetVouchers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vouchers, err := services.ListVouchers(db, c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, vouchers)
	}
}

// POST /api/v1/rewards/vouchers
// Burns points for a new voucher.
func RedeemVoucher(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		voucher, err := services.RedeemPointsToVoucher(db, cfg.Reward, c.GetString("user_id"))
		if err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, voucher)
	}
}
