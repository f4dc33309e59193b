package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/services"
)

// POST /api/v1/payments/momo/ipn
// MoMo expects 204 on acknowledgement; anything else makes it retry.
func MoMoIPNHandler(db *gorm.DB, gateways payment.Registry, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ipn payment.IPN
		if err := c.ShouldBindJSON(&ipn); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid IPN payload"})
			return
		}

		result, err := services.ConfirmMoMoIPN(db, gateways, cfg, ipn)
		if err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		if result.AlreadyProcessed {
			c.JSON(http.StatusOK, gin.H{"message": "already processed", "order_ref": result.OrderRef})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GET /api/v1/payments/vnpay/return
// Browser redirect back from the VNPay payment page.
func VNPayReturnHandler(db *gorm.DB, gateways payment.Registry, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := services.ConfirmVNPayCallback(db, gateways, cfg, c.Request.URL.Query())
		if err != nil {
			c.JSON(services.StatusOf(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /api/v1/payments/vnpay/ipn
// VNPay's server-side notification; answers in its RspCode convention.
func VNPayIPNHandler(db *gorm.DB, gateways payment.Registry, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := services.ConfirmVNPayCallback(db, gateways, cfg, c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"RspCode": "97", "Message": err.Error()})
			return
		}
		if result.AlreadyProcessed {
			c.JSON(http.StatusOK, gin.H{"RspCode": "02", "Message": "Order already confirmed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
	}
}
