package adminControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

type PromoVoucherInput struct {
	Code          string  `json:"code" binding:"required"`
	UserID        string  `json:"user_id"` // empty = usable by anyone, once
	Value         float64 `json:"value" binding:"required,gt=0"`
	MinOrderValue float64 `json:"min_order_value"`
	ValidDays     int     `json:"valid_days" binding:"required,gt=0"`
}

// POST /api/v1/admin/vouchers
// Creates a promotional voucher outside the points-redemption path.
func CreateVoucher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PromoVoucherInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		voucher := models.Voucher{
			Code:          input.Code,
			UserID:        input.UserID,
			Value:         input.Value,
			MinOrderValue: input.MinOrderValue,
			Status:        models.VoucherActive,
			Source:        models.VoucherSourcePromo,
			ExpiresAt:     time.Now().AddDate(0, 0, input.ValidDays),
		}
		if err := db.Create(&voucher).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Voucher code already exists"})
			return
		}
		c.JSON(http.StatusCreated, voucher)
	}
}

// GET /api/v1/admin/vouchers
func ListVouchers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vouchers []models.Voucher
		q := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if err := q.Limit(200).Find(&vouchers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vouchers"})
			return
		}
		c.JSON(http.StatusOK, vouchers)
	}
}

// DELETE /api/v1/admin/vouchers/:id
// Only unused vouchers can be withdrawn.
func DeleteVoucher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid voucher ID"})
			return
		}

		res := db.Where("id = ? AND status = ?", id, models.VoucherActive).Delete(&models.Voucher{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete voucher"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Voucher not found or already redeemed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Voucher deleted"})
	}
}
