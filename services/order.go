package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/metrics"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
)

type CreateOrderRequest struct {
	Shipping      models.ShippingInfo `json:"shipping" binding:"required"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	VoucherCode   string              `json:"voucher_code"`
	UsePoints     bool                `json:"use_points"`
	ClientIP      string              `json:"-"`
}

type CreateOrderResult struct {
	Order  *models.Order   `json:"order"`
	PayURL string          `json:"pay_url,omitempty"`
	Via    string          `json:"paid_via,omitempty"`
}

// CreateOrder runs the full checkout: snapshot the cart into an order,
// decrement stock under row locks, apply voucher and points, then walk the
// gateway fallback list until one accepts the charge. Validation failures
// reject before any mutation; gateway exhaustion leaves the order pending
// with its failed attempts on record and surfaces a 502.
func CreateOrder(ctx context.Context, db *gorm.DB, gateways payment.Registry, cfg *config.Config, userID string, req CreateOrderRequest) (*CreateOrderResult, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, BadRequest("cart not found")
	}
	if len(cart.Items) == 0 {
		return nil, BadRequest("cart is empty")
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal, totalWeight float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return BadRequest("product no longer exists: " + item.ProductName)
				}
				return err
			}
			if !product.Active {
				return BadRequest("product is no longer available: " + product.Name)
			}
			if product.Stock < item.Quantity {
				return BadRequest("insufficient stock for product: " + product.Name)
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			subtotal += product.SalePrice * float64(item.Quantity)
			totalWeight += product.Weight * float64(item.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    product.SalePrice,
				RegularPrice: product.RegularPrice,
				Weight:       product.Weight,
				Quantity:     item.Quantity,
			})
		}

		shippingCost := ShippingCost(totalWeight)
		remaining := subtotal + shippingCost

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Items:         orderItems,
			Shipping:      req.Shipping,
			Subtotal:      subtotal,
			ShippingCost:  shippingCost,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     time.Now(),
		}

		if req.VoucherCode != "" {
			voucher, err := redeemVoucher(tx, req.VoucherCode, userID, remaining)
			if err != nil {
				return err
			}
			discount := math.Min(voucher.Value, remaining)
			order.VoucherDiscount = discount
			order.VoucherID = &voucher.ID
			remaining -= discount
		}

		if req.UsePoints {
			rp, err := GetRewardAccount(tx, userID)
			if err != nil {
				return err
			}
			discount, spent := PointsDiscount(rp.Balance, cfg.Reward.PointsPerSet, cfg.Reward.SetValue, remaining)
			if spent > 0 {
				if err := spendPoints(tx, userID, spent, "points applied at checkout", nil); err != nil {
					return err
				}
				order.PointsDiscount = discount
				order.PointsSpent = spent
				remaining -= discount
			}
		}

		order.TotalAmount = remaining

		if remaining == 0 {
			// Nothing due: discounts covered everything.
			order.Status = models.OrderStatusProcessing
			order.PaymentStatus = models.PaymentStatusPaid
			order.IsPaid = true
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Empty the cart now that the snapshot exists.
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	notify(db, userID, "Đơn hàng mới", fmt.Sprintf("Đơn hàng #%s đã được tạo.", order.OrderRef), "order", order.OrderRef)

	if order.TotalAmount == 0 {
		return &CreateOrderResult{Order: &order}, nil
	}

	result, via, err := chargeWithFallback(ctx, db, gateways, cfg, &order, req.ClientIP)
	if err != nil {
		return nil, err
	}
	return &CreateOrderResult{Order: &order, PayURL: result.PayURL, Via: via}, nil
}

// chargeWithFallback tries gateways in the fixed priority order, recording a
// Payment row per attempt. The first acceptance wins; total exhaustion marks
// the order's payment failed and returns a 502-class error.
func chargeWithFallback(ctx context.Context, db *gorm.DB, gateways payment.Registry, cfg *config.Config, order *models.Order, clientIP string) (*payment.Result, string, error) {
	req := payment.Request{
		OrderRef:  order.OrderRef,
		Amount:    order.TotalAmount,
		OrderInfo: "Thanh toan don hang " + order.OrderRef,
		ClientIP:  clientIP,
	}

	for _, name := range payment.AttemptOrder(order.PaymentMethod) {
		gw, ok := gateways[name]
		if !ok {
			continue
		}

		result, err := gw.Charge(ctx, req)
		attempt := models.Payment{
			OrderID: order.ID,
			Gateway: name,
			Amount:  order.TotalAmount,
		}
		if err != nil {
			attempt.Status = models.PaymentAttemptFailed
			attempt.Message = err.Error()
			if dbErr := db.Create(&attempt).Error; dbErr != nil {
				log.Error().Err(dbErr).Str("gateway", name).Str("order_ref", order.OrderRef).Msg("failed to record payment attempt")
			}
			metrics.PaymentAttempts.WithLabelValues(name, "failed").Inc()
			log.Warn().Str("gateway", name).Str("order_ref", order.OrderRef).Err(err).Msg("gateway charge failed, trying next")
			continue
		}

		attempt.Status = models.PaymentAttemptSuccess
		attempt.TransactionRef = result.TransactionRef
		attempt.PayURL = result.PayURL
		attempt.Message = result.Message
		if dbErr := db.Create(&attempt).Error; dbErr != nil {
			log.Error().Err(dbErr).Str("gateway", name).Str("order_ref", order.OrderRef).Msg("failed to record payment attempt")
		}
		metrics.PaymentAttempts.WithLabelValues(name, "success").Inc()

		if err := db.Transaction(func(tx *gorm.DB) error {
			order.Status = models.OrderStatusProcessing
			order.PaymentMethod = name
			if result.Paid {
				order.PaymentStatus = models.PaymentStatusPaid
				order.IsPaid = true
				if err := awardEarnPoints(tx, cfg.Reward, order); err != nil {
					return err
				}
			}
			return tx.Save(order).Error
		}); err != nil {
			return nil, "", err
		}

		log.Info().Str("gateway", name).Str("order_ref", order.OrderRef).Bool("paid", result.Paid).Msg("payment accepted")
		return result, name, nil
	}

	if err := db.Model(order).Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
		log.Error().Err(err).Str("order_ref", order.OrderRef).Msg("failed to mark payment failed")
	}
	return nil, "", BadGateway("all payment gateways failed")
}

// awardEarnPoints credits loyalty points for a paid order inside tx.
func awardEarnPoints(tx *gorm.DB, cfg config.RewardConfig, order *models.Order) error {
	points := EarnedPoints(order.TotalAmount, cfg.EarnRate)
	if points == 0 {
		return nil
	}
	if err := creditPoints(tx, order.UserID, points, models.RewardKindEarn,
		fmt.Sprintf("earned on order %s", order.OrderRef), &order.ID); err != nil {
		return err
	}
	metrics.PointsEarned.Add(float64(points))
	return nil
}

// CancelOrder cancels a pending order: stock goes back, spent points are
// refunded, and a voucher it consumed becomes active again.
func CancelOrder(db *gorm.DB, userID string, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, Forbidden("order belongs to another user")
	}
	if order.Status != models.OrderStatusPending {
		return nil, Conflict("only pending orders can be cancelled")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if order.PointsSpent > 0 {
			if err := creditPoints(tx, userID, order.PointsSpent, models.RewardKindRefund,
				fmt.Sprintf("refund for cancelled order %s", order.OrderRef), &order.ID); err != nil {
				return err
			}
		}

		if order.VoucherID != nil {
			if err := tx.Model(&models.Voucher{}).Where("id = ?", *order.VoucherID).
				Updates(map[string]interface{}{"status": models.VoucherActive, "redeemed_at": nil}).Error; err != nil {
				return err
			}
		}

		order.Status = models.OrderStatusCancelled
		if order.IsPaid {
			order.PaymentStatus = models.PaymentStatusRefunded
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCancelled.Inc()
	notify(db, userID, "Đơn hàng đã hủy", fmt.Sprintf("Đơn hàng #%s đã được hủy.", order.OrderRef), "order", order.OrderRef)
	return &order, nil
}

// ListOrders returns a user's orders, newest first.
func ListOrders(db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder fetches one order by numeric id or order ref, scoped to its owner
// unless ownerID is empty (admin access).
func GetOrder(db *gorm.DB, ownerID, idOrRef string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("Payments").
		Where("id::text = ? OR order_ref = ?", idOrRef, idOrRef).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}
	if ownerID != "" && order.UserID != ownerID {
		return nil, Forbidden("order belongs to another user")
	}
	return &order, nil
}

// UpdateOrderStatus applies an admin status change, guarding the lifecycle:
// pending/processing → completed/cancelled, no edits to terminal states.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		return nil, BadRequest("invalid order status")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("order not found")
		}
		return nil, err
	}
	if order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusCancelled {
		return nil, Conflict("order is already in a terminal state")
	}

	order.Status = status
	if err := db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ShippingCost charges a flat 30,000 VND per started 30kg beyond the first
// kilogram. Free for weightless carts.
func ShippingCost(totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0
	}
	return math.Ceil((totalWeight-1)/30.0) * 30000
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
