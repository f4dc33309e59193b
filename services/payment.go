package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
)

// ConfirmResult is returned to gateway callbacks. AlreadyProcessed marks the
// idempotent second delivery of the same notification.
type ConfirmResult struct {
	OrderRef         string `json:"order_ref"`
	Paid             bool   `json:"paid"`
	AlreadyProcessed bool   `json:"already_processed"`
}

// ConfirmMoMoIPN verifies the IPN signature and applies the idempotent paid
// update for the order it references.
func ConfirmMoMoIPN(db *gorm.DB, gateways payment.Registry, cfg *config.Config, ipn payment.IPN) (*ConfirmResult, error) {
	momo, ok := gateways[payment.MethodMoMo].(*payment.MoMo)
	if !ok {
		return nil, BadGateway("momo gateway not configured")
	}
	if !momo.VerifyIPN(ipn) {
		return nil, Unauthorized("invalid momo signature")
	}

	success := ipn.ResultCode == 0
	return confirmPayment(db, cfg, ipn.OrderID, payment.MethodMoMo, ipn.TransID, success)
}

// ConfirmVNPayCallback handles both the browser return and the IPN; VNPay
// signs them the same way.
func ConfirmVNPayCallback(db *gorm.DB, gateways payment.Registry, cfg *config.Config, query url.Values) (*ConfirmResult, error) {
	vnpay, ok := gateways[payment.MethodVNPay].(*payment.VNPay)
	if !ok {
		return nil, BadGateway("vnpay gateway not configured")
	}
	if !vnpay.VerifyCallback(query) {
		return nil, Unauthorized("invalid vnpay signature")
	}

	orderRef := query.Get("vnp_TxnRef")
	success := query.Get("vnp_ResponseCode") == "00"
	return confirmPayment(db, cfg, orderRef, payment.MethodVNPay, query.Get("vnp_TransactionNo"), success)
}

// confirmPayment is the shared idempotent status update. A second callback
// for an already-paid order changes nothing and reports AlreadyProcessed.
func confirmPayment(db *gorm.DB, cfg *config.Config, orderRef, gateway, transactionRef string, success bool) (*ConfirmResult, error) {
	var order models.Order
	if err := db.Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("order not found for ref " + orderRef)
		}
		return nil, err
	}

	if order.IsPaid {
		return &ConfirmResult{OrderRef: orderRef, Paid: true, AlreadyProcessed: true}, nil
	}

	if !success {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Payment{}).
				Where("order_id = ? AND gateway = ?", order.ID, gateway).
				Update("status", models.PaymentAttemptFailed).Error; err != nil {
				return err
			}
			return tx.Model(&order).Update("payment_status", models.PaymentStatusFailed).Error
		})
		if err != nil {
			return nil, err
		}
		log.Warn().Str("order_ref", orderRef).Str("gateway", gateway).Msg("gateway reported failed payment")
		return &ConfirmResult{OrderRef: orderRef, Paid: false}, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order.IsPaid = true
		order.PaymentStatus = models.PaymentStatusPaid
		order.Status = models.OrderStatusProcessing
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		if transactionRef != "" {
			if err := tx.Model(&models.Payment{}).
				Where("order_id = ? AND gateway = ?", order.ID, gateway).
				Updates(map[string]interface{}{
					"status":          models.PaymentAttemptSuccess,
					"transaction_ref": transactionRef,
				}).Error; err != nil {
				return err
			}
		}
		return awardEarnPoints(tx, cfg.Reward, &order)
	})
	if err != nil {
		return nil, err
	}

	notify(db, order.UserID, "Thanh toán thành công",
		fmt.Sprintf("Đơn hàng #%s đã được thanh toán qua %s.", order.OrderRef, gateway), "payment", order.OrderRef)
	log.Info().Str("order_ref", orderRef).Str("gateway", gateway).Msg("payment confirmed")
	return &ConfirmResult{OrderRef: orderRef, Paid: true}, nil
}
