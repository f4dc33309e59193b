package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
)

func TestConfirmPaymentSecondDeliveryIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")
	cfg := &config.Config{Reward: config.RewardConfig{EarnRate: 10}}

	order := models.Order{
		OrderRef:      "20260831120000-idem0001",
		UserID:        "u1",
		TotalAmount:   2_000_000,
		PaymentMethod: payment.MethodVNPay,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	attempt := models.Payment{
		OrderID: order.ID,
		Gateway: payment.MethodVNPay,
		Amount:  order.TotalAmount,
		Status:  models.PaymentAttemptSuccess,
	}
	require.NoError(t, db.Create(&attempt).Error)

	first, err := confirmPayment(db, cfg, order.OrderRef, payment.MethodVNPay, "vnp-tx-1", true)
	require.NoError(t, err)
	require.True(t, first.Paid)
	require.False(t, first.AlreadyProcessed)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.True(t, stored.IsPaid)
	require.Equal(t, models.OrderStatusProcessing, stored.Status)
	require.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	rp, err := GetRewardAccount(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 20, rp.Balance)

	// The gateway retries the notification; nothing may change.
	second, err := confirmPayment(db, cfg, order.OrderRef, payment.MethodVNPay, "vnp-tx-1", true)
	require.NoError(t, err)
	require.True(t, second.Paid)
	require.True(t, second.AlreadyProcessed)

	rp, err = GetRewardAccount(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 20, rp.Balance)

	var txs []models.RewardTransaction
	require.NoError(t, db.Where("user_id = ?", "u1").Find(&txs).Error)
	require.Len(t, txs, 1)
}

func TestConfirmPaymentFailureMarksOrderFailed(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")
	cfg := &config.Config{Reward: config.RewardConfig{EarnRate: 10}}

	order := models.Order{
		OrderRef:      "20260831120000-decl0001",
		UserID:        "u1",
		TotalAmount:   700_000,
		PaymentMethod: payment.MethodMoMo,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	attempt := models.Payment{OrderID: order.ID, Gateway: payment.MethodMoMo, Amount: order.TotalAmount, Status: models.PaymentAttemptSuccess}
	require.NoError(t, db.Create(&attempt).Error)

	result, err := confirmPayment(db, cfg, order.OrderRef, payment.MethodMoMo, "momo-tx-1", false)
	require.NoError(t, err)
	require.False(t, result.Paid)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.False(t, stored.IsPaid)
	require.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)

	var storedAttempt models.Payment
	require.NoError(t, db.First(&storedAttempt, "id = ?", attempt.ID).Error)
	require.Equal(t, models.PaymentAttemptFailed, storedAttempt.Status)

	rp, err := GetRewardAccount(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 0, rp.Balance)
}

func TestConfirmPaymentUnknownOrderRef(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{Reward: config.RewardConfig{EarnRate: 10}}

	_, err := confirmPayment(db, cfg, "no-such-ref", payment.MethodVNPay, "tx", true)
	require.Error(t, err)
}
