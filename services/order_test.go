package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/payment"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   float64
	}{
		{"empty cart", 0, 0},
		{"first kilogram free", 1, 0},
		{"just over a kilogram", 1.5, 30_000},
		{"full first band", 31, 30_000},
		{"second band", 32, 60_000},
		{"heavy wardrobe order", 95, 120_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ShippingCost(tt.weight))
		})
	}
}

func TestGenerateOrderRef(t *testing.T) {
	ref := generateOrderRef()
	parts := strings.Split(ref, "-")
	require.Len(t, parts, 2)
	require.Len(t, parts[0], 14) // yyyymmddhhmmss
	require.Len(t, parts[1], 8)
	require.NotEqual(t, ref, generateOrderRef())
}

func TestChargeWithFallbackCODSettlesAndAwardsPoints(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")
	cfg := &config.Config{Reward: config.RewardConfig{EarnRate: 10, PointsPerSet: 100, SetValue: 50_000}}
	gateways := payment.Registry{payment.MethodCOD: payment.COD{}}

	order := &models.Order{
		OrderRef:      "20260831120000-cod00001",
		UserID:        "u1",
		TotalAmount:   1_500_000,
		PaymentMethod: payment.MethodCOD,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(order).Error)

	result, via, err := chargeWithFallback(context.Background(), db, gateways, cfg, order, "203.0.113.7")
	require.NoError(t, err)
	require.Equal(t, payment.MethodCOD, via)
	require.True(t, result.Paid)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusProcessing, stored.Status)
	require.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	require.True(t, stored.IsPaid)

	rp, err := GetRewardAccount(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 15, rp.Balance) // floor(1,500,000 / 1,000,000 * 10)
	require.Equal(t, 15, rp.Lifetime)

	var attempts []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	require.Equal(t, models.PaymentAttemptSuccess, attempts[0].Status)
	require.Equal(t, payment.MethodCOD, attempts[0].Gateway)
}

func TestChargeWithFallbackExhaustionMarksFailed(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")
	cfg := &config.Config{Reward: config.RewardConfig{EarnRate: 10}}
	gateways := payment.Registry{
		payment.MethodGooglePay:    &payment.Simulated{},
		payment.MethodBankTransfer: &payment.Simulated{},
	}

	order := &models.Order{
		OrderRef:      "20260831120000-fail0001",
		UserID:        "u1",
		TotalAmount:   800_000,
		PaymentMethod: payment.MethodGooglePay,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(order).Error)

	_, _, err := chargeWithFallback(context.Background(), db, gateways, cfg, order, "203.0.113.7")
	require.Error(t, err)
	require.Equal(t, http.StatusBadGateway, StatusOf(err))

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
	require.False(t, stored.IsPaid)

	// Every attempted gateway leaves its failed row behind.
	var attempts []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&attempts).Error)
	require.Len(t, attempts, 2)
	for _, a := range attempts {
		require.Equal(t, models.PaymentAttemptFailed, a.Status)
	}
}

func TestCancelOrderRestoresStockPointsAndVoucher(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")

	product := models.Product{Name: "Sofa go soi", SalePrice: 5_000_000, Stock: 3, Active: true, Weight: 40}
	require.NoError(t, db.Create(&product).Error)

	redeemedAt := time.Now()
	voucher := models.Voucher{
		Code:       "FURNI-CANCEL0001",
		UserID:     "u1",
		Value:      100_000,
		Status:     models.VoucherRedeemed,
		Source:     models.VoucherSourceRedeem,
		ExpiresAt:  time.Now().AddDate(0, 0, 30),
		RedeemedAt: &redeemedAt,
	}
	require.NoError(t, db.Create(&voucher).Error)

	order := models.Order{
		OrderRef:       "20260831120000-cncl0001",
		UserID:         "u1",
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		PointsSpent:    200,
		PointsDiscount: 100_000,
		VoucherID:      &voucher.ID,
		TotalAmount:    9_800_000,
		Items: []models.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, UnitPrice: product.SalePrice, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	cancelled, err := CancelOrder(db, "u1", order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	var storedProduct models.Product
	require.NoError(t, db.First(&storedProduct, "id = ?", product.ID).Error)
	require.Equal(t, 5, storedProduct.Stock)

	rp, err := GetRewardAccount(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 200, rp.Balance)
	require.Equal(t, 0, rp.Lifetime) // refunds do not count toward the tier

	var storedVoucher models.Voucher
	require.NoError(t, db.First(&storedVoucher, "id = ?", voucher.ID).Error)
	require.Equal(t, models.VoucherActive, storedVoucher.Status)
	require.Nil(t, storedVoucher.RedeemedAt)

	// Terminal now: a second cancel is rejected.
	_, err = CancelOrder(db, "u1", order.ID)
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, StatusOf(err))
}

func TestCancelOrderWrongOwner(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")

	order := models.Order{
		OrderRef:      "20260831120000-own00001",
		UserID:        "u1",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   500_000,
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := CancelOrder(db, "u2", order.ID)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, StatusOf(err))
}
