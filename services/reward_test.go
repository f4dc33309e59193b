package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

func TestEarnedPoints(t *testing.T) {
	tests := []struct {
		name string
		paid float64
		rate int
		want int
	}{
		{"one million earns the rate", 1_000_000, 10, 10},
		{"fractions floor down", 999_999, 10, 9},
		{"large order", 25_500_000, 10, 255},
		{"zero paid", 0, 10, 0},
		{"negative paid", -5000, 10, 0},
		{"zero rate", 1_000_000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EarnedPoints(tt.paid, tt.rate))
		})
	}
}

func TestPointsDiscount(t *testing.T) {
	const perSet = 100
	const setValue = 50_000.0

	tests := []struct {
		name         string
		balance      int
		remaining    float64
		wantDiscount float64
		wantSpent    int
	}{
		{"two full sets", 250, 500_000, 100_000, 200},
		{"balance below one set", 99, 500_000, 0, 0},
		{"exactly one set", 100, 500_000, 50_000, 100},
		{"capped at remaining", 1000, 120_000, 120_000, 300},
		{"remaining is a multiple of a set", 1000, 100_000, 100_000, 200},
		{"nothing remaining", 500, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, spent := PointsDiscount(tt.balance, perSet, setValue, tt.remaining)
			require.Equal(t, tt.wantDiscount, discount)
			require.Equal(t, tt.wantSpent, spent)
		})
	}
}

func TestValidateVoucher(t *testing.T) {
	active := func() *models.Voucher {
		return &models.Voucher{
			Code:      "FURNI-VALID00001",
			UserID:    "u1",
			Value:     100_000,
			Status:    models.VoucherActive,
			ExpiresAt: time.Now().AddDate(0, 0, 30),
		}
	}

	require.NoError(t, validateVoucher(active(), "u1", 500_000))

	other := active()
	require.Equal(t, http.StatusForbidden, StatusOf(validateVoucher(other, "u2", 500_000)))

	// Single-use: once REDEEMED, every later request is rejected.
	used := active()
	used.Status = models.VoucherRedeemed
	require.Equal(t, http.StatusConflict, StatusOf(validateVoucher(used, "u1", 500_000)))

	expired := active()
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	require.Equal(t, http.StatusBadRequest, StatusOf(validateVoucher(expired, "u1", 500_000)))

	small := active()
	small.MinOrderValue = 1_000_000
	require.Equal(t, http.StatusBadRequest, StatusOf(validateVoucher(small, "u1", 500_000)))
}

func TestVoucherCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := voucherCode()
		require.Len(t, code, len("FURNI-")+10)
		require.Equal(t, "FURNI-", code[:6])
		require.False(t, seen[code], "voucher codes must not repeat")
		seen[code] = true
	}
}
