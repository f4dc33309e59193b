package payment

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
)

func vnpayTestGateway() *VNPay {
	gw := NewVNPay(config.VNPayConfig{
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		TmnCode:    "TMN00001",
		HashSecret: "hash-secret",
		ReturnURL:  "https://shop.example/payment/vnpay/return",
	})
	gw.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}
	return gw
}

func TestVNPayBuildPaymentURL(t *testing.T) {
	gw := vnpayTestGateway()

	payURL, err := gw.BuildPaymentURL(Request{
		OrderRef:  "20260831120000-abcd1234",
		Amount:    2400000,
		OrderInfo: "Thanh toan don hang",
		ClientIP:  "203.0.113.7",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(payURL, gw.cfg.PayURL+"?"))

	parsed, err := url.Parse(payURL)
	require.NoError(t, err)
	query := parsed.Query()

	// VNPay amounts are in hundredths of a dong.
	require.Equal(t, "240000000", query.Get("vnp_Amount"))
	require.Equal(t, "20260831120000-abcd1234", query.Get("vnp_TxnRef"))
	require.Equal(t, "TMN00001", query.Get("vnp_TmnCode"))
	require.Equal(t, "20260831120000", query.Get("vnp_CreateDate"))
	require.NotEmpty(t, query.Get("vnp_SecureHash"))

	// The URL we issue must pass our own callback verification.
	require.True(t, gw.VerifyCallback(query))
}

func TestVNPayVerifyCallbackRejectsTampering(t *testing.T) {
	gw := vnpayTestGateway()

	payURL, err := gw.BuildPaymentURL(Request{OrderRef: "ref-1", Amount: 100000, ClientIP: "203.0.113.7"})
	require.NoError(t, err)
	parsed, err := url.Parse(payURL)
	require.NoError(t, err)

	query := parsed.Query()
	query.Set("vnp_Amount", "1")
	require.False(t, gw.VerifyCallback(query))

	query = parsed.Query()
	query.Del("vnp_SecureHash")
	require.False(t, gw.VerifyCallback(query))
}

func TestVNPayVerifyCallbackIgnoresHashType(t *testing.T) {
	gw := vnpayTestGateway()

	payURL, err := gw.BuildPaymentURL(Request{OrderRef: "ref-2", Amount: 100000, ClientIP: "203.0.113.7"})
	require.NoError(t, err)
	parsed, err := url.Parse(payURL)
	require.NoError(t, err)

	query := parsed.Query()
	query.Set("vnp_SecureHashType", "HmacSHA512")
	require.True(t, gw.VerifyCallback(query))

	// Gateways may uppercase the hash on the way back.
	query.Set("vnp_SecureHash", strings.ToUpper(query.Get("vnp_SecureHash")))
	require.True(t, gw.VerifyCallback(query))
}

func TestVNPayChargeMissingConfig(t *testing.T) {
	gw := NewVNPay(config.VNPayConfig{})
	_, err := gw.Charge(context.Background(), Request{OrderRef: "x", Amount: 1000})
	require.Error(t, err)
}

func TestVNPayChargeReturnsRedirect(t *testing.T) {
	gw := vnpayTestGateway()
	result, err := gw.Charge(context.Background(), Request{OrderRef: "ref-3", Amount: 500000, ClientIP: "203.0.113.7"})
	require.NoError(t, err)
	require.False(t, result.Paid)
	require.Equal(t, "ref-3", result.TransactionRef)
	require.Contains(t, result.PayURL, "vnp_SecureHash=")
}
