package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
)

func momoTestConfig(endpoint string) config.MoMoConfig {
	return config.MoMoConfig{
		Endpoint:    endpoint,
		PartnerCode: "PARTNER123",
		AccessKey:   "access-key",
		SecretKey:   "secret-key",
		RedirectURL: "https://shop.example/payment/return",
		IPNURL:      "https://shop.example/api/v1/payments/momo/ipn",
	}
}

func TestMoMoChargeSuccess(t *testing.T) {
	var got momoCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(momoCreateResponse{
			ResultCode: 0,
			Message:    "Success",
			PayURL:     "https://test-payment.momo.vn/pay/abc",
		})
	}))
	defer srv.Close()

	gw := NewMoMo(momoTestConfig(srv.URL), srv.Client())
	result, err := gw.Charge(context.Background(), Request{
		OrderRef:  "20260831120000-abcd1234",
		Amount:    1500000,
		OrderInfo: "Thanh toan don hang",
	})
	require.NoError(t, err)
	require.False(t, result.Paid)
	require.Equal(t, "https://test-payment.momo.vn/pay/abc", result.PayURL)
	require.NotEmpty(t, result.TransactionRef)

	// The request must carry a valid signature over the documented fields.
	require.Equal(t, "PARTNER123", got.PartnerCode)
	require.Equal(t, "1500000", got.Amount)
	require.Equal(t, "captureWallet", got.RequestType)
	require.Equal(t, gw.signCreate(got), got.Signature)
}

func TestMoMoChargeRejectedResultCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(momoCreateResponse{ResultCode: 41, Message: "Duplicated orderId"})
	}))
	defer srv.Close()

	gw := NewMoMo(momoTestConfig(srv.URL), srv.Client())
	_, err := gw.Charge(context.Background(), Request{OrderRef: "dup", Amount: 50000})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Duplicated orderId")
}

func TestMoMoChargeMissingConfig(t *testing.T) {
	gw := NewMoMo(config.MoMoConfig{}, http.DefaultClient)
	_, err := gw.Charge(context.Background(), Request{OrderRef: "x", Amount: 1000})
	require.Error(t, err)
}

func TestMoMoVerifyIPN(t *testing.T) {
	gw := NewMoMo(momoTestConfig("unused"), http.DefaultClient)

	ipn := IPN{
		PartnerCode:  "PARTNER123",
		RequestID:    "req-1",
		Amount:       "1500000",
		OrderID:      "20260831120000-abcd1234",
		OrderInfo:    "Thanh toan don hang",
		OrderType:    "momo_wallet",
		TransID:      "987654321",
		ResultCode:   0,
		Message:      "Success",
		PayType:      "qr",
		ResponseTime: 1756600000000,
	}
	ipn.Signature = hmacSHA256("secret-key",
		"accessKey=access-key"+
			"&amount="+ipn.Amount+
			"&extraData="+
			"&message="+ipn.Message+
			"&orderId="+ipn.OrderID+
			"&orderInfo="+ipn.OrderInfo+
			"&orderType="+ipn.OrderType+
			"&partnerCode="+ipn.PartnerCode+
			"&payType="+ipn.PayType+
			"&requestId="+ipn.RequestID+
			"&responseTime=1756600000000"+
			"&resultCode=0"+
			"&transId="+ipn.TransID)

	require.True(t, gw.VerifyIPN(ipn))

	tampered := ipn
	tampered.Amount = "9999999"
	require.False(t, gw.VerifyIPN(tampered))

	unsigned := ipn
	unsigned.Signature = ""
	require.False(t, gw.VerifyIPN(unsigned))
}
