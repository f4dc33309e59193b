package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
)

// VNPay builds signed redirect URLs for the VNPay payment page. There is no
// server-to-server create call; the "charge" succeeds when a valid pay URL
// can be produced, and the money is confirmed via the return/IPN callback.
type VNPay struct {
	cfg config.VNPayConfig
	now func() time.Time
}

func NewVNPay(cfg config.VNPayConfig) *VNPay {
	return &VNPay{cfg: cfg, now: time.Now}
}

func (v *VNPay) Name() string { return MethodVNPay }

func (v *VNPay) Charge(ctx context.Context, req Request) (*Result, error) {
	if v.cfg.TmnCode == "" || v.cfg.HashSecret == "" {
		return nil, fmt.Errorf("vnpay configuration missing")
	}

	payURL, err := v.BuildPaymentURL(req)
	if err != nil {
		return nil, err
	}
	return &Result{
		TransactionRef: req.OrderRef,
		PayURL:         payURL,
		Paid:           false,
	}, nil
}

// BuildPaymentURL assembles the vnp_* query, signs it with HMAC-SHA512 over
// the sorted url-encoded parameters, and returns the full redirect URL.
func (v *VNPay) BuildPaymentURL(req Request) (string, error) {
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", v.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(int64(req.Amount)*100, 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", req.OrderRef)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", v.cfg.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", v.now().Format("20060102150405"))

	hashData := encodeSorted(params)
	secure := hmacSHA512(v.cfg.HashSecret, hashData)

	return v.cfg.PayURL + "?" + hashData + "&vnp_SecureHash=" + secure, nil
}

// VerifyCallback checks vnp_SecureHash on a return or IPN query. The hash
// fields themselves are excluded from the signed data.
func (v *VNPay) VerifyCallback(query url.Values) bool {
	provided := query.Get("vnp_SecureHash")
	if provided == "" {
		return false
	}
	filtered := url.Values{}
	for key, vals := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		for _, val := range vals {
			filtered.Add(key, val)
		}
	}
	expected := hmacSHA512(v.cfg.HashSecret, encodeSorted(filtered))
	return hmac.Equal([]byte(strings.ToLower(provided)), []byte(expected))
}

// encodeSorted url-encodes params in key order, the way VNPay hashes them.
func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(k)))
	}
	return b.String()
}

func hmacSHA512(secret, data string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
