package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
)

// MoMo implements the captureWallet flow of the MoMo v2 gateway API.
type MoMo struct {
	cfg    config.MoMoConfig
	client *http.Client
}

func NewMoMo(cfg config.MoMoConfig, client *http.Client) *MoMo {
	return &MoMo{cfg: cfg, client: client}
}

func (m *MoMo) Name() string { return MethodMoMo }

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      string `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
	RequestID  string `json:"requestId"`
}

func (m *MoMo) Charge(ctx context.Context, req Request) (*Result, error) {
	if m.cfg.PartnerCode == "" || m.cfg.SecretKey == "" {
		return nil, fmt.Errorf("momo configuration missing")
	}

	requestID := uuid.NewString()
	amount := strconv.FormatInt(int64(req.Amount), 10)

	body := momoCreateRequest{
		PartnerCode: m.cfg.PartnerCode,
		AccessKey:   m.cfg.AccessKey,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     req.OrderRef,
		OrderInfo:   req.OrderInfo,
		RedirectURL: m.cfg.RedirectURL,
		IPNURL:      m.cfg.IPNURL,
		ExtraData:   "",
		RequestType: "captureWallet",
	}
	body.Signature = m.signCreate(body)

	payload, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach momo: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("momo API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out momoCreateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse momo response: %w", err)
	}
	if out.ResultCode != 0 {
		return nil, fmt.Errorf("momo error (%d): %s", out.ResultCode, out.Message)
	}
	if out.PayURL == "" {
		return nil, fmt.Errorf("momo returned empty pay URL")
	}

	return &Result{
		TransactionRef: requestID,
		PayURL:         out.PayURL,
		Message:        out.Message,
		Paid:           false, // confirmed later via IPN
	}, nil
}

// signCreate builds the raw signature string in the field order MoMo
// documents for /create and HMAC-SHA256 signs it.
func (m *MoMo) signCreate(r momoCreateRequest) string {
	raw := "accessKey=" + r.AccessKey +
		"&amount=" + r.Amount +
		"&extraData=" + r.ExtraData +
		"&ipnUrl=" + r.IPNURL +
		"&orderId=" + r.OrderID +
		"&orderInfo=" + r.OrderInfo +
		"&partnerCode=" + r.PartnerCode +
		"&redirectUrl=" + r.RedirectURL +
		"&requestId=" + r.RequestID +
		"&requestType=" + r.RequestType
	return hmacSHA256(m.cfg.SecretKey, raw)
}

// IPN is the JSON body MoMo posts to the notify URL.
type IPN struct {
	PartnerCode  string `json:"partnerCode"`
	AccessKey    string `json:"accessKey"`
	RequestID    string `json:"requestId"`
	Amount       string `json:"amount"`
	OrderID      string `json:"orderId"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      string `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

// VerifyIPN recomputes the signature over the documented IPN field order.
func (m *MoMo) VerifyIPN(ipn IPN) bool {
	raw := "accessKey=" + m.cfg.AccessKey +
		"&amount=" + ipn.Amount +
		"&extraData=" + ipn.ExtraData +
		"&message=" + ipn.Message +
		"&orderId=" + ipn.OrderID +
		"&orderInfo=" + ipn.OrderInfo +
		"&orderType=" + ipn.OrderType +
		"&partnerCode=" + ipn.PartnerCode +
		"&payType=" + ipn.PayType +
		"&requestId=" + ipn.RequestID +
		"&responseTime=" + strconv.FormatInt(ipn.ResponseTime, 10) +
		"&resultCode=" + strconv.Itoa(ipn.ResultCode) +
		"&transId=" + ipn.TransID
	expected := hmacSHA256(m.cfg.SecretKey, raw)
	return hmac.Equal([]byte(expected), []byte(ipn.Signature))
}

func hmacSHA256(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
