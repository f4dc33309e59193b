package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/config"
)

const (
	MethodMoMo         = "momo"
	MethodVNPay        = "vnpay"
	MethodGooglePay    = "googlepay"
	MethodBankTransfer = "banktransfer"
	MethodCOD          = "cod"
)

// Request is what a gateway needs to start a charge.
type Request struct {
	OrderRef  string
	Amount    float64 // VND
	OrderInfo string
	ClientIP  string
}

// Result is the outcome of a single charge attempt. Paid means the gateway
// confirmed the money immediately; redirect gateways return a PayURL and get
// confirmed later through their IPN.
type Result struct {
	TransactionRef string
	PayURL         string
	Message        string
	Paid           bool
}

type Gateway interface {
	Name() string
	Charge(ctx context.Context, req Request) (*Result, error)
}

// fallbackOrder is the fixed production priority. The requested gateway is
// tried first, then everything else in this order with COD last. Yes, that
// means a bank-transfer checkout can fall back to Google Pay; this mirrors
// live behavior.
var fallbackOrder = []string{MethodMoMo, MethodVNPay, MethodGooglePay, MethodBankTransfer, MethodCOD}

// AttemptOrder returns the gateway names to try for a requested method.
// Unknown methods just get the default list.
func AttemptOrder(requested string) []string {
	order := make([]string, 0, len(fallbackOrder)+1)
	known := false
	for _, name := range fallbackOrder {
		if name == requested {
			known = true
			break
		}
	}
	if known {
		order = append(order, requested)
	}
	for _, name := range fallbackOrder {
		if name != requested {
			order = append(order, name)
		}
	}
	return order
}

// Registry holds the configured gateways keyed by name.
type Registry map[string]Gateway

func NewRegistry(cfg *config.Config) Registry {
	client := &http.Client{Timeout: 15 * time.Second}
	return Registry{
		MethodMoMo:         NewMoMo(cfg.MoMo, client),
		MethodVNPay:        NewVNPay(cfg.VNPay),
		MethodGooglePay:    NewSimulated(MethodGooglePay),
		MethodBankTransfer: NewSimulated(MethodBankTransfer),
		MethodCOD:          COD{},
	}
}
