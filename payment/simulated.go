package payment

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Simulated stands in for gateways that have no real integration yet
// (Google Pay, bank transfer). It confirms immediately when enabled via
// SIM_GATEWAYS_ENABLED, otherwise every charge fails so the fallback chain
// moves on.
type Simulated struct {
	name    string
	enabled bool
}

func NewSimulated(name string) *Simulated {
	return &Simulated{name: name, enabled: os.Getenv("SIM_GATEWAYS_ENABLED") == "true"}
}

func (s *Simulated) Name() string { return s.name }

func (s *Simulated) Charge(ctx context.Context, req Request) (*Result, error) {
	if !s.enabled {
		return nil, fmt.Errorf("%s gateway not available", s.name)
	}
	return &Result{
		TransactionRef: s.name + "-" + uuid.NewString(),
		Message:        "simulated charge accepted",
		Paid:           true,
	}, nil
}

// COD always succeeds. Acceptance settles the order for lifecycle purposes
// (paid status, earn points); the cash itself changes hands at delivery.
type COD struct{}

func (COD) Name() string { return MethodCOD }

func (COD) Charge(ctx context.Context, req Request) (*Result, error) {
	return &Result{
		TransactionRef: "cod-" + req.OrderRef,
		Message:        "cash on delivery",
		Paid:           true,
	}, nil
}
