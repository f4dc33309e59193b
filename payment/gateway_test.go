package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttemptOrder(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      []string
	}{
		{
			name:      "requested gateway goes first",
			requested: MethodVNPay,
			want:      []string{MethodVNPay, MethodMoMo, MethodGooglePay, MethodBankTransfer, MethodCOD},
		},
		{
			name:      "cod requested still falls back to the rest",
			requested: MethodCOD,
			want:      []string{MethodCOD, MethodMoMo, MethodVNPay, MethodGooglePay, MethodBankTransfer},
		},
		{
			name:      "unknown method gets the default priority",
			requested: "paypal",
			want:      []string{MethodMoMo, MethodVNPay, MethodGooglePay, MethodBankTransfer, MethodCOD},
		},
		{
			name:      "momo requested matches the default priority",
			requested: MethodMoMo,
			want:      []string{MethodMoMo, MethodVNPay, MethodGooglePay, MethodBankTransfer, MethodCOD},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AttemptOrder(tt.requested))
		})
	}
}

func TestCODAcceptanceSettlesImmediately(t *testing.T) {
	result, err := COD{}.Charge(context.Background(), Request{OrderRef: "ref-1", Amount: 150000})
	require.NoError(t, err)
	require.True(t, result.Paid)
	require.Equal(t, "cod-ref-1", result.TransactionRef)
}

func TestSimulatedDisabledByDefault(t *testing.T) {
	gw := &Simulated{name: MethodGooglePay}
	_, err := gw.Charge(context.Background(), Request{OrderRef: "ref-2", Amount: 99000})
	require.Error(t, err)
}

func TestSimulatedEnabledConfirmsImmediately(t *testing.T) {
	gw := &Simulated{name: MethodBankTransfer, enabled: true}
	result, err := gw.Charge(context.Background(), Request{OrderRef: "ref-3", Amount: 99000})
	require.NoError(t, err)
	require.True(t, result.Paid)
	require.Contains(t, result.TransactionRef, MethodBankTransfer)
}
