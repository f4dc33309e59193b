package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Phí giao hàng về Đà Nẵng bao nhiêu?", "shipping"},
		{"Tôi muốn thanh toán qua MoMo", "payment"},
		{"Shop có mã giảm giá không?", "voucher"},
		{"Đơn hàng của tôi đang ở đâu?", "order"},
		{"Tư vấn giúp mình bộ sofa phòng khách", "product"},
		{"xin chào", ""},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.message, func(t *testing.T) {
			require.Equal(t, tt.want, classify(tt.message))
		})
	}
}

func TestBotReplyWithoutRedis(t *testing.T) {
	ctx := context.Background()

	reply := BotReply(ctx, nil, "session-1", "phí vận chuyển thế nào?")
	require.Contains(t, reply, "vận chuyển")

	reply = BotReply(ctx, nil, "session-1", "cho hỏi về vnpay")
	require.Contains(t, reply, "VNPay")

	// Unrecognized message with no stored context falls back to the greeting.
	reply = BotReply(ctx, nil, "session-1", "hmm")
	require.True(t, strings.HasPrefix(reply, "Xin chào"))
}
