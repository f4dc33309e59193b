package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Orders successfully created.",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_cancelled_total",
		Help: "Orders cancelled by users.",
	})

	PaymentAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_payment_attempts_total",
		Help: "Gateway charge attempts by gateway and outcome.",
	}, []string{"gateway", "status"})

	PointsEarned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_reward_points_earned_total",
		Help: "Reward points credited to users.",
	})
)
