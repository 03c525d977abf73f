package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(couponRedemptionsTotal)
}

var couponRedemptionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Coupon redemption attempts by outcome (ok/not_found/inactive/exhausted/expired/error).",
	},
	[]string{"outcome"},
)

func IncCouponRedemption(outcome string) {
	couponRedemptionsTotal.WithLabelValues(norm(outcome)).Inc()
}
