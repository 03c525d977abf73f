package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		checkoutsTotal,
		verificationsTotal,
		forcedReconciliationsTotal,
		paymentsRevenueTotal,
	)
}

var (
	checkoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Checkout initiations by plan and billing mode.",
		},
		[]string{"plan", "mode"},
	)

	verificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Signature verifications by outcome (ok/invalid_signature/write_failed).",
		},
		[]string{"outcome"},
	)

	forcedReconciliationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forced_reconciliations_total",
			Help: "Forced reconciliation attempts by outcome (ok/not_captured/error).",
		},
		[]string{"outcome"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "Monetary value of verified one-time payments, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncCheckout(plan, mode string) {
	checkoutsTotal.WithLabelValues(norm(plan), norm(mode)).Inc()
}

func IncVerification(outcome string) {
	verificationsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncForcedReconciliation(outcome string) {
	forcedReconciliationsTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddPaymentRevenue(currency string, amountPaise int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amountPaise))
}
