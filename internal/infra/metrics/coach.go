package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(coachChatsTotal, coachLatencyMs)
}

var (
	coachChatsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_chats_total",
			Help: "Coach chat calls by outcome (ok/rate_limited/plan_required/error).",
		},
		[]string{"outcome"},
	)

	coachLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coach_chat_latency_ms",
			Help:    "Coach LLM call latency distribution in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 15000},
		},
	)
)

func IncCoachChat(outcome string) {
	coachChatsTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveCoachLatency(ms float64) {
	coachLatencyMs.Observe(ms)
}
