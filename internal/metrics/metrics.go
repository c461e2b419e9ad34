package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WalletMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubledger_wallet_mutations_total",
			Help: "Total number of wallet mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubledger_transfers_total",
			Help: "Total number of admin transfers",
		},
		[]string{"outcome"},
	)

	TransferredCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubledger_transferred_cents_total",
			Help: "Total amount moved by successful transfers, in cents",
		},
	)

	UndosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubledger_undos_total",
			Help: "Total number of undo attempts by undone operation kind",
		},
		[]string{"service_key", "outcome"},
	)

	WalletBalance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clubledger_wallet_balance_cents",
			Help: "Current wallet balance in cents",
		},
		[]string{"club_id", "user_id"},
	)

	WalletsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clubledger_wallets_total",
			Help: "Number of wallets per club",
		},
		[]string{"club_id"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubledger_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	WatcherSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubledger_watcher_subscribers",
			Help: "Number of live wallet snapshot subscribers",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordMutation(operation, outcome string) {
	WalletMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordTransfer(outcome string, amountCents int64) {
	TransfersTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" && amountCents > 0 {
		TransferredCentsTotal.Add(float64(amountCents))
	}
}

func RecordUndo(serviceKey, outcome string) {
	UndosTotal.WithLabelValues(serviceKey, outcome).Inc()
}
