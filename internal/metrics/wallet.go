package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletTickTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "wallet",
		Name:      "ticks_total",
		Help:      "Count of ticker iterations by kind.",
	}, []string{"ticker", "status"})

	walletTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletsync7000",
		Subsystem: "wallet",
		Name:      "tick_duration_seconds",
		Help:      "Duration of ticker iterations by kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"ticker", "status"})

	walletHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "walletsync7000",
		Subsystem: "wallet",
		Name:      "height",
		Help:      "Wallet, local and network heights.",
	}, []string{"kind"})
)

// Wallet tracks metrics for the coordinator tickers.
type Wallet struct{}

// NewWallet constructs a Wallet metrics recorder.
func NewWallet() *Wallet {
	return &Wallet{}
}

// ObserveTick records one ticker iteration.
func (Wallet) ObserveTick(ticker string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	walletTickTotal.WithLabelValues(ticker, status).Inc()
	walletTickDuration.WithLabelValues(ticker, status).
		Observe(time.Since(started).Seconds())
}

// SetHeights records the current wallet, local and network heights.
func (Wallet) SetHeights(wallet, local, network uint64) {
	walletHeight.WithLabelValues("wallet").Set(float64(wallet))
	walletHeight.WithLabelValues("local").Set(float64(local))
	walletHeight.WithLabelValues("network").Set(float64(network))
}
