package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scannerBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "scanner",
		Name:      "blocks_total",
		Help:      "Count of blocks scanned.",
	}, []string{"status"})

	scannerBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletsync7000",
		Subsystem: "scanner",
		Name:      "block_duration_seconds",
		Help:      "Duration of scanning one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	scannerInputsFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "scanner",
		Name:      "inputs_found_total",
		Help:      "Count of owned outputs discovered.",
	})

	scannerSpendsFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "scanner",
		Name:      "spends_found_total",
		Help:      "Count of key image spends detected.",
	})
)

// Scanner tracks metrics for block attribution.
type Scanner struct{}

// NewScanner constructs a Scanner metrics recorder.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ObserveBlock records one scanned block.
func (Scanner) ObserveBlock(err error, inputs, spends int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	scannerBlockTotal.WithLabelValues(status).Inc()
	scannerBlockDuration.WithLabelValues(status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		scannerInputsFound.Add(float64(inputs))
		scannerSpendsFound.Add(float64(spends))
	}
}
