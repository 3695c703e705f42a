// Package metrics implements prometheus instrumentation for the wallet
// components.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "node_client",
		Name:      "requests_total",
		Help:      "Count of node API calls.",
	}, []string{"operation", "status"})

	nodeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletsync7000",
		Subsystem: "node_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of node API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// NodeClient tracks metrics for node API calls.
type NodeClient struct{}

// NewNodeClient constructs a NodeClient metrics recorder.
func NewNodeClient() *NodeClient {
	return &NodeClient{}
}

// Observe records one call outcome and duration.
func (NodeClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	nodeRequestTotal.WithLabelValues(operation, status).Inc()
	nodeRequestDuration.WithLabelValues(operation, status).
		Observe(time.Since(started).Seconds())
}
