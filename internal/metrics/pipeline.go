package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineDownloadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "downloads_total",
		Help:      "Count of block download attempts.",
	}, []string{"status"})

	pipelineDownloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "download_duration_seconds",
		Help:      "Duration of block download attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	pipelineDownloadBlocks = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "download_blocks",
		Help:      "Number of blocks received per download.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})

	pipelineBatchSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "batch_size",
		Help:      "Current adaptive batch size.",
	})

	pipelineStoredBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "stored_bytes",
		Help:      "Estimated size of the prefetch buffer.",
	})

	pipelineDeadNodeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletsync7000",
		Subsystem: "block_pipeline",
		Name:      "dead_node_total",
		Help:      "Count of dead node emissions.",
	})
)

// BlockPipeline tracks metrics for the block acquisition pipeline.
type BlockPipeline struct{}

// NewBlockPipeline constructs a BlockPipeline metrics recorder.
func NewBlockPipeline() *BlockPipeline {
	return &BlockPipeline{}
}

// ObserveDownload records one download attempt.
func (BlockPipeline) ObserveDownload(err error, blocks int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	pipelineDownloadTotal.WithLabelValues(status).Inc()
	pipelineDownloadDuration.WithLabelValues(status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		pipelineDownloadBlocks.Observe(float64(blocks))
	}
}

// SetBatchSize records the current adaptive batch size.
func (BlockPipeline) SetBatchSize(size uint64) {
	pipelineBatchSize.Set(float64(size))
}

// SetStoredBytes records the estimated prefetch buffer footprint.
func (BlockPipeline) SetStoredBytes(size uint64) {
	pipelineStoredBytes.Set(float64(size))
}

// ObserveDeadNode records one dead node emission.
func (BlockPipeline) ObserveDeadNode() {
	pipelineDeadNodeTotal.Inc()
}
