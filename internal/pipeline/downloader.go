package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/syncstatus"
)

// refillCheckInterval amortizes the buffer size estimate: backpressure is
// evaluated only every this many dropped blocks.
const refillCheckInterval = 10

// Downloader maintains the prefetch buffer of unprocessed blocks. A single
// download is in flight at a time, guarded by fetching; reset and rewind
// issued mid-flight are deferred until the download resolves so a stale
// response cannot repopulate a freshly cleared buffer.
type Downloader struct {
	logger   *zap.Logger
	client   SyncClient
	metrics  Metrics
	notifier Notifier
	cfg      Config

	mu           sync.Mutex
	status       *syncstatus.Status
	storedBlocks []model.Block
	storedSize   uint64

	fetching     bool
	pendingReset func()

	startHeight    uint64
	startTimestamp uint64

	batchSize           uint64
	lastSuccessfulFetch time.Time
	deadNodeNotified    bool
	networkHeightLag    bool

	dropCounter int
}

// NewDownloader constructs a Downloader starting from the given scan point.
func NewDownloader(client SyncClient, status *syncstatus.Status, startHeight, startTimestamp uint64, cfg Config, metrics Metrics, notifier Notifier, logger *zap.Logger) (*Downloader, error) {
	if metrics == nil {
		return nil, errors.New("pipeline metrics is required")
	}
	if cfg.BlocksPerDaemonRequest == 0 || cfg.BlocksPerDaemonRequest > 100 {
		cfg.BlocksPerDaemonRequest = 100
	}
	return &Downloader{
		logger:              logger.Named("pipeline"),
		client:              client,
		metrics:             metrics,
		notifier:            notifier,
		cfg:                 cfg,
		status:              status,
		startHeight:         startHeight,
		startTimestamp:      startTimestamp,
		batchSize:           cfg.BlocksPerDaemonRequest,
		lastSuccessfulFetch: time.Now(),
	}, nil
}

// Height returns the height of the most recently processed block.
func (d *Downloader) Height() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status.Height()
}

// Status exposes the synchronization status for persistence. The caller
// must not mutate it concurrently with pipeline operation.
func (d *Downloader) Status() *syncstatus.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// StartPoint returns the current scan start.
func (d *Downloader) StartPoint() (height, timestamp uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startHeight, d.startTimestamp
}

// SetNetworkHeightLag records whether the node's network height is behind
// the wallet; batches received in that state are discarded rather than
// processed.
func (d *Downloader) SetNetworkHeightLag(lagging bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.networkHeightLag = lagging
}

// ReArmDeadNode clears the dead node latch, as after a node swap.
func (d *Downloader) ReArmDeadNode() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deadNodeNotified = false
	d.lastSuccessfulFetch = time.Now()
}

// FetchBlocks returns up to count buffered blocks without removing them.
// An empty buffer triggers a download first. The second return value asks
// the caller to sleep before retrying.
func (d *Downloader) FetchBlocks(ctx context.Context, count int) ([]model.Block, bool) {
	d.mu.Lock()
	if len(d.storedBlocks) > 0 {
		blocks := d.copyFrontLocked(count)
		d.mu.Unlock()
		return blocks, false
	}
	d.mu.Unlock()

	ok, shouldSleep := d.downloadBlocks(ctx)
	if !ok {
		d.maybeNotifyDeadNode()
	}

	d.mu.Lock()
	blocks := d.copyFrontLocked(count)
	d.mu.Unlock()
	return blocks, shouldSleep
}

func (d *Downloader) copyFrontLocked(count int) []model.Block {
	if count > len(d.storedBlocks) {
		count = len(d.storedBlocks)
	}
	if count == 0 {
		return nil
	}
	blocks := make([]model.Block, count)
	copy(blocks, d.storedBlocks[:count])
	return blocks
}

// DropBlock pops the front of the buffer, but only if both height and hash
// match, so a repeated drop for the same block mutates nothing. The
// processed block is recorded into the sync status. Every tenth drop the
// buffer is refilled in the background if under the memory limit.
func (d *Downloader) DropBlock(ctx context.Context, height uint64, hash crypto.Hash) {
	d.mu.Lock()
	if len(d.storedBlocks) == 0 || d.storedBlocks[0].Height != height || d.storedBlocks[0].Hash != hash {
		d.mu.Unlock()
		return
	}

	d.storedSize -= d.storedBlocks[0].SizeEstimate()
	d.storedBlocks = d.storedBlocks[1:]
	d.status.StoreHash(height, hash)
	d.metrics.SetStoredBytes(d.storedSize)

	d.dropCounter++
	refill := d.dropCounter%refillCheckInterval == 0 &&
		d.storedSize < d.cfg.BlockStoreMemoryLimit && !d.fetching
	d.mu.Unlock()

	if refill {
		go d.downloadBlocks(ctx)
	}
}

// Reset clears the pipeline and repositions it at a fresh scan point with no
// block history. Safe against an in-flight download: the mutation is
// deferred until the download resolves, and the stale response is discarded.
func (d *Downloader) Reset(scanHeight, scanTimestamp uint64) {
	d.applyOrDefer(func() {
		d.status = syncstatus.NewAt(scanHeight)
		d.resetBufferLocked(scanHeight, scanTimestamp)
	})
}

// Rewind clears the buffered blocks and drops processed history at or above
// scanHeight, preserving the older history.
func (d *Downloader) Rewind(scanHeight uint64) {
	d.applyOrDefer(func() {
		d.status.Rewind(scanHeight)
		d.resetBufferLocked(scanHeight, 0)
	})
}

func (d *Downloader) resetBufferLocked(scanHeight, scanTimestamp uint64) {
	d.storedBlocks = nil
	d.storedSize = 0
	d.startHeight = scanHeight
	d.startTimestamp = scanTimestamp
	d.metrics.SetStoredBytes(0)
}

// applyOrDefer runs the mutation now, or queues it to run exactly once when
// the in-flight download resolves, and waits for it.
func (d *Downloader) applyOrDefer(mutate func()) {
	d.mu.Lock()
	if !d.fetching {
		mutate()
		d.mu.Unlock()
		return
	}

	done := make(chan struct{})
	prior := d.pendingReset
	d.pendingReset = func() {
		if prior != nil {
			prior()
		}
		mutate()
		close(done)
	}
	d.mu.Unlock()

	<-done
}

// downloadBlocks runs one download attempt. Returns (ok, shouldSleep).
func (d *Downloader) downloadBlocks(ctx context.Context) (bool, bool) {
	d.mu.Lock()
	if d.fetching {
		d.mu.Unlock()
		return true, false
	}
	d.fetching = true
	checkpoints := d.checkpointsLocked()
	startHeight := d.startHeight
	startTimestamp := d.startTimestamp
	batch := d.batchSize
	d.mu.Unlock()

	started := time.Now()
	res, err := d.client.WalletSyncData(ctx, checkpoints, startHeight, startTimestamp, batch, d.cfg.SkipCoinbaseTransactions)
	d.metrics.ObserveDownload(err, len(res.Blocks), started)

	d.mu.Lock()
	defer d.finishLocked()

	if err != nil {
		d.batchSize = ceilDiv(batch, 4)
		if d.batchSize == 0 {
			d.batchSize = 1
		}
		d.metrics.SetBatchSize(d.batchSize)
		d.logger.Debug("block download failed, backing off batch size",
			zap.Uint64("batchSize", d.batchSize), zap.Error(err))
		return false, true
	}

	d.lastSuccessfulFetch = time.Now()
	d.deadNodeNotified = false

	// A reset arrived while this download was in flight: the response
	// belongs to the old scan window.
	if d.pendingReset != nil {
		d.logger.Debug("discarding in-flight download superseded by reset")
		return true, false
	}

	if len(res.Blocks) == 0 {
		if res.TopBlock != nil && len(d.storedBlocks) == 0 && res.TopBlock.Height > d.status.Height() {
			d.status.StoreHash(res.TopBlock.Height, res.TopBlock.Hash)
			d.startTimestamp = 0
			if d.notifier != nil {
				d.notifier.NotifyTopBlock(res.TopBlock.Height, res.TopBlock.Hash)
			}
			d.logger.Debug("synced with node top block",
				zap.Uint64("height", res.TopBlock.Height))
		}
		return true, true
	}

	if d.networkHeightLag {
		d.logger.Debug("discarding batch while node lags behind wallet height")
		return true, true
	}

	for i := range res.Blocks {
		d.storedSize += res.Blocks[i].SizeEstimate()
	}
	d.storedBlocks = append(d.storedBlocks, res.Blocks...)
	d.startTimestamp = 0

	d.batchSize = batch * 2
	if d.batchSize > d.cfg.BlocksPerDaemonRequest {
		d.batchSize = d.cfg.BlocksPerDaemonRequest
	}
	d.metrics.SetBatchSize(d.batchSize)
	d.metrics.SetStoredBytes(d.storedSize)
	return true, false
}

// finishLocked runs a deferred reset at most once, then releases the
// fetching guard. Called with the mutex held; releases it.
func (d *Downloader) finishLocked() {
	reset := d.pendingReset
	d.pendingReset = nil
	if reset != nil {
		reset()
	}
	d.fetching = false
	d.mu.Unlock()
}

// checkpointsLocked composes the hashes submitted to the node: buffered
// block hashes newest first, then the processed recent tail and sparse
// checkpoints.
func (d *Downloader) checkpointsLocked() []crypto.Hash {
	out := make([]crypto.Hash, 0, len(d.storedBlocks)+syncstatus.RecentHashCount)
	for i := len(d.storedBlocks) - 1; i >= 0; i-- {
		out = append(out, d.storedBlocks[i].Hash)
	}
	return append(out, d.status.Checkpoints()...)
}

func (d *Downloader) maybeNotifyDeadNode() {
	d.mu.Lock()
	stale := time.Since(d.lastSuccessfulFetch) > d.cfg.MaxLastFetchedBlockInterval
	notify := stale && !d.deadNodeNotified
	if notify {
		d.deadNodeNotified = true
	}
	d.mu.Unlock()

	if notify {
		d.logger.Warn("node has made no progress, declaring it dead",
			zap.Duration("threshold", d.cfg.MaxLastFetchedBlockInterval))
		d.metrics.ObserveDeadNode()
		if d.notifier != nil {
			d.notifier.NotifyDeadNode()
		}
	}
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}
