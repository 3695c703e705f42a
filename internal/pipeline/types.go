// Package pipeline prefetches blocks from the node ahead of the scanner,
// with adaptive batch sizing and memory-limit backpressure.
package pipeline

import (
	"context"
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/daemon"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SyncClient is the slice of the node client the downloader consumes.
	SyncClient interface {
		WalletSyncData(ctx context.Context, checkpoints []crypto.Hash, startHeight, startTimestamp, count uint64, skipCoinbase bool) (daemon.SyncResult, error)
	}

	// Metrics records download outcomes and buffer state.
	Metrics interface {
		ObserveDownload(err error, blocks int, started time.Time)
		SetBatchSize(size uint64)
		SetStoredBytes(size uint64)
		ObserveDeadNode()
	}

	// Notifier receives the pipeline's observable signals.
	Notifier interface {
		NotifyDeadNode()
		NotifyTopBlock(height uint64, hash crypto.Hash)
	}
)

// Config carries the downloader knobs.
type Config struct {
	// BlocksPerDaemonRequest caps one sync request; also the adaptive batch
	// ceiling. At most 100.
	BlocksPerDaemonRequest uint64

	// BlockStoreMemoryLimit bounds the estimated prefetch buffer size.
	BlockStoreMemoryLimit uint64

	// MaxLastFetchedBlockInterval is how long without a successful fetch
	// before the node is declared dead.
	MaxLastFetchedBlockInterval time.Duration

	// SkipCoinbaseTransactions asks the node to omit coinbase transactions.
	SkipCoinbaseTransactions bool
}
