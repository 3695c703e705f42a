// Package daemon implements the JSON-over-HTTP client for the remote node.
package daemon

import (
	"context"
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records per-operation call metrics.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Notifier receives connection edge events.
	Notifier interface {
		NotifyConnect()
		NotifyDisconnect()
	}
)

// Info is the node's view of chain and peer state.
type Info struct {
	Height              uint64 `json:"height"`
	NetworkHeight       uint64 `json:"networkHeight"`
	IncomingConnections uint64 `json:"incomingConnections"`
	OutgoingConnections uint64 `json:"outgoingConnections"`
	Hashrate            uint64 `json:"hashrate"`
}

// FeeInfo is the node operator's fee. An empty address means no fee is
// charged.
type FeeInfo struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// SyncResult is the node's answer to a wallet sync request.
type SyncResult struct {
	Blocks   []model.Block   `json:"blocks"`
	TopBlock *model.TopBlock `json:"topBlock,omitempty"`
	Synced   bool            `json:"synced"`
}

// RandomOutput is a decoy ring member candidate.
type RandomOutput struct {
	Index uint64           `json:"index"`
	Key   crypto.PublicKey `json:"key"`
}

// RandomOutputsByAmount groups decoy candidates per denomination.
type RandomOutputsByAmount struct {
	Amount  uint64         `json:"amount"`
	Outputs []RandomOutput `json:"outputs"`
}

type syncRequest struct {
	Count                    uint64        `json:"count"`
	Checkpoints              []crypto.Hash `json:"checkpoints"`
	SkipCoinbaseTransactions bool          `json:"skipCoinbaseTransactions"`
	Height                   uint64        `json:"height"`
	Timestamp                uint64        `json:"timestamp"`
}

type indexesEntry struct {
	Hash    crypto.Hash `json:"hash"`
	Indexes []uint64    `json:"indexes"`
}

type txStatusResponse struct {
	NotFound []crypto.Hash `json:"notFound"`
}

type randomIndexesRequest struct {
	Amounts []uint64 `json:"amounts"`
	Count   uint64   `json:"count"`
}

type submitErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NodeClient is the operation surface the pipeline and wallet consume.
type NodeClient interface {
	Info(ctx context.Context) (Info, error)
	FeeInfo(ctx context.Context) (FeeInfo, error)
	WalletSyncData(ctx context.Context, checkpoints []crypto.Hash, startHeight, startTimestamp, count uint64, skipCoinbase bool) (SyncResult, error)
	GlobalIndexesForRange(ctx context.Context, start, end uint64) (map[crypto.Hash][]uint64, error)
	CancelledTransactions(ctx context.Context, hashes []crypto.Hash) ([]crypto.Hash, error)
	RandomOutputsByAmount(ctx context.Context, amounts []uint64, count uint64) ([]RandomOutputsByAmount, error)
	SubmitTransaction(ctx context.Context, rawHex string) error
}
