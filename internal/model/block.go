// Package model defines domain records shared by the pipeline, scanner and
// subwallet store.
package model

import (
	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
)

// KeyOutput is a one-time stealth output carried by a transaction.
type KeyOutput struct {
	Key         crypto.PublicKey `json:"key"`
	Amount      uint64           `json:"amount"`
	GlobalIndex *uint64          `json:"globalIndex,omitempty"`
}

// KeyInput references a previously created output by its key image.
type KeyInput struct {
	Amount   uint64          `json:"amount"`
	KeyImage crypto.KeyImage `json:"keyImage"`
}

// RawTransaction is a transaction as streamed by the node, before
// attribution.
type RawTransaction struct {
	Hash       crypto.Hash      `json:"hash"`
	PublicKey  crypto.PublicKey `json:"txPublicKey"`
	UnlockTime uint64           `json:"unlockTime"`
	PaymentID  string           `json:"paymentID"`
	KeyOutputs []KeyOutput      `json:"outputs"`
	KeyInputs  []KeyInput       `json:"inputs"`
}

// Block is a block as streamed by the node. Coinbase is nil when the node
// was asked to skip coinbase transactions.
type Block struct {
	Height       uint64           `json:"blockHeight"`
	Hash         crypto.Hash      `json:"blockHash"`
	Timestamp    uint64           `json:"blockTimestamp"`
	Coinbase     *RawTransaction  `json:"coinbaseTX,omitempty"`
	Transactions []RawTransaction `json:"transactions"`
}

// TopBlock identifies the node's highest known block, returned when the
// wallet has nothing newer to receive.
type TopBlock struct {
	Height uint64      `json:"height"`
	Hash   crypto.Hash `json:"hash"`
}

// SizeEstimate approximates the in-memory footprint of the block, used for
// prefetch backpressure.
func (b *Block) SizeEstimate() uint64 {
	const (
		blockOverhead  = 96
		txOverhead     = 160
		outputOverhead = 56
		inputOverhead  = 48
	)

	size := uint64(blockOverhead)
	txs := b.Transactions
	if b.Coinbase != nil {
		size += txOverhead + outputOverhead*uint64(len(b.Coinbase.KeyOutputs))
	}
	for i := range txs {
		size += txOverhead
		size += outputOverhead * uint64(len(txs[i].KeyOutputs))
		size += inputOverhead * uint64(len(txs[i].KeyInputs))
		size += uint64(len(txs[i].PaymentID))
	}
	return size
}
