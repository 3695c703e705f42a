// Package events defines the typed wallet event sum and a non-blocking
// broadcast bus.
package events

import (
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
)

// Event is one of the wallet event types below.
type Event interface {
	event()
}

// TransactionEvent fires for every attributed transaction.
type TransactionEvent struct{ Transaction model.Transaction }

// IncomingTxEvent fires for transactions with positive net transfer.
type IncomingTxEvent struct{ Transaction model.Transaction }

// OutgoingTxEvent fires for transactions with negative net transfer.
type OutgoingTxEvent struct{ Transaction model.Transaction }

// FusionTxEvent fires for zero-net self transfers.
type FusionTxEvent struct{ Transaction model.Transaction }

// CreatedTxEvent fires when an outbound transfer has been constructed.
type CreatedTxEvent struct{ Transaction model.Transaction }

// CreatedFusionTxEvent fires when a fusion transaction has been constructed.
type CreatedFusionTxEvent struct{ Transaction model.Transaction }

// SyncEvent fires when the wallet height first reaches the network height.
type SyncEvent struct{ Height uint64 }

// DesyncEvent fires when the wallet falls behind the network again.
type DesyncEvent struct {
	WalletHeight  uint64
	NetworkHeight uint64
}

// ConnectEvent fires when node contact is regained.
type ConnectEvent struct{}

// DisconnectEvent fires when node contact is lost.
type DisconnectEvent struct{}

// HeightChangeEvent fires after each processed block.
type HeightChangeEvent struct {
	WalletHeight  uint64
	LocalHeight   uint64
	NetworkHeight uint64
}

// DeadNodeEvent fires once per outage when the node stops making progress.
type DeadNodeEvent struct{}

// RawBlockEvent carries every downloaded block before attribution.
type RawBlockEvent struct{ Block model.Block }

// RawTransactionEvent carries every downloaded transaction before
// attribution.
type RawTransactionEvent struct{ Transaction model.RawTransaction }

func (TransactionEvent) event()     {}
func (IncomingTxEvent) event()      {}
func (OutgoingTxEvent) event()      {}
func (FusionTxEvent) event()        {}
func (CreatedTxEvent) event()       {}
func (CreatedFusionTxEvent) event() {}
func (SyncEvent) event()            {}
func (DesyncEvent) event()          {}
func (ConnectEvent) event()         {}
func (DisconnectEvent) event()      {}
func (HeightChangeEvent) event()    {}
func (DeadNodeEvent) event()        {}
func (RawBlockEvent) event()        {}
func (RawTransactionEvent) event()  {}
