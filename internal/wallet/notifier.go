package wallet

import (
	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/events"
)

// PipelineNotifier forwards pipeline signals onto the event bus. The
// pipeline holds this handle rather than the facade, so ownership stays
// one-directional.
type PipelineNotifier struct {
	bus *events.Bus
}

// NewPipelineNotifier constructs the pipeline's event handle.
func NewPipelineNotifier(bus *events.Bus) *PipelineNotifier {
	return &PipelineNotifier{bus: bus}
}

// NotifyDeadNode publishes a DeadNodeEvent.
func (n *PipelineNotifier) NotifyDeadNode() {
	n.bus.Publish(events.DeadNodeEvent{})
}

// NotifyTopBlock publishes the height change observed when the wallet
// catches up to the node's top block.
func (n *PipelineNotifier) NotifyTopBlock(height uint64, _ crypto.Hash) {
	n.bus.Publish(events.HeightChangeEvent{WalletHeight: height})
}

// DaemonNotifier forwards node connection edges onto the event bus.
type DaemonNotifier struct {
	bus *events.Bus
}

// NewDaemonNotifier constructs the node client's event handle.
func NewDaemonNotifier(bus *events.Bus) *DaemonNotifier {
	return &DaemonNotifier{bus: bus}
}

// NotifyConnect publishes a ConnectEvent.
func (n *DaemonNotifier) NotifyConnect() {
	n.bus.Publish(events.ConnectEvent{})
}

// NotifyDisconnect publishes a DisconnectEvent.
func (n *DaemonNotifier) NotifyDisconnect() {
	n.bus.Publish(events.DisconnectEvent{})
}
