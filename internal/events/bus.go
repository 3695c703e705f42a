package events

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultBuffer is the per-subscriber channel depth.
const DefaultBuffer = 256

// Bus fans events out to subscribers without blocking producers. A
// subscriber that stops draining loses events rather than stalling the sync
// loop.
type Bus struct {
	logger *zap.Logger

	mu   sync.Mutex
	subs []chan Event
}

// NewBus constructs an event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger.Named("events")}
}

// Subscribe registers a new subscriber channel.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, DefaultBuffer)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers the event to every subscriber, dropping it for
// subscribers with full buffers.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("subscriber buffer full, dropping event",
				zap.String("event", eventName(ev)))
		}
	}
}

// Close closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

func eventName(ev Event) string {
	switch ev.(type) {
	case TransactionEvent:
		return "transaction"
	case IncomingTxEvent:
		return "incomingtx"
	case OutgoingTxEvent:
		return "outgoingtx"
	case FusionTxEvent:
		return "fusiontx"
	case CreatedTxEvent:
		return "createdtx"
	case CreatedFusionTxEvent:
		return "createdfusiontx"
	case SyncEvent:
		return "sync"
	case DesyncEvent:
		return "desync"
	case ConnectEvent:
		return "connect"
	case DisconnectEvent:
		return "disconnect"
	case HeightChangeEvent:
		return "heightchange"
	case DeadNodeEvent:
		return "deadnode"
	case RawBlockEvent:
		return "rawblock"
	case RawTransactionEvent:
		return "rawtransaction"
	default:
		return "unknown"
	}
}
