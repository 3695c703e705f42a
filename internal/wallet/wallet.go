package wallet

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/clock"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/daemon"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/events"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/subwallets"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/werrors"
	"github.com/goodnatureofminers/walletsync7000-backend/pkg/batcher"
)

const (
	saveFlushSize     = 64
	saveFlushInterval = 30 * time.Second
	saveFlushRPS      = 1

	// syncIdleSleep holds the sync loop back when the node has nothing new.
	syncIdleSleep = time.Second
)

// OptimizeFunc constructs fusion transactions in the background once the
// wallet is synced. Construction itself lives outside the core.
type OptimizeFunc func(ctx context.Context) error

// Wallet is the coordinator facade. It sequences sync ticks, daemon info
// polling and locked transaction checks on three independent metronomes.
type Wallet struct {
	logger  *zap.Logger
	cfg     Config
	metrics Metrics

	bus        *events.Bus
	client     daemon.NodeClient
	source     BlockSource
	scanner    BlockScanner
	subwallets *subwallets.Container

	syncTicker   ticker.Ticker
	daemonTicker ticker.Ticker
	lockedTicker ticker.Ticker

	mu      sync.Mutex
	started bool
	quit    chan struct{}
	wg      sync.WaitGroup

	localHeight   uint64
	networkHeight uint64
	synced        bool
	feeInfo       daemon.FeeInfo

	lastNetworkHeightChange time.Time
	lastLocalHeightChange   time.Time
	heightStallNotified     bool

	startTimestamp uint64
	tsConverted    bool

	currentlyOptimizing  atomic.Bool
	currentlyTransacting atomic.Bool
	optimizeFunc         OptimizeFunc

	filename string
	saver    *batcher.Batcher[struct{}]
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithTickers overrides the three metronomes, used by tests to force ticks.
func WithTickers(sync, daemonInfo, locked ticker.Ticker) Option {
	return func(w *Wallet) {
		w.syncTicker = sync
		w.daemonTicker = daemonInfo
		w.lockedTicker = locked
	}
}

// WithFile enables persistence to the given path with coalesced autosave.
func WithFile(filename string) Option {
	return func(w *Wallet) { w.filename = filename }
}

// WithOptimizeFunc installs the background fusion constructor.
func WithOptimizeFunc(fn OptimizeFunc) Option {
	return func(w *Wallet) { w.optimizeFunc = fn }
}

// New assembles the coordinator from its parts.
func New(client daemon.NodeClient, source BlockSource, scan BlockScanner, store *subwallets.Container, bus *events.Bus, metrics Metrics, cfg Config, logger *zap.Logger, opts ...Option) (*Wallet, error) {
	if metrics == nil {
		return nil, errors.New("wallet metrics is required")
	}
	cfg = cfg.withDefaults()

	_, startTimestamp := source.StartPoint()
	w := &Wallet{
		logger:         logger.Named("wallet"),
		cfg:            cfg,
		metrics:        metrics,
		bus:            bus,
		client:         client,
		source:         source,
		scanner:        scan,
		subwallets:     store,
		startTimestamp: startTimestamp,
		tsConverted:    startTimestamp == 0,

		syncTicker:   ticker.New(cfg.SyncThreadInterval),
		daemonTicker: ticker.New(cfg.DaemonUpdateInterval),
		lockedTicker: ticker.New(cfg.LockedTransactionsCheckInterval),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events returns a fresh subscription to the wallet event stream.
func (w *Wallet) Events() <-chan events.Event {
	return w.bus.Subscribe()
}

// Start initializes the node client state and launches the three ticker
// loops. Idempotent.
func (w *Wallet) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.quit = make(chan struct{})
	now := time.Now()
	w.lastNetworkHeightChange = now
	w.lastLocalHeightChange = now
	w.mu.Unlock()

	// Prime heights and fee before the loops start; a failure here is the
	// normal offline case and the daemon ticker will retry.
	if err := w.updateDaemonInfo(ctx); err != nil {
		w.logger.Warn("initial daemon info failed", zap.Error(err))
	}

	if w.filename != "" {
		w.saver = batcher.New[struct{}](w.logger.Named("autosave"), func(context.Context, []struct{}) error {
			return w.SaveToFile(w.filename)
		}, saveFlushSize, saveFlushInterval, saveFlushRPS)
		w.saver.Start(ctx)
	}

	w.runLoop(ctx, w.syncTicker, "sync", w.syncTick)
	w.runLoop(ctx, w.daemonTicker, "daemon", func(ctx context.Context) error {
		return w.updateDaemonInfo(ctx)
	})
	w.runLoop(ctx, w.lockedTicker, "locked", w.checkLockedTransactions)

	w.logger.Info("wallet started")
	return nil
}

// Stop drains all three loops, then flushes a final save. Idempotent.
func (w *Wallet) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	close(w.quit)
	w.mu.Unlock()

	w.wg.Wait()
	w.syncTicker.Stop()
	w.daemonTicker.Stop()
	w.lockedTicker.Stop()

	if w.saver != nil {
		w.saver.Stop()
		w.saver = nil
	}
	if w.filename != "" {
		if err := w.SaveToFile(w.filename); err != nil {
			w.logger.Error("final save failed", zap.Error(err))
		}
	}
	w.logger.Info("wallet stopped")
}

func (w *Wallet) runLoop(ctx context.Context, t ticker.Ticker, name string, tick func(context.Context) error) {
	t.Resume()
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.quit:
				return
			case <-ctx.Done():
				return
			case <-t.Ticks():
				started := time.Now()
				err := tick(ctx)
				w.metrics.ObserveTick(name, err, started)
				if err != nil {
					w.logger.Debug("tick failed", zap.String("ticker", name), zap.Error(err))
				}
			}
		}
	}()
}

// syncTick processes at most BlocksPerTick blocks: scan, commit, emit, drop.
// RawBlock and RawTransaction events for a block fire before it is scanned;
// its transaction and height-change events fire after its store mutation
// completes and before the next block is touched.
func (w *Wallet) syncTick(ctx context.Context) error {
	blocks, shouldSleep := w.source.FetchBlocks(ctx, w.cfg.BlocksPerTick)
	if len(blocks) == 0 {
		if shouldSleep {
			return clock.SleepWithContext(ctx, syncIdleSleep)
		}
		return nil
	}

	for i := range blocks {
		select {
		case <-w.quit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.processBlock(ctx, &blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wallet) processBlock(ctx context.Context, block *model.Block) error {
	w.bus.Publish(events.RawBlockEvent{Block: *block})
	for _, tx := range block.Transactions {
		w.bus.Publish(events.RawTransactionEvent{Transaction: tx})
	}

	// A height we already processed means the chain forked: roll the store
	// back before attributing the replacement block.
	if block.Height <= w.source.Height() {
		w.logger.Info("chain fork detected, rolling back",
			zap.Uint64("height", block.Height))
		w.subwallets.RemoveForkedTransactions(block.Height)
	}

	data, err := w.scanner.ScanBlock(ctx, block)
	if err != nil {
		// Nothing was committed; surfaced rather than retried because a
		// missing global index means the node is lying.
		return err
	}
	if err := w.subwallets.ApplyTransactionData(data, block.Height); err != nil {
		return err
	}

	if !w.tsConverted {
		w.subwallets.ConvertSyncTimestampToHeight(w.startTimestamp, block.Height)
		w.tsConverted = true
	}

	w.source.DropBlock(ctx, block.Height, block.Hash)

	for _, tx := range data.TransactionsToAdd {
		w.publishTransaction(tx)
	}

	w.mu.Lock()
	local, network := w.localHeight, w.networkHeight
	w.mu.Unlock()
	w.bus.Publish(events.HeightChangeEvent{
		WalletHeight:  block.Height,
		LocalHeight:   local,
		NetworkHeight: network,
	})
	w.metrics.SetHeights(block.Height, local, network)

	if block.Height%subwallets.PruneInterval == 0 {
		w.subwallets.PruneSpentInputs(block.Height)
	}

	w.markDirty(ctx)
	return nil
}

func (w *Wallet) publishTransaction(tx model.Transaction) {
	w.bus.Publish(events.TransactionEvent{Transaction: tx})
	switch total := tx.TotalAmount(); {
	case tx.IsFusion():
		w.bus.Publish(events.FusionTxEvent{Transaction: tx})
	case total > 0:
		w.bus.Publish(events.IncomingTxEvent{Transaction: tx})
	case total < 0:
		w.bus.Publish(events.OutgoingTxEvent{Transaction: tx})
	}
}

// updateDaemonInfo polls node state, maintains the synced edge, and watches
// for stalled heights.
func (w *Wallet) updateDaemonInfo(ctx context.Context) error {
	info, err := w.client.Info(ctx)
	if err != nil {
		w.checkHeightStall()
		return err
	}
	if fee, feeErr := w.client.FeeInfo(ctx); feeErr == nil {
		w.mu.Lock()
		w.feeInfo = fee
		w.mu.Unlock()
	}

	walletHeight := w.source.Height()
	w.source.SetNetworkHeightLag(info.NetworkHeight < walletHeight)

	now := time.Now()
	w.mu.Lock()
	if info.NetworkHeight != w.networkHeight {
		w.networkHeight = info.NetworkHeight
		w.lastNetworkHeightChange = now
		w.heightStallNotified = false
	}
	if info.Height != w.localHeight {
		w.localHeight = info.Height
		w.lastLocalHeightChange = now
		w.heightStallNotified = false
	}
	wasSynced := w.synced
	w.synced = walletHeight >= info.NetworkHeight && info.NetworkHeight > 0
	nowSynced := w.synced
	w.mu.Unlock()

	w.metrics.SetHeights(walletHeight, info.Height, info.NetworkHeight)

	if nowSynced && !wasSynced {
		w.bus.Publish(events.SyncEvent{Height: walletHeight})
		w.maybeOptimize(ctx)
	} else if !nowSynced && wasSynced {
		w.bus.Publish(events.DesyncEvent{WalletHeight: walletHeight, NetworkHeight: info.NetworkHeight})
	}

	w.checkHeightStall()
	return nil
}

// checkHeightStall emits DeadNode when the node's heights have not advanced
// within their thresholds. One emission per outage; the latch clears when a
// height moves again.
func (w *Wallet) checkHeightStall() {
	now := time.Now()
	w.mu.Lock()
	stalled := now.Sub(w.lastNetworkHeightChange) > w.cfg.MaxLastUpdatedNetworkHeightInterval ||
		now.Sub(w.lastLocalHeightChange) > w.cfg.MaxLastUpdatedLocalHeightInterval
	notify := stalled && !w.heightStallNotified
	if notify {
		w.heightStallNotified = true
	}
	w.mu.Unlock()

	if notify {
		w.logger.Warn("node heights have stalled, declaring node dead")
		w.bus.Publish(events.DeadNodeEvent{})
	}
}

// checkLockedTransactions runs the cancellation protocol for pending
// outbound transactions.
func (w *Wallet) checkLockedTransactions(ctx context.Context) error {
	hashes := w.subwallets.LockedTransactionHashes()
	if len(hashes) == 0 {
		return nil
	}

	notFound, err := w.client.CancelledTransactions(ctx, hashes)
	if err != nil {
		return err
	}

	cancelled := w.subwallets.RecordCancellationPoll(notFound)
	for _, hash := range cancelled {
		w.logger.Info("presuming locked transaction dropped",
			zap.String("hash", hash.String()))
		w.subwallets.RemoveCancelledTransaction(hash)
	}
	if len(cancelled) > 0 {
		w.markDirty(ctx)
	}
	return nil
}

// maybeOptimize launches background fusion construction, guarded so it
// never overlaps itself or an in-progress transfer.
func (w *Wallet) maybeOptimize(ctx context.Context) {
	if !w.cfg.AutoOptimize || w.optimizeFunc == nil {
		return
	}
	if w.currentlyTransacting.Load() {
		return
	}
	if !w.currentlyOptimizing.CompareAndSwap(false, true) {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.currentlyOptimizing.Store(false)
		if err := w.optimizeFunc(ctx); err != nil {
			w.logger.Warn("optimization round failed", zap.Error(err))
		}
	}()
}

// Balance returns (unlocked, locked) across the filtered subwallets at the
// current network height.
func (w *Wallet) Balance(filter ...crypto.PublicKey) (unlocked, locked uint64, err error) {
	w.mu.Lock()
	network := w.networkHeight
	w.mu.Unlock()
	return w.subwallets.Balance(network, filter)
}

// FeeInfo returns the node operator fee last observed.
func (w *Wallet) FeeInfo() daemon.FeeInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.feeInfo
}

// Heights returns (wallet, local, network).
func (w *Wallet) Heights() (uint64, uint64, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.source.Height(), w.localHeight, w.networkHeight
}

// Reset clears sync progress and rescans from scanHeight, rolling the store
// back with it.
func (w *Wallet) Reset(ctx context.Context, scanHeight, scanTimestamp uint64) {
	w.source.Reset(scanHeight, scanTimestamp)
	w.subwallets.RemoveForkedTransactions(scanHeight)
	w.markDirty(ctx)
}

// Rewind rolls back to scanHeight preserving earlier history.
func (w *Wallet) Rewind(ctx context.Context, scanHeight uint64) {
	w.source.Rewind(scanHeight)
	w.subwallets.RemoveForkedTransactions(scanHeight)
	w.markDirty(ctx)
}

// SwapNode points the wallet at a different node.
func (w *Wallet) SwapNode(address string) {
	if swapper, ok := w.client.(interface{ Swap(string) }); ok {
		swapper.Swap(address)
	}
	w.source.ReArmDeadNode()
}

// SubmitTransaction sends a prepared transaction and registers its pending
// state: the consumed inputs lock and the transaction joins the
// cancellation watch list.
func (w *Wallet) SubmitTransaction(ctx context.Context, rawHex string, tx model.Transaction, consumed []model.SpentKeyImage, txPrivateKey crypto.SecretKey) error {
	w.currentlyTransacting.Store(true)
	defer w.currentlyTransacting.Store(false)

	if err := w.client.SubmitTransaction(ctx, rawHex); err != nil {
		return err
	}

	for _, spent := range consumed {
		if err := w.subwallets.MarkInputAsLocked(spent.Owner, spent.KeyImage, tx.Hash); err != nil {
			return err
		}
	}
	w.subwallets.AddUnconfirmedTransaction(tx)
	if !txPrivateKey.IsZero() {
		w.subwallets.StoreTxPrivateKey(tx.Hash, txPrivateKey)
	}

	if tx.IsFusion() {
		w.bus.Publish(events.CreatedFusionTxEvent{Transaction: tx})
	} else {
		w.bus.Publish(events.CreatedTxEvent{Transaction: tx})
	}
	w.markDirty(ctx)
	return nil
}

// ValidateTransfer applies the synchronous validation rules for an outbound
// transfer request.
func (w *Wallet) ValidateTransfer(address string, amount, mixin, fee uint64, paymentID string) error {
	if err := werrors.ValidateAddress(address, w.cfg.AddressPrefix, w.cfg.StandardAddressLength, w.cfg.IntegratedAddressLength); err != nil {
		return err
	}
	if err := werrors.ValidateAmount(amount); err != nil {
		return err
	}
	if err := werrors.ValidatePaymentID(paymentID); err != nil {
		return err
	}
	limits := w.cfg.MixinLimits.AtHeight(w.source.Height())
	if err := werrors.ValidateMixin(mixin, limits.MinMixin, limits.MaxMixin); err != nil {
		return err
	}
	if fee < w.cfg.MinimumFee {
		return werrors.Newf(werrors.FeeTooSmall, "fee %d below minimum %d", fee, w.cfg.MinimumFee)
	}
	unlocked, _, err := w.Balance()
	if err != nil {
		return err
	}
	if amount+fee > unlocked {
		return werrors.Newf(werrors.NotEnoughBalance, "need %d, have %d unlocked", amount+fee, unlocked)
	}
	return nil
}

func (w *Wallet) markDirty(ctx context.Context) {
	if w.saver == nil {
		return
	}
	if err := w.saver.Add(ctx, struct{}{}); err != nil {
		w.logger.Debug("autosave enqueue failed", zap.Error(err))
	}
}
