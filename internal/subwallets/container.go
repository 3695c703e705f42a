package subwallets

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/werrors"
)

// PruneInterval is how far behind the tip spent inputs are kept. Reorgs
// deeper than this are ruled out by policy, so older spends are garbage.
const PruneInterval = 5000

// CancellationThreshold is the number of consecutive "missing" responses
// after which a locked transaction is presumed dropped.
const CancellationThreshold = 10

// Container owns every subwallet and all attributed transactions. All
// mutation goes through its methods behind a single writer lock; read
// accessors return copies so callers never observe mid-mutation state.
type Container struct {
	logger *zap.Logger
	crypto crypto.Capability

	mu sync.RWMutex

	privateViewKey crypto.SecretKey
	isViewWallet   bool

	subwallets map[crypto.PublicKey]*SubWallet
	keyOrder   []crypto.PublicKey

	transactions       []model.Transaction
	lockedTransactions []model.Transaction

	keyImageOwners map[crypto.KeyImage]crypto.PublicKey
	lockedBy       map[crypto.KeyImage]crypto.Hash

	// Consecutive "missing" poll responses per locked transaction hash.
	cancellationCounts map[crypto.Hash]int

	txPrivateKeys map[crypto.Hash]crypto.SecretKey
}

// NewContainer builds an empty container for the given view key.
func NewContainer(privateViewKey crypto.SecretKey, isViewWallet bool, capability crypto.Capability, logger *zap.Logger) *Container {
	return &Container{
		logger:             logger.Named("subwallets"),
		crypto:             capability,
		privateViewKey:     privateViewKey,
		isViewWallet:       isViewWallet,
		subwallets:         make(map[crypto.PublicKey]*SubWallet),
		keyImageOwners:     make(map[crypto.KeyImage]crypto.PublicKey),
		lockedBy:           make(map[crypto.KeyImage]crypto.Hash),
		cancellationCounts: make(map[crypto.Hash]int),
		txPrivateKeys:      make(map[crypto.Hash]crypto.SecretKey),
	}
}

// PrivateViewKey returns the shared view key.
func (c *Container) PrivateViewKey() crypto.SecretKey {
	return c.privateViewKey
}

// IsViewWallet reports whether no private spend keys exist at all.
func (c *Container) IsViewWallet() bool {
	return c.isViewWallet
}

// AddSubWallet registers a subwallet. The first one added becomes primary.
func (c *Container) AddSubWallet(w SubWallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subwallets[w.PublicSpendKey]; ok {
		return fmt.Errorf("subwallet %s already exists", w.PublicSpendKey)
	}
	if len(c.subwallets) == 0 {
		w.IsPrimary = true
	}
	stored := w
	c.subwallets[w.PublicSpendKey] = &stored
	c.keyOrder = append(c.keyOrder, w.PublicSpendKey)
	return nil
}

// DeleteSubWallet removes a subwallet and everything it owns.
func (c *Container) DeleteSubWallet(publicSpendKey crypto.PublicKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.subwallets[publicSpendKey]
	if !ok {
		return werrors.New(werrors.SubwalletNotFound)
	}
	if w.IsPrimary {
		return werrors.Newf(werrors.SubwalletNotFound, "cannot delete the primary subwallet")
	}

	for _, inputs := range [][]model.TransactionInput{w.UnspentInputs, w.LockedInputs, w.SpentInputs} {
		for i := range inputs {
			delete(c.keyImageOwners, inputs[i].KeyImage)
			delete(c.lockedBy, inputs[i].KeyImage)
		}
	}
	delete(c.subwallets, publicSpendKey)
	for i, k := range c.keyOrder {
		if k == publicSpendKey {
			c.keyOrder = append(c.keyOrder[:i], c.keyOrder[i+1:]...)
			break
		}
	}

	// Transactions touching only the removed subwallet go with it.
	filtered := c.transactions[:0]
	for _, tx := range c.transactions {
		delete(tx.Transfers, publicSpendKey)
		if len(tx.Transfers) > 0 {
			filtered = append(filtered, tx)
		}
	}
	c.transactions = filtered
	return nil
}

// PublicSpendKeys returns all registered spend keys in registration order.
func (c *Container) PublicSpendKeys() []crypto.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]crypto.PublicKey, len(c.keyOrder))
	copy(out, c.keyOrder)
	return out
}

// SubWalletCount returns the number of registered subwallets.
func (c *Container) SubWalletCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subwallets)
}

// PrimarySpendKey returns the primary subwallet's public spend key.
func (c *Container) PrimarySpendKey() (crypto.PublicKey, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.subwallets {
		if w.IsPrimary {
			return w.PublicSpendKey, nil
		}
	}
	return crypto.PublicKey{}, werrors.New(werrors.SubwalletNotFound)
}

// KeyImageOwner resolves which subwallet a key image belongs to.
func (c *Container) KeyImageOwner(keyImage crypto.KeyImage) (crypto.PublicKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	owner, ok := c.keyImageOwners[keyImage]
	return owner, ok
}

// TxInputKeyImage derives the key image and private ephemeral for an output
// addressed to owner at the given output index. View wallets get zero
// sentinels: they can see receipts but never spends.
func (c *Container) TxInputKeyImage(owner crypto.PublicKey, derivation crypto.KeyDerivation, outputIndex uint64) (crypto.KeyImage, crypto.SecretKey, error) {
	c.mu.RLock()
	w, ok := c.subwallets[owner]
	c.mu.RUnlock()
	if !ok {
		return crypto.KeyImage{}, crypto.SecretKey{}, werrors.New(werrors.SubwalletNotFound)
	}
	if c.isViewWallet || !w.HasSpendKey() {
		return crypto.KeyImage{}, crypto.SecretKey{}, nil
	}

	privateEphemeral, err := c.crypto.DeriveSecretKey(derivation, outputIndex, w.PrivateSpendKey)
	if err != nil {
		return crypto.KeyImage{}, crypto.SecretKey{}, fmt.Errorf("derive secret key: %w", err)
	}
	publicEphemeral, err := c.crypto.DerivePublicKey(derivation, outputIndex, w.PublicSpendKey)
	if err != nil {
		return crypto.KeyImage{}, crypto.SecretKey{}, fmt.Errorf("derive public key: %w", err)
	}
	keyImage, err := c.crypto.GenerateKeyImage(publicEphemeral, privateEphemeral)
	if err != nil {
		return crypto.KeyImage{}, crypto.SecretKey{}, fmt.Errorf("generate key image: %w", err)
	}
	return keyImage, privateEphemeral, nil
}

// StoreTransactionInput records a freshly discovered owned output.
func (c *Container) StoreTransactionInput(owner crypto.PublicKey, input model.TransactionInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.subwallets[owner]
	if !ok {
		return werrors.New(werrors.SubwalletNotFound)
	}
	w.UnspentInputs = append(w.UnspentInputs, input)
	if !input.KeyImage.IsZero() {
		c.keyImageOwners[input.KeyImage] = owner
	}
	return nil
}

// MarkInputAsSpent flips an unspent or locked input to spent at the given
// height.
func (c *Container) MarkInputAsSpent(owner crypto.PublicKey, keyImage crypto.KeyImage, blockHeight uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.subwallets[owner]
	if !ok {
		return werrors.New(werrors.SubwalletNotFound)
	}

	in, found := takeInput(&w.UnspentInputs, keyImage)
	if !found {
		in, found = takeInput(&w.LockedInputs, keyImage)
	}
	if !found {
		return fmt.Errorf("key image %s not spendable in subwallet %s", keyImage, owner)
	}
	delete(c.lockedBy, keyImage)
	in.SpendHeight = blockHeight
	w.SpentInputs = append(w.SpentInputs, in)
	return nil
}

// MarkInputAsLocked moves an unspent input to the locked set, tied to the
// pending outbound transaction that consumes it.
func (c *Container) MarkInputAsLocked(owner crypto.PublicKey, keyImage crypto.KeyImage, pendingTx crypto.Hash) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.subwallets[owner]
	if !ok {
		return werrors.New(werrors.SubwalletNotFound)
	}
	in, found := takeInput(&w.UnspentInputs, keyImage)
	if !found {
		return fmt.Errorf("key image %s not unspent in subwallet %s", keyImage, owner)
	}
	w.LockedInputs = append(w.LockedInputs, in)
	c.lockedBy[keyImage] = pendingTx
	return nil
}

// FillGlobalIndex late-fills the global output index of a stored input.
func (c *Container) FillGlobalIndex(owner crypto.PublicKey, keyImage crypto.KeyImage, globalIndex uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.subwallets[owner]
	if !ok {
		return
	}
	for _, inputs := range []*[]model.TransactionInput{&w.UnspentInputs, &w.LockedInputs, &w.SpentInputs} {
		for i := range *inputs {
			if (*inputs)[i].KeyImage == keyImage {
				idx := globalIndex
				(*inputs)[i].GlobalOutputIndex = &idx
				return
			}
		}
	}
}

// AddTransaction records a confirmed transaction, replacing any unconfirmed
// copy of the same hash.
func (c *Container) AddTransaction(tx model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lockedTransactions {
		if c.lockedTransactions[i].Hash == tx.Hash {
			c.lockedTransactions = append(c.lockedTransactions[:i], c.lockedTransactions[i+1:]...)
			delete(c.cancellationCounts, tx.Hash)
			break
		}
	}
	c.transactions = append(c.transactions, tx)
}

// AddUnconfirmedTransaction records a pending outbound transaction awaiting
// a block.
func (c *Container) AddUnconfirmedTransaction(tx model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lockedTransactions = append(c.lockedTransactions, tx)
}

// Transactions returns a copy of all confirmed transactions.
func (c *Container) Transactions() []model.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// UnconfirmedTransactions returns pending outbound transactions, optionally
// restricted to one subwallet and optionally including fusions.
func (c *Container) UnconfirmedTransactions(subwallet *crypto.PublicKey, includeFusions bool) []model.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []model.Transaction
	for _, tx := range c.lockedTransactions {
		if !includeFusions && tx.IsFusion() {
			continue
		}
		if subwallet != nil {
			if _, ok := tx.Transfers[*subwallet]; !ok {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

// LockedTransactionHashes returns the hashes the cancellation poll should
// check.
func (c *Container) LockedTransactionHashes() []crypto.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]crypto.Hash, 0, len(c.lockedTransactions))
	for i := range c.lockedTransactions {
		out = append(out, c.lockedTransactions[i].Hash)
	}
	return out
}

// RecordCancellationPoll folds one /transaction/status response into the
// per-hash miss counters and returns the hashes that crossed the threshold.
// A hash seen again (not missing) resets its counter.
func (c *Container) RecordCancellationPoll(notFound []crypto.Hash) []crypto.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	missing := make(map[crypto.Hash]bool, len(notFound))
	for _, h := range notFound {
		missing[h] = true
	}

	var cancelled []crypto.Hash
	for i := range c.lockedTransactions {
		h := c.lockedTransactions[i].Hash
		if !missing[h] {
			delete(c.cancellationCounts, h)
			continue
		}
		c.cancellationCounts[h]++
		if c.cancellationCounts[h] >= CancellationThreshold {
			cancelled = append(cancelled, h)
		}
	}
	return cancelled
}

// RemoveCancelledTransaction reverses a dropped pending transaction: the
// unconfirmed record is removed and the inputs it locked return to unspent.
func (c *Container) RemoveCancelledTransaction(hash crypto.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lockedTransactions {
		if c.lockedTransactions[i].Hash == hash {
			c.lockedTransactions = append(c.lockedTransactions[:i], c.lockedTransactions[i+1:]...)
			break
		}
	}
	delete(c.cancellationCounts, hash)
	delete(c.txPrivateKeys, hash)

	for keyImage, lockingTx := range c.lockedBy {
		if lockingTx != hash {
			continue
		}
		owner, ok := c.keyImageOwners[keyImage]
		if !ok {
			continue
		}
		w := c.subwallets[owner]
		if in, found := takeInput(&w.LockedInputs, keyImage); found {
			in.SpendHeight = 0
			w.UnspentInputs = append(w.UnspentInputs, in)
		}
		delete(c.lockedBy, keyImage)
	}
}

// RemoveForkedTransactions rolls the store back below forkHeight: inputs
// discovered at or above it are removed, spends at or above it are
// reverted, transactions at or above it are dropped.
func (c *Container) RemoveForkedTransactions(forkHeight uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, w := range c.subwallets {
		w.UnspentInputs = c.dropInputsAbove(w.UnspentInputs, forkHeight)
		w.LockedInputs = c.dropInputsAbove(w.LockedInputs, forkHeight)

		kept := w.SpentInputs[:0]
		for _, in := range w.SpentInputs {
			if in.BlockHeight >= forkHeight {
				delete(c.keyImageOwners, in.KeyImage)
				continue
			}
			if in.SpendHeight >= forkHeight {
				in.SpendHeight = 0
				w.UnspentInputs = append(w.UnspentInputs, in)
				continue
			}
			kept = append(kept, in)
		}
		w.SpentInputs = kept
	}

	filtered := c.transactions[:0]
	for _, tx := range c.transactions {
		if tx.BlockHeight >= forkHeight {
			continue
		}
		filtered = append(filtered, tx)
	}
	c.transactions = filtered

	c.logger.Debug("rolled back forked state", zap.Uint64("forkHeight", forkHeight))
}

func (c *Container) dropInputsAbove(inputs []model.TransactionInput, height uint64) []model.TransactionInput {
	kept := inputs[:0]
	for _, in := range inputs {
		if in.BlockHeight >= height {
			delete(c.keyImageOwners, in.KeyImage)
			delete(c.lockedBy, in.KeyImage)
			continue
		}
		kept = append(kept, in)
	}
	return kept
}

// PruneSpentInputs discards spent inputs buried deeper than PruneInterval
// below the given height.
func (c *Container) PruneSpentInputs(height uint64) {
	if height < PruneInterval {
		return
	}
	cutoff := height - PruneInterval

	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for _, w := range c.subwallets {
		kept := w.SpentInputs[:0]
		for _, in := range w.SpentInputs {
			if in.SpendHeight != 0 && in.SpendHeight < cutoff {
				delete(c.keyImageOwners, in.KeyImage)
				pruned++
				continue
			}
			kept = append(kept, in)
		}
		w.SpentInputs = kept
	}
	if pruned > 0 {
		c.logger.Debug("pruned spent inputs", zap.Int("count", pruned), zap.Uint64("cutoff", cutoff))
	}
}

// Balance sums unspent inputs across the filtered subwallets, split into
// unlocked and locked by the network lock rule.
func (c *Container) Balance(networkHeight uint64, filter []crypto.PublicKey) (unlocked, locked uint64, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := filter
	if len(keys) == 0 {
		keys = c.keyOrder
	}
	now := time.Now()
	for _, key := range keys {
		w, ok := c.subwallets[key]
		if !ok {
			return 0, 0, werrors.New(werrors.SubwalletNotFound)
		}
		u, l := w.Balance(networkHeight, now)
		unlocked += u
		locked += l
	}
	return unlocked, locked, nil
}

// ConvertSyncTimestampToHeight replaces timestamp-based scan starts with the
// height the pipeline resolved them to.
func (c *Container) ConvertSyncTimestampToHeight(timestamp, height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.subwallets {
		if w.SyncStartTimestamp == timestamp && timestamp != 0 {
			w.SyncStartTimestamp = 0
			w.SyncStartHeight = height
		}
	}
}

// StoreTxPrivateKey keeps the ephemeral transaction key of an outbound
// transfer for later proof of payment.
func (c *Container) StoreTxPrivateKey(hash crypto.Hash, key crypto.SecretKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txPrivateKeys[hash] = key
}

// TxPrivateKey returns a stored outbound transaction key.
func (c *Container) TxPrivateKey(hash crypto.Hash) (crypto.SecretKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.txPrivateKeys[hash]
	return key, ok
}

// ApplyTransactionData commits one block's scan result: inputs, then
// spends, then transactions. The scan builds the full TransactionData before
// this is called, so a failed scan commits nothing.
func (c *Container) ApplyTransactionData(data model.TransactionData, blockHeight uint64) error {
	for _, owned := range data.InputsToAdd {
		if err := c.StoreTransactionInput(owned.Owner, owned.Input); err != nil {
			return err
		}
	}
	for _, spent := range data.KeyImagesToMarkSpent {
		if err := c.MarkInputAsSpent(spent.Owner, spent.KeyImage, blockHeight); err != nil {
			return err
		}
	}
	for _, tx := range data.TransactionsToAdd {
		c.AddTransaction(tx)
	}
	return nil
}

// Snapshot returns a deep copy of every subwallet for iteration without
// holding the lock.
func (c *Container) Snapshot() []SubWallet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]SubWallet, 0, len(c.keyOrder))
	for _, key := range c.keyOrder {
		w := c.subwallets[key]
		cp := *w
		cp.UnspentInputs = append([]model.TransactionInput(nil), w.UnspentInputs...)
		cp.LockedInputs = append([]model.TransactionInput(nil), w.LockedInputs...)
		cp.SpentInputs = append([]model.TransactionInput(nil), w.SpentInputs...)
		out = append(out, cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsPrimary && !out[j].IsPrimary })
	return out
}
