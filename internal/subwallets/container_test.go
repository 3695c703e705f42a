package subwallets

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
)

func newTestContainer(t *testing.T) (*Container, crypto.PublicKey) {
	t.Helper()

	viewKey, _, err := crypto.GenerateKeys()
	require.NoError(t, err)
	spendSec, spendPub, err := crypto.GenerateKeys()
	require.NoError(t, err)

	c := NewContainer(viewKey, false, crypto.NewCapability(), zap.NewNop())
	require.NoError(t, c.AddSubWallet(SubWallet{
		PublicSpendKey:  spendPub,
		PrivateSpendKey: spendSec,
	}))
	return c, spendPub
}

func keyImageOf(b byte) crypto.KeyImage {
	var ki crypto.KeyImage
	ki[0] = b
	return ki
}

func hashOf(b byte) crypto.Hash {
	var h crypto.Hash
	h[0] = b
	return h
}

func testInput(keyImage crypto.KeyImage, amount, height, unlockTime uint64) model.TransactionInput {
	return model.TransactionInput{
		KeyImage:    keyImage,
		Amount:      amount,
		BlockHeight: height,
		UnlockTime:  unlockTime,
	}
}

func TestContainer_StoreAndSpend(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)
	ki := keyImageOf(1)

	require.NoError(t, c.StoreTransactionInput(owner, testInput(ki, 100, 10, 0)))

	got, ok := c.KeyImageOwner(ki)
	require.True(t, ok)
	assert.Equal(t, owner, got)

	unlocked, locked, err := c.Balance(20, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), unlocked)
	assert.Equal(t, uint64(0), locked)

	require.NoError(t, c.MarkInputAsSpent(owner, ki, 15))

	unlocked, locked, err = c.Balance(20, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), unlocked+locked)

	// A key image lives in exactly one of the three sets.
	snap := c.Snapshot()[0]
	assert.Empty(t, snap.UnspentInputs)
	assert.Empty(t, snap.LockedInputs)
	require.Len(t, snap.SpentInputs, 1)
	assert.Equal(t, uint64(15), snap.SpentInputs[0].SpendHeight)
}

func TestContainer_BalanceLockRule(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)

	// Unlocked: no lock at all.
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(1), 100, 10, 0)))
	// Height-locked until currentHeight+1 >= 50.
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(2), 200, 10, 50)))
	// Timestamp-locked far in the future.
	future := uint64(time.Now().Unix()) + 100000
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(3), 400, 10, MaxBlockNumber+future)))

	unlocked, locked, err := c.Balance(20, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), unlocked)
	assert.Equal(t, uint64(600), locked)

	// Height lock satisfied exactly at currentHeight+1 == unlockTime.
	unlocked, locked, err = c.Balance(49, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), unlocked)
	assert.Equal(t, uint64(400), locked)

	// Balance law: unlocked + locked covers every unspent input.
	assert.Equal(t, uint64(700), unlocked+locked)
}

func TestContainer_ForkRollback(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)

	// Input found at height 40, spent at height 45.
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(1), 100, 40, 0)))
	require.NoError(t, c.MarkInputAsSpent(owner, keyImageOf(1), 45))
	// Input found at height 42: removed entirely by the rollback.
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(2), 200, 42, 0)))

	c.AddTransaction(model.Transaction{Hash: hashOf(1), BlockHeight: 40, Transfers: map[crypto.PublicKey]int64{owner: 100}})
	c.AddTransaction(model.Transaction{Hash: hashOf(2), BlockHeight: 42, Transfers: map[crypto.PublicKey]int64{owner: 200}})

	c.RemoveForkedTransactions(42)

	snap := c.Snapshot()[0]
	require.Len(t, snap.UnspentInputs, 1)
	assert.Equal(t, keyImageOf(1), snap.UnspentInputs[0].KeyImage)
	assert.Equal(t, uint64(0), snap.UnspentInputs[0].SpendHeight)
	assert.Empty(t, snap.SpentInputs)

	_, ok := c.KeyImageOwner(keyImageOf(2))
	assert.False(t, ok)

	txs := c.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, hashOf(1), txs[0].Hash)
}

func TestContainer_PruneSpentInputs(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)

	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(1), 100, 10, 0)))
	require.NoError(t, c.MarkInputAsSpent(owner, keyImageOf(1), 20))
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(2), 100, 10, 0)))
	require.NoError(t, c.MarkInputAsSpent(owner, keyImageOf(2), PruneInterval+500))

	c.PruneSpentInputs(PruneInterval + 1000)

	snap := c.Snapshot()[0]
	require.Len(t, snap.SpentInputs, 1)
	assert.Equal(t, keyImageOf(2), snap.SpentInputs[0].KeyImage)
	_, ok := c.KeyImageOwner(keyImageOf(1))
	assert.False(t, ok)
}

func TestContainer_CancellationThreshold(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)
	pending := hashOf(7)

	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(1), 100, 10, 0)))
	require.NoError(t, c.MarkInputAsLocked(owner, keyImageOf(1), pending))
	c.AddUnconfirmedTransaction(model.Transaction{Hash: pending, Transfers: map[crypto.PublicKey]int64{owner: -100}, Fee: 10})

	missing := []crypto.Hash{pending}

	// Nine misses are not enough.
	for i := 0; i < CancellationThreshold-1; i++ {
		assert.Empty(t, c.RecordCancellationPoll(missing))
	}

	// A found response resets the counter.
	assert.Empty(t, c.RecordCancellationPoll(nil))
	for i := 0; i < CancellationThreshold-1; i++ {
		assert.Empty(t, c.RecordCancellationPoll(missing))
	}

	cancelled := c.RecordCancellationPoll(missing)
	require.Len(t, cancelled, 1)
	assert.Equal(t, pending, cancelled[0])

	c.RemoveCancelledTransaction(pending)

	// The locked input returned to the spendable pool.
	snap := c.Snapshot()[0]
	require.Len(t, snap.UnspentInputs, 1)
	assert.Empty(t, snap.LockedInputs)
	assert.Empty(t, c.LockedTransactionHashes())
}

func TestContainer_ConfirmationReplacesUnconfirmed(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)
	hash := hashOf(3)

	c.AddUnconfirmedTransaction(model.Transaction{Hash: hash, Transfers: map[crypto.PublicKey]int64{owner: -50}})
	require.Len(t, c.LockedTransactionHashes(), 1)

	c.AddTransaction(model.Transaction{Hash: hash, BlockHeight: 100, Transfers: map[crypto.PublicKey]int64{owner: -50}})

	assert.Empty(t, c.LockedTransactionHashes())
	assert.Len(t, c.Transactions(), 1)
}

func TestContainer_ConvertSyncTimestampToHeight(t *testing.T) {
	t.Parallel()

	viewKey, _, err := crypto.GenerateKeys()
	require.NoError(t, err)
	_, spendPub, err := crypto.GenerateKeys()
	require.NoError(t, err)

	c := NewContainer(viewKey, false, crypto.NewCapability(), zap.NewNop())
	require.NoError(t, c.AddSubWallet(SubWallet{
		PublicSpendKey:     spendPub,
		SyncStartTimestamp: 12345,
	}))

	c.ConvertSyncTimestampToHeight(12345, 777)

	snap := c.Snapshot()[0]
	assert.Equal(t, uint64(0), snap.SyncStartTimestamp)
	assert.Equal(t, uint64(777), snap.SyncStartHeight)
}

func TestContainer_DeleteSubWallet(t *testing.T) {
	t.Parallel()

	c, primary := newTestContainer(t)

	secondarySec, secondaryPub, err := crypto.GenerateKeys()
	require.NoError(t, err)
	require.NoError(t, c.AddSubWallet(SubWallet{PublicSpendKey: secondaryPub, PrivateSpendKey: secondarySec}))

	require.NoError(t, c.StoreTransactionInput(secondaryPub, testInput(keyImageOf(9), 300, 5, 0)))

	// The primary subwallet cannot be removed.
	assert.Error(t, c.DeleteSubWallet(primary))

	require.NoError(t, c.DeleteSubWallet(secondaryPub))
	assert.Equal(t, 1, c.SubWalletCount())
	_, ok := c.KeyImageOwner(keyImageOf(9))
	assert.False(t, ok)
}

func TestContainer_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	c, owner := newTestContainer(t)
	require.NoError(t, c.StoreTransactionInput(owner, testInput(keyImageOf(1), 100, 10, 0)))
	c.AddTransaction(model.Transaction{Hash: hashOf(1), BlockHeight: 10, Transfers: map[crypto.PublicKey]int64{owner: 100}})
	c.StoreTxPrivateKey(hashOf(2), c.PrivateViewKey())

	data, err := json.Marshal(c)
	require.NoError(t, err)

	restored := NewContainer(crypto.SecretKey{}, false, crypto.NewCapability(), zap.NewNop())
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, c.PrivateViewKey(), restored.PrivateViewKey())
	assert.Equal(t, c.PublicSpendKeys(), restored.PublicSpendKeys())
	assert.Len(t, restored.Transactions(), 1)

	// The key image index is rebuilt from the stored inputs.
	got, ok := restored.KeyImageOwner(keyImageOf(1))
	require.True(t, ok)
	assert.Equal(t, owner, got)

	key, ok := restored.TxPrivateKey(hashOf(2))
	require.True(t, ok)
	assert.Equal(t, c.PrivateViewKey(), key)
}

func TestContainer_TxInputKeyImageMatchesCapability(t *testing.T) {
	t.Parallel()

	capability := crypto.NewCapability()

	viewKey, viewPub, err := crypto.GenerateKeys()
	require.NoError(t, err)
	spendSec, spendPub, err := crypto.GenerateKeys()
	require.NoError(t, err)
	txSec, _, err := crypto.GenerateKeys()
	require.NoError(t, err)

	c := NewContainer(viewKey, false, capability, zap.NewNop())
	require.NoError(t, c.AddSubWallet(SubWallet{PublicSpendKey: spendPub, PrivateSpendKey: spendSec}))

	derivation, err := capability.GenerateKeyDerivation(viewPub, txSec)
	require.NoError(t, err)

	keyImage, privateEphemeral, err := c.TxInputKeyImage(spendPub, derivation, 0)
	require.NoError(t, err)
	assert.False(t, keyImage.IsZero())

	publicEphemeral, err := capability.DerivePublicKey(derivation, 0, spendPub)
	require.NoError(t, err)
	expected, err := capability.GenerateKeyImage(publicEphemeral, privateEphemeral)
	require.NoError(t, err)
	assert.Equal(t, expected, keyImage)
}

func TestContainer_ViewWalletKeyImages(t *testing.T) {
	t.Parallel()

	viewKey, _, err := crypto.GenerateKeys()
	require.NoError(t, err)
	_, spendPub, err := crypto.GenerateKeys()
	require.NoError(t, err)

	c := NewContainer(viewKey, true, crypto.NewCapability(), zap.NewNop())
	require.NoError(t, c.AddSubWallet(SubWallet{PublicSpendKey: spendPub}))

	keyImage, privateEphemeral, err := c.TxInputKeyImage(spendPub, crypto.KeyDerivation{}, 0)
	require.NoError(t, err)
	assert.True(t, keyImage.IsZero())
	assert.True(t, privateEphemeral.IsZero())
}
