// Package subwallets is the authoritative store of inputs, spends and
// attributed transactions across all subwallets.
package subwallets

import (
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
)

// MaxBlockNumber divides unlock_time semantics: values at or above it are
// wall-clock timestamps, values below are block heights.
const MaxBlockNumber = uint64(1) << 32

// SubWallet is one (public, private) spend key pair under the shared view
// key. Inputs appear in block-order of discovery.
type SubWallet struct {
	Address            string           `json:"address"`
	PublicSpendKey     crypto.PublicKey `json:"publicSpendKey"`
	PrivateSpendKey    crypto.SecretKey `json:"privateSpendKey"`
	SyncStartHeight    uint64           `json:"syncStartHeight"`
	SyncStartTimestamp uint64           `json:"syncStartTimestamp"`
	IsPrimary          bool             `json:"isPrimaryAddress"`

	UnspentInputs []model.TransactionInput `json:"unspentInputs"`
	LockedInputs  []model.TransactionInput `json:"lockedInputs"`
	SpentInputs   []model.TransactionInput `json:"spentInputs"`
}

// HasSpendKey reports whether this subwallet can derive key images locally.
// A zero private spend key means signing happens on an external device or
// the wallet is view-only.
func (w *SubWallet) HasSpendKey() bool {
	return !w.PrivateSpendKey.IsZero()
}

// Balance sums unspent inputs, split by the unlock rule at the given height.
func (w *SubWallet) Balance(currentHeight uint64, now time.Time) (unlocked, locked uint64) {
	for i := range w.UnspentInputs {
		in := &w.UnspentInputs[i]
		if isInputUnlocked(in.UnlockTime, currentHeight, now) {
			unlocked += in.Amount
		} else {
			locked += in.Amount
		}
	}
	return unlocked, locked
}

// isInputUnlocked applies the network lock rule: zero means no lock, values
// at or above MaxBlockNumber are wall-clock seconds, anything else is a
// block height satisfied once currentHeight+1 reaches it.
func isInputUnlocked(unlockTime, currentHeight uint64, now time.Time) bool {
	switch {
	case unlockTime == 0:
		return true
	case unlockTime >= MaxBlockNumber:
		return uint64(now.Unix()) >= unlockTime
	default:
		return currentHeight+1 >= unlockTime
	}
}

// takeInput removes and returns the input with the given key image from the
// slice, preserving order.
func takeInput(inputs *[]model.TransactionInput, keyImage crypto.KeyImage) (model.TransactionInput, bool) {
	for i := range *inputs {
		if (*inputs)[i].KeyImage == keyImage {
			in := (*inputs)[i]
			*inputs = append((*inputs)[:i], (*inputs)[i+1:]...)
			return in, true
		}
	}
	return model.TransactionInput{}, false
}
