// Package scanner turns raw blocks into owned inputs and attributed
// transactions.
package scanner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// KeyStore is the subwallet state the scanner consults: the spend key
	// set, the key image ownership index, and key image derivation.
	KeyStore interface {
		PrivateViewKey() crypto.SecretKey
		IsViewWallet() bool
		PublicSpendKeys() []crypto.PublicKey
		KeyImageOwner(keyImage crypto.KeyImage) (crypto.PublicKey, bool)
		TxInputKeyImage(owner crypto.PublicKey, derivation crypto.KeyDerivation, outputIndex uint64) (crypto.KeyImage, crypto.SecretKey, error)
	}

	// IndexResolver supplies global output indexes when the node streams
	// blocks without them.
	IndexResolver interface {
		GlobalIndexesForRange(ctx context.Context, start, end uint64) (map[crypto.Hash][]uint64, error)
	}

	// Metrics records per-block scan outcomes.
	Metrics interface {
		ObserveBlock(err error, inputs, spends int, started time.Time)
	}
)
