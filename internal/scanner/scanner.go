package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/werrors"
	"github.com/goodnatureofminers/walletsync7000-backend/pkg/safe"
	"github.com/goodnatureofminers/walletsync7000-backend/pkg/workerpool"
)

const (
	// Transactions in a block are derived concurrently; derivation is pure
	// and touches no shared state.
	scanWorkerCount = 4

	// indexObscurityWindow widens global index lookups so the node cannot
	// tell which height actually interested us.
	indexObscurityWindow = 10
)

// Scanner is the output-scanning and attribution engine. It holds no wallet
// state of its own: fresh records are returned to the caller to commit.
type Scanner struct {
	logger  *zap.Logger
	crypto  crypto.Capability
	store   KeyStore
	indexes IndexResolver
	metrics Metrics

	scanCoinbase bool
	workerCount  int
}

// New constructs a Scanner.
func New(store KeyStore, indexes IndexResolver, capability crypto.Capability, metrics Metrics, scanCoinbase bool, logger *zap.Logger) (*Scanner, error) {
	if metrics == nil {
		return nil, errors.New("scanner metrics is required")
	}
	return &Scanner{
		logger:       logger.Named("scanner"),
		crypto:       capability,
		store:        store,
		indexes:      indexes,
		metrics:      metrics,
		scanCoinbase: scanCoinbase,
		workerCount:  scanWorkerCount,
	}, nil
}

// ScanBlock runs the full per-block computation: output discovery, global
// index late-fill, then attribution. The returned TransactionData is
// complete; nothing has been committed anywhere.
func (s *Scanner) ScanBlock(ctx context.Context, block *model.Block) (data model.TransactionData, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveBlock(err, len(data.InputsToAdd), len(data.KeyImagesToMarkSpent), started)
	}()

	owned, err := s.ProcessBlockOutputs(ctx, block)
	if err != nil {
		return model.TransactionData{}, err
	}

	if err = s.fillGlobalIndexes(ctx, block, owned); err != nil {
		return model.TransactionData{}, err
	}

	return s.ProcessBlock(block, owned)
}

// ProcessBlockOutputs scans every transaction's stealth outputs against the
// wallet's spend key set and returns the owned inputs in block order.
func (s *Scanner) ProcessBlockOutputs(ctx context.Context, block *model.Block) ([]model.OwnedInput, error) {
	spendKeys := make(map[crypto.PublicKey]bool)
	for _, key := range s.store.PublicSpendKeys() {
		spendKeys[key] = true
	}

	txs := s.transactionsInOrder(block)
	results := make([][]model.OwnedInput, len(txs))

	type job struct {
		pos int
		tx  *model.RawTransaction
	}
	jobs := make([]job, len(txs))
	for i, tx := range txs {
		jobs[i] = job{pos: i, tx: tx}
	}

	err := workerpool.Process(ctx, s.workerCount, jobs, func(_ context.Context, j job) error {
		found, err := s.scanTransaction(j.tx, spendKeys, block.Height)
		if err != nil {
			return err
		}
		results[j.pos] = found
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	var owned []model.OwnedInput
	for _, found := range results {
		owned = append(owned, found...)
	}
	return owned, nil
}

func (s *Scanner) scanTransaction(tx *model.RawTransaction, spendKeys map[crypto.PublicKey]bool, blockHeight uint64) ([]model.OwnedInput, error) {
	derivation, err := s.crypto.GenerateKeyDerivation(tx.PublicKey, s.store.PrivateViewKey())
	if err != nil {
		// A transaction key that is not a valid point cannot address us.
		s.logger.Debug("skipping transaction with invalid public key",
			zap.String("tx", tx.Hash.String()), zap.Error(err))
		return nil, nil
	}

	var owned []model.OwnedInput
	for i, output := range tx.KeyOutputs {
		derivedSpend, err := s.crypto.UnderivePublicKey(derivation, uint64(i), output.Key)
		if err != nil {
			continue
		}
		if !spendKeys[derivedSpend] {
			continue
		}

		keyImage, privateEphemeral, err := s.store.TxInputKeyImage(derivedSpend, derivation, uint64(i))
		if err != nil {
			return nil, fmt.Errorf("derive key image for tx %s output %d: %w", tx.Hash, i, err)
		}

		owned = append(owned, model.OwnedInput{
			Owner: derivedSpend,
			Input: model.TransactionInput{
				KeyImage:              keyImage,
				Amount:                output.Amount,
				BlockHeight:           blockHeight,
				TransactionPublicKey:  tx.PublicKey,
				TransactionIndex:      uint64(i),
				GlobalOutputIndex:     output.GlobalIndex,
				Key:                   output.Key,
				SpendHeight:           0,
				UnlockTime:            tx.UnlockTime,
				ParentTransactionHash: tx.Hash,
				PrivateEphemeral:      privateEphemeral,
			},
		})
	}
	return owned, nil
}

// ProcessBlock attributes the block's transactions: incoming amounts from
// the owned inputs, outgoing amounts from key inputs whose key images the
// wallet recognizes.
func (s *Scanner) ProcessBlock(block *model.Block, owned []model.OwnedInput) (model.TransactionData, error) {
	var data model.TransactionData

	byParent := make(map[crypto.Hash][]model.OwnedInput)
	freshOwners := make(map[crypto.KeyImage]crypto.PublicKey)
	for _, in := range owned {
		byParent[in.Input.ParentTransactionHash] = append(byParent[in.Input.ParentTransactionHash], in)
		if !in.Input.KeyImage.IsZero() {
			freshOwners[in.Input.KeyImage] = in.Owner
		}
	}

	for _, tx := range s.transactionsInOrder(block) {
		isCoinbase := block.Coinbase != nil && tx == block.Coinbase

		transfers := make(map[crypto.PublicKey]int64)
		for _, in := range byParent[tx.Hash] {
			amount, err := safe.Int64(in.Input.Amount)
			if err != nil {
				return model.TransactionData{}, fmt.Errorf("tx %s output amount: %w", tx.Hash, err)
			}
			transfers[in.Owner] += amount
			data.InputsToAdd = append(data.InputsToAdd, in)
		}

		var inputTotal, outputTotal uint64
		for _, keyInput := range tx.KeyInputs {
			inputTotal += keyInput.Amount
			owner, known := s.store.KeyImageOwner(keyInput.KeyImage)
			if !known {
				owner, known = freshOwners[keyInput.KeyImage]
			}
			if known {
				amount, err := safe.Int64(keyInput.Amount)
				if err != nil {
					return model.TransactionData{}, fmt.Errorf("tx %s input amount: %w", tx.Hash, err)
				}
				transfers[owner] -= amount
				data.KeyImagesToMarkSpent = append(data.KeyImagesToMarkSpent, model.SpentKeyImage{
					Owner:    owner,
					KeyImage: keyInput.KeyImage,
				})
			}
		}
		for _, output := range tx.KeyOutputs {
			outputTotal += output.Amount
		}

		var fee uint64
		if !isCoinbase && inputTotal > outputTotal {
			fee = inputTotal - outputTotal
		}

		if len(transfers) == 0 {
			continue
		}

		paymentID := tx.PaymentID
		if isCoinbase {
			paymentID = ""
		}
		data.TransactionsToAdd = append(data.TransactionsToAdd, model.Transaction{
			Transfers:   transfers,
			Hash:        tx.Hash,
			Fee:         fee,
			BlockHeight: block.Height,
			Timestamp:   block.Timestamp,
			PaymentID:   paymentID,
			UnlockTime:  tx.UnlockTime,
			IsCoinbase:  isCoinbase,
		})
	}

	return data, nil
}

// fillGlobalIndexes resolves missing global output indexes with one range
// query around the block. A required entry the node cannot produce is a
// fatal scan error: the node is lying about the chain.
func (s *Scanner) fillGlobalIndexes(ctx context.Context, block *model.Block, owned []model.OwnedInput) error {
	if s.store.IsViewWallet() {
		return nil
	}

	needed := false
	for i := range owned {
		if owned[i].Input.GlobalOutputIndex == nil {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	start, end := indexObscurityRange(block.Height)
	indexes, err := s.indexes.GlobalIndexesForRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("fetch global indexes [%d, %d]: %w", start, end, err)
	}

	for i := range owned {
		in := &owned[i].Input
		if in.GlobalOutputIndex != nil {
			continue
		}
		txIndexes, ok := indexes[in.ParentTransactionHash]
		if !ok || in.TransactionIndex >= uint64(len(txIndexes)) {
			return werrors.Newf(werrors.ScanIntegrityError,
				"no global index for output %d of tx %s", in.TransactionIndex, in.ParentTransactionHash)
		}
		idx := txIndexes[in.TransactionIndex]
		in.GlobalOutputIndex = &idx
	}
	return nil
}

// indexObscurityRange widens the queried heights to multiples of the window
// on both sides.
func indexObscurityRange(height uint64) (start, end uint64) {
	if height > indexObscurityWindow {
		start = (height - indexObscurityWindow) / indexObscurityWindow * indexObscurityWindow
	}
	end = (height + 2*indexObscurityWindow - 1) / indexObscurityWindow * indexObscurityWindow
	return start, end
}

func (s *Scanner) transactionsInOrder(block *model.Block) []*model.RawTransaction {
	txs := make([]*model.RawTransaction, 0, len(block.Transactions)+1)
	if block.Coinbase != nil && s.scanCoinbase {
		txs = append(txs, block.Coinbase)
	}
	for i := range block.Transactions {
		txs = append(txs, &block.Transactions[i])
	}
	return txs
}
