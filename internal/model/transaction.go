package model

import (
	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
)

// TransactionInput is an owned output discovered by scanning. It is
// immutable once created, except for SpendHeight and the late-filled
// GlobalOutputIndex. SpendHeight == 0 iff the input is unspent.
type TransactionInput struct {
	KeyImage             crypto.KeyImage  `json:"keyImage"`
	Amount               uint64           `json:"amount"`
	BlockHeight          uint64           `json:"blockHeight"`
	TransactionPublicKey crypto.PublicKey `json:"transactionPublicKey"`
	TransactionIndex     uint64           `json:"transactionIndex"`
	GlobalOutputIndex    *uint64          `json:"globalOutputIndex,omitempty"`
	Key                  crypto.PublicKey `json:"key"`
	SpendHeight          uint64           `json:"spendHeight"`
	UnlockTime           uint64           `json:"unlockTime"`
	ParentTransactionHash crypto.Hash     `json:"parentTransactionHash"`
	PrivateEphemeral     crypto.SecretKey `json:"privateEphemeral"`
}

// Transaction is an attributed transaction. Transfers maps each affected
// subwallet's public spend key to its signed net change: positive incoming,
// negative outgoing, zero-sum fusion.
type Transaction struct {
	Transfers   map[crypto.PublicKey]int64 `json:"transfers"`
	Hash        crypto.Hash                `json:"hash"`
	Fee         uint64                     `json:"fee"`
	BlockHeight uint64                     `json:"blockHeight"`
	Timestamp   uint64                     `json:"timestamp"`
	PaymentID   string                     `json:"paymentID"`
	UnlockTime  uint64                     `json:"unlockTime"`
	IsCoinbase  bool                       `json:"isCoinbaseTransaction"`
}

// TotalAmount is the signed net change across all subwallets.
func (t *Transaction) TotalAmount() int64 {
	var total int64
	for _, amount := range t.Transfers {
		total += amount
	}
	return total
}

// IsFusion reports a zero-fee, non-coinbase self-transfer whose net change
// across all subwallets is zero. Confirmation is not checked.
func (t *Transaction) IsFusion() bool {
	return t.Fee == 0 && !t.IsCoinbase && t.TotalAmount() == 0
}

// OwnedInput pairs a discovered input with the subwallet that owns it.
type OwnedInput struct {
	Owner crypto.PublicKey `json:"publicSpendKey"`
	Input TransactionInput `json:"input"`
}

// SpentKeyImage records that a subwallet's input was seen spent in a block.
type SpentKeyImage struct {
	Owner    crypto.PublicKey `json:"publicSpendKey"`
	KeyImage crypto.KeyImage  `json:"keyImage"`
}

// TransactionData is the full result of scanning one block. It is applied to
// the store atomically: either all of it commits or none of it does.
type TransactionData struct {
	TransactionsToAdd    []Transaction
	InputsToAdd          []OwnedInput
	KeyImagesToMarkSpent []SpentKeyImage
}
