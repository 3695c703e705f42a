package subwallets

import (
	"encoding/json"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
)

type txPrivateKeyJSON struct {
	TransactionHash crypto.Hash      `json:"transactionHash"`
	TxPrivateKey    crypto.SecretKey `json:"txPrivateKey"`
}

type containerJSON struct {
	PublicSpendKeys    []crypto.PublicKey  `json:"publicSpendKeys"`
	SubWallet          []SubWallet         `json:"subWallet"`
	Transactions       []model.Transaction `json:"transactions"`
	LockedTransactions []model.Transaction `json:"lockedTransactions"`
	PrivateViewKey     crypto.SecretKey    `json:"privateViewKey"`
	IsViewWallet       bool                `json:"isViewWallet"`
	TxPrivateKeys      []txPrivateKeyJSON  `json:"txPrivateKeys"`
}

// MarshalJSON writes the persisted subWallets schema.
func (c *Container) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc := containerJSON{
		PublicSpendKeys:    append([]crypto.PublicKey(nil), c.keyOrder...),
		Transactions:       append([]model.Transaction(nil), c.transactions...),
		LockedTransactions: append([]model.Transaction(nil), c.lockedTransactions...),
		PrivateViewKey:     c.privateViewKey,
		IsViewWallet:       c.isViewWallet,
	}
	for _, key := range c.keyOrder {
		doc.SubWallet = append(doc.SubWallet, *c.subwallets[key])
	}
	for hash, key := range c.txPrivateKeys {
		doc.TxPrivateKeys = append(doc.TxPrivateKeys, txPrivateKeyJSON{TransactionHash: hash, TxPrivateKey: key})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores the persisted subWallets schema, rebuilding the
// key image index from the stored inputs.
func (c *Container) UnmarshalJSON(data []byte) error {
	var doc containerJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.privateViewKey = doc.PrivateViewKey
	c.isViewWallet = doc.IsViewWallet
	c.keyOrder = doc.PublicSpendKeys
	c.transactions = doc.Transactions
	c.lockedTransactions = doc.LockedTransactions

	c.subwallets = make(map[crypto.PublicKey]*SubWallet, len(doc.SubWallet))
	c.keyImageOwners = make(map[crypto.KeyImage]crypto.PublicKey)
	c.lockedBy = make(map[crypto.KeyImage]crypto.Hash)
	c.cancellationCounts = make(map[crypto.Hash]int)
	c.txPrivateKeys = make(map[crypto.Hash]crypto.SecretKey, len(doc.TxPrivateKeys))

	for i := range doc.SubWallet {
		w := doc.SubWallet[i]
		c.subwallets[w.PublicSpendKey] = &w
		for _, inputs := range [][]model.TransactionInput{w.UnspentInputs, w.LockedInputs, w.SpentInputs} {
			for j := range inputs {
				if !inputs[j].KeyImage.IsZero() {
					c.keyImageOwners[inputs[j].KeyImage] = w.PublicSpendKey
				}
			}
		}
	}
	for _, entry := range doc.TxPrivateKeys {
		c.txPrivateKeys[entry.TransactionHash] = entry.TxPrivateKey
	}
	return nil
}
