package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/subwallets"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/syncstatus"
)

// WalletFileFormatVersion is the persisted document version this build
// reads and writes.
const WalletFileFormatVersion uint32 = 0

type synchronizerJSON struct {
	StartHeight    uint64            `json:"startHeight"`
	StartTimestamp uint64            `json:"startTimestamp"`
	PrivateViewKey crypto.SecretKey  `json:"privateViewKey"`
	Status         *syncstatus.Status `json:"transactionSynchronizerStatus"`
}

type walletFileJSON struct {
	WalletFileFormatVersion uint32                 `json:"walletFileFormatVersion"`
	SubWallets              *subwallets.Container  `json:"subWallets"`
	WalletSynchronizer      synchronizerJSON       `json:"walletSynchronizer"`
}

// SaveToFile writes the wallet document. The write goes through a temp file
// and rename so a crash never leaves a truncated wallet. Encryption wraps
// this document outside the core.
func (w *Wallet) SaveToFile(filename string) error {
	startHeight, startTimestamp := w.source.StartPoint()
	doc := walletFileJSON{
		WalletFileFormatVersion: WalletFileFormatVersion,
		SubWallets:              w.subwallets,
		WalletSynchronizer: synchronizerJSON{
			StartHeight:    startHeight,
			StartTimestamp: startTimestamp,
			PrivateViewKey: w.subwallets.PrivateViewKey(),
			Status:         w.source.Status(),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}

	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write wallet file: %w", err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("replace wallet file: %w", err)
	}
	return nil
}

// LoadedState is the decoded content of a wallet file, used to assemble the
// components before the coordinator exists.
type LoadedState struct {
	SubWallets     *subwallets.Container
	Status         *syncstatus.Status
	StartHeight    uint64
	StartTimestamp uint64
}

// LoadFromFile reads and validates a wallet document. The subwallet state is
// decoded into the given container, which keeps its own logger and
// capability.
func LoadFromFile(filename string, container *subwallets.Container) (*LoadedState, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("read wallet file: %w", err)
	}

	var doc struct {
		WalletFileFormatVersion uint32           `json:"walletFileFormatVersion"`
		SubWallets              json.RawMessage  `json:"subWallets"`
		WalletSynchronizer      synchronizerJSON `json:"walletSynchronizer"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode wallet file: %w", err)
	}
	if doc.WalletFileFormatVersion != WalletFileFormatVersion {
		return nil, fmt.Errorf("unsupported wallet file format version %d", doc.WalletFileFormatVersion)
	}
	if err := json.Unmarshal(doc.SubWallets, container); err != nil {
		return nil, fmt.Errorf("decode subwallets: %w", err)
	}

	status := doc.WalletSynchronizer.Status
	if status == nil {
		status = syncstatus.NewAt(doc.WalletSynchronizer.StartHeight)
	}
	return &LoadedState{
		SubWallets:     container,
		Status:         status,
		StartHeight:    doc.WalletSynchronizer.StartHeight,
		StartTimestamp: doc.WalletSynchronizer.StartTimestamp,
	}, nil
}
