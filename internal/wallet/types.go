package wallet

import (
	"context"
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/model"
	"github.com/goodnatureofminers/walletsync7000-backend/internal/syncstatus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource is the pipeline surface the coordinator drives.
	BlockSource interface {
		FetchBlocks(ctx context.Context, count int) ([]model.Block, bool)
		DropBlock(ctx context.Context, height uint64, hash crypto.Hash)
		Height() uint64
		Status() *syncstatus.Status
		StartPoint() (height, timestamp uint64)
		SetNetworkHeightLag(lagging bool)
		Reset(scanHeight, scanTimestamp uint64)
		Rewind(scanHeight uint64)
		ReArmDeadNode()
	}

	// BlockScanner attributes one block.
	BlockScanner interface {
		ScanBlock(ctx context.Context, block *model.Block) (model.TransactionData, error)
	}

	// Metrics records coordinator tick outcomes and heights.
	Metrics interface {
		ObserveTick(ticker string, err error, started time.Time)
		SetHeights(wallet, local, network uint64)
	}
)
