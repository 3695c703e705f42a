// Package wallet is the coordinator facade: it owns the node client, block
// pipeline, scanner and subwallet store, and sequences them on periodic
// tickers.
package wallet

import (
	"sort"
	"time"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
)

// MixinLimit is the allowed decoy count range from a given height.
type MixinLimit struct {
	Height   uint64
	MinMixin uint64
	MaxMixin uint64
	Default  uint64
}

// MixinLimits resolves the active mixin bounds for a height.
type MixinLimits []MixinLimit

// AtHeight returns the bounds of the highest entry at or below height.
func (m MixinLimits) AtHeight(height uint64) MixinLimit {
	sorted := append(MixinLimits(nil), m...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Height < sorted[j].Height })

	active := MixinLimit{}
	for _, limit := range sorted {
		if limit.Height <= height {
			active = limit
		}
	}
	return active
}

// Config enumerates the wallet knobs. Zero values are replaced by
// DefaultConfig's.
type Config struct {
	DecimalPlaces  int
	AddressPrefix  string
	TickerSymbol   string
	BlockTargetTime time.Duration

	StandardAddressLength   int
	IntegratedAddressLength int

	RequestTimeout time.Duration

	SyncThreadInterval              time.Duration
	DaemonUpdateInterval            time.Duration
	LockedTransactionsCheckInterval time.Duration

	BlocksPerTick            int
	BlocksPerDaemonRequest   uint64
	BlockStoreMemoryLimit    uint64
	ScanCoinbaseTransactions bool

	MinimumFee          uint64
	MinimumFeePerByte   uint64
	FeePerByteChunkSize uint64

	MixinLimits MixinLimits

	MaxLastFetchedBlockInterval        time.Duration
	MaxLastUpdatedNetworkHeightInterval time.Duration
	MaxLastUpdatedLocalHeightInterval  time.Duration

	CustomUserAgent string

	AutoOptimize bool

	// Crypto supplies the primitive set; nil selects the default software
	// implementation.
	Crypto crypto.Capability
}

// DefaultConfig returns the stock parameter set.
func DefaultConfig() Config {
	return Config{
		DecimalPlaces:   2,
		AddressPrefix:   "WS",
		TickerSymbol:    "WSC",
		BlockTargetTime: 30 * time.Second,

		StandardAddressLength:   99,
		IntegratedAddressLength: 187,

		RequestTimeout: 10 * time.Second,

		SyncThreadInterval:              10 * time.Millisecond,
		DaemonUpdateInterval:            10 * time.Second,
		LockedTransactionsCheckInterval: 30 * time.Second,

		BlocksPerTick:            1,
		BlocksPerDaemonRequest:   100,
		BlockStoreMemoryLimit:    50 * 1024 * 1024,
		ScanCoinbaseTransactions: false,

		MinimumFee:          10,
		MinimumFeePerByte:   1,
		FeePerByteChunkSize: 256,

		MixinLimits: MixinLimits{
			{Height: 0, MinMixin: 0, MaxMixin: 100, Default: 3},
			{Height: 440000, MinMixin: 0, MaxMixin: 7, Default: 3},
			{Height: 620000, MinMixin: 1, MaxMixin: 3, Default: 3},
		},

		MaxLastFetchedBlockInterval:         60 * time.Second,
		MaxLastUpdatedNetworkHeightInterval: 90 * time.Second,
		MaxLastUpdatedLocalHeightInterval:   90 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.RequestTimeout == 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.SyncThreadInterval == 0 {
		c.SyncThreadInterval = def.SyncThreadInterval
	}
	if c.DaemonUpdateInterval == 0 {
		c.DaemonUpdateInterval = def.DaemonUpdateInterval
	}
	if c.LockedTransactionsCheckInterval == 0 {
		c.LockedTransactionsCheckInterval = def.LockedTransactionsCheckInterval
	}
	if c.BlocksPerTick == 0 {
		c.BlocksPerTick = def.BlocksPerTick
	}
	if c.BlocksPerDaemonRequest == 0 {
		c.BlocksPerDaemonRequest = def.BlocksPerDaemonRequest
	}
	if c.BlockStoreMemoryLimit == 0 {
		c.BlockStoreMemoryLimit = def.BlockStoreMemoryLimit
	}
	if c.MaxLastFetchedBlockInterval == 0 {
		c.MaxLastFetchedBlockInterval = def.MaxLastFetchedBlockInterval
	}
	if c.MaxLastUpdatedNetworkHeightInterval == 0 {
		c.MaxLastUpdatedNetworkHeightInterval = def.MaxLastUpdatedNetworkHeightInterval
	}
	if c.MaxLastUpdatedLocalHeightInterval == 0 {
		c.MaxLastUpdatedLocalHeightInterval = def.MaxLastUpdatedLocalHeightInterval
	}
	if c.StandardAddressLength == 0 {
		c.StandardAddressLength = def.StandardAddressLength
	}
	if c.IntegratedAddressLength == 0 {
		c.IntegratedAddressLength = def.IntegratedAddressLength
	}
	if c.MixinLimits == nil {
		c.MixinLimits = def.MixinLimits
	}
	if c.DecimalPlaces == 0 {
		c.DecimalPlaces = def.DecimalPlaces
	}
	if c.AddressPrefix == "" {
		c.AddressPrefix = def.AddressPrefix
	}
	if c.TickerSymbol == "" {
		c.TickerSymbol = def.TickerSymbol
	}
	if c.BlockTargetTime == 0 {
		c.BlockTargetTime = def.BlockTargetTime
	}
	if c.MinimumFee == 0 {
		c.MinimumFee = def.MinimumFee
	}
	if c.MinimumFeePerByte == 0 {
		c.MinimumFeePerByte = def.MinimumFeePerByte
	}
	if c.FeePerByteChunkSize == 0 {
		c.FeePerByteChunkSize = def.FeePerByteChunkSize
	}
	if c.Crypto == nil {
		c.Crypto = crypto.NewCapability()
	}
	return c
}
