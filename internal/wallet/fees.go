package wallet

import (
	"fmt"
	"strings"
	"time"
)

// EstimateFee returns the minimum acceptable fee for a transaction of the
// given serialized size. Fees accrue per started chunk, with the flat
// network minimum as a floor.
func (w *Wallet) EstimateFee(sizeBytes uint64) uint64 {
	chunkSize := w.cfg.FeePerByteChunkSize
	if chunkSize == 0 {
		return w.cfg.MinimumFee
	}
	chunks := (sizeBytes + chunkSize - 1) / chunkSize
	fee := chunks * chunkSize * w.cfg.MinimumFeePerByte
	if fee < w.cfg.MinimumFee {
		return w.cfg.MinimumFee
	}
	return fee
}

// FormatAmount renders an atomic amount in display units with the ticker
// symbol.
func (w *Wallet) FormatAmount(amount uint64) string {
	places := w.cfg.DecimalPlaces
	if places <= 0 {
		return fmt.Sprintf("%d %s", amount, w.cfg.TickerSymbol)
	}

	divisor := uint64(1)
	for i := 0; i < places; i++ {
		divisor *= 10
	}
	whole := amount / divisor
	frac := amount % divisor

	fracStr := fmt.Sprintf("%0*d", places, frac)
	symbol := strings.TrimSpace(w.cfg.TickerSymbol)
	if symbol == "" {
		return fmt.Sprintf("%d.%s", whole, fracStr)
	}
	return fmt.Sprintf("%d.%s %s", whole, fracStr, symbol)
}

// TimeUntilHeight estimates the wall-clock wait until the network reaches
// the target height, from the block target time.
func (w *Wallet) TimeUntilHeight(target uint64) time.Duration {
	w.mu.Lock()
	network := w.networkHeight
	w.mu.Unlock()

	if target <= network {
		return 0
	}
	return time.Duration(target-network) * w.cfg.BlockTargetTime
}
