package werrors

import (
	"encoding/hex"
	"strings"
)

const paymentIDLength = 64

// base58 alphabet used by CryptoNote addresses. Validation here is
// length/alphabet/prefix only; full checksum decoding lives outside the core.
const addressAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ValidateAddress checks length, prefix and alphabet of an address.
func ValidateAddress(address, prefix string, standardLength, integratedLength int) error {
	if len(address) != standardLength && len(address) != integratedLength {
		return Newf(AddressInvalid, "expected length %d or %d, got %d", standardLength, integratedLength, len(address))
	}
	if !strings.HasPrefix(address, prefix) {
		return Newf(AddressInvalid, "expected prefix %q", prefix)
	}
	for _, c := range address {
		if !strings.ContainsRune(addressAlphabet, c) {
			return Newf(AddressInvalid, "character %q is not base58", c)
		}
	}
	return nil
}

// ValidatePaymentID checks a payment ID is empty or 64 hex characters.
func ValidatePaymentID(paymentID string) error {
	if paymentID == "" {
		return nil
	}
	if len(paymentID) != paymentIDLength {
		return Newf(PaymentIDInvalid, "got %d characters", len(paymentID))
	}
	if _, err := hex.DecodeString(paymentID); err != nil {
		return New(PaymentIDInvalid)
	}
	return nil
}

// ValidateAmount rejects zero amounts.
func ValidateAmount(amount uint64) error {
	if amount == 0 {
		return Newf(AmountInvalid, "amount must be greater than zero")
	}
	return nil
}

// ValidateMixin checks the mixin against the given inclusive (min, max)
// bounds.
func ValidateMixin(mixin, minMixin, maxMixin uint64) error {
	if mixin < minMixin || mixin > maxMixin {
		return Newf(MixinOutOfRange, "mixin %d not in [%d, %d]", mixin, minMixin, maxMixin)
	}
	return nil
}
