// Package werrors defines the wallet error taxonomy with stable numeric
// codes. User-facing operations return these instead of surfacing internal
// errors across the public boundary.
package werrors

import "fmt"

// ErrorCode is a stable numeric identifier for a wallet failure condition.
type ErrorCode int

const (
	Success ErrorCode = iota
	TransportError
	MalformedResponse
	AddressInvalid
	MnemonicInvalid
	KeyFormatInvalid
	NotEnoughBalance
	AmountInvalid
	MixinOutOfRange
	PaymentIDInvalid
	FeeTooSmall
	DaemonSyncError
	ScanIntegrityError
	SubwalletNotFound
	PreparedTransactionNotFound
	LedgerError
)

var messages = map[ErrorCode]string{
	Success:                     "the operation completed successfully",
	TransportError:              "failed to communicate with the daemon",
	MalformedResponse:           "the daemon returned a malformed response",
	AddressInvalid:              "the address given is invalid",
	MnemonicInvalid:             "the mnemonic seed given is invalid",
	KeyFormatInvalid:            "the key given is not a valid 64-character hex key",
	NotEnoughBalance:            "not enough unlocked funds are available",
	AmountInvalid:               "the amount given is invalid",
	MixinOutOfRange:             "the mixin given is outside the allowed range at this height",
	PaymentIDInvalid:            "the payment ID given is not a valid 64-character hex string",
	FeeTooSmall:                 "the fee given is below the network minimum",
	DaemonSyncError:             "the daemon is not yet synchronized with the network",
	ScanIntegrityError:          "the daemon returned inconsistent scan data",
	SubwalletNotFound:           "no subwallet with the given spend key exists",
	PreparedTransactionNotFound: "no prepared transaction with the given hash exists",
	LedgerError:                 "the hardware device returned an error",
}

// WalletError carries a stable code plus a human-readable message.
type WalletError struct {
	Code    ErrorCode
	Message string
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// Is matches any WalletError with the same code, so callers can use
// errors.Is(err, werrors.New(werrors.TransportError)).
func (e *WalletError) Is(target error) bool {
	other, ok := target.(*WalletError)
	return ok && other.Code == e.Code
}

// New returns a WalletError with the canonical message for the code.
func New(code ErrorCode) *WalletError {
	return &WalletError{Code: code, Message: messages[code]}
}

// Newf returns a WalletError with extra context appended to the canonical
// message.
func Newf(code ErrorCode, format string, args ...any) *WalletError {
	return &WalletError{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", messages[code], fmt.Sprintf(format, args...)),
	}
}
