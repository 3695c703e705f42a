// Package crypto defines the CryptoNote key types and the pluggable
// capability set used for output scanning and signing.
package crypto

import (
	"encoding/hex"
	"fmt"
)

// Hash is a 32-byte Keccak hash.
type Hash [32]byte

// PublicKey is a compressed ed25519 group element.
type PublicKey [32]byte

// SecretKey is an ed25519 scalar.
type SecretKey [32]byte

// KeyImage is the spend nullifier of a one-time output key.
type KeyImage [32]byte

// KeyDerivation is the ECDH shared secret between a transaction key and a
// view key, stored as a compressed group element.
type KeyDerivation [32]byte

func (h Hash) String() string          { return hex.EncodeToString(h[:]) }
func (k PublicKey) String() string     { return hex.EncodeToString(k[:]) }
func (k KeyImage) String() string      { return hex.EncodeToString(k[:]) }
func (d KeyDerivation) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the key is the all-zero sentinel. A zero private
// spend key marks a subwallet whose signing happens on an external device; a
// zero key image marks a view-only receipt.
func (k SecretKey) IsZero() bool {
	var zero SecretKey
	return k == zero
}

func (k PublicKey) IsZero() bool {
	var zero PublicKey
	return k == zero
}

func (k KeyImage) IsZero() bool {
	var zero KeyImage
	return k == zero
}

// HashFromString parses a 64-character hex string.
func HashFromString(s string) (Hash, error) {
	var h Hash
	if err := decode32(s, h[:]); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// PublicKeyFromString parses a 64-character hex string.
func PublicKeyFromString(s string) (PublicKey, error) {
	var k PublicKey
	if err := decode32(s, k[:]); err != nil {
		return PublicKey{}, err
	}
	return k, nil
}

// SecretKeyFromString parses a 64-character hex string.
func SecretKeyFromString(s string) (SecretKey, error) {
	var k SecretKey
	if err := decode32(s, k[:]); err != nil {
		return SecretKey{}, err
	}
	return k, nil
}

// KeyImageFromString parses a 64-character hex string.
func KeyImageFromString(s string) (KeyImage, error) {
	var k KeyImage
	if err := decode32(s, k[:]); err != nil {
		return KeyImage{}, err
	}
	return k, nil
}

func decode32(s string, dst []byte) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("expected 32 bytes, got %d", len(raw))
	}
	copy(dst, raw)
	return nil
}

// Text marshalling drives both JSON values and JSON map keys.

func (h Hash) MarshalText() ([]byte, error)          { return hexText(h[:]) }
func (k PublicKey) MarshalText() ([]byte, error)     { return hexText(k[:]) }
func (k SecretKey) MarshalText() ([]byte, error)     { return hexText(k[:]) }
func (k KeyImage) MarshalText() ([]byte, error)      { return hexText(k[:]) }
func (d KeyDerivation) MarshalText() ([]byte, error) { return hexText(d[:]) }

func (h *Hash) UnmarshalText(text []byte) error          { return decode32(string(text), h[:]) }
func (k *PublicKey) UnmarshalText(text []byte) error     { return decode32(string(text), k[:]) }
func (k *SecretKey) UnmarshalText(text []byte) error     { return decode32(string(text), k[:]) }
func (k *KeyImage) UnmarshalText(text []byte) error      { return decode32(string(text), k[:]) }
func (d *KeyDerivation) UnmarshalText(text []byte) error { return decode32(string(text), d[:]) }

func hexText(b []byte) ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out, nil
}
