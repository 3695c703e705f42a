package crypto

// RingSignature is one (c, r) scalar pair per ring member.
type RingSignature struct {
	C [32]byte
	R [32]byte
}

// Capability is the set of primitives the wallet needs. The default
// implementation is Ed25519CN; hardware wallets supply their own set with
// identical semantics.
type Capability interface {
	// GenerateKeyDerivation computes the ECDH shared secret between a
	// transaction public key and a private view key.
	GenerateKeyDerivation(txPublicKey PublicKey, privateViewKey SecretKey) (KeyDerivation, error)

	// DerivePublicKey computes the one-time output key for output index i
	// addressed to the public spend key.
	DerivePublicKey(derivation KeyDerivation, outputIndex uint64, publicSpendKey PublicKey) (PublicKey, error)

	// DeriveSecretKey computes the one-time private key for output index i
	// from the private spend key.
	DeriveSecretKey(derivation KeyDerivation, outputIndex uint64, privateSpendKey SecretKey) (SecretKey, error)

	// UnderivePublicKey recovers the recipient's public spend key from a
	// one-time output key.
	UnderivePublicKey(derivation KeyDerivation, outputIndex uint64, outputKey PublicKey) (PublicKey, error)

	// GenerateKeyImage computes the spend nullifier for a one-time key pair.
	GenerateKeyImage(publicEphemeral PublicKey, privateEphemeral SecretKey) (KeyImage, error)

	// FastHash is cn_fast_hash (Keccak-256).
	FastHash(data []byte) Hash

	// SecretKeyToPublicKey returns the group element for a scalar.
	SecretKeyToPublicKey(secret SecretKey) (PublicKey, error)

	// GenerateRingSignatures signs prefixHash with the one-time key at
	// realIndex among the ring of output keys.
	GenerateRingSignatures(prefixHash Hash, keyImage KeyImage, publicKeys []PublicKey, privateEphemeral SecretKey, realIndex uint64) ([]RingSignature, error)

	// CheckRingSignatures verifies a ring signature over prefixHash.
	CheckRingSignatures(prefixHash Hash, keyImage KeyImage, publicKeys []PublicKey, signatures []RingSignature) bool
}
