package crypto

// GenerateKeys produces a fresh (private, public) spend key pair.
func GenerateKeys() (SecretKey, PublicKey, error) {
	s, err := randomScalar()
	if err != nil {
		return SecretKey{}, PublicKey{}, err
	}

	var sec SecretKey
	copy(sec[:], s.Bytes())

	pub, err := Ed25519CN{}.SecretKeyToPublicKey(sec)
	if err != nil {
		return SecretKey{}, PublicKey{}, err
	}
	return sec, pub, nil
}
