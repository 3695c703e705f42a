package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"
)

var (
	// ErrInvalidPoint is returned when key bytes do not decode to a group
	// element.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrInvalidScalar is returned when secret key bytes are not a canonical
	// scalar.
	ErrInvalidScalar = errors.New("invalid scalar")
)

// Ed25519CN is the default software capability set, built on edwards25519
// group arithmetic and Keccak-256.
type Ed25519CN struct{}

// NewCapability returns the default software crypto capability.
func NewCapability() Capability {
	return Ed25519CN{}
}

// FastHash is cn_fast_hash: Keccak-256 over the input.
func (Ed25519CN) FastHash(data []byte) Hash {
	var h Hash
	k := sha3.NewLegacyKeccak256()
	k.Write(data)
	k.Sum(h[:0])
	return h
}

// GenerateKeyDerivation computes 8 * (a * P) for transaction key P and view
// key a.
func (c Ed25519CN) GenerateKeyDerivation(txPublicKey PublicKey, privateViewKey SecretKey) (KeyDerivation, error) {
	p, err := decodePoint(txPublicKey[:])
	if err != nil {
		return KeyDerivation{}, err
	}
	a, err := decodeScalar(privateViewKey)
	if err != nil {
		return KeyDerivation{}, err
	}

	shared := new(edwards25519.Point).ScalarMult(a, p)
	shared.MultByCofactor(shared)

	var d KeyDerivation
	copy(d[:], shared.Bytes())
	return d, nil
}

// DerivePublicKey computes Hs(D, i)*G + B.
func (c Ed25519CN) DerivePublicKey(derivation KeyDerivation, outputIndex uint64, publicSpendKey PublicKey) (PublicKey, error) {
	b, err := decodePoint(publicSpendKey[:])
	if err != nil {
		return PublicKey{}, err
	}
	s := c.derivationToScalar(derivation, outputIndex)

	sum := new(edwards25519.Point).ScalarBaseMult(s)
	sum.Add(sum, b)

	var out PublicKey
	copy(out[:], sum.Bytes())
	return out, nil
}

// DeriveSecretKey computes Hs(D, i) + b.
func (c Ed25519CN) DeriveSecretKey(derivation KeyDerivation, outputIndex uint64, privateSpendKey SecretKey) (SecretKey, error) {
	b, err := decodeScalar(privateSpendKey)
	if err != nil {
		return SecretKey{}, err
	}
	s := c.derivationToScalar(derivation, outputIndex)
	s.Add(s, b)

	var out SecretKey
	copy(out[:], s.Bytes())
	return out, nil
}

// UnderivePublicKey recovers B = K - Hs(D, i)*G.
func (c Ed25519CN) UnderivePublicKey(derivation KeyDerivation, outputIndex uint64, outputKey PublicKey) (PublicKey, error) {
	k, err := decodePoint(outputKey[:])
	if err != nil {
		return PublicKey{}, err
	}
	s := c.derivationToScalar(derivation, outputIndex)

	sg := new(edwards25519.Point).ScalarBaseMult(s)
	diff := new(edwards25519.Point).Subtract(k, sg)

	var out PublicKey
	copy(out[:], diff.Bytes())
	return out, nil
}

// GenerateKeyImage computes p * Hp(P).
func (c Ed25519CN) GenerateKeyImage(publicEphemeral PublicKey, privateEphemeral SecretKey) (KeyImage, error) {
	x, err := decodeScalar(privateEphemeral)
	if err != nil {
		return KeyImage{}, err
	}
	hp := c.hashToPoint(publicEphemeral)
	img := new(edwards25519.Point).ScalarMult(x, hp)

	var out KeyImage
	copy(out[:], img.Bytes())
	return out, nil
}

// SecretKeyToPublicKey returns s*G.
func (Ed25519CN) SecretKeyToPublicKey(secret SecretKey) (PublicKey, error) {
	s, err := decodeScalar(secret)
	if err != nil {
		return PublicKey{}, err
	}
	p := new(edwards25519.Point).ScalarBaseMult(s)

	var out PublicKey
	copy(out[:], p.Bytes())
	return out, nil
}

// GenerateRingSignatures produces one (c, r) pair per ring member, with the
// real member's pair closing the ring over Hs(prefix || L... || R...).
func (c Ed25519CN) GenerateRingSignatures(prefixHash Hash, keyImage KeyImage, publicKeys []PublicKey, privateEphemeral SecretKey, realIndex uint64) ([]RingSignature, error) {
	if realIndex >= uint64(len(publicKeys)) {
		return nil, fmt.Errorf("real index %d out of ring of %d", realIndex, len(publicKeys))
	}
	x, err := decodeScalar(privateEphemeral)
	if err != nil {
		return nil, err
	}
	img, err := decodePoint(keyImage[:])
	if err != nil {
		return nil, err
	}

	sigs := make([]RingSignature, len(publicKeys))
	commitments := make([]byte, 0, 64*len(publicKeys))

	sum := edwards25519.NewScalar()
	var k *edwards25519.Scalar

	for i, pub := range publicKeys {
		p, err := decodePoint(pub[:])
		if err != nil {
			return nil, err
		}
		hp := c.hashToPoint(pub)

		var l, r *edwards25519.Point
		if uint64(i) == realIndex {
			k, err = randomScalar()
			if err != nil {
				return nil, err
			}
			l = new(edwards25519.Point).ScalarBaseMult(k)
			r = new(edwards25519.Point).ScalarMult(k, hp)
		} else {
			ci, err := randomScalar()
			if err != nil {
				return nil, err
			}
			ri, err := randomScalar()
			if err != nil {
				return nil, err
			}
			l = new(edwards25519.Point).VarTimeDoubleScalarBaseMult(ci, p, ri)
			r = new(edwards25519.Point).ScalarMult(ci, img)
			r.Add(r, new(edwards25519.Point).ScalarMult(ri, hp))
			copy(sigs[i].C[:], ci.Bytes())
			copy(sigs[i].R[:], ri.Bytes())
			sum.Add(sum, ci)
		}
		commitments = append(commitments, l.Bytes()...)
		commitments = append(commitments, r.Bytes()...)
	}

	h := c.hashToScalar(prefixHash[:], commitments)
	cReal := new(edwards25519.Scalar).Subtract(h, sum)
	rReal := new(edwards25519.Scalar).Multiply(cReal, x)
	rReal.Subtract(k, rReal)

	copy(sigs[realIndex].C[:], cReal.Bytes())
	copy(sigs[realIndex].R[:], rReal.Bytes())
	return sigs, nil
}

// CheckRingSignatures verifies that the ring closes: sum(c_i) must equal
// Hs(prefix || L... || R...).
func (c Ed25519CN) CheckRingSignatures(prefixHash Hash, keyImage KeyImage, publicKeys []PublicKey, signatures []RingSignature) bool {
	if len(publicKeys) == 0 || len(publicKeys) != len(signatures) {
		return false
	}
	img, err := decodePoint(keyImage[:])
	if err != nil {
		return false
	}

	commitments := make([]byte, 0, 64*len(publicKeys))
	sum := edwards25519.NewScalar()

	for i, pub := range publicKeys {
		p, err := decodePoint(pub[:])
		if err != nil {
			return false
		}
		ci, err := new(edwards25519.Scalar).SetCanonicalBytes(signatures[i].C[:])
		if err != nil {
			return false
		}
		ri, err := new(edwards25519.Scalar).SetCanonicalBytes(signatures[i].R[:])
		if err != nil {
			return false
		}
		hp := c.hashToPoint(pub)

		l := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(ci, p, ri)
		r := new(edwards25519.Point).ScalarMult(ci, img)
		r.Add(r, new(edwards25519.Point).ScalarMult(ri, hp))

		commitments = append(commitments, l.Bytes()...)
		commitments = append(commitments, r.Bytes()...)
		sum.Add(sum, ci)
	}

	h := c.hashToScalar(prefixHash[:], commitments)
	return h.Equal(sum) == 1
}

// derivationToScalar is Hs(D || varint(i)).
func (c Ed25519CN) derivationToScalar(derivation KeyDerivation, outputIndex uint64) *edwards25519.Scalar {
	var idx [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(idx[:], outputIndex)
	return c.hashToScalar(derivation[:], idx[:n])
}

// hashToScalar reduces Keccak-256 of the concatenated input mod the group
// order.
func (c Ed25519CN) hashToScalar(chunks ...[]byte) *edwards25519.Scalar {
	k := sha3.NewLegacyKeccak256()
	for _, chunk := range chunks {
		k.Write(chunk)
	}
	var digest [32]byte
	k.Sum(digest[:0])

	var wide [64]byte
	copy(wide[:32], digest[:])
	s, _ := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	return s
}

// hashToPoint maps a public key onto the prime-order subgroup by iterated
// hashing until the digest decodes as a point, then clearing the cofactor.
func (c Ed25519CN) hashToPoint(key PublicKey) *edwards25519.Point {
	digest := c.FastHash(key[:])
	for {
		p, err := decodePoint(digest[:])
		if err == nil {
			return new(edwards25519.Point).MultByCofactor(p)
		}
		digest = c.FastHash(digest[:])
	}
}

func decodePoint(b []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

func decodeScalar(k SecretKey) (*edwards25519.Scalar, error) {
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(k[:])
	if err != nil {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

func randomScalar() (*edwards25519.Scalar, error) {
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("read randomness: %w", err)
	}
	return new(edwards25519.Scalar).SetUniformBytes(seed[:])
}
