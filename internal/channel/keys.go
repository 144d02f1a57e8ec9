package channel

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the byte length of X25519 keys and derived symmetric keys.
const KeySize = 32

// hkdfInfoAction is the HKDF domain separator for action-channel keys.
// Changing it invalidates every ciphertext sealed under the old value.
var hkdfInfoAction = []byte("moltmob.action.v1")

var (
	// ErrDegenerateKey indicates a public key that collapses to the
	// all-zero or low-order Montgomery point.
	ErrDegenerateKey = apperrors.New(apperrors.CodeKeyDegenerate, "public key maps to a degenerate point")
	// ErrInvalidKeySize indicates key material of the wrong length.
	ErrInvalidKeySize = apperrors.New(apperrors.CodeKeyInvalidSize, "key has the wrong size")
)

// X25519PrivateKey converts an Ed25519 private key into its X25519
// Diffie-Hellman counterpart: the SHA-512 digest of the seed, clamped
// per RFC 7748.
func X25519PrivateKey(priv ed25519.PrivateKey) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKeySize
	}

	digest := sha512.Sum512(priv.Seed())
	key := make([]byte, KeySize)
	copy(key, digest[:KeySize])
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
	return key, nil
}

// X25519PublicKey converts an Ed25519 public key into its X25519
// counterpart via the birational map to the Montgomery curve. Keys that
// collapse to the degenerate all-zero point are rejected.
func X25519PublicKey(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidKeySize
	}

	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeKeyDegenerate, "decode edwards point", err)
	}

	mont := point.BytesMontgomery()
	if allZero(mont) {
		return nil, ErrDegenerateKey
	}
	return mont, nil
}

// SharedKey computes the symmetric action-channel key between two
// parties: X25519 ECDH on the converted keys, expanded through
// HKDF-SHA256 with a fixed domain separator. Low-order peer keys fail
// inside the scalar multiplication and are never expanded.
func SharedKey(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != KeySize || len(peerPub) != KeySize {
		return nil, ErrInvalidKeySize
	}

	secret, err := curve25519.X25519(priv, peerPub)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeKeyDegenerate, "compute shared secret", err)
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, hkdfInfoAction), key); err != nil {
		return nil, fmt.Errorf("expand shared key: %w", err)
	}
	return key, nil
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
