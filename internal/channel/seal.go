package channel

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// PaddedLength is the fixed plaintext block size. Every action is padded
// to this length before sealing, so ciphertext length never leaks which
// action was taken.
const PaddedLength = 256

// lengthPrefixSize is the big-endian length prefix ahead of the payload.
const lengthPrefixSize = 4

// MaxActionLength is the largest payload that fits in one padded block.
const MaxActionLength = PaddedLength - lengthPrefixSize

var (
	// ErrActionTooLong indicates a payload beyond the padded block size.
	ErrActionTooLong = errors.New("action payload exceeds padded block size")
	// ErrOpenFailed indicates authentication failure: wrong key or a
	// tampered ciphertext. A bit flip never yields a wrong-but-valid decode.
	ErrOpenFailed = errors.New("ciphertext authentication failed")
	// ErrBadPadding indicates a decrypted block with an impossible length prefix.
	ErrBadPadding = errors.New("padded block has invalid length prefix")
)

// Seal pads the plaintext to PaddedLength and encrypts it with
// XChaCha20-Poly1305 under a fresh random 24-byte nonce. The nonce and
// ciphertext are returned separately because the wire envelope carries
// them as distinct base64 fields.
func Seal(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	padded, err := pad(plaintext)
	if err != nil {
		return nil, nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("init aead: %w", err)
	}

	nonce = make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("read nonce: %w", err)
	}

	return nonce, aead.Seal(nil, nonce, padded, nil), nil
}

// Open authenticates and decrypts a sealed action, then strips padding.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	if len(nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrOpenFailed
	}

	padded, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return unpad(padded)
}

// pad prefixes the payload with its big-endian length and zero-fills the
// remainder of the block.
func pad(plaintext []byte) ([]byte, error) {
	if len(plaintext) > MaxActionLength {
		return nil, ErrActionTooLong
	}
	padded := make([]byte, PaddedLength)
	binary.BigEndian.PutUint32(padded, uint32(len(plaintext)))
	copy(padded[lengthPrefixSize:], plaintext)
	return padded, nil
}

// unpad inverts pad.
func unpad(padded []byte) ([]byte, error) {
	if len(padded) != PaddedLength {
		return nil, ErrBadPadding
	}
	length := binary.BigEndian.Uint32(padded)
	if length > MaxActionLength {
		return nil, ErrBadPadding
	}
	return padded[lengthPrefixSize : lengthPrefixSize+length], nil
}
