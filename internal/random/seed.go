// Package random provides cryptographic seed generation helpers.
//
// It uses crypto/rand to generate high-entropy seeds suitable for
// initializing pseudo-random number generators in deterministic systems.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a pseudo-random source seeded from crypto/rand.
// Game mechanics take a *rand.Rand so tests can substitute a fixed seed
// and replay every randomized decision.
func NewSource() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}
