package channel

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// PhaseCode tags the wire envelope with the action's phase.
type PhaseCode string

const (
	// PhaseCodeNight marks a night action envelope.
	PhaseCodeNight PhaseCode = "GN"
	// PhaseCodeVote marks a vote envelope.
	PhaseCodeVote PhaseCode = "GM"
)

// ErrNotAction indicates the message carries no envelope. This is not a
// validation failure; the message is plain discussion.
var ErrNotAction = errors.New("message contains no action envelope")

// envelopePattern matches `[R<round><PhaseCode>:<nonce_b64>:<ct_b64>]`
// embedded anywhere in free-form text. Case-sensitive.
var envelopePattern = regexp.MustCompile(`\[R(\d+)(GN|GM):([A-Za-z0-9+/=]+):([A-Za-z0-9+/=]+)\]`)

// Envelope is a parsed wire envelope, before any cryptographic checks.
type Envelope struct {
	Round      int
	Code       PhaseCode
	Nonce      []byte
	Ciphertext []byte
}

// ParseEnvelope extracts the first action envelope from free-form text.
// Returns ErrNotAction when no envelope is present.
func ParseEnvelope(body string) (Envelope, error) {
	match := envelopePattern.FindStringSubmatch(body)
	if match == nil {
		return Envelope{}, ErrNotAction
	}

	round, err := strconv.Atoi(match[1])
	if err != nil {
		return Envelope{}, ErrNotAction
	}
	nonce, err := base64.StdEncoding.DecodeString(match[3])
	if err != nil {
		return Envelope{}, fmt.Errorf("decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(match[4])
	if err != nil {
		return Envelope{}, fmt.Errorf("decode ciphertext: %w", err)
	}

	return Envelope{
		Round:      round,
		Code:       PhaseCode(match[2]),
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// FormatEnvelope renders an envelope in wire form. Clients embed the
// result anywhere inside a feed post.
func FormatEnvelope(round int, code PhaseCode, nonce, ciphertext []byte) string {
	return fmt.Sprintf("[R%d%s:%s:%s]",
		round,
		code,
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(ciphertext),
	)
}
