package domain

import (
	"strings"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
)

// PlayerStatus describes a player's liveness within a pod.
type PlayerStatus string

const (
	// PlayerAlive indicates the player participates in the current round.
	PlayerAlive PlayerStatus = "alive"
	// PlayerEliminated is terminal; an eliminated player never returns.
	PlayerEliminated PlayerStatus = "eliminated"
	// PlayerDisconnected indicates the player stopped submitting actions.
	PlayerDisconnected PlayerStatus = "disconnected"
)

// EliminationCause records how a player left the game.
type EliminationCause string

const (
	// CauseNightAction is an elimination by the clawboss pinch.
	CauseNightAction EliminationCause = "night-action"
	// CauseVote is an elimination by the day vote.
	CauseVote EliminationCause = "vote"
	// CauseBoil is an elimination during the sudden-death boil phase.
	CauseBoil EliminationCause = "boil"
)

// ErrEmptyDisplayName indicates a missing player display name.
var ErrEmptyDisplayName = apperrors.New(apperrors.CodePlayerEmptyDisplayName, "player display name is required")

// Player is one participant in a pod.
type Player struct {
	ID              string
	DisplayName     string
	Wallet          string
	PublicKey       []byte
	Role            Role
	Status          PlayerStatus
	EliminatedCause EliminationCause
	EliminatedRound int
}

// NewPlayer validates and builds a lobby player with alive status and no role.
func NewPlayer(id, displayName, wallet string, publicKey []byte) (Player, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return Player{}, ErrEmptyDisplayName
	}
	return Player{
		ID:          id,
		DisplayName: displayName,
		Wallet:      wallet,
		PublicKey:   publicKey,
		Status:      PlayerAlive,
	}, nil
}

// Alive reports whether the player can act in the current round.
func (p Player) Alive() bool {
	return p.Status == PlayerAlive
}
