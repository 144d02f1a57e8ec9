package engine

import (
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/payout"
	"github.com/RoguesAgent/moltmob/internal/game/roles"
	"github.com/RoguesAgent/moltmob/internal/game/win"
)

// Type identifies an event kind in the journal.
type Type string

const (
	// TypePodStarted records role assignment and the move to round 1.
	TypePodStarted Type = "pod.started"
	// TypeNightResolved records one night resolution.
	TypeNightResolved Type = "night.resolved"
	// TypeVoteResolved records one vote tally and its consequences.
	TypeVoteResolved Type = "vote.resolved"
	// TypeMoltPerformed records a molt draw and its outcome.
	TypeMoltPerformed Type = "molt.performed"
	// TypeBoilStarted records entry into the sudden-death phase, with
	// the full role reveal.
	TypeBoilStarted Type = "boil.started"
	// TypeBoilResolved records one sudden-death tally.
	TypeBoilResolved Type = "boil.resolved"
	// TypeGameEnded records the final outcome and payouts.
	TypeGameEnded Type = "game.ended"
)

// Event is one journal entry produced by a transition. Payload holds a
// typed struct from this package; persistence marshals it to JSON.
type Event struct {
	Type    Type
	Round   int
	Payload any
}

// PodStartedPayload is the payload of pod.started.
type PodStartedPayload struct {
	Players      []string           `json:"players"`
	Distribution roles.Distribution `json:"distribution"`
}

// NightResolvedPayload is the payload of night.resolved.
type NightResolvedPayload struct {
	PinchTarget   string `json:"pinch_target,omitempty"`
	ProtectTarget string `json:"protect_target,omitempty"`
	Blocked       bool   `json:"blocked"`
	Eliminated    string `json:"eliminated,omitempty"`
}

// VoteResolvedPayload is the payload of vote.resolved and boil.resolved.
type VoteResolvedPayload struct {
	Tally        map[string]int `json:"tally"`
	Eliminated   string         `json:"eliminated,omitempty"`
	NoCook       bool           `json:"no_cook"`
	BoilIncrease int            `json:"boil_increase"`
	BoilMeter    int            `json:"boil_meter"`
}

// MoltPerformedPayload is the payload of molt.performed. The outcome
// string is the molt package's bucket name; the new role is set only on
// a swap and stays hidden from pod-wide notices.
type MoltPerformedPayload struct {
	Player  string      `json:"player"`
	Outcome string      `json:"outcome"`
	NewRole domain.Role `json:"new_role,omitempty"`
}

// BoilStartedPayload is the payload of boil.started: the full role
// reveal that opens sudden death.
type BoilStartedPayload struct {
	Roles map[string]domain.Role `json:"roles"`
}

// GameEndedPayload is the payload of game.ended.
type GameEndedPayload struct {
	Winner      win.Side               `json:"winner"`
	DrifterWins bool                   `json:"drifter_wins"`
	Reason      string                 `json:"reason"`
	Roles       map[string]domain.Role `json:"roles"`
	Distributed int64                  `json:"distributed"`
	Rake        int64                  `json:"rake"`
}

// Notice is an outbound message draft. An empty Recipient addresses the
// whole pod; otherwise it is a private whisper to one player id.
type Notice struct {
	Recipient string
	Body      string
}

// Transition is the result of one engine step. The pod and round state
// are mutated in place; the transition carries what happened for the
// journal, the message bus, and settlement.
type Transition struct {
	Events     []Event
	Outbound   []Notice
	Payouts    []payout.Entry
	Eliminated []string
}
