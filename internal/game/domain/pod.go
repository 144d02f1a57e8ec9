package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/id"
)

// PodStatus describes the lifecycle state of a pod.
type PodStatus string

const (
	// StatusLobby indicates a pod collecting players.
	StatusLobby PodStatus = "lobby"
	// StatusActive indicates a running game.
	StatusActive PodStatus = "active"
	// StatusCompleted indicates a finished game; the pod is read-only.
	StatusCompleted PodStatus = "completed"
	// StatusCancelled indicates a pod that never started.
	StatusCancelled PodStatus = "cancelled"
)

// Phase identifies the current step of the phase state machine.
type Phase string

const (
	// PhaseLobby is the pre-game phase.
	PhaseLobby Phase = "lobby"
	// PhaseNight collects clawboss and shellguard actions.
	PhaseNight Phase = "night"
	// PhaseDay is open discussion and vote collection.
	PhaseDay Phase = "day"
	// PhaseVote tags vote-resolution checkpoints and wire envelopes.
	PhaseVote Phase = "vote"
	// PhaseBoil is the sudden-death phase once the meter maxes out.
	PhaseBoil Phase = "boil"
	// PhaseEnded is terminal.
	PhaseEnded Phase = "ended"
)

// BoilMax is the boil meter ceiling; reaching it forces the boil phase.
const BoilMax = 100

const (
	// MinPlayers is the smallest pod the role table supports.
	MinPlayers = 6
	// MaxPlayers is the hard ceiling; assignment fails above it.
	MaxPlayers = 16
)

// PodConfig carries per-pod economic and pacing settings.
type PodConfig struct {
	RakePercent int
	MaxRounds   int
	Token       string
	Network     string
}

var (
	// ErrLobbyFull indicates the pod already has MaxPlayers players.
	ErrLobbyFull = apperrors.New(apperrors.CodePodLobbyFull, "pod lobby is full")
	// ErrDuplicatePlayer indicates the player already joined the pod.
	ErrDuplicatePlayer = apperrors.New(apperrors.CodePodDuplicatePlayer, "player already joined pod")
	// ErrAlreadyEliminated indicates a second elimination of the same player.
	ErrAlreadyEliminated = apperrors.New(apperrors.CodePlayerAlreadyEliminated, "player is already eliminated")
)

// Pod is one game instance.
type Pod struct {
	ID            string
	Label         int
	Status        PodStatus
	Phase         Phase
	Round         int
	BoilMeter     int
	EntryFee      int64
	Players       []Player
	Config        PodConfig
	LobbyDeadline time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreatePodInput describes the metadata needed to open a lobby.
type CreatePodInput struct {
	Label         int
	EntryFee      int64
	Config        PodConfig
	LobbyDeadline time.Time
}

// CreatePod creates a pod in the lobby state with a generated ID.
func CreatePod(input CreatePodInput, now func() time.Time, idGenerator func() (string, error)) (Pod, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	podID, err := idGenerator()
	if err != nil {
		return Pod{}, fmt.Errorf("generate pod id: %w", err)
	}

	cfg := input.Config
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 10
	}

	createdAt := now().UTC()
	return Pod{
		ID:            podID,
		Label:         input.Label,
		Status:        StatusLobby,
		Phase:         PhaseLobby,
		EntryFee:      input.EntryFee,
		Config:        cfg,
		LobbyDeadline: input.LobbyDeadline,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}, nil
}

// AddPlayer appends a player to a lobby pod. Joins are append-only; a
// player id can appear at most once.
func (p *Pod) AddPlayer(player Player) error {
	if p.Status != StatusLobby {
		return apperrors.WithMetadata(apperrors.CodePodStatusDisallowsOp,
			"pod is not accepting players",
			map[string]string{"Status": string(p.Status), "Operation": "join"})
	}
	if len(p.Players) >= MaxPlayers {
		return ErrLobbyFull
	}
	for _, existing := range p.Players {
		if existing.ID == player.ID {
			return ErrDuplicatePlayer
		}
	}
	p.Players = append(p.Players, player)
	return nil
}

// CancelLobby marks a lobby pod cancelled once its deadline passes
// without a start. Returns whether the pod was cancelled. Refunds are
// executed out of band.
func (p *Pod) CancelLobby(now time.Time) bool {
	if p.Status != StatusLobby || p.LobbyDeadline.IsZero() || now.Before(p.LobbyDeadline) {
		return false
	}
	p.Status = StatusCancelled
	return true
}

// Player returns a pointer to the player with the given id, or nil.
func (p *Pod) Player(playerID string) *Player {
	for i := range p.Players {
		if p.Players[i].ID == playerID {
			return &p.Players[i]
		}
	}
	return nil
}

// PlayerByName returns a pointer to the player with the given display
// name, or nil. Wire payloads target players by display name.
func (p *Pod) PlayerByName(name string) *Player {
	name = strings.TrimSpace(name)
	for i := range p.Players {
		if strings.EqualFold(p.Players[i].DisplayName, name) {
			return &p.Players[i]
		}
	}
	return nil
}

// AlivePlayers returns the players still in the game, in join order.
func (p *Pod) AlivePlayers() []Player {
	alive := make([]Player, 0, len(p.Players))
	for _, player := range p.Players {
		if player.Alive() {
			alive = append(alive, player)
		}
	}
	return alive
}

// AliveCount returns the number of players still in the game.
func (p *Pod) AliveCount() int {
	return len(p.AlivePlayers())
}

// Eliminate marks a player eliminated. Elimination is terminal: a second
// call for the same player fails.
func (p *Pod) Eliminate(playerID string, cause EliminationCause, round int) error {
	player := p.Player(playerID)
	if player == nil {
		return apperrors.New(apperrors.CodeNotFound, "player not found in pod")
	}
	if player.Status == PlayerEliminated {
		return ErrAlreadyEliminated
	}
	player.Status = PlayerEliminated
	player.EliminatedCause = cause
	player.EliminatedRound = round
	return nil
}

// RaiseBoil applies a boil increase, clamped to BoilMax. The meter never
// decreases within a game.
func (p *Pod) RaiseBoil(increase int) {
	if increase <= 0 {
		return
	}
	p.BoilMeter += increase
	if p.BoilMeter > BoilMax {
		p.BoilMeter = BoilMax
	}
}

// Pool returns the total prize pool: entry fee times player count.
func (p *Pod) Pool() int64 {
	return p.EntryFee * int64(len(p.Players))
}
