package storage

import (
	"time"

	"github.com/fxamacker/cbor/v2"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// Checkpoint is a full recovery point: the pod and the round-scoped
// state, taken after a transition commits. The set fields serialize as
// sorted arrays so the same game state always encodes to the same
// bytes.
type Checkpoint struct {
	PodID          string       `cbor:"pod_id"`
	Round          int          `cbor:"round"`
	Phase          domain.Phase `cbor:"phase"`
	Pod            domain.Pod   `cbor:"pod"`
	MoltsRemaining int          `cbor:"molts_remaining"`
	ShellguardUsed bool         `cbor:"shellguard_used"`
	Immune         []string     `cbor:"immune"`
	DoubleVote     []string     `cbor:"double_vote"`
	CreatedAt      time.Time    `cbor:"created_at"`
}

// NewCheckpoint snapshots a pod and its round state.
func NewCheckpoint(pod domain.Pod, state domain.RoundState, at time.Time) Checkpoint {
	return Checkpoint{
		PodID:          pod.ID,
		Round:          pod.Round,
		Phase:          pod.Phase,
		Pod:            pod,
		MoltsRemaining: state.MoltsRemaining,
		ShellguardUsed: state.ShellguardUsed,
		Immune:         state.Immune.Sorted(),
		DoubleVote:     state.DoubleVote.Sorted(),
		CreatedAt:      at.UTC(),
	}
}

// State rebuilds the round state captured by the checkpoint.
func (c Checkpoint) State() domain.RoundState {
	return domain.RoundState{
		MoltsRemaining: c.MoltsRemaining,
		ShellguardUsed: c.ShellguardUsed,
		Immune:         domain.NewStringSet(c.Immune...),
		DoubleVote:     domain.NewStringSet(c.DoubleVote...),
	}
}

// checkpointEncMode is the canonical CBOR encoder; identical states
// encode to identical bytes.
var checkpointEncMode, _ = cbor.CanonicalEncOptions().EncMode()

// EncodeCheckpoint serializes a checkpoint to canonical CBOR.
func EncodeCheckpoint(cp Checkpoint) ([]byte, error) {
	data, err := checkpointEncMode.Marshal(cp)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCheckpointCorrupt, "encode checkpoint", err)
	}
	return data, nil
}

// DecodeCheckpoint deserializes a checkpoint. A payload that does not
// decode is reported as corrupt, never as missing.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	var cp Checkpoint
	if err := cbor.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, apperrors.Wrap(apperrors.CodeCheckpointCorrupt, "decode checkpoint", err)
	}
	return cp, nil
}
