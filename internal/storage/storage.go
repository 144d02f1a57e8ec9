// Package storage defines the persistence interfaces for pods,
// checkpoints, the event journal, and telemetry. Implementations live
// in subpackages; the SQLite store is the only one shipped.
package storage

import (
	"context"
	"time"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// PodStore owns pod records, including the full player roster.
type PodStore interface {
	PutPod(ctx context.Context, pod domain.Pod) error
	GetPod(ctx context.Context, podID string) (domain.Pod, error)
	// ListPodsByStatus returns pods in the given lifecycle state, most
	// recently updated first.
	ListPodsByStatus(ctx context.Context, status domain.PodStatus) ([]domain.Pod, error)
}

// CheckpointStore owns recovery checkpoints. PutCheckpoint is an
// idempotent upsert keyed by (pod, round, phase): replaying the same
// transition overwrites rather than duplicates.
type CheckpointStore interface {
	PutCheckpoint(ctx context.Context, cp Checkpoint) error
	// LatestCheckpoint returns the most recent checkpoint for a pod.
	// Returns ErrNotFound when the pod has never been checkpointed.
	LatestCheckpoint(ctx context.Context, podID string) (Checkpoint, error)
}

// EventRecord is one journal entry as persisted.
type EventRecord struct {
	Seq         int64
	PodID       string
	Round       int
	Type        string
	PayloadJSON []byte
	CreatedAt   time.Time
}

// EventStore owns the append-only event journal.
type EventStore interface {
	AppendEvent(ctx context.Context, evt EventRecord) error
	// ListEvents returns a pod's journal in append order.
	ListEvents(ctx context.Context, podID string) ([]EventRecord, error)
}

// TelemetryRecord is one operational telemetry sample.
type TelemetryRecord struct {
	EventName      string
	PodID          string
	Severity       string
	AttributesJSON []byte
	Timestamp      time.Time
}

// TelemetryStore owns operational telemetry appends.
type TelemetryStore interface {
	AppendTelemetry(ctx context.Context, rec TelemetryRecord) error
}
