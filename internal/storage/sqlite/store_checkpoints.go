package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/RoguesAgent/moltmob/internal/storage"
)

// PutCheckpoint upserts a recovery checkpoint keyed by pod, round, and
// phase. Persisting the same transition twice overwrites in place.
func (s *Store) PutCheckpoint(ctx context.Context, cp storage.Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(cp.PodID) == "" {
		return fmt.Errorf("pod id is required")
	}

	payload, err := storage.EncodeCheckpoint(cp)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO checkpoints (pod_id, round, phase, payload, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(pod_id, round, phase) DO UPDATE SET
	payload = excluded.payload,
	created_at = excluded.created_at
`,
		cp.PodID,
		cp.Round,
		string(cp.Phase),
		payload,
		toMillis(cp.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	return nil
}

// LatestCheckpoint retrieves the most recent checkpoint for a pod.
// Insertion order breaks ties between checkpoints written within the
// same millisecond.
func (s *Store) LatestCheckpoint(ctx context.Context, podID string) (storage.Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return storage.Checkpoint{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Checkpoint{}, fmt.Errorf("storage is not configured")
	}
	podID = strings.TrimSpace(podID)
	if podID == "" {
		return storage.Checkpoint{}, fmt.Errorf("pod id is required")
	}

	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT payload FROM checkpoints
WHERE pod_id = ?
ORDER BY created_at DESC, round DESC, rowid DESC
LIMIT 1
`, podID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Checkpoint{}, storage.ErrNotFound
		}
		return storage.Checkpoint{}, fmt.Errorf("latest checkpoint: %w", err)
	}

	return storage.DecodeCheckpoint(payload)
}
