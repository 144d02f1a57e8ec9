package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RoguesAgent/moltmob/internal/storage"
)

// AppendEvent appends one record to the pod's event journal.
func (s *Store) AppendEvent(ctx context.Context, evt storage.EventRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.PodID) == "" {
		return fmt.Errorf("pod id is required")
	}
	if strings.TrimSpace(evt.Type) == "" {
		return fmt.Errorf("event type is required")
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO events (pod_id, round, type, payload_json, created_at)
VALUES (?, ?, ?, ?, ?)
`,
		evt.PodID,
		evt.Round,
		evt.Type,
		string(payload),
		toMillis(evt.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents returns a pod's journal in append order.
func (s *Store) ListEvents(ctx context.Context, podID string) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	podID = strings.TrimSpace(podID)
	if podID == "" {
		return nil, fmt.Errorf("pod id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, pod_id, round, type, payload_json, created_at
FROM events WHERE pod_id = ? ORDER BY seq
`, podID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []storage.EventRecord
	for rows.Next() {
		var (
			rec       storage.EventRecord
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&rec.Seq, &rec.PodID, &rec.Round, &rec.Type, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.PayloadJSON = []byte(payload)
		rec.CreatedAt = fromMillis(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return records, nil
}
