package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RoguesAgent/moltmob/internal/storage"
)

// AppendTelemetry records one operational telemetry sample.
func (s *Store) AppendTelemetry(ctx context.Context, rec storage.TelemetryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.EventName) == "" {
		return fmt.Errorf("event name is required")
	}
	if strings.TrimSpace(rec.Severity) == "" {
		return fmt.Errorf("severity is required")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	attributes := rec.AttributesJSON
	if len(attributes) == 0 {
		attributes = []byte("{}")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO telemetry (timestamp, event_name, severity, pod_id, attributes_json)
VALUES (?, ?, ?, ?, ?)
`,
		toMillis(rec.Timestamp),
		rec.EventName,
		rec.Severity,
		rec.PodID,
		string(attributes),
	)
	if err != nil {
		return fmt.Errorf("append telemetry: %w", err)
	}
	return nil
}
