// Package telemetry records operational game lifecycle events.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/RoguesAgent/moltmob/internal/storage"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil, so callers never guard the call.
func (e *Emitter) Emit(ctx context.Context, name string, severity Severity, podID string, attributes map[string]string) error {
	if e == nil || e.store == nil {
		return nil
	}

	rec := storage.TelemetryRecord{
		EventName: name,
		Severity:  string(severity),
		PodID:     podID,
	}
	if e.clock == nil {
		rec.Timestamp = time.Now().UTC()
	} else {
		rec.Timestamp = e.clock().UTC()
	}
	if len(attributes) > 0 {
		payload, err := json.Marshal(attributes)
		if err != nil {
			return err
		}
		rec.AttributesJSON = payload
	}
	return e.store.AppendTelemetry(ctx, rec)
}
