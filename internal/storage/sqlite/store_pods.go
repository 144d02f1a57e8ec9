package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/storage"
)

// PutPod upserts a pod record, roster included.
func (s *Store) PutPod(ctx context.Context, pod domain.Pod) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(pod.ID) == "" {
		return fmt.Errorf("pod id is required")
	}

	playersJSON, err := json.Marshal(pod.Players)
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}
	configJSON, err := json.Marshal(pod.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO pods (
	id, label, status, phase, round, boil_meter, entry_fee, players_json, config_json, lobby_deadline, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	label = excluded.label,
	status = excluded.status,
	phase = excluded.phase,
	round = excluded.round,
	boil_meter = excluded.boil_meter,
	entry_fee = excluded.entry_fee,
	players_json = excluded.players_json,
	config_json = excluded.config_json,
	lobby_deadline = excluded.lobby_deadline,
	updated_at = excluded.updated_at
`,
		pod.ID,
		pod.Label,
		string(pod.Status),
		string(pod.Phase),
		pod.Round,
		pod.BoilMeter,
		pod.EntryFee,
		string(playersJSON),
		string(configJSON),
		toMillis(pod.LobbyDeadline),
		toMillis(pod.CreatedAt),
		toMillis(pod.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put pod: %w", err)
	}
	return nil
}

// GetPod fetches a pod by ID.
func (s *Store) GetPod(ctx context.Context, podID string) (domain.Pod, error) {
	if err := ctx.Err(); err != nil {
		return domain.Pod{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Pod{}, fmt.Errorf("storage is not configured")
	}
	podID = strings.TrimSpace(podID)
	if podID == "" {
		return domain.Pod{}, fmt.Errorf("pod id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, label, status, phase, round, boil_meter, entry_fee, players_json, config_json, lobby_deadline, created_at, updated_at
FROM pods WHERE id = ?
`, podID)

	pod, err := scanPodRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pod{}, storage.ErrNotFound
		}
		return domain.Pod{}, fmt.Errorf("get pod: %w", err)
	}
	return pod, nil
}

// ListPodsByStatus returns pods in the given lifecycle state, most
// recently updated first.
func (s *Store) ListPodsByStatus(ctx context.Context, status domain.PodStatus) ([]domain.Pod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, label, status, phase, round, boil_meter, entry_fee, players_json, config_json, lobby_deadline, created_at, updated_at
FROM pods WHERE status = ? ORDER BY updated_at DESC
`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}
	defer rows.Close()

	var pods []domain.Pod
	for rows.Next() {
		pod, err := scanPodRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan pod: %w", err)
		}
		pods = append(pods, pod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}
	return pods, nil
}

func scanPodRow(scan func(dest ...any) error) (domain.Pod, error) {
	var (
		pod           domain.Pod
		status, phase string
		playersJSON   string
		configJSON    string
		lobbyDeadline int64
		createdAt     int64
		updatedAt     int64
	)
	if err := scan(
		&pod.ID,
		&pod.Label,
		&status,
		&phase,
		&pod.Round,
		&pod.BoilMeter,
		&pod.EntryFee,
		&playersJSON,
		&configJSON,
		&lobbyDeadline,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Pod{}, err
	}

	pod.Status = domain.PodStatus(status)
	pod.Phase = domain.Phase(phase)
	if err := json.Unmarshal([]byte(playersJSON), &pod.Players); err != nil {
		return domain.Pod{}, fmt.Errorf("unmarshal players: %w", err)
	}
	if err := json.Unmarshal([]byte(configJSON), &pod.Config); err != nil {
		return domain.Pod{}, fmt.Errorf("unmarshal config: %w", err)
	}
	pod.LobbyDeadline = fromMillis(lobbyDeadline)
	pod.CreatedAt = fromMillis(createdAt)
	pod.UpdatedAt = fromMillis(updatedAt)
	return pod, nil
}
