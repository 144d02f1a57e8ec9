// Package runner executes engine transitions against persistence. Each
// runner owns one pod: it serializes transitions, checkpoints after
// every step, journals events, and forwards outbound notices to the
// message bus. Bus delivery is best-effort; a failed post is logged and
// never rolls back game state.
package runner

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/engine"
	"github.com/RoguesAgent/moltmob/internal/game/night"
	"github.com/RoguesAgent/moltmob/internal/game/vote"
	"github.com/RoguesAgent/moltmob/internal/messagebus"
	"github.com/RoguesAgent/moltmob/internal/storage"
	"github.com/RoguesAgent/moltmob/internal/telemetry"
)

var tracer = otel.Tracer("github.com/RoguesAgent/moltmob/internal/game/runner")

// Deps carries the runner's collaborators. Bus and Telemetry may be
// nil; persistence stores are required.
type Deps struct {
	Pods        storage.PodStore
	Checkpoints storage.CheckpointStore
	Events      storage.EventStore
	Bus         messagebus.Bus
	Telemetry   *telemetry.Emitter
	Clock       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock().UTC()
}

// Runner drives one pod through the phase state machine. All methods
// serialize on an internal mutex: one in-flight transition per pod.
type Runner struct {
	mu     sync.Mutex
	pod    domain.Pod
	state  domain.RoundState
	engine *engine.Engine
	deps   Deps
}

// newRunner wires a runner around a loaded pod and state.
func newRunner(pod domain.Pod, state domain.RoundState, eng *engine.Engine, deps Deps) *Runner {
	return &Runner{pod: pod, state: state, engine: eng, deps: deps}
}

// Pod returns a copy of the pod's current state.
func (r *Runner) Pod() domain.Pod {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pod
}

// State returns a copy of the current round state.
func (r *Runner) State() domain.RoundState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.RoundState{
		MoltsRemaining: r.state.MoltsRemaining,
		ShellguardUsed: r.state.ShellguardUsed,
		Immune:         domain.NewStringSet(r.state.Immune.Sorted()...),
		DoubleVote:     domain.NewStringSet(r.state.DoubleVote.Sorted()...),
	}
}

// Start assigns roles and opens the game.
func (r *Runner) Start(ctx context.Context) (engine.Transition, error) {
	return r.transition(ctx, "runner.start", func() (engine.Transition, error) {
		return r.engine.Start(&r.pod, &r.state)
	})
}

// Night resolves the collected night intents.
func (r *Runner) Night(ctx context.Context, intents []night.Intent) (engine.Transition, error) {
	return r.transition(ctx, "runner.night", func() (engine.Transition, error) {
		return r.engine.Night(&r.pod, &r.state, intents)
	})
}

// Molt performs a molt draw for one player.
func (r *Runner) Molt(ctx context.Context, playerID string) (engine.Transition, error) {
	return r.transition(ctx, "runner.molt", func() (engine.Transition, error) {
		return r.engine.Molt(&r.pod, &r.state, playerID)
	})
}

// Vote tallies the day's ballots.
func (r *Runner) Vote(ctx context.Context, ballots []vote.Ballot) (engine.Transition, error) {
	return r.transition(ctx, "runner.vote", func() (engine.Transition, error) {
		return r.engine.Vote(&r.pod, &r.state, ballots)
	})
}

// Boil runs one sudden-death tally.
func (r *Runner) Boil(ctx context.Context, ballots []vote.Ballot) (engine.Transition, error) {
	return r.transition(ctx, "runner.boil", func() (engine.Transition, error) {
		return r.engine.Boil(&r.pod, &r.state, ballots)
	})
}

func (r *Runner) transition(ctx context.Context, spanName string, step func() (engine.Transition, error)) (engine.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	tr, err := step()
	if err != nil {
		return engine.Transition{}, err
	}
	if err := r.persist(ctx, tr); err != nil {
		return engine.Transition{}, err
	}
	r.forward(ctx, tr)
	return tr, nil
}

// persist writes the pod, the checkpoint, and the journal entries. The
// checkpoint upsert is keyed by pod/round/phase, so replaying a
// transition after a crash overwrites instead of duplicating.
func (r *Runner) persist(ctx context.Context, tr engine.Transition) error {
	now := r.deps.now()
	r.pod.UpdatedAt = now

	if err := r.deps.Pods.PutPod(ctx, r.pod); err != nil {
		return err
	}
	if err := r.deps.Checkpoints.PutCheckpoint(ctx, storage.NewCheckpoint(r.pod, r.state, now)); err != nil {
		return err
	}
	for _, evt := range tr.Events {
		payload, err := json.Marshal(evt.Payload)
		if err != nil {
			return err
		}
		rec := storage.EventRecord{
			PodID:       r.pod.ID,
			Round:       evt.Round,
			Type:        string(evt.Type),
			PayloadJSON: payload,
			CreatedAt:   now,
		}
		if err := r.deps.Events.AppendEvent(ctx, rec); err != nil {
			return err
		}
		if evt.Type == engine.TypeGameEnded {
			r.emitGameEnded(ctx, payload)
		}
	}
	return nil
}

func (r *Runner) emitGameEnded(ctx context.Context, payload []byte) {
	err := r.deps.Telemetry.Emit(ctx, string(engine.TypeGameEnded), telemetry.SeverityInfo,
		r.pod.ID, map[string]string{"payload": string(payload)})
	if err != nil {
		log.Printf("telemetry emit failed pod=%s err=%v", r.pod.ID, err)
	}
}

// forward delivers outbound notices. Failures are logged and dropped;
// the game never waits on the feed.
func (r *Runner) forward(ctx context.Context, tr engine.Transition) {
	if r.deps.Bus == nil {
		return
	}
	for _, notice := range tr.Outbound {
		draft := messagebus.Draft{
			PodID:     r.pod.ID,
			Recipient: notice.Recipient,
			Body:      notice.Body,
		}
		var err error
		if notice.Recipient == "" {
			err = r.deps.Bus.CreatePost(ctx, draft)
		} else {
			err = r.deps.Bus.CreateComment(ctx, draft)
		}
		if err != nil {
			log.Printf("bus delivery failed pod=%s recipient=%q err=%v", r.pod.ID, notice.Recipient, err)
		}
	}
}
