package runner

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/engine"
	"github.com/RoguesAgent/moltmob/internal/random"
	"github.com/RoguesAgent/moltmob/internal/storage"
)

// Registry owns the live runners, one per pod. It is the explicit
// repository callers go through: create a pod, resume a pod, look up a
// running one.
type Registry struct {
	mu      sync.Mutex
	deps    Deps
	source  func() (*rand.Rand, error)
	runners map[string]*Runner
}

// NewRegistry creates a registry over the shared collaborators.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:    deps,
		source:  random.NewSource,
		runners: make(map[string]*Runner),
	}
}

// CreatePod opens a new lobby pod, persists it, and registers a runner.
func (g *Registry) CreatePod(ctx context.Context, input domain.CreatePodInput) (*Runner, error) {
	pod, err := domain.CreatePod(input, g.deps.Clock, nil)
	if err != nil {
		return nil, err
	}
	if err := g.deps.Pods.PutPod(ctx, pod); err != nil {
		return nil, err
	}

	r, err := g.register(pod, domain.NewRoundState(len(pod.Players)))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Join adds a player to a lobby pod and persists the roster.
func (g *Registry) Join(ctx context.Context, podID string, player domain.Player) error {
	r, err := g.Resume(ctx, podID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pod.AddPlayer(player); err != nil {
		return err
	}
	r.pod.UpdatedAt = g.deps.now()
	return g.deps.Pods.PutPod(ctx, r.pod)
}

// CancelExpiredLobbies marks lobby pods whose deadline passed without a
// start as cancelled and returns how many were swept.
func (g *Registry) CancelExpiredLobbies(ctx context.Context) (int, error) {
	pods, err := g.deps.Pods.ListPodsByStatus(ctx, domain.StatusLobby)
	if err != nil {
		return 0, err
	}

	now := g.deps.now()
	var cancelled int
	for _, pod := range pods {
		r, err := g.Resume(ctx, pod.ID)
		if err != nil {
			return cancelled, err
		}
		r.mu.Lock()
		if r.pod.CancelLobby(now) {
			r.pod.UpdatedAt = now
			if err := g.deps.Pods.PutPod(ctx, r.pod); err != nil {
				r.mu.Unlock()
				return cancelled, err
			}
			cancelled++
		}
		r.mu.Unlock()
	}
	return cancelled, nil
}

// Resume returns the runner for a pod, rebuilding it from the latest
// checkpoint when it is not already live. A pod with no checkpoint is
// resumed fresh from its persisted record; a missing pod is a typed
// not-found failure.
func (g *Registry) Resume(ctx context.Context, podID string) (*Runner, error) {
	g.mu.Lock()
	if r, ok := g.runners[podID]; ok {
		g.mu.Unlock()
		return r, nil
	}
	g.mu.Unlock()

	cp, err := g.deps.Checkpoints.LatestCheckpoint(ctx, podID)
	switch {
	case err == nil:
		return g.register(cp.Pod, cp.State())
	case errors.Is(err, storage.ErrNotFound):
		pod, err := g.deps.Pods.GetPod(ctx, podID)
		if err != nil {
			return nil, err
		}
		return g.register(pod, domain.NewRoundState(len(pod.Players)))
	default:
		return nil, err
	}
}

func (g *Registry) register(pod domain.Pod, state domain.RoundState) (*Runner, error) {
	rng, err := g.source()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.runners[pod.ID]; ok {
		return r, nil
	}
	r := newRunner(pod, state, engine.New(rng), g.deps)
	g.runners[pod.ID] = r
	return r, nil
}
