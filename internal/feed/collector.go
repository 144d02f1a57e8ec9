// Package feed accumulates validated player intents between phase
// resolutions. The poller that reads the outside feed stays a
// collaborator; this package only owns the per-round collection window.
package feed

import (
	"sort"
	"sync"
	"time"

	"github.com/RoguesAgent/moltmob/internal/channel"
	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/night"
	"github.com/RoguesAgent/moltmob/internal/game/vote"
)

// ErrDeadlinePassed indicates a submission after the collection window
// closed. Late actions default to abstain/no-action by omission.
var ErrDeadlinePassed = apperrors.New(apperrors.CodePodPhaseDisallowsOp, "submission window is closed")

// Collector gathers one round's decrypted intents until the deadline.
// A player resubmitting overwrites their earlier intent.
type Collector struct {
	mu       sync.Mutex
	round    int
	phase    domain.Phase
	deadline time.Time
	clock    func() time.Time
	intents  map[string]channel.Intent
}

// NewCollector opens a collection window for one round and phase.
func NewCollector(round int, phase domain.Phase, deadline time.Time) *Collector {
	return &Collector{
		round:    round,
		phase:    phase,
		deadline: deadline,
		clock:    time.Now,
		intents:  make(map[string]channel.Intent),
	}
}

// Round returns the round the window collects for.
func (c *Collector) Round() int { return c.round }

// Phase returns the phase the window collects for.
func (c *Collector) Phase() domain.Phase { return c.phase }

// Submit records a player's intent. Submissions after the deadline are
// rejected; the player's round action then defaults to nothing.
func (c *Collector) Submit(intent channel.Intent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.deadline.IsZero() && c.clock().After(c.deadline) {
		return ErrDeadlinePassed
	}
	c.intents[intent.Player] = intent
	return nil
}

// NightIntents converts the collected night submissions for the engine.
// Only living players' submissions count. Targets arrive as display
// names and resolve to player ids; an unknown name leaves the target
// empty, which resolves to no action.
func (c *Collector) NightIntents(pod *domain.Pod) []night.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var intents []night.Intent
	for _, playerID := range c.sortedSenders() {
		intent := c.intents[playerID]
		if intent.Night == nil {
			continue
		}
		if player := pod.Player(playerID); player == nil || !player.Alive() {
			continue
		}
		intents = append(intents, night.Intent{
			Player: playerID,
			Action: intent.Night.Action,
			Target: resolveTarget(pod, intent.Night.Target),
		})
	}
	return intents
}

// Ballots converts the collected vote submissions for the engine. Only
// living players cast; a nil or unresolvable target is an abstain and
// players who never submitted cast no ballot at all.
func (c *Collector) Ballots(pod *domain.Pod) []vote.Ballot {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ballots []vote.Ballot
	for _, playerID := range c.sortedSenders() {
		intent := c.intents[playerID]
		if intent.Vote == nil {
			continue
		}
		if player := pod.Player(playerID); player == nil || !player.Alive() {
			continue
		}
		ballot := vote.Ballot{Voter: playerID}
		if intent.Vote.Target != nil {
			if targetID := resolveTarget(pod, *intent.Vote.Target); targetID != "" {
				ballot.Target = &targetID
			}
		}
		ballots = append(ballots, ballot)
	}
	return ballots
}

// sortedSenders lists submitting player ids in a stable order so
// resolution never depends on map iteration. Callers hold the lock.
func (c *Collector) sortedSenders() []string {
	ids := make([]string, 0, len(c.intents))
	for id := range c.intents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func resolveTarget(pod *domain.Pod, name string) string {
	if name == "" {
		return ""
	}
	if player := pod.PlayerByName(name); player != nil {
		return player.ID
	}
	return ""
}
