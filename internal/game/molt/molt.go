// Package molt implements the limited per-game molt perk: a weighted
// random draw that can swap a player's role or grant a temporary
// upgrade.
package molt

import (
	"math/rand"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// Outcome names a molt draw bucket.
type Outcome string

const (
	// OutcomeNotEligible is returned for dead/roleless players or when
	// no molt slots remain. It is a typed no-op, not an error.
	OutcomeNotEligible Outcome = "not-eligible"
	// OutcomeRoleSwap rerolls the player's role to a different one.
	OutcomeRoleSwap Outcome = "role-swap"
	// OutcomeDoubleVote doubles the player's next vote.
	OutcomeDoubleVote Outcome = "double-vote"
	// OutcomeImmunity shields the player through the next night.
	OutcomeImmunity Outcome = "immunity"
	// OutcomeNothing is the dud bucket.
	OutcomeNothing Outcome = "nothing"
)

// Draw weights per bucket, out of their sum.
const (
	weightRoleSwap   = 30
	weightDoubleVote = 25
	weightImmunity   = 25
	weightNothing    = 20
)

// Result reports what the molt did.
type Result struct {
	Player  string
	Outcome Outcome
	NewRole domain.Role
}

// Perform consumes a molt slot for the player and applies a weighted
// random outcome. Role swaps mutate the player's role in place; the
// upgrade outcomes register the player in the round state, where they
// are cleared after one use. Ineligible calls leave everything
// untouched. The last clawboss can never swap away: the pod must always
// hold at least one, so that draw resolves to nothing.
func Perform(pod *domain.Pod, state *domain.RoundState, playerID string, rng *rand.Rand) Result {
	player := pod.Player(playerID)
	if state.MoltsRemaining <= 0 || player == nil || !player.Alive() || !player.Role.Valid() {
		return Result{Player: playerID, Outcome: OutcomeNotEligible}
	}

	state.ConsumeMolt()

	res := Result{Player: playerID, Outcome: draw(rng)}
	switch res.Outcome {
	case OutcomeRoleSwap:
		if player.Role == domain.RoleClawboss && clawbossCount(pod) == 1 {
			res.Outcome = OutcomeNothing
			break
		}
		res.NewRole = swapRole(player.Role, rng)
		player.Role = res.NewRole
	case OutcomeDoubleVote:
		state.DoubleVote.Add(playerID)
	case OutcomeImmunity:
		state.Immune.Add(playerID)
	}
	return res
}

// draw picks a bucket by cumulative weight.
func draw(rng *rand.Rand) Outcome {
	roll := rng.Intn(weightRoleSwap + weightDoubleVote + weightImmunity + weightNothing)
	switch {
	case roll < weightRoleSwap:
		return OutcomeRoleSwap
	case roll < weightRoleSwap+weightDoubleVote:
		return OutcomeDoubleVote
	case roll < weightRoleSwap+weightDoubleVote+weightImmunity:
		return OutcomeImmunity
	default:
		return OutcomeNothing
	}
}

// clawbossCount counts clawboss-role holders across the full roster,
// matching the win evaluation's view of the board.
func clawbossCount(pod *domain.Pod) int {
	var n int
	for _, player := range pod.Players {
		if player.Role == domain.RoleClawboss {
			n++
		}
	}
	return n
}

// swapRole draws a role different from the current one.
func swapRole(current domain.Role, rng *rand.Rand) domain.Role {
	candidates := make([]domain.Role, 0, len(domain.Roles)-1)
	for _, role := range domain.Roles {
		if role != current {
			candidates = append(candidates, role)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}
