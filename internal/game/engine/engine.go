// Package engine drives the phase state machine: lobby, night, day,
// vote, boil, ended. Transitions are pure with respect to I/O; the pod
// and round state mutate in place and every step returns a Transition
// describing what happened. Randomness comes from the injected source
// so a seeded engine replays identically.
package engine

import (
	"fmt"
	"math/rand"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/molt"
	"github.com/RoguesAgent/moltmob/internal/game/night"
	"github.com/RoguesAgent/moltmob/internal/game/payout"
	"github.com/RoguesAgent/moltmob/internal/game/roles"
	"github.com/RoguesAgent/moltmob/internal/game/vote"
	"github.com/RoguesAgent/moltmob/internal/game/win"
)

// Engine executes phase transitions for one pod at a time.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine over the given random source.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Start assigns roles and opens round 1. The pod must be a lobby with a
// player count the role table supports.
func (e *Engine) Start(pod *domain.Pod, state *domain.RoundState) (Transition, error) {
	if pod.Status != domain.StatusLobby {
		return Transition{}, statusError(pod, "start")
	}

	dist, err := roles.DistributionFor(len(pod.Players), e.rng)
	if err != nil {
		return Transition{}, err
	}
	ids := make([]string, len(pod.Players))
	for i, player := range pod.Players {
		ids[i] = player.ID
	}
	assigned, err := roles.Assign(ids, dist, e.rng)
	if err != nil {
		return Transition{}, err
	}
	for i := range pod.Players {
		pod.Players[i].Role = assigned[pod.Players[i].ID]
	}

	pod.Status = domain.StatusActive
	pod.Phase = domain.PhaseNight
	pod.Round = 1
	*state = domain.NewRoundState(len(pod.Players))

	tr := Transition{
		Events: []Event{{
			Type:    TypePodStarted,
			Round:   pod.Round,
			Payload: PodStartedPayload{Players: ids, Distribution: dist},
		}},
		Outbound: []Notice{{
			Body: fmt.Sprintf("The pot is set and the water is warm. %d crabs are in. Night falls.", len(pod.Players)),
		}},
	}
	for _, player := range pod.Players {
		tr.Outbound = append(tr.Outbound, Notice{
			Recipient: player.ID,
			Body:      fmt.Sprintf("Your role: %s.", player.Role),
		})
	}
	return tr, nil
}

// Night resolves the collected night intents. The immunity set shields
// its members for this night only and is cleared afterwards; the
// shellguard's protect works once per game.
func (e *Engine) Night(pod *domain.Pod, state *domain.RoundState, intents []night.Intent) (Transition, error) {
	if pod.Status != domain.StatusActive {
		return Transition{}, statusError(pod, "night")
	}
	if pod.Phase != domain.PhaseNight {
		return Transition{}, phaseError(pod, "night")
	}

	if state.ShellguardUsed {
		intents = dropProtects(intents)
	}
	res := night.Resolve(*pod, intents)
	if res.Eliminated != "" && state.Immune.Has(res.Eliminated) {
		res.Blocked = true
		res.Eliminated = ""
	}
	if res.Blocked && res.ProtectTarget != "" && res.PinchTarget == res.ProtectTarget {
		state.ShellguardUsed = true
	}
	state.Immune.Clear()

	var tr Transition
	if res.Eliminated != "" {
		if err := pod.Eliminate(res.Eliminated, domain.CauseNightAction, pod.Round); err != nil {
			return Transition{}, err
		}
		tr.Eliminated = append(tr.Eliminated, res.Eliminated)
	}
	tr.Events = append(tr.Events, Event{
		Type:  TypeNightResolved,
		Round: pod.Round,
		Payload: NightResolvedPayload{
			PinchTarget:   res.PinchTarget,
			ProtectTarget: res.ProtectTarget,
			Blocked:       res.Blocked,
			Eliminated:    res.Eliminated,
		},
	})
	tr.Outbound = append(tr.Outbound, Notice{Body: nightSummary(pod, res)})

	winRes, err := win.Evaluate(*pod)
	if err != nil {
		return Transition{}, err
	}
	if winRes.GameOver {
		e.endGame(pod, &tr, winRes, nil)
		return tr, nil
	}

	pod.Phase = domain.PhaseDay
	return tr, nil
}

// Molt performs the molt perk draw for a player during the day phase.
func (e *Engine) Molt(pod *domain.Pod, state *domain.RoundState, playerID string) (Transition, error) {
	if pod.Status != domain.StatusActive {
		return Transition{}, statusError(pod, "molt")
	}
	if pod.Phase != domain.PhaseDay {
		return Transition{}, phaseError(pod, "molt")
	}

	res := molt.Perform(pod, state, playerID, e.rng)
	tr := Transition{
		Events: []Event{{
			Type:  TypeMoltPerformed,
			Round: pod.Round,
			Payload: MoltPerformedPayload{
				Player:  res.Player,
				Outcome: string(res.Outcome),
				NewRole: res.NewRole,
			},
		}},
	}
	if res.Outcome != molt.OutcomeNotEligible {
		tr.Outbound = append(tr.Outbound,
			Notice{Body: fmt.Sprintf("A shell cracks. Someone molted (%d left).", state.MoltsRemaining)},
			Notice{Recipient: playerID, Body: moltWhisper(res)},
		)
	}
	return tr, nil
}

// Vote tallies the day's ballots. Double-vote holders cast twice, once.
// Ballots from eliminated players are dropped and a vote aimed at the
// dead counts as an abstain. A maxed boil meter or the round cap opens
// sudden death; otherwise the next round's night begins.
func (e *Engine) Vote(pod *domain.Pod, state *domain.RoundState, ballots []vote.Ballot) (Transition, error) {
	if pod.Status != domain.StatusActive {
		return Transition{}, statusError(pod, "vote")
	}
	if pod.Phase != domain.PhaseDay && pod.Phase != domain.PhaseVote {
		return Transition{}, phaseError(pod, "vote")
	}
	pod.Phase = domain.PhaseVote

	ballots = sanitizeBallots(pod, ballots)
	result := vote.Tally(expandDoubleVotes(ballots, state), pod.AliveCount(), pod.Round)
	tr, bounty, err := e.applyTally(pod, TypeVoteResolved, domain.CauseVote, result, ballots)
	if err != nil {
		return Transition{}, err
	}

	winRes, err := win.Evaluate(*pod)
	if err != nil {
		return Transition{}, err
	}
	switch {
	case winRes.GameOver:
		e.endGame(pod, &tr, winRes, bounty)
	case pod.BoilMeter >= domain.BoilMax || pod.Round >= pod.Config.MaxRounds:
		pod.Phase = domain.PhaseBoil
		tr.Events = append(tr.Events, Event{
			Type:    TypeBoilStarted,
			Round:   pod.Round,
			Payload: BoilStartedPayload{Roles: roleReveal(pod)},
		})
		tr.Outbound = append(tr.Outbound, Notice{Body: "The water boils over. All shells off: roles are revealed. Vote until someone cooks."})
	default:
		pod.Round++
		pod.Phase = domain.PhaseNight
	}
	return tr, nil
}

// Boil runs one sudden-death tally. The phase repeats until a vote
// produces a winner.
func (e *Engine) Boil(pod *domain.Pod, state *domain.RoundState, ballots []vote.Ballot) (Transition, error) {
	if pod.Status != domain.StatusActive {
		return Transition{}, statusError(pod, "boil")
	}
	if pod.Phase != domain.PhaseBoil {
		return Transition{}, phaseError(pod, "boil")
	}

	ballots = sanitizeBallots(pod, ballots)
	result := vote.Tally(expandDoubleVotes(ballots, state), pod.AliveCount(), pod.Round)
	tr, bounty, err := e.applyTally(pod, TypeBoilResolved, domain.CauseBoil, result, ballots)
	if err != nil {
		return Transition{}, err
	}

	winRes, err := win.Evaluate(*pod)
	if err != nil {
		return Transition{}, err
	}
	if winRes.GameOver {
		e.endGame(pod, &tr, winRes, bounty)
	}
	return tr, nil
}

// applyTally applies a vote result to the pod and returns the partial
// transition plus the voters backing the elimination, for bounty
// eligibility if this turns out to be the decisive vote.
func (e *Engine) applyTally(pod *domain.Pod, eventType Type, cause domain.EliminationCause, result vote.Result, ballots []vote.Ballot) (Transition, []string, error) {
	var tr Transition
	var bounty []string
	if result.Eliminated != "" {
		if err := pod.Eliminate(result.Eliminated, cause, pod.Round); err != nil {
			return Transition{}, nil, err
		}
		tr.Eliminated = append(tr.Eliminated, result.Eliminated)
		for _, ballot := range ballots {
			if ballot.Target != nil && *ballot.Target == result.Eliminated {
				bounty = append(bounty, ballot.Voter)
			}
		}
	}
	pod.RaiseBoil(result.BoilIncrease)

	tr.Events = append(tr.Events, Event{
		Type:  eventType,
		Round: pod.Round,
		Payload: VoteResolvedPayload{
			Tally:        result.Tally,
			Eliminated:   result.Eliminated,
			NoCook:       result.NoCook,
			BoilIncrease: result.BoilIncrease,
			BoilMeter:    pod.BoilMeter,
		},
	})
	tr.Outbound = append(tr.Outbound, Notice{Body: voteSummary(pod, result)})
	return tr, bounty, nil
}

// endGame settles the pod: drifter bonus first, then the main split over
// what remains, then the terminal status and phase.
func (e *Engine) endGame(pod *domain.Pod, tr *Transition, winRes win.Result, bountyVoters []string) {
	var consumed int64
	if winRes.DrifterWins {
		var bonus []payout.Entry
		bonus, consumed = payout.DrifterBonus(*pod)
		tr.Payouts = append(tr.Payouts, bonus...)
	}

	rake := payout.Rake(*pod)
	available := pod.Pool() - rake - consumed
	tr.Payouts = append(tr.Payouts, payout.Split(*pod, winRes.Winner, bountyVoters, available)...)

	pod.Status = domain.StatusCompleted
	pod.Phase = domain.PhaseEnded

	tr.Events = append(tr.Events, Event{
		Type:  TypeGameEnded,
		Round: pod.Round,
		Payload: GameEndedPayload{
			Winner:      winRes.Winner,
			DrifterWins: winRes.DrifterWins,
			Reason:      winRes.Reason,
			Roles:       roleReveal(pod),
			Distributed: payout.Total(tr.Payouts),
			Rake:        rake,
		},
	})
	tr.Outbound = append(tr.Outbound, Notice{
		Body: fmt.Sprintf("Game over: %s win. %s", winRes.Winner, winRes.Reason),
	})
}

// sanitizeBallots restricts the tally to living players. Ballots from
// eliminated voters are dropped; a ballot targeting an eliminated or
// unknown player becomes an abstain, so a malicious vote can never
// wedge the round.
func sanitizeBallots(pod *domain.Pod, ballots []vote.Ballot) []vote.Ballot {
	kept := make([]vote.Ballot, 0, len(ballots))
	for _, ballot := range ballots {
		voter := pod.Player(ballot.Voter)
		if voter == nil || !voter.Alive() {
			continue
		}
		if ballot.Target != nil {
			if target := pod.Player(*ballot.Target); target == nil || !target.Alive() {
				ballot.Target = nil
			}
		}
		kept = append(kept, ballot)
	}
	return kept
}

func expandDoubleVotes(ballots []vote.Ballot, state *domain.RoundState) []vote.Ballot {
	expanded := make([]vote.Ballot, 0, len(ballots))
	for _, ballot := range ballots {
		expanded = append(expanded, ballot)
		if state.DoubleVote.Has(ballot.Voter) {
			expanded = append(expanded, ballot)
		}
	}
	state.DoubleVote.Clear()
	return expanded
}

func dropProtects(intents []night.Intent) []night.Intent {
	kept := intents[:0:0]
	for _, intent := range intents {
		if intent.Action != night.ActionProtect {
			kept = append(kept, intent)
		}
	}
	return kept
}

func roleReveal(pod *domain.Pod) map[string]domain.Role {
	reveal := make(map[string]domain.Role, len(pod.Players))
	for _, player := range pod.Players {
		reveal[player.ID] = player.Role
	}
	return reveal
}

func nightSummary(pod *domain.Pod, res night.Resolution) string {
	if res.Eliminated != "" {
		if player := pod.Player(res.Eliminated); player != nil {
			return fmt.Sprintf("Dawn breaks. %s was dragged under during the night.", player.DisplayName)
		}
	}
	return "Dawn breaks. Everyone surfaces. Nobody was taken."
}

func voteSummary(pod *domain.Pod, result vote.Result) string {
	if result.Eliminated != "" {
		if player := pod.Player(result.Eliminated); player != nil {
			return fmt.Sprintf("The pod has spoken. %s goes in the pot.", player.DisplayName)
		}
	}
	return fmt.Sprintf("No consensus. The water heats up (boil %d/%d).", pod.BoilMeter, domain.BoilMax)
}

func moltWhisper(res molt.Result) string {
	switch res.Outcome {
	case molt.OutcomeRoleSwap:
		return fmt.Sprintf("Your molt changed you. New role: %s.", res.NewRole)
	case molt.OutcomeDoubleVote:
		return "Your molt hardened your claws. Your next vote counts twice."
	case molt.OutcomeImmunity:
		return "Your molt left a thick shell. You cannot be taken tonight."
	default:
		return "You molted, and nothing came of it."
	}
}

func statusError(pod *domain.Pod, op string) error {
	return apperrors.WithMetadata(apperrors.CodePodStatusDisallowsOp,
		"pod status does not allow this operation",
		map[string]string{"Status": string(pod.Status), "Operation": op})
}

func phaseError(pod *domain.Pod, op string) error {
	return apperrors.WithMetadata(apperrors.CodePodPhaseDisallowsOp,
		"pod phase does not allow this operation",
		map[string]string{"Phase": string(pod.Phase), "Operation": op})
}
