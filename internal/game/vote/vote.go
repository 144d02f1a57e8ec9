// Package vote implements the day-vote tally and the escalating boil
// pressure rules.
package vote

import "sort"

// Ballot is one voter's choice. A nil target is an abstain.
type Ballot struct {
	Voter  string
	Target *string
}

// Result is the outcome of one tally.
type Result struct {
	Tally        map[string]int
	Eliminated   string
	NoCook       bool
	BoilIncrease int
}

// Boil increase amounts. A silent round (zero ballots with a target)
// pressures the pod hardest; a successful elimination adds nothing.
const (
	boilSilentRound   = 50
	boilEarlyRounds   = 15
	boilMidRounds     = 25
	boilLateRounds    = 40
	boilLowTurnout    = 10
	minVotesToCook    = 2
)

// Tally counts ballots and decides the elimination. Cooking someone
// requires a strict single maximum of at least two votes; any tie or
// weaker majority is a no-cook and raises the boil meter instead.
func Tally(ballots []Ballot, aliveCount, round int) Result {
	res := Result{Tally: make(map[string]int)}

	cast := 0
	for _, ballot := range ballots {
		if ballot.Target == nil {
			continue
		}
		res.Tally[*ballot.Target]++
		cast++
	}

	if cast == 0 {
		res.NoCook = true
		res.BoilIncrease = boilSilentRound
		return res
	}

	leader, leaderVotes, contested := leadingTarget(res.Tally)
	if contested || leaderVotes < minVotesToCook {
		res.NoCook = true
		res.BoilIncrease = noCookIncrease(round, cast, aliveCount)
		return res
	}

	res.Eliminated = leader
	return res
}

// leadingTarget finds the strict maximum of the tally. contested is true
// when two or more targets share the top count.
func leadingTarget(tally map[string]int) (leader string, votes int, contested bool) {
	// Iterate in sorted order so results are deterministic for logs.
	targets := make([]string, 0, len(tally))
	for target := range tally {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		switch {
		case tally[target] > votes:
			leader, votes, contested = target, tally[target], false
		case tally[target] == votes:
			contested = true
		}
	}
	return leader, votes, contested
}

// noCookIncrease scales the boil pressure with the round number, with a
// turnout penalty when fewer than half the living players cast a vote.
func noCookIncrease(round, cast, aliveCount int) int {
	var base int
	switch {
	case round <= 2:
		base = boilEarlyRounds
	case round <= 5:
		base = boilMidRounds
	default:
		base = boilLateRounds
	}
	if cast*2 < aliveCount {
		base += boilLowTurnout
	}
	return base
}

// ApplyBoil raises a meter by an increase, clamped to the ceiling. The
// result never drops below the input meter.
func ApplyBoil(meter, increase int) int {
	if increase < 0 {
		increase = 0
	}
	meter += increase
	if meter > 100 {
		meter = 100
	}
	return meter
}
