package molt

import (
	"math/rand"
	"testing"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

func moltPod() (domain.Pod, domain.RoundState) {
	pod := domain.Pod{
		Status: domain.StatusActive,
		Phase:  domain.PhaseDay,
		Players: []domain.Player{
			{ID: "boss", Role: domain.RoleClawboss, Status: domain.PlayerAlive},
			{ID: "l1", Role: domain.RoleLoyalist, Status: domain.PlayerAlive},
			{ID: "dead", Role: domain.RoleLoyalist, Status: domain.PlayerEliminated},
			{ID: "lobbyist", Status: domain.PlayerAlive}, // no role assigned
		},
	}
	return pod, domain.NewRoundState(len(pod.Players))
}

func TestPerformConsumesSlot(t *testing.T) {
	pod, state := moltPod()
	before := state.MoltsRemaining

	res := Perform(&pod, &state, "l1", rand.New(rand.NewSource(1)))
	if res.Outcome == OutcomeNotEligible {
		t.Fatalf("expected an outcome, got %s", res.Outcome)
	}
	if state.MoltsRemaining != before-1 {
		t.Fatalf("expected slot consumed, got %d", state.MoltsRemaining)
	}
}

func TestPerformNotEligible(t *testing.T) {
	tests := []struct {
		name   string
		player string
		drain  bool
	}{
		{name: "zero slots", player: "l1", drain: true},
		{name: "dead player", player: "dead"},
		{name: "roleless player", player: "lobbyist"},
		{name: "unknown player", player: "ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pod, state := moltPod()
			if tt.drain {
				state.MoltsRemaining = 0
			}
			slots := state.MoltsRemaining

			res := Perform(&pod, &state, tt.player, rand.New(rand.NewSource(1)))
			if res.Outcome != OutcomeNotEligible {
				t.Fatalf("expected not-eligible, got %s", res.Outcome)
			}
			if state.MoltsRemaining != slots {
				t.Fatal("expected no slot consumed for ineligible molt")
			}
		})
	}
}

func TestPerformRoleSwapNeverKeepsRole(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		pod, state := moltPod()
		state.MoltsRemaining = 1

		res := Perform(&pod, &state, "l1", rand.New(rand.NewSource(seed)))
		if res.Outcome != OutcomeRoleSwap {
			continue
		}
		if res.NewRole == domain.RoleLoyalist {
			t.Fatalf("seed %d: role swap kept the current role", seed)
		}
		if pod.Player("l1").Role != res.NewRole {
			t.Fatal("expected role mutated in place")
		}
	}
}

func TestPerformLastClawbossKeepsRole(t *testing.T) {
	for seed := int64(0); seed < 300; seed++ {
		pod, state := moltPod()
		state.MoltsRemaining = 1

		res := Perform(&pod, &state, "boss", rand.New(rand.NewSource(seed)))
		if res.Outcome == OutcomeRoleSwap {
			t.Fatalf("seed %d: sole clawboss swapped away", seed)
		}
		if pod.Player("boss").Role != domain.RoleClawboss {
			t.Fatalf("seed %d: pod left without a clawboss", seed)
		}
	}
}

func TestPerformClawbossSwapsWithBackup(t *testing.T) {
	var sawSwap bool
	for seed := int64(0); seed < 300; seed++ {
		pod, state := moltPod()
		pod.Players = append(pod.Players, domain.Player{
			ID: "boss2", Role: domain.RoleClawboss, Status: domain.PlayerAlive,
		})
		state.MoltsRemaining = 1

		res := Perform(&pod, &state, "boss", rand.New(rand.NewSource(seed)))
		if res.Outcome != OutcomeRoleSwap {
			continue
		}
		sawSwap = true
		if pod.Player("boss").Role == domain.RoleClawboss {
			t.Fatalf("seed %d: role swap kept the current role", seed)
		}
	}
	if !sawSwap {
		t.Fatal("expected a role swap across seeds with a second clawboss on the board")
	}
}

func TestPerformUpgradesRegisterInState(t *testing.T) {
	var sawDouble, sawImmunity, sawNothing bool
	for seed := int64(0); seed < 300; seed++ {
		pod, state := moltPod()
		state.MoltsRemaining = 1

		res := Perform(&pod, &state, "l1", rand.New(rand.NewSource(seed)))
		switch res.Outcome {
		case OutcomeDoubleVote:
			sawDouble = true
			if !state.DoubleVote.Has("l1") {
				t.Fatal("expected double-vote registration")
			}
		case OutcomeImmunity:
			sawImmunity = true
			if !state.Immune.Has("l1") {
				t.Fatal("expected immunity registration")
			}
		case OutcomeNothing:
			sawNothing = true
			if state.DoubleVote.Has("l1") || state.Immune.Has("l1") {
				t.Fatal("expected no registration for dud outcome")
			}
		}
	}
	if !sawDouble || !sawImmunity || !sawNothing {
		t.Fatalf("expected all buckets across seeds: double=%v immunity=%v nothing=%v",
			sawDouble, sawImmunity, sawNothing)
	}
}

func TestPerformDeterministicUnderSeed(t *testing.T) {
	podA, stateA := moltPod()
	podB, stateB := moltPod()

	resA := Perform(&podA, &stateA, "boss", rand.New(rand.NewSource(99)))
	resB := Perform(&podB, &stateB, "boss", rand.New(rand.NewSource(99)))
	if resA.Outcome != resB.Outcome || resA.NewRole != resB.NewRole {
		t.Fatalf("expected identical results, got %+v and %+v", resA, resB)
	}
}
