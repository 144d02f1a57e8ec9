package vote

import (
	"testing"
)

func target(name string) *string {
	return &name
}

func TestTallyStrictMajorityEliminates(t *testing.T) {
	res := Tally([]Ballot{
		{Voter: "a", Target: target("boss")},
		{Voter: "b", Target: target("boss")},
		{Voter: "c", Target: target("a")},
	}, 5, 1)

	if res.NoCook {
		t.Fatal("expected a cook")
	}
	if res.Eliminated != "boss" {
		t.Fatalf("expected boss eliminated, got %q", res.Eliminated)
	}
	if res.BoilIncrease != 0 {
		t.Fatalf("expected no boil increase on elimination, got %d", res.BoilIncrease)
	}
	if res.Tally["boss"] != 2 {
		t.Fatalf("expected 2 votes for boss, got %d", res.Tally["boss"])
	}
}

func TestTallyTieNoCooks(t *testing.T) {
	res := Tally([]Ballot{
		{Voter: "a", Target: target("x")},
		{Voter: "b", Target: target("x")},
		{Voter: "c", Target: target("y")},
		{Voter: "d", Target: target("y")},
	}, 6, 1)

	if !res.NoCook {
		t.Fatal("expected no-cook on tie")
	}
	if res.Eliminated != "" {
		t.Fatalf("expected no elimination, got %q", res.Eliminated)
	}
}

func TestTallySingleVoteMaxNoCooks(t *testing.T) {
	res := Tally([]Ballot{
		{Voter: "a", Target: target("x")},
		{Voter: "b", Target: target("y")},
		{Voter: "c", Target: target("z")},
	}, 4, 1)

	if !res.NoCook {
		t.Fatal("expected no-cook when max is below two votes")
	}
}

func TestTallyZeroBallotsBoilsHard(t *testing.T) {
	res := Tally(nil, 6, 4)
	if !res.NoCook {
		t.Fatal("expected no-cook")
	}
	if res.BoilIncrease != 50 {
		t.Fatalf("expected +50 for silent round, got %d", res.BoilIncrease)
	}

	// All-abstain is the same as silence.
	res = Tally([]Ballot{{Voter: "a"}, {Voter: "b"}}, 6, 4)
	if res.BoilIncrease != 50 {
		t.Fatalf("expected +50 for all-abstain round, got %d", res.BoilIncrease)
	}
}

func TestTallyNoCookBoilScalesByRound(t *testing.T) {
	tests := []struct {
		name  string
		round int
		want  int
	}{
		{name: "round 1", round: 1, want: 15},
		{name: "round 2", round: 2, want: 15},
		{name: "round 3", round: 3, want: 25},
		{name: "round 5", round: 5, want: 25},
		{name: "round 6", round: 6, want: 40},
		{name: "round 9", round: 9, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Two ballots for different targets out of 4 alive: tied,
			// turnout at exactly 50% so no penalty applies.
			res := Tally([]Ballot{
				{Voter: "a", Target: target("x")},
				{Voter: "b", Target: target("y")},
			}, 4, tt.round)
			if !res.NoCook {
				t.Fatal("expected no-cook")
			}
			if res.BoilIncrease != tt.want {
				t.Fatalf("expected +%d, got %d", tt.want, res.BoilIncrease)
			}
		})
	}
}

func TestTallyLowTurnoutPenalty(t *testing.T) {
	// One ballot out of 5 alive: below 50% turnout adds +10.
	res := Tally([]Ballot{
		{Voter: "a", Target: target("x")},
	}, 5, 3)
	if !res.NoCook {
		t.Fatal("expected no-cook")
	}
	if res.BoilIncrease != 35 {
		t.Fatalf("expected +35 (25 base + 10 turnout), got %d", res.BoilIncrease)
	}
}

func TestApplyBoilClamps(t *testing.T) {
	for meter := 0; meter <= 100; meter += 10 {
		for _, inc := range []int{0, 15, 50, 200} {
			got := ApplyBoil(meter, inc)
			if got < meter {
				t.Fatalf("meter decreased: %d -> %d", meter, got)
			}
			if got > 100 {
				t.Fatalf("meter exceeded 100: %d", got)
			}
		}
	}
}

func TestApplyBoilNegativeIncreaseIgnored(t *testing.T) {
	if got := ApplyBoil(40, -5); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}
