package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/RoguesAgent/moltmob/internal/channel"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

func collectorPod() domain.Pod {
	return domain.Pod{
		Status: domain.StatusActive,
		Phase:  domain.PhaseNight,
		Round:  1,
		Players: []domain.Player{
			{ID: "ada", DisplayName: "Ada", Role: domain.RoleClawboss, Status: domain.PlayerAlive},
			{ID: "bjorn", DisplayName: "Bjorn", Role: domain.RoleLoyalist, Status: domain.PlayerAlive},
			{ID: "cleo", DisplayName: "Cleo", Role: domain.RoleLoyalist, Status: domain.PlayerAlive},
		},
	}
}

func TestCollectorResolvesNightTargets(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseNight, time.Time{})

	err := c.Submit(channel.Intent{
		Player: "ada",
		Code:   channel.PhaseCodeNight,
		Night:  &channel.NightIntent{Action: channel.ActionPinch, Target: "Bjorn"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	intents := c.NightIntents(&pod)
	if len(intents) != 1 {
		t.Fatalf("expected one intent, got %d", len(intents))
	}
	if intents[0].Player != "ada" || intents[0].Target != "bjorn" {
		t.Fatalf("expected display name resolved to id, got %+v", intents[0])
	}
}

func TestCollectorResubmissionOverwrites(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseNight, time.Time{})

	for _, target := range []string{"Bjorn", "Cleo"} {
		err := c.Submit(channel.Intent{
			Player: "ada",
			Code:   channel.PhaseCodeNight,
			Night:  &channel.NightIntent{Action: channel.ActionPinch, Target: target},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	intents := c.NightIntents(&pod)
	if len(intents) != 1 || intents[0].Target != "cleo" {
		t.Fatalf("expected latest submission to win, got %+v", intents)
	}
}

func TestCollectorRejectsLateSubmission(t *testing.T) {
	c := NewCollector(1, domain.PhaseDay, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c.clock = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	}

	err := c.Submit(channel.Intent{Player: "ada", Code: channel.PhaseCodeVote, Vote: &channel.VoteIntent{}})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestCollectorBallots(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseDay, time.Time{})

	ada := "Ada"
	ghost := "Nobody"
	submissions := []channel.Intent{
		{Player: "bjorn", Code: channel.PhaseCodeVote, Vote: &channel.VoteIntent{Target: &ada}},
		{Player: "cleo", Code: channel.PhaseCodeVote, Vote: &channel.VoteIntent{Target: nil}},
		{Player: "ada", Code: channel.PhaseCodeVote, Vote: &channel.VoteIntent{Target: &ghost}},
	}
	for _, intent := range submissions {
		if err := c.Submit(intent); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	ballots := c.Ballots(&pod)
	if len(ballots) != 3 {
		t.Fatalf("expected 3 ballots, got %d", len(ballots))
	}
	byVoter := make(map[string]*string)
	for _, ballot := range ballots {
		byVoter[ballot.Voter] = ballot.Target
	}
	if byVoter["bjorn"] == nil || *byVoter["bjorn"] != "ada" {
		t.Fatalf("expected bjorn's vote resolved to ada, got %v", byVoter["bjorn"])
	}
	if byVoter["cleo"] != nil {
		t.Fatal("expected explicit abstain to stay nil")
	}
	if byVoter["ada"] != nil {
		t.Fatal("expected unresolvable target to become an abstain")
	}
}

func TestCollectorDropsEliminatedSenders(t *testing.T) {
	pod := collectorPod()
	pod.Players[2].Status = domain.PlayerEliminated
	c := NewCollector(1, domain.PhaseDay, time.Time{})

	ada := "Ada"
	for _, voter := range []string{"bjorn", "cleo"} {
		err := c.Submit(channel.Intent{
			Player: voter,
			Code:   channel.PhaseCodeVote,
			Vote:   &channel.VoteIntent{Target: &ada},
		})
		if err != nil {
			t.Fatalf("submit %s: %v", voter, err)
		}
	}

	ballots := c.Ballots(&pod)
	if len(ballots) != 1 || ballots[0].Voter != "bjorn" {
		t.Fatalf("expected only the living voter's ballot, got %+v", ballots)
	}

	if err := c.Submit(channel.Intent{
		Player: "cleo",
		Code:   channel.PhaseCodeNight,
		Night:  &channel.NightIntent{Action: channel.ActionScuttle},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if intents := c.NightIntents(&pod); len(intents) != 0 {
		t.Fatalf("expected no night intents from the dead, got %+v", intents)
	}
}

func TestCollectorEmitsStableOrder(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseNight, time.Time{})

	for _, player := range []string{"cleo", "ada", "bjorn"} {
		err := c.Submit(channel.Intent{
			Player: player,
			Code:   channel.PhaseCodeNight,
			Night:  &channel.NightIntent{Action: channel.ActionScuttle},
		})
		if err != nil {
			t.Fatalf("submit %s: %v", player, err)
		}
	}

	intents := c.NightIntents(&pod)
	want := []string{"ada", "bjorn", "cleo"}
	if len(intents) != len(want) {
		t.Fatalf("expected %d intents, got %d", len(want), len(intents))
	}
	for i, intent := range intents {
		if intent.Player != want[i] {
			t.Fatalf("expected %s at position %d, got %s", want[i], i, intent.Player)
		}
	}
}

func TestCollectorIgnoresMismatchedKind(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseNight, time.Time{})

	if err := c.Submit(channel.Intent{Player: "ada", Code: channel.PhaseCodeVote, Vote: &channel.VoteIntent{}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if intents := c.NightIntents(&pod); len(intents) != 0 {
		t.Fatalf("expected no night intents from a vote submission, got %v", intents)
	}
}
