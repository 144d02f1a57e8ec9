// Package payout computes the pool split once a game ends.
//
// All arithmetic is integer with floor division. The caller composes the
// two passes in order: the drifter bonus first, then the main split over
// whatever the bonus left behind. Distributed amounts plus rake never
// exceed the pool.
package payout

import (
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/win"
)

// Kind labels why a player is paid.
type Kind string

const (
	// KindBounty rewards voters who cooked a clawboss in the decisive vote.
	KindBounty Kind = "bounty"
	// KindSurvivor rewards loyalists alive at the end.
	KindSurvivor Kind = "survivor"
	// KindClawboss is the adversarial side's full-pot win.
	KindClawboss Kind = "clawboss"
	// KindDrifterRefund returns a surviving drifter's entry fee.
	KindDrifterRefund Kind = "drifter-refund"
	// KindDrifterBonus is the surviving drifter's cut of the pool.
	KindDrifterBonus Kind = "drifter-bonus"
)

// Entry is one payment owed to a player.
type Entry struct {
	Player string
	Amount int64
	Kind   Kind
}

// Share of the post-rake pool paid to bounty voters on a loyalist win;
// the rest goes to surviving loyalists.
const bountyShare = 60

// drifterBonusPercent is the pool percentage granted on top of the
// refund to a surviving drifter.
const drifterBonusPercent = 5

// Rake returns the house cut taken off the top of the pool.
func Rake(pod domain.Pod) int64 {
	return pod.Pool() * int64(pod.Config.RakePercent) / 100
}

// DrifterBonus grants a surviving drifter their entry fee back plus a
// fixed percentage of the pool. It runs before the main split and
// returns the amount it consumed so the caller can shrink the pot.
func DrifterBonus(pod domain.Pod) ([]Entry, int64) {
	var entries []Entry
	var consumed int64
	bonus := pod.Pool() * drifterBonusPercent / 100

	for _, player := range pod.Players {
		if player.Role != domain.RoleDrifter || !player.Alive() {
			continue
		}
		entries = append(entries,
			Entry{Player: player.ID, Amount: pod.EntryFee, Kind: KindDrifterRefund},
			Entry{Player: player.ID, Amount: bonus, Kind: KindDrifterBonus},
		)
		consumed += pod.EntryFee + bonus
	}
	return entries, consumed
}

// Split divides the available post-rake pot by winning side.
//
// Loyalist win: 60% splits evenly among the bounty voters (voters for
// the cooked clawboss in the decisive vote, clawboss-role holders
// excluded even if listed), 40% splits evenly among alive loyalists; a
// player qualifying for both stacks the shares. When no eligible bounty
// voter exists the whole pot goes to the survivor share.
//
// Clawboss win: the pot splits evenly among clawboss-role holders.
func Split(pod domain.Pod, winner win.Side, bountyVoters []string, available int64) []Entry {
	if available <= 0 {
		return nil
	}
	if winner == win.SideClawbosses {
		return clawbossSplit(pod, available)
	}
	return loyalistSplit(pod, bountyVoters, available)
}

func clawbossSplit(pod domain.Pod, available int64) []Entry {
	var bosses []string
	for _, player := range pod.Players {
		if player.Role == domain.RoleClawboss {
			bosses = append(bosses, player.ID)
		}
	}
	if len(bosses) == 0 {
		return nil
	}

	share := available / int64(len(bosses))
	entries := make([]Entry, 0, len(bosses))
	for _, id := range bosses {
		entries = append(entries, Entry{Player: id, Amount: share, Kind: KindClawboss})
	}
	return entries
}

func loyalistSplit(pod domain.Pod, bountyVoters []string, available int64) []Entry {
	eligible := make([]string, 0, len(bountyVoters))
	for _, id := range bountyVoters {
		player := pod.Player(id)
		if player == nil || player.Role == domain.RoleClawboss {
			continue
		}
		eligible = append(eligible, id)
	}

	var survivors []string
	for _, player := range pod.Players {
		if player.Role == domain.RoleLoyalist && player.Alive() {
			survivors = append(survivors, player.ID)
		}
	}

	bountyPot := available * bountyShare / 100
	survivorPot := available - bountyPot
	if len(eligible) == 0 {
		bountyPot, survivorPot = 0, available
	}

	var entries []Entry
	if len(eligible) > 0 {
		share := bountyPot / int64(len(eligible))
		for _, id := range eligible {
			entries = append(entries, Entry{Player: id, Amount: share, Kind: KindBounty})
		}
	}
	if len(survivors) > 0 {
		share := survivorPot / int64(len(survivors))
		for _, id := range survivors {
			entries = append(entries, Entry{Player: id, Amount: share, Kind: KindSurvivor})
		}
	}
	return entries
}

// Total sums the amounts across entries.
func Total(entries []Entry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total
}
