// Package roles implements the role distribution table and randomized
// assignment for pod starts.
package roles

import (
	"math/rand"
	"strconv"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

var (
	// ErrInvalidPlayerCount indicates a player count outside the role table.
	ErrInvalidPlayerCount = apperrors.New(apperrors.CodePodInvalidPlayerCount, "player count outside role table bounds")
	// ErrPoolMismatch indicates a distribution that does not sum to the player count.
	ErrPoolMismatch = apperrors.New(apperrors.CodeRolePoolMismatch, "role pool size does not match player count")
)

// Distribution is the role count breakdown for one pod size.
type Distribution struct {
	Clawbosses  int
	Shellguards int
	Drifters    int
	Loyalists   int
}

// Total returns the number of seats the distribution fills.
func (d Distribution) Total() int {
	return d.Clawbosses + d.Shellguards + d.Drifters + d.Loyalists
}

// tableRow fixes the count ranges for one player-count band. A max above
// min is resolved by a single 50/50 draw.
type tableRow struct {
	minClawbosses, maxClawbosses int
	minDrifters, maxDrifters     int
}

// rowFor returns the table row for a player count. The table is banded:
// pods of 6-9 seat one clawboss, 13-16 seat two, and the 10-12 band is
// decided by the draw. Drifters are optional only in the smallest pods.
func rowFor(playerCount int) (tableRow, bool) {
	switch {
	case playerCount < domain.MinPlayers || playerCount > domain.MaxPlayers:
		return tableRow{}, false
	case playerCount <= 8:
		return tableRow{minClawbosses: 1, maxClawbosses: 1, minDrifters: 0, maxDrifters: 1}, true
	case playerCount == 9:
		return tableRow{minClawbosses: 1, maxClawbosses: 1, minDrifters: 1, maxDrifters: 1}, true
	case playerCount <= 12:
		return tableRow{minClawbosses: 1, maxClawbosses: 2, minDrifters: 1, maxDrifters: 1}, true
	default:
		return tableRow{minClawbosses: 2, maxClawbosses: 2, minDrifters: 1, maxDrifters: 1}, true
	}
}

// DistributionFor looks up the role counts for a player count. Ranged
// dimensions (clawboss count, drifter count) are each resolved by a single
// draw on the injected rng so tests can force both branches.
func DistributionFor(playerCount int, rng *rand.Rand) (Distribution, error) {
	row, ok := rowFor(playerCount)
	if !ok {
		return Distribution{}, apperrors.WithMetadata(apperrors.CodePodInvalidPlayerCount,
			"player count "+strconv.Itoa(playerCount)+" outside role table bounds",
			map[string]string{
				"Min": strconv.Itoa(domain.MinPlayers),
				"Max": strconv.Itoa(domain.MaxPlayers),
			})
	}

	dist := Distribution{
		Clawbosses:  resolveRange(row.minClawbosses, row.maxClawbosses, rng),
		Shellguards: 1,
		Drifters:    resolveRange(row.minDrifters, row.maxDrifters, rng),
	}
	dist.Loyalists = playerCount - dist.Clawbosses - dist.Shellguards - dist.Drifters

	if dist.Total() != playerCount {
		return Distribution{}, ErrPoolMismatch
	}
	return dist, nil
}

// resolveRange picks min or max with equal probability when they differ.
func resolveRange(min, max int, rng *rand.Rand) int {
	if min == max {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// Assign shuffles a flat role pool matching the distribution and zips it
// onto the player ids in order. The shuffle is a uniform Fisher-Yates on
// the injected rng, so a fixed seed reproduces the same assignment.
func Assign(playerIDs []string, dist Distribution, rng *rand.Rand) (map[string]domain.Role, error) {
	if dist.Total() != len(playerIDs) {
		return nil, ErrPoolMismatch
	}

	pool := make([]domain.Role, 0, dist.Total())
	for i := 0; i < dist.Clawbosses; i++ {
		pool = append(pool, domain.RoleClawboss)
	}
	for i := 0; i < dist.Shellguards; i++ {
		pool = append(pool, domain.RoleShellguard)
	}
	for i := 0; i < dist.Drifters; i++ {
		pool = append(pool, domain.RoleDrifter)
	}
	for i := 0; i < dist.Loyalists; i++ {
		pool = append(pool, domain.RoleLoyalist)
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	assigned := make(map[string]domain.Role, len(playerIDs))
	for i, playerID := range playerIDs {
		assigned[playerID] = pool[i]
	}
	return assigned, nil
}
