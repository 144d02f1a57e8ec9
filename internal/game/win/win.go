// Package win evaluates the alignment-based win conditions.
package win

import (
	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// Side names a winning alignment.
type Side string

const (
	// SideLoyalists wins once every clawboss is eliminated.
	SideLoyalists Side = "loyalists"
	// SideClawbosses wins at parity with the loyalist block.
	SideClawbosses Side = "clawbosses"
)

// ErrNoClawboss indicates a player list with no clawboss at all. This is
// an invalid initial state, not a runtime condition.
var ErrNoClawboss = apperrors.New(apperrors.CodeRoleNoClawboss, "player list contains no clawboss")

// Drifter survival thresholds: a living drifter shares the win when the
// game ends this late and this small.
const (
	drifterMinRound = 3
	drifterMaxAlive = 3
)

// Result is the outcome of one evaluation.
type Result struct {
	GameOver    bool
	Winner      Side
	DrifterWins bool
	Reason      string
}

// Evaluate checks the win conditions against the full player list.
// Drifters are excluded from all parity counts; the shellguard counts
// with the loyalist block. The two primary conditions are mutually
// exclusive at evaluation time.
func Evaluate(pod domain.Pod) (Result, error) {
	var totalClawbosses, aliveClawbosses, aliveBlock, aliveTotal, aliveDrifters int
	for _, player := range pod.Players {
		if player.Role == domain.RoleClawboss {
			totalClawbosses++
		}
		if !player.Alive() {
			continue
		}
		aliveTotal++
		switch player.Role {
		case domain.RoleClawboss:
			aliveClawbosses++
		case domain.RoleDrifter:
			aliveDrifters++
		default:
			aliveBlock++
		}
	}

	if totalClawbosses == 0 {
		return Result{}, ErrNoClawboss
	}

	var res Result
	switch {
	case aliveClawbosses == 0:
		res = Result{GameOver: true, Winner: SideLoyalists, Reason: "every clawboss has been eliminated"}
	case aliveBlock == 0:
		res = Result{GameOver: true, Winner: SideClawbosses, Reason: "no loyalists remain"}
	case aliveClawbosses >= aliveBlock:
		res = Result{GameOver: true, Winner: SideClawbosses, Reason: "clawbosses reached parity with the pod"}
	default:
		return Result{}, nil
	}

	if aliveDrifters > 0 && pod.Round >= drifterMinRound && aliveTotal <= drifterMaxAlive {
		res.DrifterWins = true
	}
	return res, nil
}
