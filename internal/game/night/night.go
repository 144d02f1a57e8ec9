// Package night resolves the pinch/protect interaction for one round.
package night

import (
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// Intent is one player's night action after channel validation.
type Intent struct {
	Player string
	Action string
	Target string
}

// Night actions. Scuttle is a decoy and resolves to nothing.
const (
	ActionPinch   = "pinch"
	ActionProtect = "protect"
	ActionScuttle = "scuttle"
)

// Resolution is the outcome of one night. Blocked is distinct from "no
// target chosen": it means a pinch landed on the protected player.
type Resolution struct {
	PinchTarget   string
	ProtectTarget string
	Blocked       bool
	Eliminated    string
}

// Resolve extracts the pinch and protect targets from the round's intents
// and decides the elimination. Only an alive clawboss can pinch and only
// an alive shellguard can protect; a shellguard shielding themselves is a
// silent no-op. Targets reference players by id.
func Resolve(pod domain.Pod, intents []Intent) Resolution {
	var res Resolution

	for _, intent := range intents {
		actor := pod.Player(intent.Player)
		if actor == nil || !actor.Alive() {
			continue
		}

		switch intent.Action {
		case ActionPinch:
			if actor.Role == domain.RoleClawboss && res.PinchTarget == "" {
				res.PinchTarget = intent.Target
			}
		case ActionProtect:
			if actor.Role != domain.RoleShellguard {
				continue
			}
			if intent.Target == intent.Player {
				continue
			}
			if res.ProtectTarget == "" {
				res.ProtectTarget = intent.Target
			}
		}
	}

	if res.PinchTarget == "" {
		return res
	}
	target := pod.Player(res.PinchTarget)
	if target == nil || !target.Alive() {
		res.PinchTarget = ""
		return res
	}

	if res.PinchTarget == res.ProtectTarget {
		res.Blocked = true
		return res
	}

	res.Eliminated = res.PinchTarget
	return res
}
