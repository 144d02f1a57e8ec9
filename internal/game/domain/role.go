package domain

// Role identifies a player's hidden role archetype.
type Role string

const (
	// RoleUnassigned is the zero role before assignment.
	RoleUnassigned Role = ""
	// RoleClawboss is the minority adversarial role. Clawbosses win by
	// reaching parity with or eliminating the loyalist majority.
	RoleClawboss Role = "clawboss"
	// RoleShellguard can block one night elimination per game.
	RoleShellguard Role = "shellguard"
	// RoleLoyalist is the pod-aligned majority role.
	RoleLoyalist Role = "loyalist"
	// RoleDrifter is excluded from parity math and wins by surviving.
	RoleDrifter Role = "drifter"
)

// Roles lists every assignable role archetype.
var Roles = []Role{RoleClawboss, RoleShellguard, RoleLoyalist, RoleDrifter}

// Valid reports whether the role is a known assignable archetype.
func (r Role) Valid() bool {
	switch r {
	case RoleClawboss, RoleShellguard, RoleLoyalist, RoleDrifter:
		return true
	}
	return false
}
