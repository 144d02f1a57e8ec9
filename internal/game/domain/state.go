package domain

import "sort"

// RoundState is the engine's round-scoped side channel: molt slots, the
// shellguard's one-shot flag, and the temporary upgrade sets. It is
// checkpointed together with the pod and must survive a restore
// bit-for-bit.
type RoundState struct {
	MoltsRemaining int
	ShellguardUsed bool
	Immune         StringSet
	DoubleVote     StringSet
}

// NewRoundState builds the initial state for a pod of the given size.
// Small pods get one molt slot, larger pods two.
func NewRoundState(playerCount int) RoundState {
	slots := 1
	if playerCount >= 10 {
		slots = 2
	}
	return RoundState{
		MoltsRemaining: slots,
		Immune:         NewStringSet(),
		DoubleVote:     NewStringSet(),
	}
}

// ConsumeMolt decrements the remaining molt slots, never below zero.
func (s *RoundState) ConsumeMolt() {
	if s.MoltsRemaining > 0 {
		s.MoltsRemaining--
	}
}

// StringSet is a deduplicated set of player ids. Checkpoints serialize it
// as a sorted array; plain map serialization would not round-trip set
// semantics deterministically.
type StringSet map[string]struct{}

// NewStringSet builds an empty set.
func NewStringSet(members ...string) StringSet {
	set := make(StringSet, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set
}

// Add inserts a member.
func (s StringSet) Add(member string) {
	s[member] = struct{}{}
}

// Has reports membership.
func (s StringSet) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Remove deletes a member if present.
func (s StringSet) Remove(member string) {
	delete(s, member)
}

// Clear removes all members in place.
func (s StringSet) Clear() {
	for m := range s {
		delete(s, m)
	}
}

// Sorted returns the members as a sorted slice for serialization.
func (s StringSet) Sorted() []string {
	members := make([]string, 0, len(s))
	for m := range s {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}
