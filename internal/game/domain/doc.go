// Package domain defines the core game entities for moltmob pods:
// pods, players, roles, phases, and the round-scoped engine state.
//
// Domain types carry no I/O. All mutation from the active phase onward
// happens through the engine package; lobby pods are mutated only by the
// append-only join operation.
package domain
