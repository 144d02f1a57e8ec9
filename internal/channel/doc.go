// Package channel implements the encrypted action channel: Ed25519 to
// X25519 key conversion, fixed-length padded authenticated encryption,
// and the wire envelope players embed in free-form feed posts.
//
// The channel sits between the untrusted feed and the game engine. Every
// message is authenticated and validated against the pod's current round
// and phase before an intent is handed to the engine; forged, replayed,
// or cross-phase envelopes are rejected with a distinct reason.
package channel
