// Package errors provides structured error handling for the game core.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Pod errors
	CodePodInvalidPlayerCount      Code = "POD_INVALID_PLAYER_COUNT"
	CodePodInvalidStatusTransition Code = "POD_INVALID_STATUS_TRANSITION"
	CodePodStatusDisallowsOp       Code = "POD_STATUS_DISALLOWS_OPERATION"
	CodePodPhaseDisallowsOp        Code = "POD_PHASE_DISALLOWS_OPERATION"
	CodePodLobbyFull               Code = "POD_LOBBY_FULL"
	CodePodDuplicatePlayer         Code = "POD_DUPLICATE_PLAYER"

	// Player errors
	CodePlayerEmptyDisplayName  Code = "PLAYER_EMPTY_DISPLAY_NAME"
	CodePlayerAlreadyEliminated Code = "PLAYER_ALREADY_ELIMINATED"

	// Role errors
	CodeRolePoolMismatch Code = "ROLE_POOL_MISMATCH"
	CodeRoleNoClawboss   Code = "ROLE_NO_CLAWBOSS"

	// Action channel errors
	CodeActionUnknownSender    Code = "ACTION_UNKNOWN_SENDER"
	CodeActionRoundMismatch    Code = "ACTION_ROUND_MISMATCH"
	CodeActionPhaseMismatch    Code = "ACTION_PHASE_MISMATCH"
	CodeActionMissingKey       Code = "ACTION_MISSING_KEY"
	CodeActionDecryptFailed    Code = "ACTION_DECRYPT_FAILED"
	CodeActionMalformedPayload Code = "ACTION_MALFORMED_PAYLOAD"

	// Key derivation errors
	CodeKeyDegenerate  Code = "KEY_DEGENERATE"
	CodeKeyInvalidSize Code = "KEY_INVALID_SIZE"

	// Storage errors
	CodeNotFound          Code = "NOT_FOUND"
	CodeCheckpointCorrupt Code = "CHECKPOINT_CORRUPT"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePodInvalidPlayerCount,
		CodePlayerEmptyDisplayName,
		CodeActionUnknownSender,
		CodeActionRoundMismatch,
		CodeActionMissingKey,
		CodeActionDecryptFailed,
		CodeActionMalformedPayload,
		CodeKeyDegenerate,
		CodeKeyInvalidSize,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodePodInvalidStatusTransition,
		CodePodStatusDisallowsOp,
		CodePodPhaseDisallowsOp,
		CodePodLobbyFull,
		CodePodDuplicatePlayer,
		CodePlayerAlreadyEliminated,
		CodeActionPhaseMismatch:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// DataLoss - persisted state cannot be reconstructed
	case CodeCheckpointCorrupt:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
