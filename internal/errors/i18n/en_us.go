package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	CodePodInvalidPlayerCount      = "POD_INVALID_PLAYER_COUNT"
	CodePodInvalidStatusTransition = "POD_INVALID_STATUS_TRANSITION"
	CodePodStatusDisallowsOp       = "POD_STATUS_DISALLOWS_OPERATION"
	CodePodPhaseDisallowsOp        = "POD_PHASE_DISALLOWS_OPERATION"
	CodePodLobbyFull               = "POD_LOBBY_FULL"
	CodePodDuplicatePlayer         = "POD_DUPLICATE_PLAYER"
	CodePlayerEmptyDisplayName     = "PLAYER_EMPTY_DISPLAY_NAME"
	CodePlayerAlreadyEliminated    = "PLAYER_ALREADY_ELIMINATED"
	CodeRolePoolMismatch           = "ROLE_POOL_MISMATCH"
	CodeRoleNoClawboss             = "ROLE_NO_CLAWBOSS"
	CodeActionUnknownSender        = "ACTION_UNKNOWN_SENDER"
	CodeActionRoundMismatch        = "ACTION_ROUND_MISMATCH"
	CodeActionPhaseMismatch        = "ACTION_PHASE_MISMATCH"
	CodeActionMissingKey           = "ACTION_MISSING_KEY"
	CodeActionDecryptFailed        = "ACTION_DECRYPT_FAILED"
	CodeActionMalformedPayload     = "ACTION_MALFORMED_PAYLOAD"
	CodeKeyDegenerate              = "KEY_DEGENERATE"
	CodeKeyInvalidSize             = "KEY_INVALID_SIZE"
	CodeNotFound                   = "NOT_FOUND"
	CodeCheckpointCorrupt          = "CHECKPOINT_CORRUPT"
	CodeSeedOutOfRange             = "SEED_OUT_OF_RANGE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Pod errors
		CodePodInvalidPlayerCount:      "Pods need between {{.Min}} and {{.Max}} players",
		CodePodInvalidStatusTransition: "Cannot move pod from {{.FromStatus}} to {{.ToStatus}}",
		CodePodStatusDisallowsOp:       "Pod status {{.Status}} does not allow {{.Operation}}",
		CodePodPhaseDisallowsOp:        "That can't happen during the {{.Phase}} phase",
		CodePodLobbyFull:               "This pod is already full",
		CodePodDuplicatePlayer:         "You have already joined this pod",

		// Player errors
		CodePlayerEmptyDisplayName:  "Player display name cannot be empty",
		CodePlayerAlreadyEliminated: "Eliminated players cannot act",

		// Role errors
		CodeRolePoolMismatch: "Role pool does not match the player count",
		CodeRoleNoClawboss:   "The pod has no clawboss",

		// Action channel errors
		CodeActionUnknownSender:    "You are not a player in this pod",
		CodeActionRoundMismatch:    "That action was for round {{.Round}}, the pod is on round {{.Current}}",
		CodeActionPhaseMismatch:    "That action doesn't belong to the current phase",
		CodeActionMissingKey:       "No encryption key is registered for you",
		CodeActionDecryptFailed:    "Your action could not be decrypted",
		CodeActionMalformedPayload: "Your action could not be understood",

		// Key errors
		CodeKeyDegenerate:  "The provided public key is not usable",
		CodeKeyInvalidSize: "The provided key has the wrong size",

		// Storage errors
		CodeNotFound:          "The requested resource was not found",
		CodeCheckpointCorrupt: "The pod's saved state could not be read",

		// Random/seed errors
		CodeSeedOutOfRange: "Random seed is out of valid range",
	},
}
