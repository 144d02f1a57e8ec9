package channel

import (
	"encoding/json"
	"strconv"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
)

// Night actions a player can submit.
const (
	// ActionPinch is the clawboss elimination attempt.
	ActionPinch = "pinch"
	// ActionProtect is the shellguard shield.
	ActionProtect = "protect"
	// ActionScuttle is a decoy action with no mechanical effect.
	ActionScuttle = "scuttle"
)

// NightIntent is the decrypted payload of a night envelope.
type NightIntent struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
}

// VoteIntent is the decrypted payload of a vote envelope. A nil target
// is an abstain.
type VoteIntent struct {
	Target *string `json:"target"`
}

// Intent is a validated, decrypted player action ready for the engine.
// Exactly one of Night and Vote is set, matching Code.
type Intent struct {
	Player string
	Code   PhaseCode
	Night  *NightIntent
	Vote   *VoteIntent
}

// Validation rejections, one distinct reason per ladder step.
var (
	// ErrUnknownSender indicates the author is not a player in the pod.
	ErrUnknownSender = apperrors.New(apperrors.CodeActionUnknownSender, "sender is not a player in this pod")
	// ErrRoundMismatch indicates a stale or premature envelope.
	ErrRoundMismatch = apperrors.New(apperrors.CodeActionRoundMismatch, "envelope round does not match pod round")
	// ErrPhaseMismatch indicates an envelope for the wrong phase.
	ErrPhaseMismatch = apperrors.New(apperrors.CodeActionPhaseMismatch, "envelope phase does not match pod phase")
	// ErrMissingKey indicates no shared key is registered for the sender.
	ErrMissingKey = apperrors.New(apperrors.CodeActionMissingKey, "no decryption key registered for sender")
	// ErrDecryptFailed indicates authentication failure on the ciphertext.
	ErrDecryptFailed = apperrors.New(apperrors.CodeActionDecryptFailed, "action could not be authenticated")
	// ErrMalformedPayload indicates undecodable JSON inside a valid envelope.
	ErrMalformedPayload = apperrors.New(apperrors.CodeActionMalformedPayload, "decrypted payload is not valid JSON")
)

// Channel decrypts and validates player actions for one pod. Shared keys
// are registered per player id when the pod starts.
type Channel struct {
	keys map[string][]byte
}

// New creates an empty channel.
func New() *Channel {
	return &Channel{keys: make(map[string][]byte)}
}

// RegisterKey stores the shared symmetric key for a player.
func (c *Channel) RegisterKey(playerID string, key []byte) {
	c.keys[playerID] = key
}

// Decode runs the full validation ladder over a raw feed message and
// returns the typed intent. Each step fails with its own reason so the
// caller can log and notify precisely; only ErrNotAction marks the
// message as plain discussion.
func (c *Channel) Decode(pod domain.Pod, senderID, body string) (Intent, error) {
	env, err := ParseEnvelope(body)
	if err != nil {
		return Intent{}, err
	}

	if pod.Player(senderID) == nil {
		return Intent{}, ErrUnknownSender
	}

	if env.Round != pod.Round {
		return Intent{}, apperrors.WithMetadata(apperrors.CodeActionRoundMismatch,
			"envelope round does not match pod round",
			map[string]string{
				"Round":   strconv.Itoa(env.Round),
				"Current": strconv.Itoa(pod.Round),
			})
	}

	if !phaseAccepts(pod.Phase, env.Code) {
		return Intent{}, ErrPhaseMismatch
	}

	key, ok := c.keys[senderID]
	if !ok {
		return Intent{}, ErrMissingKey
	}

	plaintext, err := Open(key, env.Nonce, env.Ciphertext)
	if err != nil {
		return Intent{}, apperrors.Wrap(apperrors.CodeActionDecryptFailed, "open action ciphertext", err)
	}

	intent := Intent{Player: senderID, Code: env.Code}
	switch env.Code {
	case PhaseCodeNight:
		var night NightIntent
		if err := json.Unmarshal(plaintext, &night); err != nil {
			return Intent{}, apperrors.Wrap(apperrors.CodeActionMalformedPayload, "unmarshal night intent", err)
		}
		intent.Night = &night
	case PhaseCodeVote:
		var vote VoteIntent
		if err := json.Unmarshal(plaintext, &vote); err != nil {
			return Intent{}, apperrors.Wrap(apperrors.CodeActionMalformedPayload, "unmarshal vote intent", err)
		}
		intent.Vote = &vote
	}
	return intent, nil
}

// phaseAccepts maps wire phase codes onto game phases. Vote envelopes
// are accepted through the discussion, vote, and boil phases.
func phaseAccepts(phase domain.Phase, code PhaseCode) bool {
	switch code {
	case PhaseCodeNight:
		return phase == domain.PhaseNight
	case PhaseCodeVote:
		return phase == domain.PhaseDay || phase == domain.PhaseVote || phase == domain.PhaseBoil
	}
	return false
}
