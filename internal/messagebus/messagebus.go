// Package messagebus is the outbound boundary to the pod's public
// feed. The engine produces drafts; a Bus delivers them. Delivery is
// best-effort and never feeds back into game state.
package messagebus

import (
	"context"

	apperrors "github.com/RoguesAgent/moltmob/internal/errors"
)

// Draft is one outbound message. An empty Recipient posts to the pod's
// public feed; otherwise the message is a private whisper.
type Draft struct {
	PodID     string
	Recipient string
	Body      string
}

// Bus delivers drafts to the feed transport.
type Bus interface {
	CreatePost(ctx context.Context, draft Draft) error
	// CreateComment replies under the pod's running thread.
	CreateComment(ctx context.Context, draft Draft) error
}

// NewRejection builds a whisper explaining why a player's submission
// was discarded. The body comes from the localized error catalog so
// internal codes never leak onto the feed.
func NewRejection(podID, playerID, locale string, err error) Draft {
	return Draft{
		PodID:     podID,
		Recipient: playerID,
		Body:      apperrors.UserMessage(err, locale),
	}
}
