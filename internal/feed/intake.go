package feed

import (
	"context"
	"errors"
	"log"

	"github.com/RoguesAgent/moltmob/internal/channel"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/messagebus"
)

// Intake pulls raw feed messages through the action channel into the
// collection window. Plain discussion passes through untouched; a
// rejected action earns the sender a whisper explaining why.
type Intake struct {
	channel   *channel.Channel
	collector *Collector
	bus       messagebus.Bus
}

// NewIntake wires an intake over one pod's channel and collection
// window. A nil bus disables rejection whispers.
func NewIntake(ch *channel.Channel, collector *Collector, bus messagebus.Bus) *Intake {
	return &Intake{channel: ch, collector: collector, bus: bus}
}

// Ingest decodes one feed message and records the intent. Messages
// carrying no envelope are plain discussion and return nil. A
// validation or deadline failure is whispered back to the sender and
// returned.
func (i *Intake) Ingest(ctx context.Context, pod *domain.Pod, senderID, body string) error {
	intent, err := i.channel.Decode(*pod, senderID, body)
	if errors.Is(err, channel.ErrNotAction) {
		return nil
	}
	if err != nil {
		i.whisperRejection(ctx, pod.ID, senderID, err)
		return err
	}

	if err := i.collector.Submit(intent); err != nil {
		i.whisperRejection(ctx, pod.ID, senderID, err)
		return err
	}
	return nil
}

// whisperRejection delivers the localized reason best-effort; a failed
// whisper is logged and dropped.
func (i *Intake) whisperRejection(ctx context.Context, podID, senderID string, cause error) {
	if i.bus == nil {
		return
	}
	draft := messagebus.NewRejection(podID, senderID, "", cause)
	if err := i.bus.CreateComment(ctx, draft); err != nil {
		log.Printf("rejection whisper failed pod=%s recipient=%s err=%v", podID, senderID, err)
	}
}
