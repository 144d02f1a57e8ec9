package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RoguesAgent/moltmob/internal/channel"
	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/messagebus"
)

type captureBus struct {
	mu       sync.Mutex
	comments []messagebus.Draft
}

func (b *captureBus) CreatePost(_ context.Context, _ messagebus.Draft) error { return nil }

func (b *captureBus) CreateComment(_ context.Context, draft messagebus.Draft) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.comments = append(b.comments, draft)
	return nil
}

func sealedNightAction(t *testing.T, key []byte, round int, payload string) string {
	t.Helper()
	nonce, ciphertext, err := channel.Seal(key, []byte(payload))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	return "claws out " + channel.FormatEnvelope(round, channel.PhaseCodeNight, nonce, ciphertext)
}

func TestIntakeRecordsValidAction(t *testing.T) {
	pod := collectorPod()
	key := make([]byte, 32)
	ch := channel.New()
	ch.RegisterKey("ada", key)

	c := NewCollector(1, domain.PhaseNight, time.Time{})
	bus := &captureBus{}
	in := NewIntake(ch, c, bus)

	body := sealedNightAction(t, key, 1, `{"action":"pinch","target":"Bjorn"}`)
	if err := in.Ingest(context.Background(), &pod, "ada", body); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	intents := c.NightIntents(&pod)
	if len(intents) != 1 || intents[0].Target != "bjorn" {
		t.Fatalf("expected recorded pinch on bjorn, got %+v", intents)
	}
	if len(bus.comments) != 0 {
		t.Fatalf("expected no whispers for a valid action, got %+v", bus.comments)
	}
}

func TestIntakePassesPlainDiscussion(t *testing.T) {
	pod := collectorPod()
	c := NewCollector(1, domain.PhaseNight, time.Time{})
	bus := &captureBus{}
	in := NewIntake(channel.New(), c, bus)

	if err := in.Ingest(context.Background(), &pod, "ada", "the water sure is warm today"); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if intents := c.NightIntents(&pod); len(intents) != 0 {
		t.Fatalf("expected no intents from discussion, got %+v", intents)
	}
	if len(bus.comments) != 0 {
		t.Fatalf("expected no whispers for discussion, got %+v", bus.comments)
	}
}

func TestIntakeWhispersUnknownSender(t *testing.T) {
	pod := collectorPod()
	pod.ID = "pod-1"
	key := make([]byte, 32)
	c := NewCollector(1, domain.PhaseNight, time.Time{})
	bus := &captureBus{}
	in := NewIntake(channel.New(), c, bus)

	body := sealedNightAction(t, key, 1, `{"action":"pinch","target":"Bjorn"}`)
	err := in.Ingest(context.Background(), &pod, "ghost", body)
	if !errors.Is(err, channel.ErrUnknownSender) {
		t.Fatalf("expected unknown-sender rejection, got %v", err)
	}
	if len(bus.comments) != 1 {
		t.Fatalf("expected one rejection whisper, got %d", len(bus.comments))
	}
	whisper := bus.comments[0]
	if whisper.PodID != "pod-1" || whisper.Recipient != "ghost" {
		t.Fatalf("unexpected whisper addressing %+v", whisper)
	}
	if whisper.Body != "You are not a player in this pod" {
		t.Fatalf("expected localized rejection, got %q", whisper.Body)
	}
}

func TestIntakeWhispersLateSubmission(t *testing.T) {
	pod := collectorPod()
	key := make([]byte, 32)
	ch := channel.New()
	ch.RegisterKey("ada", key)

	c := NewCollector(1, domain.PhaseNight, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c.clock = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	}
	bus := &captureBus{}
	in := NewIntake(ch, c, bus)

	body := sealedNightAction(t, key, 1, `{"action":"scuttle"}`)
	err := in.Ingest(context.Background(), &pod, "ada", body)
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected deadline rejection, got %v", err)
	}
	if len(bus.comments) != 1 || bus.comments[0].Body == "" {
		t.Fatalf("expected one rejection whisper, got %+v", bus.comments)
	}
}
