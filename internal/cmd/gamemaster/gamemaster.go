// Package gamemaster parses gamemaster command flags and starts the
// game runtime: storage, the runner registry, and resumption of every
// pod that was live when the process last stopped.
package gamemaster

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/RoguesAgent/moltmob/internal/game/domain"
	"github.com/RoguesAgent/moltmob/internal/game/runner"
	"github.com/RoguesAgent/moltmob/internal/messagebus"
	"github.com/RoguesAgent/moltmob/internal/platform/config"
	platformotel "github.com/RoguesAgent/moltmob/internal/platform/otel"
	"github.com/RoguesAgent/moltmob/internal/storage/sqlite"
	"github.com/RoguesAgent/moltmob/internal/telemetry"
)

// Config holds gamemaster command configuration.
type Config struct {
	DBPath             string        `env:"MOLTMOB_DB_PATH" envDefault:"moltmob.db"`
	BusMaxTries        uint          `env:"MOLTMOB_BUS_MAX_TRIES" envDefault:"3"`
	LobbySweepInterval time.Duration `env:"MOLTMOB_LOBBY_SWEEP_INTERVAL" envDefault:"1m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the gamemaster runtime and blocks until the context is
// cancelled. The feed transport is injected by the caller; a nil bus
// disables outbound delivery.
func Run(ctx context.Context, cfg Config, bus messagebus.Bus) error {
	shutdown, err := platformotel.Setup(ctx, "moltmob-gamemaster")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("otel shutdown err=%v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("store close err=%v", err)
		}
	}()

	if bus != nil {
		bus = messagebus.NewRetryBus(bus, cfg.BusMaxTries)
	}
	registry := runner.NewRegistry(runner.Deps{
		Pods:        store,
		Checkpoints: store,
		Events:      store,
		Bus:         bus,
		Telemetry:   telemetry.NewEmitter(store),
	})

	if err := resumeActive(ctx, registry, store); err != nil {
		return err
	}

	log.Printf("gamemaster ready db=%s", cfg.DBPath)
	ticker := time.NewTicker(cfg.LobbySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			swept, err := registry.CancelExpiredLobbies(ctx)
			if err != nil {
				log.Printf("lobby sweep err=%v", err)
			} else if swept > 0 {
				log.Printf("lobby sweep cancelled=%d", swept)
			}
		}
	}
}

// resumeActive rebuilds a runner for every pod that was mid-game.
func resumeActive(ctx context.Context, registry *runner.Registry, store *sqlite.Store) error {
	pods, err := store.ListPodsByStatus(ctx, domain.StatusActive)
	if err != nil {
		return err
	}
	for _, pod := range pods {
		r, err := registry.Resume(ctx, pod.ID)
		if err != nil {
			return err
		}
		resumed := r.Pod()
		log.Printf("resumed pod=%s phase=%s round=%d", resumed.ID, resumed.Phase, resumed.Round)
	}
	return nil
}
