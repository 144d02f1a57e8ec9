package gamemaster

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "moltmob.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.BusMaxTries != 3 {
		t.Fatalf("expected 3 bus tries, got %d", cfg.BusMaxTries)
	}
}

func TestParseConfigFlagOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/other.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected flag override, got %q", cfg.DBPath)
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("MOLTMOB_DB_PATH", "/tmp/env.db")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env override, got %q", cfg.DBPath)
	}
}
