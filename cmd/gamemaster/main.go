package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	gamemastercmd "github.com/RoguesAgent/moltmob/internal/cmd/gamemaster"
)

func main() {
	cfg, err := gamemastercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[GAMEMASTER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gamemastercmd.Run(ctx, cfg, nil); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
