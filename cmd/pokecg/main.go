package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/config"
	"github.com/peterkuimelis/pokecg/internal/cpu"
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
	"github.com/peterkuimelis/pokecg/internal/match"
	pokenet "github.com/peterkuimelis/pokecg/internal/net"
	"github.com/peterkuimelis/pokecg/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (YAML)")
	deck := flag.String("deck", "", "your deck type: fire, water, grass, electric, psychic, fighting, colorless")
	cpuDeck := flag.String("cpu-deck", "", "the CPU's deck type (default random)")
	difficulty := flag.Float64("difficulty", 0, "CPU difficulty from 0 to 1")
	seed := flag.Uint64("seed", 0, "seed for shuffles, coin flips and the CPU (0 = random)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deck":
			cfg.Game.PlayerDeck = *deck
		case "cpu-deck":
			cfg.Game.CPUDeck = *cpuDeck
		case "difficulty":
			cfg.CPU.Difficulty = *difficulty
		case "seed":
			cfg.Game.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := cfg.Game.LoadCatalog()
	if err != nil {
		return err
	}
	playerType, cpuType := cfg.Game.Decks()
	if cpuType == game.TypeNone {
		decks := catalog.Decks()
		cpuType = decks[rand.IntN(len(decks))].Type
	}
	for _, t := range []game.ElementType{playerType, cpuType} {
		if _, ok := catalog.Deck(t); !ok {
			return fmt.Errorf("catalog has no %s deck", t)
		}
	}

	var deckSrc, coinSrc game.Source
	var agentRng cpu.Rand
	if s := cfg.Game.Seed; s != 0 {
		deckSrc = game.NewSeededSource(s)
		coinSrc = game.NewSeededSource(s + 1)
		agentRng = rand.New(rand.NewPCG(s, s+2))
	}
	e := game.NewEngine(game.EngineConfig{
		Catalog:    catalog,
		DeckSource: deckSrc,
		CoinSource: coinSrc,
		Logger:     logger.Named("engine"),
		EventLog:   log.NewZapLogger(logger.Named("events")),
	})
	agent := cpu.New(cfg.CPU.Difficulty, agentRng, logger.Named("cpu"))

	srv := &pokenet.Server{
		Engine: e,
		CPU:    match.NewCPUController(game.CPU, e, agent, match.NewPacer(cfg.CPU.ThinkDelay), logger.Named("cpu")),
		Config: match.Config{
			PlayerDeck: playerType,
			CPUDeck:    cpuType,
			MaxTurns:   cfg.Game.MaxTurns,
			Logger:     logger.Named("match"),
		},
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting game",
		zap.Stringer("deck", playerType),
		zap.Stringer("cpu_deck", cpuType),
		zap.Float64("difficulty", cfg.CPU.Difficulty))
	return srv.Run(ctx)
}
