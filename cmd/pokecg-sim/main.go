package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/config"
	"github.com/peterkuimelis/pokecg/internal/cpu"
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
	"github.com/peterkuimelis/pokecg/internal/match"
	"github.com/peterkuimelis/pokecg/internal/observability"
)

// tally counts results by winner, NoOwner meaning a draw.
type tally map[game.Owner]int

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (YAML)")
	games := flag.Int("n", 100, "number of games to play")
	deck := flag.String("deck", "", "deck of the first CPU (player side)")
	cpuDeck := flag.String("cpu-deck", "", "deck of the second CPU (default random per game)")
	difficulty := flag.Float64("difficulty", 1, "difficulty of both CPUs")
	seed := flag.Uint64("seed", 0, "base seed; game i uses seed+i (0 = random)")
	verbose := flag.Bool("v", false, "print every game's event log")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.CPU.Difficulty = *difficulty
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deck":
			cfg.Game.PlayerDeck = *deck
		case "cpu-deck":
			cfg.Game.CPUDeck = *cpuDeck
		case "seed":
			cfg.Game.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *games < 1 {
		return fmt.Errorf("-n must be >= 1, got %d", *games)
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

	runID := uuid.NewString()
	logger = logger.With(zap.String("run", runID))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var out io.Writer
	if *verbose {
		out = os.Stdout
	}
	results := make(tally)
	for i := range *games {
		var gameSeed uint64
		if cfg.Game.Seed != 0 {
			gameSeed = cfg.Game.Seed + uint64(i)
		}
		winner, err := playOne(ctx, cfg, catalog, gameSeed, out, logger.With(zap.Int("game", i+1)))
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		results[winner]++
	}

	fmt.Printf("run %s: %d games\n", runID, *games)
	fmt.Printf("  %-8s %d\n", log.PlayerName(int(game.Player))+":", results[game.Player])
	fmt.Printf("  %-8s %d\n", log.PlayerName(int(game.CPU))+":", results[game.CPU])
	fmt.Printf("  %-8s %d\n", "draws:", results[game.NoOwner])
	return nil
}

// playOne plays a CPU-vs-CPU game. The player side is driven by an agent too.
func playOne(ctx context.Context, cfg config.Config, catalog *game.Catalog, seed uint64, out io.Writer, logger *zap.Logger) (game.Owner, error) {
	playerType, cpuType := cfg.Game.Decks()
	var deckSrc, coinSrc game.Source
	var rngs [2]cpu.Rand
	if seed != 0 {
		deckSrc = game.NewSeededSource(seed)
		coinSrc = game.NewSeededSource(seed + 1)
		rngs[game.Player] = rand.New(rand.NewPCG(seed, seed+2))
		rngs[game.CPU] = rand.New(rand.NewPCG(seed, seed+3))
	}
	if cpuType == game.TypeNone {
		decks := catalog.Decks()
		cpuType = decks[rand.IntN(len(decks))].Type
	}

	var events log.EventLogger = log.NewZapLogger(logger.Named("events"))
	if out != nil {
		events = log.NewTextLogger(out)
	}
	e := game.NewEngine(game.EngineConfig{
		Catalog:    catalog,
		DeckSource: deckSrc,
		CoinSource: coinSrc,
		Logger:     logger.Named("engine"),
		EventLog:   events,
	})

	var sides [2]match.Controller
	for _, who := range []game.Owner{game.Player, game.CPU} {
		agent := cpu.New(cfg.CPU.Difficulty, rngs[who], logger.Named("cpu"))
		sides[who] = match.NewCPUController(who, e, agent, nil, logger.Named(who.String()))
	}
	m := match.New(e, match.Config{
		PlayerDeck: playerType,
		CPUDeck:    cpuType,
		MaxTurns:   cfg.Game.MaxTurns,
		Logger:     logger,
	}, sides[game.Player], sides[game.CPU])
	return m.Run(ctx)
}
