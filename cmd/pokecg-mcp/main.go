package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/pokecg/internal/config"
	pokemcp "github.com/peterkuimelis/pokecg/internal/mcp"
	"github.com/peterkuimelis/pokecg/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML)")
	difficulty := flag.Float64("difficulty", 0, "default CPU difficulty from 0 to 1")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "difficulty" {
			cfg.CPU.Difficulty = *difficulty
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog, err := cfg.Game.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_, cpuDeck := cfg.Game.Decks()

	h := pokemcp.NewHandler(pokemcp.SessionOptions{
		CPUDeck:    cpuDeck,
		Difficulty: cfg.CPU.Difficulty,
		MaxTurns:   cfg.Game.MaxTurns,
		Seed:       cfg.Game.Seed,
		Catalog:    catalog,
		Logger:     logger.Named("mcp"),
	})
	defer h.Close()

	s := server.NewMCPServer("pokecg", "1.0.0")
	h.Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
