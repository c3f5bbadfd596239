package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/config"
	"github.com/peterkuimelis/pokecg/internal/observability"
	"github.com/peterkuimelis/pokecg/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to config file (YAML)")
	port := flag.Int("port", 0, "HTTP port to listen on")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "port" {
			cfg.Web.Port = *port
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
		logger.Fatal("loading catalog", zap.Error(err))
	}

	srv := web.NewServer(web.Options{
		Catalog:    catalog,
		Difficulty: cfg.CPU.Difficulty,
		MaxTurns:   cfg.Game.MaxTurns,
		ThinkDelay: cfg.CPU.ThinkDelay,
		Logger:     logger.Named("web"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("pokecg web UI listening", zap.String("url", fmt.Sprintf("http://%s", cfg.Web.Addr())))
	if err := srv.ListenAndServe(ctx, cfg.Web.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
