// Package config provides Viper-based configuration loading for the pokecg binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/peterkuimelis/pokecg/internal/game"
)

// GameConfig holds match settings.
type GameConfig struct {
	// PlayerDeck is the human's deck type, e.g. "fire".
	PlayerDeck string `mapstructure:"player_deck"`
	// CPUDeck is the CPU's deck type; empty picks one at random per game.
	CPUDeck string `mapstructure:"cpu_deck"`
	// Seed fixes shuffles, coin flips and CPU noise; 0 seeds from runtime entropy.
	Seed uint64 `mapstructure:"seed"`
	// MaxTurns ends a game as a draw once exceeded.
	MaxTurns int `mapstructure:"max_turns"`
	// CardsFile and DecksFile replace the embedded catalog. Both or neither.
	CardsFile string `mapstructure:"cards_file"`
	DecksFile string `mapstructure:"decks_file"`
}

// Decks returns the parsed deck types. CPU is TypeNone when unset.
//
// Precondition: the config passed Validate.
func (g GameConfig) Decks() (player, cpu game.ElementType) {
	player, _ = game.ParseElementType(g.PlayerDeck)
	cpu, _ = game.ParseElementType(g.CPUDeck)
	return player, cpu
}

// LoadCatalog returns the embedded catalog, or the one read from
// CardsFile and DecksFile when they are set.
func (g GameConfig) LoadCatalog() (*game.Catalog, error) {
	if g.CardsFile == "" {
		return game.DefaultCatalog(), nil
	}
	cards, err := os.ReadFile(g.CardsFile)
	if err != nil {
		return nil, fmt.Errorf("reading cards file: %w", err)
	}
	decks, err := os.ReadFile(g.DecksFile)
	if err != nil {
		return nil, fmt.Errorf("reading decks file: %w", err)
	}
	c, err := game.LoadCatalog(cards, decks)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// CPUConfig holds CPU opponent settings.
type CPUConfig struct {
	// Difficulty in [0, 1]; 1 always plays the best scored move.
	Difficulty float64 `mapstructure:"difficulty"`
	// ThinkDelay paces the CPU's moves for a human watching.
	ThinkDelay time.Duration `mapstructure:"think_delay"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// WebConfig holds the HTTP listener settings.
type WebConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the "host:port" listen address.
func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	CPU     CPUConfig     `mapstructure:"cpu"`
	Logging LoggingConfig `mapstructure:"logging"`
	Web     WebConfig     `mapstructure:"web"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCPU(c.CPU); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWeb(c.Web); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if t, err := game.ParseElementType(g.PlayerDeck); err != nil || t == game.TypeNone {
		errs = append(errs, fmt.Sprintf("game.player_deck must be a deck type, got %q", g.PlayerDeck))
	}
	if _, err := game.ParseElementType(g.CPUDeck); err != nil {
		errs = append(errs, fmt.Sprintf("game.cpu_deck must be a deck type or empty, got %q", g.CPUDeck))
	}
	if g.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("game.max_turns must be >= 1, got %d", g.MaxTurns))
	}
	if (g.CardsFile == "") != (g.DecksFile == "") {
		errs = append(errs, "game.cards_file and game.decks_file must be set together")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateCPU(c CPUConfig) error {
	var errs []string
	if c.Difficulty < 0 || c.Difficulty > 1 {
		errs = append(errs, fmt.Sprintf("cpu.difficulty must be between 0 and 1, got %g", c.Difficulty))
	}
	if c.ThinkDelay < 0 {
		errs = append(errs, "cpu.think_delay must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateWeb(w WebConfig) error {
	if w.Port < 1 || w.Port > 65535 {
		return fmt.Errorf("web.port must be 1-65535, got %d", w.Port)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses the
// defaults and the environment only.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with POKECG_ prefix
	v.SetEnvPrefix("POKECG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.player_deck", "fire")
	v.SetDefault("game.cpu_deck", "")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_turns", 100)
	v.SetDefault("game.cards_file", "")
	v.SetDefault("game.decks_file", "")

	v.SetDefault("cpu.difficulty", 0.6)
	v.SetDefault("cpu.think_delay", "700ms")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("web.host", "localhost")
	v.SetDefault("web.port", 8080)
}
