// Package match runs one game between two controllers: the setup
// placements, the turn loop and knockout promotions.
package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
)

const (
	// DefaultMaxTurns ends a game that never finishes as a draw.
	DefaultMaxTurns = 100

	// MaxRejections is how many rejected actions in a row abort the match.
	MaxRejections = 10
)

// Controller is the interface that both human and CPU sides implement.
type Controller interface {
	// ChooseAction presents the legal actions and waits for the side to pick one.
	ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Config holds configuration for a match.
type Config struct {
	PlayerDeck game.ElementType
	CPUDeck    game.ElementType
	MaxTurns   int         // 0 uses DefaultMaxTurns
	Logger     *zap.Logger // nil discards
}

// Match drives an engine with one controller per side.
type Match struct {
	Engine      *game.Engine
	Controllers [2]Controller

	decks    [2]game.ElementType
	maxTurns int
	logger   *zap.Logger
	ctx      context.Context

	seen     int // events already sent to the controllers
	rejected int
}

// New creates a match on e. The engine is reset when Run starts.
func New(e *game.Engine, cfg Config, player, cpu Controller) *Match {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Match{
		Engine:      e,
		Controllers: [2]Controller{player, cpu},
		decks:       [2]game.ElementType{cfg.PlayerDeck, cfg.CPUDeck},
		maxTurns:    maxTurns,
		logger:      logger,
		ctx:         context.Background(),
	}
}

// Run plays a whole game. It returns the winner, or game.NoOwner for a
// draw. Errors come from controllers or ctx; rule violations never end
// the match on their own.
func (m *Match) Run(ctx context.Context) (game.Owner, error) {
	m.ctx = ctx
	m.seen = len(m.eventLog().Events())
	e := m.Engine
	e.SetupGame(m.decks[0], m.decks[1])
	m.flush()
	gs := e.State

	for _, who := range []game.Owner{game.Player, game.CPU} {
		for !gs.PlayerState(who).Ready && !gs.GameOver {
			if err := m.choose(who); err != nil {
				return game.NoOwner, err
			}
		}
	}

	for !gs.GameOver {
		if gs.TurnNumber > m.maxTurns {
			gs.EndGame(game.NoOwner, fmt.Sprintf("turn limit reached (%d turns)", m.maxTurns))
			m.flush()
			break
		}
		if err := m.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := ctx.Err(); err != nil {
			return game.NoOwner, err
		}
	}

	m.logger.Info("match over",
		zap.Stringer("winner", gs.Winner),
		zap.String("result", gs.Result),
		zap.Int("turns", gs.TurnNumber),
	)
	return gs.Winner, nil
}

// runTurn plays the current side's turn: draw, main phase choices until an
// attack or End Turn, promotions, and the hand-over.
func (m *Match) runTurn() error {
	e := m.Engine
	gs := e.State
	who := gs.CurrentTurn

	if !e.StartTurn() {
		m.flush()
		return nil
	}
	m.flush()

	for !gs.GameOver && gs.CurrentTurn == who && gs.Phase == game.PhaseMain {
		if err := m.choose(who); err != nil {
			return err
		}
	}
	if err := m.promote(); err != nil {
		return err
	}
	if !gs.GameOver && gs.CurrentTurn == who {
		// The attack ended the main phase.
		e.EndTurn()
		m.flush()
	}
	return m.promote()
}

// promote asks every side without an active Pokemon to bring one up.
func (m *Match) promote() error {
	gs := m.Engine.State
	for _, who := range []game.Owner{gs.CurrentTurn, gs.CurrentTurn.Other()} {
		for !gs.GameOver && gs.PlayerState(who).NeedsPromotion() {
			if err := m.choose(who); err != nil {
				return err
			}
		}
	}
	return nil
}

// choose asks who's controller for one action and applies it.
func (m *Match) choose(who game.Owner) error {
	e := m.Engine
	actions := e.AvailableActions(who)
	if len(actions) == 0 {
		return fmt.Errorf("no legal action for %s during %s", who, e.State.Phase)
	}
	a, err := m.Controllers[who].ChooseAction(m.ctx, e.State, actions)
	if err != nil {
		return fmt.Errorf("%s controller: %w", who, err)
	}
	a.Player = who

	ok := e.Apply(a)
	m.flush()
	if ok {
		m.rejected = 0
		return nil
	}
	m.rejected++
	m.logger.Debug("action rejected", zap.Stringer("side", who), zap.Stringer("action", a))
	if m.rejected >= MaxRejections {
		return fmt.Errorf("%s: %d actions rejected in a row", who, m.rejected)
	}
	return nil
}

func (m *Match) eventLog() log.EventLogger {
	return m.Engine.State.Log
}

// flush notifies both controllers of the events logged since the last call.
func (m *Match) flush() {
	events := m.eventLog().Events()
	for _, ev := range events[m.seen:] {
		for i, c := range m.Controllers {
			if err := c.Notify(m.ctx, ev); err != nil {
				m.logger.Warn("notify failed", zap.Stringer("side", game.Owner(i)), zap.Error(err))
			}
		}
	}
	m.seen = len(events)
}
