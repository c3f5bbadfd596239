package game

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// Clone returns a deep copy of p. Card instances are immutable and shared.
func (p *ActivePokemon) Clone() *ActivePokemon {
	if p == nil {
		return nil
	}
	c := *p
	c.Energy = slices.Clone(p.Energy)
	c.Evolutions = slices.Clone(p.Evolutions)
	return &c
}

func (p *PlayerState) clone() *PlayerState {
	c := *p
	c.Deck = slices.Clone(p.Deck)
	c.Hand = slices.Clone(p.Hand)
	c.Discard = slices.Clone(p.Discard)
	c.Prizes = slices.Clone(p.Prizes)
	c.Active = p.Active.Clone()
	c.Bench = make([]*ActivePokemon, len(p.Bench))
	for i, b := range p.Bench {
		c.Bench[i] = b.Clone()
	}
	c.PlayedThisTurn = maps.Clone(p.PlayedThisTurn)
	if c.PlayedThisTurn == nil {
		c.PlayedThisTurn = make(map[string]bool)
	}
	return &c
}

// Clone returns a deep copy of gs that writes its events to logger.
func (gs *GameState) Clone(logger log.EventLogger) *GameState {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	c := *gs
	c.Players = [2]*PlayerState{gs.Players[Player].clone(), gs.Players[CPU].clone()}
	c.Log = logger
	return &c
}

// Sandbox returns an engine over a copy of the current state for trying
// actions out. Shuffles and coin flips in the sandbox are driven by src and
// nothing reaches the real game log.
func (e *Engine) Sandbox(src Source) *Engine {
	events := log.NewMemoryLogger()
	return &Engine{
		State:   e.State.Clone(events),
		catalog: e.catalog,
		deckSrc: src,
		coin:    NewCoin(src, nil),
		logger:  zap.NewNop(),
		events:  events,

		pendingSwap: e.pendingSwap,
	}
}
