package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// DrawCard draws the top card of who's deck. Drawing from an empty deck
// loses the game immediately and returns nil.
func (e *Engine) DrawCard(who Owner) *Instance {
	gs := e.State
	card := gs.PlayerState(who).DrawCard()
	if card == nil {
		gs.EndGame(who.Other(), fmt.Sprintf("%s cannot draw a card", log.PlayerName(int(who))))
		return nil
	}
	if who == gs.CurrentTurn && gs.Phase == PhaseDraw {
		gs.Flags.HasDrawn = true
	}
	e.log(log.NewDrawEvent(gs.TurnNumber, e.phase(), int(who), card.Name()))
	return card
}

// StartTurn runs the draw step of the current turn and enters the main
// phase. The very first turn of the game has no draw. Returns false if the
// turn cannot start yet or the draw decked the player out.
func (e *Engine) StartTurn() bool {
	gs := e.State
	switch {
	case gs.GameOver:
		return false
	case gs.CurrentTurn == NoOwner:
		return e.illegal(NoOwner, "the game has not been set up")
	case !gs.Players[Player].Ready || !gs.Players[CPU].Ready:
		return e.illegal(gs.CurrentTurn, "setup is not finished")
	case gs.Phase != PhaseDraw || gs.Flags.HasDrawn:
		return e.illegal(gs.CurrentTurn, "the turn has already started")
	}
	ps := gs.CurrentPlayer()
	if !(gs.TurnNumber == 1 && ps.IsFirstTurn) {
		if e.DrawCard(gs.CurrentTurn) == nil {
			return false
		}
	}
	gs.Phase = PhaseMain
	return true
}

// PlayBasicToBench puts a Basic Pokemon from hand onto the bench. During
// setup placement it is allowed for either side; afterwards only on turn.
func (e *Engine) PlayBasicToBench(who Owner, cardID string) bool {
	gs := e.State
	ps := gs.PlayerState(who)
	if ps.Ready {
		if !e.checkTurn(who) {
			return false
		}
	} else if gs.GameOver {
		return e.illegal(who, "the game is over")
	}

	card, ok := ps.HandCard(cardID)
	if !ok {
		return e.illegal(who, "card %s is not in hand", cardID)
	}
	if !card.Template.IsBasic() {
		return e.illegal(who, "only Basic Pokemon can be played to the bench")
	}
	if len(ps.Bench) >= MaxBench {
		return e.illegal(who, "the bench is full")
	}

	ps.RemoveFromHand(cardID)
	ps.Bench = append(ps.Bench, NewActivePokemon(card))
	ps.PlayedThisTurn[card.ID] = true
	e.log(log.NewBenchEvent(gs.TurnNumber, e.phase(), int(who), card.Name(), len(ps.Bench)))
	return true
}

// SetActiveFromHand places a Basic from hand into the empty active slot.
// Setup placement only.
func (e *Engine) SetActiveFromHand(who Owner, cardID string) bool {
	gs := e.State
	ps := gs.PlayerState(who)
	switch {
	case gs.GameOver:
		return e.illegal(who, "the game is over")
	case ps.Ready:
		return e.illegal(who, "Pokemon can only be set active from hand during setup")
	case ps.Active != nil:
		return e.illegal(who, "there is already an active Pokemon")
	}
	card, ok := ps.HandCard(cardID)
	if !ok {
		return e.illegal(who, "card %s is not in hand", cardID)
	}
	if !card.Template.IsBasic() {
		return e.illegal(who, "only a Basic Pokemon can become active")
	}

	ps.RemoveFromHand(cardID)
	ps.Active = NewActivePokemon(card)
	ps.PlayedThisTurn[card.ID] = true
	e.log(log.NewSetActiveEvent(gs.TurnNumber, e.phase(), int(who), card.Name()))
	return true
}

// SetActiveFromBench promotes a benched Pokemon into the empty active slot,
// after a knockout or during setup.
func (e *Engine) SetActiveFromBench(who Owner, benchIndex int) bool {
	gs := e.State
	ps := gs.PlayerState(who)
	switch {
	case gs.GameOver:
		return e.illegal(who, "the game is over")
	case ps.Active != nil:
		return e.illegal(who, "there is already an active Pokemon")
	case benchIndex < 0 || benchIndex >= len(ps.Bench):
		return e.illegal(who, "invalid bench position %d", benchIndex+1)
	}
	ps.Active = ps.RemoveFromBench(benchIndex)
	e.log(log.NewSetActiveEvent(gs.TurnNumber, e.phase(), int(who), ps.Active.Name()))
	return true
}

// AttachEnergy moves an Energy card from hand onto one of who's Pokemon.
// Once per turn.
func (e *Engine) AttachEnergy(who Owner, cardID string, target Slot) bool {
	if !e.checkTurn(who) {
		return false
	}
	gs := e.State
	ps := gs.PlayerState(who)
	if gs.Flags.HasAttachedEnergy {
		return e.illegal(who, "energy was already attached this turn")
	}
	card, ok := ps.HandCard(cardID)
	if !ok {
		return e.illegal(who, "card %s is not in hand", cardID)
	}
	if !card.Template.IsEnergy() {
		return e.illegal(who, "%s is not an Energy card", card.Name())
	}
	pk := ps.InPlay(target)
	if pk == nil {
		return e.illegal(who, "no Pokemon at %s", target)
	}

	ps.RemoveFromHand(cardID)
	pk.AttachEnergy(card)
	gs.Flags.HasAttachedEnergy = true
	e.log(log.NewAttachEnergyEvent(gs.TurnNumber, e.phase(), int(who), card.Name(), pk.Name()))
	return true
}

// EvolvePokemon plays an evolution card from hand onto the Pokemon at target.
func (e *Engine) EvolvePokemon(who Owner, cardID string, target Slot) bool {
	if !e.checkTurn(who) {
		return false
	}
	gs := e.State
	ps := gs.PlayerState(who)
	if ps.IsFirstTurn {
		return e.illegal(who, "can't evolve on your first turn")
	}
	card, ok := ps.HandCard(cardID)
	if !ok {
		return e.illegal(who, "card %s is not in hand", cardID)
	}
	if !card.Template.IsPokemon() || card.Template.EvolvesFrom == "" {
		return e.illegal(who, "%s is not an evolution card", card.Name())
	}
	pk := ps.InPlay(target)
	if pk == nil {
		return e.illegal(who, "no Pokemon at %s", target)
	}
	if card.Template.EvolvesFrom != pk.Template().ID {
		return e.illegal(who, "%s doesn't evolve from %s", card.Name(), pk.Name())
	}
	if ps.PlayedThisTurn[pk.Card.ID] {
		return e.illegal(who, "%s was played or evolved this turn", pk.Name())
	}

	from := pk.Name()
	ps.RemoveFromHand(cardID)
	pk.EvolveTo(card)
	ps.PlayedThisTurn[card.ID] = true
	e.log(log.NewEvolveEvent(gs.TurnNumber, e.phase(), int(who), from, card.Name()))
	return true
}

// Retreat pays the retreat cost with the oldest attached energy and swaps
// the active Pokemon with the benched one at benchIndex. Once per turn.
func (e *Engine) Retreat(who Owner, benchIndex int) bool {
	if !e.checkTurn(who) {
		return false
	}
	gs := e.State
	ps := gs.PlayerState(who)
	active := ps.Active
	switch {
	case gs.Flags.HasRetreated:
		return e.illegal(who, "already retreated this turn")
	case len(ps.Bench) == 0:
		return e.illegal(who, "no benched Pokemon to switch in")
	case benchIndex < 0 || benchIndex >= len(ps.Bench):
		return e.illegal(who, "invalid bench position %d", benchIndex+1)
	case active.Status == StatusAsleep || active.Status == StatusParalyzed:
		return e.illegal(who, "%s can't retreat while %s", active.Name(), active.Status)
	case len(active.Energy) < active.Template().RetreatCost:
		return e.illegal(who, "not enough energy to retreat %s", active.Name())
	}

	cost := active.Template().RetreatCost
	paid := active.Energy[:cost:cost]
	active.Energy = active.Energy[cost:]
	ps.SendToDiscard(paid...)

	ps.Active = ps.RemoveFromBench(benchIndex)
	ps.Bench = append(ps.Bench, active)
	gs.Flags.HasRetreated = true
	e.log(log.NewRetreatEvent(gs.TurnNumber, e.phase(), int(who), active.Name(), ps.Active.Name(), cost))
	return true
}

// EndTurn runs between-turns status upkeep for both active Pokemon and,
// unless the game ended, passes the turn.
func (e *Engine) EndTurn() bool {
	gs := e.State
	who := gs.CurrentTurn
	if gs.GameOver {
		return e.illegal(who, "the game is over")
	}
	if gs.Phase != PhaseMain && gs.Phase != PhaseBetweenTurns {
		return e.illegal(who, "can't end the turn during %s", gs.Phase)
	}

	gs.Phase = PhaseBetweenTurns
	e.pendingSwap = NoOwner
	for _, side := range []Owner{Player, CPU} {
		pk := gs.PlayerState(side).Active
		if pk == nil {
			continue
		}
		r := pk.ProcessBetweenTurns(e.coin, side == who)
		if details := r.describe(); details != "" {
			e.log(log.NewBetweenTurnsEvent(gs.TurnNumber, e.phase(), int(side), pk.Name(), details))
		}
		if r.KnockedOut {
			e.handleKnockout(side, pk)
			if gs.GameOver {
				return true
			}
		}
	}
	gs.SwitchTurn()
	return true
}

func (r BetweenTurnsReport) describe() string {
	var parts []string
	if r.PoisonDamage > 0 {
		parts = append(parts, fmt.Sprintf("takes %d poison damage", r.PoisonDamage))
	}
	if r.BurnDamage > 0 {
		parts = append(parts, fmt.Sprintf("takes %d burn damage", r.BurnDamage))
	}
	if r.BurnAvoided {
		parts = append(parts, "shrugs off the burn")
	}
	if r.ParalysisCleared {
		parts = append(parts, "is no longer Paralyzed")
	}
	if r.WokeUp {
		parts = append(parts, "woke up")
	}
	if r.StillAsleep {
		parts = append(parts, "is still Asleep")
	}
	return strings.Join(parts, ", ")
}
