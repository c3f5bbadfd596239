package game

import (
	"github.com/peterkuimelis/pokecg/internal/log"
)

// PlayTrainer plays a Trainer card from hand. target names the Pokemon for
// Heal and Super Heal and is ignored otherwise. Switch and Gust only arm a
// swap; the caller completes it with SwitchActive.
func (e *Engine) PlayTrainer(who Owner, cardID string, target Slot) bool {
	if !e.checkTurn(who) {
		return false
	}
	gs := e.State
	ps := gs.PlayerState(who)
	opp := gs.Opponent(who)

	card, ok := ps.HandCard(cardID)
	if !ok {
		return e.illegal(who, "card %s is not in hand", cardID)
	}
	t := card.Template
	if !t.IsTrainer() {
		return e.illegal(who, "%s is not a Trainer card", card.Name())
	}
	if gs.TrainersBlocked(who) {
		return e.illegal(who, "Trainer cards are blocked this turn")
	}
	if t.IsSupporter() && gs.Flags.HasPlayedSupporter {
		return e.illegal(who, "a Supporter was already played this turn")
	}

	pk := ps.InPlay(target)
	switch eff := t.Effect.(type) {
	case Heal:
		if pk == nil || pk.Damage() == 0 {
			return e.illegal(who, "%s needs a damaged Pokemon", card.Name())
		}
	case SuperHeal:
		if pk == nil || pk.Damage() == 0 {
			return e.illegal(who, "%s needs a damaged Pokemon", card.Name())
		}
		if len(pk.Energy) < eff.Discard {
			return e.illegal(who, "%s needs %d energy on %s", card.Name(), eff.Discard, pk.Name())
		}
	case Switch:
		if len(ps.Bench) == 0 {
			return e.illegal(who, "%s needs a benched Pokemon", card.Name())
		}
	case Gust:
		if len(opp.Bench) == 0 {
			return e.illegal(who, "the opponent has no benched Pokemon")
		}
	case DiscardAndDraw, SearchPokemon, RetrieveEnergy, ShuffleAndDraw:
	default:
		return e.illegal(who, "%s has no playable effect", card.Name())
	}

	turn, phase := gs.TurnNumber, e.phase()
	e.log(log.NewPlayTrainerEvent(turn, phase, int(who), card.Name()))
	ps.RemoveFromHand(cardID)

	switch eff := t.Effect.(type) {
	case Heal:
		e.log(log.NewHealEvent(turn, phase, int(who), pk.Name(), pk.Heal(eff.Amount)))
	case SuperHeal:
		removed := pk.RemoveEnergy(Colorless, eff.Discard)
		ps.SendToDiscard(removed...)
		for _, c := range removed {
			e.log(log.NewDiscardEvent(turn, phase, int(who), c.Name()))
		}
		e.log(log.NewHealEvent(turn, phase, int(who), pk.Name(), pk.Heal(eff.Amount)))
	case Switch:
		e.pendingSwap = who
	case Gust:
		e.pendingSwap = who.Other()
	case DiscardAndDraw:
		for _, c := range ps.Hand {
			e.log(log.NewDiscardEvent(turn, phase, int(who), c.Name()))
		}
		ps.SendToDiscard(ps.Hand...)
		ps.Hand = nil
		e.drawN(who, eff.Draw)
	case SearchPokemon:
		e.searchBasic(who)
	case RetrieveEnergy:
		e.retrieveEnergy(who, eff.Amount)
	case ShuffleAndDraw:
		for _, side := range []*PlayerState{ps, opp} {
			side.Deck = append(side.Deck, side.Hand...)
			side.Hand = nil
			e.shuffle(side.Owner, side.Deck)
		}
		e.drawN(who, eff.Draw)
		e.drawN(opp.Owner, eff.OpponentDraw)
	}

	ps.SendToDiscard(card)
	if t.IsSupporter() {
		gs.Flags.HasPlayedSupporter = true
	}
	return true
}

// SwitchActive completes a Switch (own side) or Gust (opponent's side) by
// swapping side's active Pokemon with the benched one at benchIndex.
func (e *Engine) SwitchActive(side Owner, benchIndex int) bool {
	gs := e.State
	switch {
	case gs.GameOver:
		return e.illegal(gs.CurrentTurn, "the game is over")
	case side == NoOwner || e.pendingSwap != side:
		return e.illegal(gs.CurrentTurn, "no switch is pending")
	}
	ps := gs.PlayerState(side)
	if benchIndex < 0 || benchIndex >= len(ps.Bench) {
		return e.illegal(gs.CurrentTurn, "invalid bench position %d", benchIndex+1)
	}

	e.pendingSwap = NoOwner
	old := ps.Active
	ps.Active, ps.Bench[benchIndex] = ps.Bench[benchIndex], old
	if old == nil {
		ps.RemoveFromBench(benchIndex)
		e.log(log.NewSetActiveEvent(gs.TurnNumber, e.phase(), int(side), ps.Active.Name()))
		return true
	}
	e.log(log.NewSwitchEvent(gs.TurnNumber, e.phase(), int(side), old.Name(), ps.Active.Name()))
	return true
}

// PendingSwap returns the side a Switch or Gust is waiting to swap, or NoOwner.
func (e *Engine) PendingSwap() Owner {
	return e.pendingSwap
}

// drawN draws up to n cards for who, stopping if the deck runs out.
func (e *Engine) drawN(who Owner, n int) {
	for range n {
		if e.DrawCard(who) == nil {
			return
		}
	}
}

func (e *Engine) searchBasic(who Owner) {
	gs := e.State
	ps := gs.PlayerState(who)
	if !e.flip(who, "Poke Ball") {
		e.log(log.NewSearchEvent(gs.TurnNumber, e.phase(), int(who), ""))
		return
	}
	for i, c := range ps.Deck {
		if c.Template.IsBasic() {
			ps.Deck = append(ps.Deck[:i], ps.Deck[i+1:]...)
			ps.Hand = append(ps.Hand, c)
			e.log(log.NewSearchEvent(gs.TurnNumber, e.phase(), int(who), c.Name()))
			e.shuffle(who, ps.Deck)
			return
		}
	}
	e.log(log.NewSearchEvent(gs.TurnNumber, e.phase(), int(who), ""))
}

// retrieveEnergy moves up to n Energy cards from the discard pile to hand,
// oldest first.
func (e *Engine) retrieveEnergy(who Owner, n int) {
	ps := e.State.PlayerState(who)
	kept := ps.Discard[:0:0]
	got := 0
	for _, c := range ps.Discard {
		if got < n && c.Template.IsEnergy() {
			ps.Hand = append(ps.Hand, c)
			got++
			continue
		}
		kept = append(kept, c)
	}
	ps.Discard = kept
	e.log(log.NewRetrieveEvent(e.State.TurnNumber, e.phase(), int(who), got))
}
