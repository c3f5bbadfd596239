package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// SetupGame resets the state and deals a new game: shuffled decks, opening
// hands with mulligans, prizes, and a coin flip for the first turn. Unknown
// deck types fall back to Fire for the player and Water for the CPU.
//
// Postcondition: Phase == PhaseDraw and CurrentTurn is set, but neither side
// is Ready; each must place an active Pokemon (SetupActions) first.
func (e *Engine) SetupGame(playerDeck, cpuDeck ElementType) {
	gs := NewGameState(e.events)
	e.State = gs
	e.pendingSwap = NoOwner

	if _, ok := e.catalog.Deck(playerDeck); !ok {
		playerDeck = Fire
	}
	if _, ok := e.catalog.Deck(cpuDeck); !ok {
		cpuDeck = Water
	}
	e.log(log.NewGameStartEvent(playerDeck.String(), cpuDeck.String()))

	for who, t := range [2]ElementType{playerDeck, cpuDeck} {
		ps := gs.Players[who]
		ps.Deck = e.catalog.GenerateDeck(t)
		deck, _ := e.catalog.Deck(t)
		e.log(log.NewDeckSelectedEvent(who, deck.Name))
		e.shuffle(Owner(who), ps.Deck)
	}

	for range InitialHandSize {
		gs.Players[Player].DrawCard()
		gs.Players[CPU].DrawCard()
	}
	e.resolveMulligans()
	e.setPrizes()

	first := CPU
	if e.flip(Player, "first turn") {
		first = Player
	}
	gs.CurrentTurn = first
	gs.Phase = PhaseDraw
	e.log(log.NewTurnEvent(gs.TurnNumber, int(first)))
	e.logger.Info("game set up",
		zap.Stringer("player_deck", playerDeck),
		zap.Stringer("cpu_deck", cpuDeck),
		zap.Stringer("first", first),
		zap.Int("player_mulligans", gs.Players[Player].Mulligans),
		zap.Int("cpu_mulligans", gs.Players[CPU].Mulligans),
	)
}

// resolveMulligans redraws Basic-less hands, then compensates the other side
// with one card per mulligan.
func (e *Engine) resolveMulligans() {
	gs := e.State
	for _, who := range []Owner{Player, CPU} {
		ps := gs.PlayerState(who)
		for !ps.HasBasicInHand() {
			ps.Mulligans++
			e.log(log.NewMulliganEvent(int(who), ps.Mulligans))
			ps.Deck = append(ps.Deck, ps.Hand...)
			ps.Hand = nil
			e.shuffle(who, ps.Deck)
			for range InitialHandSize {
				ps.DrawCard()
			}
		}
	}
	for _, who := range []Owner{Player, CPU} {
		opp := gs.Opponent(who)
		for range gs.PlayerState(who).Mulligans {
			if card := opp.DrawCard(); card != nil {
				e.log(log.NewDrawEvent(gs.TurnNumber, e.phase(), int(opp.Owner), card.Name()))
			}
		}
	}
}

func (e *Engine) setPrizes() {
	for _, ps := range e.State.Players {
		for range PrizeCount {
			if len(ps.Deck) == 0 {
				break
			}
			ps.Prizes = append(ps.Prizes, ps.Deck[len(ps.Deck)-1])
			ps.Deck = ps.Deck[:len(ps.Deck)-1]
		}
		e.log(log.NewPrizesSetEvent(int(ps.Owner), len(ps.Prizes)))
	}
}

// SetupActions lists who's legal setup placements: an active Pokemon first,
// then benching Basics or finishing. Empty once who is Ready.
func (e *Engine) SetupActions(who Owner) []Action {
	ps := e.State.PlayerState(who)
	if ps.Ready || e.State.GameOver {
		return nil
	}
	var actions []Action
	if ps.Active == nil {
		for _, c := range ps.Hand {
			if c.Template.IsBasic() {
				actions = append(actions, Action{
					Type: ActionSetActive, Player: who, Card: c,
					Desc: fmt.Sprintf("Set %s as your active Pokemon (%d HP)", c.Name(), c.Template.HP),
				})
			}
		}
		return actions
	}
	if len(ps.Bench) < MaxBench {
		for _, c := range ps.Hand {
			if c.Template.IsBasic() {
				actions = append(actions, Action{
					Type: ActionBenchBasic, Player: who, Card: c,
					Desc: fmt.Sprintf("Bench %s (%d HP)", c.Name(), c.Template.HP),
				})
			}
		}
	}
	actions = append(actions, Action{Type: ActionFinishSetup, Player: who, Desc: "Done placing Pokemon"})
	return actions
}

// FinishSetup marks who's setup placement as done.
func (e *Engine) FinishSetup(who Owner) bool {
	ps := e.State.PlayerState(who)
	if ps.Ready {
		return e.illegal(who, "setup is already finished")
	}
	if ps.Active == nil {
		return e.illegal(who, "place an active Pokemon before finishing setup")
	}
	ps.Ready = true
	return true
}
