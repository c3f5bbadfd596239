package game

import (
	"fmt"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// sweepKnockouts resolves every Pokemon left at 0 HP, the defending side
// first. It stops as soon as the game ends.
func (e *Engine) sweepKnockouts(attacker Owner) {
	for _, side := range []Owner{attacker.Other(), attacker} {
		ps := e.State.PlayerState(side)
		for _, pk := range ps.AllInPlay() {
			if e.State.GameOver {
				return
			}
			if pk.IsKnockedOut() {
				e.handleKnockout(side, pk)
			}
		}
	}
}

// handleKnockout removes pk from loser's side, discards every card it is
// made of, and gives the opponent a prize. The game ends if that was the
// last prize or loser has no Pokemon left. Otherwise, if pk was active,
// loser must promote a benched Pokemon with SetActiveFromBench.
func (e *Engine) handleKnockout(loser Owner, pk *ActivePokemon) {
	gs := e.State
	ps := gs.PlayerState(loser)
	winner := loser.Other()
	wps := gs.PlayerState(winner)

	e.log(log.NewKnockoutEvent(gs.TurnNumber, e.phase(), int(loser), pk.Name()))

	if ps.Active == pk {
		ps.Active = nil
	} else {
		for i, b := range ps.Bench {
			if b == pk {
				ps.RemoveFromBench(i)
				break
			}
		}
	}
	ps.SendToDiscard(pk.Card)
	ps.SendToDiscard(pk.Energy...)
	ps.SendToDiscard(pk.Evolutions...)

	if n := len(wps.Prizes); n > 0 {
		prize := wps.Prizes[n-1]
		wps.Prizes = wps.Prizes[:n-1]
		wps.Hand = append(wps.Hand, prize)
		e.log(log.NewPrizeTakenEvent(gs.TurnNumber, e.phase(), int(winner), len(wps.Prizes)))
	}

	if len(wps.Prizes) == 0 {
		gs.EndGame(winner, fmt.Sprintf("%s took all prize cards", log.PlayerName(int(winner))))
		return
	}
	if !ps.HasPokemonInPlay() {
		gs.EndGame(winner, fmt.Sprintf("%s has no Pokemon left", log.PlayerName(int(loser))))
	}
}
