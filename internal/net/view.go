package net

import (
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
)

// BuildStateView creates a StateView from the perspective of who. The
// opponent's hand is reduced to a count.
func BuildStateView(state *game.GameState, who game.Owner) *StateView {
	sv := &StateView{
		You:        buildPlayerView(state, who, true),
		Opponent:   buildPlayerView(state, who.Other(), false),
		Turn:       state.TurnNumber,
		Phase:      state.Phase.String(),
		IsYourTurn: state.CurrentTurn == who,
		GameOver:   state.GameOver,
		Result:     state.Result,
	}
	if state.GameOver && state.Winner != game.NoOwner {
		sv.Winner = log.PlayerName(int(state.Winner))
	}
	return sv
}

func buildPlayerView(state *game.GameState, who game.Owner, isOwner bool) PlayerView {
	ps := state.PlayerState(who)
	pv := PlayerView{
		Name:         log.PlayerName(int(who)),
		Bench:        []PokemonView{},
		HandCount:    len(ps.Hand),
		DeckCount:    len(ps.Deck),
		DiscardCount: len(ps.Discard),
		PrizesLeft:   len(ps.Prizes),
		TrainersLock: state.TrainersBlocked(who),
	}
	if ps.Active != nil {
		v := BuildPokemonView(ps.Active)
		pv.Active = &v
	}
	for _, b := range ps.Bench {
		pv.Bench = append(pv.Bench, BuildPokemonView(b))
	}
	if isOwner {
		for _, c := range ps.Hand {
			pv.Hand = append(pv.Hand, BuildCardView(c))
		}
	}
	return pv
}

// BuildPokemonView describes a Pokemon in play, including how much energy
// each attack still needs.
func BuildPokemonView(pk *game.ActivePokemon) PokemonView {
	t := pk.Template()
	v := PokemonView{
		Name:        pk.Name(),
		Type:        t.Type.String(),
		Stage:       t.Stage.String(),
		HP:          pk.CurrentHP,
		MaxHP:       pk.MaxHP(),
		Energy:      []string{},
		RetreatCost: t.RetreatCost,
		Attacks:     []AttackView{},
	}
	if pk.Status != game.StatusNone {
		v.Status = pk.Status.String()
	}
	if t.Weakness != game.TypeNone {
		v.Weakness = t.Weakness.String()
	}
	if t.Resistance != game.TypeNone {
		v.Resistance = t.Resistance.String()
	}
	for _, e := range pk.Energy {
		v.Energy = append(v.Energy, e.Template.Type.String())
	}
	for _, a := range t.Attacks {
		av := AttackView{
			Name:    a.Name,
			Cost:    []string{},
			Damage:  a.Damage,
			Missing: game.MissingEnergy(pk.Energy, a.Cost),
			Text:    a.Description,
		}
		for _, c := range a.Cost {
			av.Cost = append(av.Cost, c.String())
		}
		v.Attacks = append(v.Attacks, av)
	}
	return v
}

// BuildCardView describes a card in hand.
func BuildCardView(c *game.Instance) CardView {
	t := c.Template
	cv := CardView{ID: c.ID, Name: t.Name, Category: t.Category.String()}
	switch {
	case t.IsPokemon():
		cv.Type = t.Type.String()
		cv.HP = t.HP
	case t.IsEnergy():
		cv.Type = t.Type.String()
	case t.IsTrainer():
		cv.Type = t.Trainer.String()
	}
	return cv
}

// BuildActionViews numbers the actions for a client.
func BuildActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Index: i, Type: a.Type.String(), Desc: a.String()}
	}
	return views
}

// BuildEventView converts a game event for the client.
func BuildEventView(event log.GameEvent) EventView {
	return EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
