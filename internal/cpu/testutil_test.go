package cpu

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
)

// fixedRand returns the same Float64 every time and 0 from IntN, which also
// makes every sandbox coin flip tails.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return 0 }

// perfect is a difficulty-1 agent: no noise, trainers always pass the gate,
// and the best attack is never swapped out.
func perfect() *Agent {
	return New(1, fixedRand{0}, nil)
}

var seq int

func mon(id string, typ game.ElementType, hp int, attacks ...game.Attack) *game.Template {
	return &game.Template{
		ID: id, Name: id, Category: game.CategoryPokemon,
		Type: typ, Stage: game.StageBasic, HP: hp, Attacks: attacks,
	}
}

func evo(id string, from *game.Template, hp int) *game.Template {
	t := mon(id, from.Type, hp)
	t.Stage = game.Stage1
	t.EvolvesFrom = from.ID
	return t
}

func energyCard(typ game.ElementType) *game.Instance {
	return card(&game.Template{ID: typ.String() + "-energy", Name: fmt.Sprintf("%s Energy", typ), Category: game.CategoryEnergy, Type: typ})
}

func trainer(id string, kind game.TrainerKind, eff game.TrainerEffect) *game.Template {
	return &game.Template{ID: id, Name: id, Category: game.CategoryTrainer, Trainer: kind, Effect: eff}
}

func atk(name string, damage int, eff game.AttackEffect, cost ...game.ElementType) game.Attack {
	return game.Attack{Name: name, Damage: damage, Effect: eff, Cost: cost}
}

func card(t *game.Template) *game.Instance {
	seq++
	return game.NewInstance(t, seq)
}

// newTestEngine returns an engine in the CPU's main phase on turn 2, with
// both sides set up and 20 Colorless energy in each deck.
func newTestEngine(t *testing.T) (*game.Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := game.NewEngine(game.EngineConfig{
		DeckSource: game.NewSeededSource(1),
		CoinSource: game.NewScriptedSource(nil),
		EventLog:   logger,
	})
	gs := e.State
	gs.CurrentTurn = game.CPU
	gs.TurnNumber = 2
	gs.Phase = game.PhaseMain
	for _, ps := range gs.Players {
		ps.Ready = true
		ps.IsFirstTurn = false
		for range 20 {
			ps.Deck = append(ps.Deck, energyCard(game.Colorless))
		}
	}
	return e, logger
}

func setActive(e *game.Engine, who game.Owner, t *game.Template, energy ...*game.Instance) *game.ActivePokemon {
	pk := game.NewActivePokemon(card(t))
	pk.Energy = energy
	e.State.PlayerState(who).Active = pk
	return pk
}

func addBench(e *game.Engine, who game.Owner, t *game.Template, energy ...*game.Instance) *game.ActivePokemon {
	pk := game.NewActivePokemon(card(t))
	pk.Energy = energy
	ps := e.State.PlayerState(who)
	ps.Bench = append(ps.Bench, pk)
	return pk
}

func addToHand(e *game.Engine, who game.Owner, c *game.Instance) *game.Instance {
	ps := e.State.PlayerState(who)
	ps.Hand = append(ps.Hand, c)
	return c
}

func stepTypes(p Plan) []game.ActionType {
	types := make([]game.ActionType, len(p.Steps))
	for i, s := range p.Steps {
		types[i] = s.Action.Type
	}
	return types
}
