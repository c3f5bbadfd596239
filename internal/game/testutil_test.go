package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// --- Template builders ---

func pokemonTemplate(id string, typ ElementType, hp int, attacks ...Attack) *Template {
	return &Template{
		ID:       id,
		Name:     id,
		Category: CategoryPokemon,
		Type:     typ,
		Stage:    StageBasic,
		HP:       hp,
		Attacks:  attacks,
	}
}

func evolutionTemplate(id string, from *Template, hp int, attacks ...Attack) *Template {
	t := pokemonTemplate(id, from.Type, hp, attacks...)
	t.Stage = Stage1
	t.EvolvesFrom = from.ID
	return t
}

func energyTemplate(typ ElementType) *Template {
	return &Template{
		ID:       typ.String() + "-energy",
		Name:     fmt.Sprintf("%s Energy", typ),
		Category: CategoryEnergy,
		Type:     typ,
	}
}

func trainerTemplate(id string, kind TrainerKind, eff TrainerEffect) *Template {
	return &Template{ID: id, Name: id, Category: CategoryTrainer, Trainer: kind, Effect: eff}
}

func attack(name string, damage int, eff AttackEffect, cost ...ElementType) Attack {
	return Attack{Name: name, Cost: cost, Damage: damage, Effect: eff}
}

// energies creates n fresh instances of the typ Energy card.
func energies(typ ElementType, n int) []*Instance {
	t := energyTemplate(typ)
	cards := make([]*Instance, n)
	for i := range cards {
		cards[i] = NewInstance(t, i)
	}
	return cards
}

var instanceSeq int

func instance(t *Template) *Instance {
	instanceSeq++
	return NewInstance(t, instanceSeq)
}

// --- Engine fixtures ---

// newTestEngine returns an engine in the main phase of the player's second
// turn, both sides set up with empty boards and 20-card decks of Colorless
// energy. coins are the scripted coin flips (Heads / Tails); once they run
// out every flip is tails.
func newTestEngine(t *testing.T, coins ...int) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{
		DeckSource: NewSeededSource(1),
		CoinSource: NewScriptedSource(nil, coins...),
		EventLog:   logger,
	})
	gs := e.State
	gs.CurrentTurn = Player
	gs.TurnNumber = 2
	gs.Phase = PhaseMain
	for _, ps := range gs.Players {
		ps.Ready = true
		ps.IsFirstTurn = false
		ps.Deck = energies(Colorless, 20)
	}
	return e, logger
}

// setActive puts a fresh copy of tmpl in who's active slot with energy attached.
func setActive(e *Engine, who Owner, tmpl *Template, energy ...*Instance) *ActivePokemon {
	pk := NewActivePokemon(instance(tmpl))
	pk.Energy = append(pk.Energy, energy...)
	e.State.PlayerState(who).Active = pk
	return pk
}

func addBench(e *Engine, who Owner, tmpl *Template) *ActivePokemon {
	pk := NewActivePokemon(instance(tmpl))
	ps := e.State.PlayerState(who)
	ps.Bench = append(ps.Bench, pk)
	return pk
}

func addToHand(e *Engine, who Owner, tmpl *Template) *Instance {
	c := instance(tmpl)
	ps := e.State.PlayerState(who)
	ps.Hand = append(ps.Hand, c)
	return c
}

func setPrizes(e *Engine, who Owner, n int) {
	e.State.PlayerState(who).Prizes = energies(Fire, n)
}

func dumpLog(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}

func containsCard(cards []*Instance, c *Instance) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
