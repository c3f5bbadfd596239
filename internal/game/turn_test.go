package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/pokecg/internal/log"
)

func TestStartTurn_DrawsOneCard(t *testing.T) {
	e, logger := newTestEngine(t)
	ps := e.State.Players[Player]
	e.State.Phase = PhaseDraw

	require.True(t, e.StartTurn())
	assert.Len(t, ps.Hand, 1)
	assert.Len(t, ps.Deck, 19)
	assert.True(t, e.State.Flags.HasDrawn)
	assert.Equal(t, PhaseMain, e.State.Phase)
	assert.Len(t, logger.EventsOfType(log.EventDraw), 1)
}

func TestStartTurn_DeckOutLoses(t *testing.T) {
	e, logger := newTestEngine(t)
	e.State.Phase = PhaseDraw
	e.State.Players[Player].Deck = nil

	assert.False(t, e.StartTurn())
	assert.True(t, e.State.GameOver)
	assert.Equal(t, CPU, e.State.Winner)
	assert.Equal(t, PhaseGameOver, e.State.Phase)
	require.Len(t, logger.EventsOfType(log.EventWin), 1)
	assert.Contains(t, e.State.Result, "cannot draw")
}

func TestStartTurn_OnlyOncePerTurn(t *testing.T) {
	e, logger := newTestEngine(t)
	ps := e.State.Players[Player]
	e.State.Phase = PhaseDraw

	require.True(t, e.StartTurn())
	assert.False(t, e.StartTurn())
	assert.Len(t, ps.Hand, 1)
	assert.Len(t, ps.Deck, 19)
	assert.Equal(t, PhaseMain, e.State.Phase)
	assert.Equal(t, "the turn has already started", logger.LastEvent().Details)
}

func TestStartTurn_RejectsBeforeSetup(t *testing.T) {
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{EventLog: logger})

	assert.NotPanics(t, func() { assert.False(t, e.StartTurn()) })
	assert.Equal(t, "the game has not been set up", logger.LastEvent().Details)

	e.SetupGame(Fire, Water)
	assert.False(t, e.StartTurn(), "neither side has finished setup")
	assert.Equal(t, "setup is not finished", logger.LastEvent().Details)
	assert.Equal(t, PhaseDraw, e.State.Phase)
}

func TestAttachEnergy_OncePerTurn(t *testing.T) {
	e, logger := newTestEngine(t)
	pk := setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	bench := addBench(e, Player, pokemonTemplate("benched", Fire, 60))
	first := addToHand(e, Player, energyTemplate(Fire))
	second := addToHand(e, Player, energyTemplate(Fire))

	require.True(t, e.AttachEnergy(Player, first.ID, ActiveSlot))
	assert.False(t, e.AttachEnergy(Player, second.ID, Slot(0)))
	assert.Equal(t, []*Instance{first}, pk.Energy)
	assert.Empty(t, bench.Energy)
	assert.Len(t, logger.EventsOfType(log.EventAttachEnergy), 1)
	assert.True(t, containsCard(e.State.Players[Player].Hand, second))
}

func TestAttachEnergy_Rejections(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	setActive(e, CPU, pokemonTemplate("mon", Water, 60))
	energy := addToHand(e, Player, energyTemplate(Fire))
	potion := addToHand(e, Player, trainerTemplate("potion", TrainerItem, Heal{Amount: 30}))

	assert.False(t, e.AttachEnergy(CPU, energy.ID, ActiveSlot), "not the CPU's turn")
	assert.False(t, e.AttachEnergy(Player, potion.ID, ActiveSlot), "not an energy")
	assert.False(t, e.AttachEnergy(Player, energy.ID, Slot(2)), "empty bench slot")
	assert.False(t, e.AttachEnergy(Player, "missing-0", ActiveSlot))
	assert.False(t, e.State.Flags.HasAttachedEnergy)
}

func TestEvolve(t *testing.T) {
	basic := pokemonTemplate("charmander", Fire, 70)
	stage1 := evolutionTemplate("charmeleon", basic, 90)
	other := evolutionTemplate("wartortle", pokemonTemplate("squirtle", Water, 60), 80)

	t.Run("evolves and keeps damage", func(t *testing.T) {
		e, logger := newTestEngine(t)
		pk := setActive(e, Player, basic)
		pk.TakeDamage(30)
		card := addToHand(e, Player, stage1)

		require.True(t, e.EvolvePokemon(Player, card.ID, ActiveSlot))
		assert.Equal(t, "charmeleon", pk.Template().ID)
		assert.Equal(t, 60, pk.CurrentHP)
		assert.Len(t, logger.EventsOfType(log.EventEvolve), 1)
	})

	t.Run("not on the first turn", func(t *testing.T) {
		e, _ := newTestEngine(t)
		e.State.Players[Player].IsFirstTurn = true
		setActive(e, Player, basic)
		card := addToHand(e, Player, stage1)
		assert.False(t, e.EvolvePokemon(Player, card.ID, ActiveSlot))
	})

	t.Run("not a Pokemon placed this turn", func(t *testing.T) {
		e, _ := newTestEngine(t)
		setActive(e, Player, basic)
		benchCard := addToHand(e, Player, basic)
		require.True(t, e.PlayBasicToBench(Player, benchCard.ID))
		card := addToHand(e, Player, stage1)

		assert.False(t, e.EvolvePokemon(Player, card.ID, Slot(0)))
		assert.True(t, e.EvolvePokemon(Player, card.ID, ActiveSlot))
	})

	t.Run("not twice in one turn", func(t *testing.T) {
		e, _ := newTestEngine(t)
		setActive(e, Player, basic)
		stage2 := evolutionTemplate("charizard", stage1, 120)
		stage2.Stage = Stage2
		require.True(t, e.EvolvePokemon(Player, addToHand(e, Player, stage1).ID, ActiveSlot))
		assert.False(t, e.EvolvePokemon(Player, addToHand(e, Player, stage2).ID, ActiveSlot))
	})

	t.Run("wrong line", func(t *testing.T) {
		e, _ := newTestEngine(t)
		setActive(e, Player, basic)
		card := addToHand(e, Player, other)
		assert.False(t, e.EvolvePokemon(Player, card.ID, ActiveSlot))
	})
}

func TestPlayBasicToBench(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	basic := pokemonTemplate("basic", Fire, 50)
	for range MaxBench {
		require.True(t, e.PlayBasicToBench(Player, addToHand(e, Player, basic).ID))
	}
	assert.False(t, e.PlayBasicToBench(Player, addToHand(e, Player, basic).ID), "bench is full")

	evo := addToHand(e, Player, evolutionTemplate("evo", basic, 80))
	e.State.Players[Player].Bench = nil
	assert.False(t, e.PlayBasicToBench(Player, evo.ID), "only Basics")
}

func TestRetreat(t *testing.T) {
	e, logger := newTestEngine(t)
	tmpl := pokemonTemplate("heavy", Fighting, 100)
	tmpl.RetreatCost = 2
	oldest := energies(Fighting, 1)[0]
	middle := energies(Water, 1)[0]
	newest := energies(Fighting, 1)[0]
	active := setActive(e, Player, tmpl, oldest, middle, newest)
	first := addBench(e, Player, pokemonTemplate("first", Fire, 60))
	second := addBench(e, Player, pokemonTemplate("second", Fire, 60))

	require.True(t, e.Retreat(Player, 1))
	ps := e.State.Players[Player]
	assert.Same(t, second, ps.Active)
	assert.Equal(t, []*ActivePokemon{first, active}, ps.Bench)
	assert.Equal(t, []*Instance{newest}, active.Energy)
	assert.Equal(t, []*Instance{oldest, middle}, ps.Discard)
	assert.True(t, e.State.Flags.HasRetreated)
	assert.Len(t, logger.EventsOfType(log.EventRetreat), 1)

	assert.False(t, e.Retreat(Player, 0), "once per turn")
}

func TestRetreat_Rejections(t *testing.T) {
	tmpl := pokemonTemplate("heavy", Fighting, 100)
	tmpl.RetreatCost = 2

	e, _ := newTestEngine(t)
	setActive(e, Player, tmpl, energies(Fighting, 1)...)
	addBench(e, Player, pokemonTemplate("b", Fire, 60))
	assert.False(t, e.Retreat(Player, 0), "not enough energy")

	e, _ = newTestEngine(t)
	pk := setActive(e, Player, pokemonTemplate("light", Fire, 60))
	assert.False(t, e.Retreat(Player, 0), "empty bench")
	addBench(e, Player, pokemonTemplate("b", Fire, 60))
	pk.ApplyStatus(StatusParalyzed)
	assert.False(t, e.Retreat(Player, 0))
	pk.ApplyStatus(StatusConfused)
	assert.True(t, e.Retreat(Player, 0), "confusion doesn't stop retreating")
}

func TestEndTurn_PassesTheTurn(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	setActive(e, CPU, pokemonTemplate("mon", Water, 60))

	require.True(t, e.EndTurn())
	assert.Equal(t, CPU, e.State.CurrentTurn)
	assert.Equal(t, PhaseDraw, e.State.Phase)

	e.State.Phase = PhaseDraw
	assert.False(t, e.EndTurn(), "the draw step must run first")
}

func TestEndTurn_PoisonKnockoutEndsGame(t *testing.T) {
	e, logger := newTestEngine(t)
	setPrizes(e, Player, 1)
	setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	def := setActive(e, CPU, pokemonTemplate("mon", Water, 60))
	def.TakeDamage(50)
	def.ApplyStatus(StatusPoisoned)

	require.True(t, e.EndTurn())
	assert.True(t, e.State.GameOver)
	assert.Equal(t, Player, e.State.Winner)
	assert.Equal(t, Player, e.State.CurrentTurn, "the turn doesn't pass after the game ended")
	assert.Len(t, logger.EventsOfType(log.EventBetweenTurns), 1)
	assert.Len(t, logger.EventsOfType(log.EventKnockout), 1)
}

func TestEndTurn_StatusKnockoutNeedsPromotion(t *testing.T) {
	e, _ := newTestEngine(t, Tails)
	setPrizes(e, Player, 6)
	setActive(e, Player, pokemonTemplate("mon", Fire, 60))
	def := setActive(e, CPU, pokemonTemplate("mon", Water, 60))
	addBench(e, CPU, pokemonTemplate("backup", Water, 60))
	def.TakeDamage(40)
	def.ApplyStatus(StatusBurned)

	require.True(t, e.EndTurn())
	cpu := e.State.Players[CPU]
	assert.False(t, e.State.GameOver)
	assert.True(t, cpu.NeedsPromotion())
	assert.Len(t, e.State.Players[Player].Prizes, 5)

	actions := e.AvailableActions(CPU)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionPromote, actions[0].Type)
	require.True(t, e.Apply(actions[0]))
	assert.Equal(t, "backup", cpu.Active.Name())
}
