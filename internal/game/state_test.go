package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/peterkuimelis/pokecg/internal/log"
)

func TestSwitchTurn_Bookkeeping(t *testing.T) {
	logger := log.NewMemoryLogger()
	gs := NewGameState(logger)
	gs.CurrentTurn = Player
	gs.Phase = PhaseBetweenTurns
	gs.Flags = TurnFlags{HasDrawn: true, HasAttachedEnergy: true, HasPlayedSupporter: true, HasRetreated: true}
	gs.Players[Player].PlayedThisTurn["pikachu-0"] = true
	gs.TurnEffects[CPU].OpponentCannotPlayTrainers = true

	gs.SwitchTurn()

	assert.Equal(t, CPU, gs.CurrentTurn)
	assert.Equal(t, 1, gs.TurnNumber, "turn number only moves when the player is up again")
	assert.Equal(t, PhaseDraw, gs.Phase)
	assert.Equal(t, TurnFlags{}, gs.Flags)
	assert.Empty(t, gs.Players[Player].PlayedThisTurn)
	assert.False(t, gs.Players[Player].IsFirstTurn)
	assert.True(t, gs.Players[CPU].IsFirstTurn)
	assert.False(t, gs.TurnEffects[CPU].OpponentCannotPlayTrainers, "the new turn player's effects expire")

	gs.SwitchTurn()
	assert.Equal(t, Player, gs.CurrentTurn)
	assert.Equal(t, 2, gs.TurnNumber)
	assert.Len(t, logger.EventsOfType(log.EventNewTurn), 2)
}

// Every per-turn flag starts false after a switch and can only be spent once.
func TestTurnFlags_SingleUsePerTurn(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e, _ := newTestEngine(t)
		e.State.Phase = PhaseDraw
		tmpl := pokemonTemplate("mon", Fire, 100)
		setActive(e, Player, tmpl, energies(Colorless, 3)...)
		setActive(e, CPU, tmpl, energies(Colorless, 3)...)
		for _, who := range []Owner{Player, CPU} {
			addBench(e, who, tmpl)
			addBench(e, who, tmpl)
		}

		turns := rapid.IntRange(1, 6).Draw(rt, "turns")
		for range turns {
			who := e.State.CurrentTurn
			require.True(rt, e.StartTurn())
			attached, retreated, supported := 0, 0, 0

			steps := rapid.IntRange(0, 8).Draw(rt, "steps")
			for range steps {
				switch rapid.IntRange(0, 2).Draw(rt, "kind") {
				case 0:
					if e.AttachEnergy(who, addToHand(e, who, energyTemplate(Fire)).ID, ActiveSlot) {
						attached++
					}
				case 1:
					if e.Retreat(who, 0) {
						retreated++
					}
				case 2:
					card := addToHand(e, who, trainerTemplate("research", TrainerSupporter, RetrieveEnergy{Amount: 1}))
					if e.PlayTrainer(who, card.ID, ActiveSlot) {
						supported++
					}
				}
			}
			assert.LessOrEqual(rt, attached, 1)
			assert.LessOrEqual(rt, retreated, 1)
			assert.LessOrEqual(rt, supported, 1)
			assert.Equal(rt, attached == 1, e.State.Flags.HasAttachedEnergy)
			assert.Equal(rt, retreated == 1, e.State.Flags.HasRetreated)
			assert.Equal(rt, supported == 1, e.State.Flags.HasPlayedSupporter)
			assert.True(rt, e.State.Flags.HasDrawn)

			require.True(rt, e.EndTurn())
			assert.Equal(rt, TurnFlags{}, e.State.Flags)
		}
	})
}

func TestPlayerState_Helpers(t *testing.T) {
	ps := newPlayerState(Player)
	basic := pokemonTemplate("mon", Fire, 50)
	ps.Deck = energies(Water, 2)
	top := ps.Deck[1]

	assert.Same(t, top, ps.DrawCard())
	assert.Len(t, ps.Deck, 1)
	assert.False(t, ps.HasBasicInHand())

	c := instance(basic)
	ps.Hand = append(ps.Hand, c)
	assert.True(t, ps.HasBasicInHand())
	got, ok := ps.HandCard(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Same(t, c, ps.RemoveFromHand(c.ID))
	assert.Nil(t, ps.RemoveFromHand(c.ID))

	assert.False(t, ps.HasPokemonInPlay())
	ps.Bench = []*ActivePokemon{NewActivePokemon(c)}
	assert.True(t, ps.NeedsPromotion())
	assert.Nil(t, ps.InPlay(Slot(3)))
	assert.NotNil(t, ps.InPlay(0))
}
