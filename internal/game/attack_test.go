package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/peterkuimelis/pokecg/internal/log"
)

func TestWeaknessAndResistance(t *testing.T) {
	fireMon := pokemonTemplate("fire-mon", Fire, 100)

	plain := pokemonTemplate("plain", Grass, 200)
	weak := pokemonTemplate("weak", Grass, 200)
	weak.Weakness = Fire
	resistant := pokemonTemplate("resistant", Grass, 200)
	resistant.Resistance = Fire
	both := pokemonTemplate("both", Grass, 200)
	both.Weakness = Fire
	both.Resistance = Fire

	tests := []struct {
		name     string
		defender *Template
		eff      AttackEffect
		want     int
	}{
		{"plain", plain, nil, 50},
		{"weakness doubles", weak, nil, 100},
		{"resistance subtracts 30", resistant, nil, 20},
		{"weakness then resistance", both, nil, 70},
		{"swift ignores weakness", weak, Swift{}, 50},
		{"swift ignores resistance", resistant, Swift{}, 50},
		{"ignore resistance keeps weakness", both, IgnoreResistance{}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveDamage(50, fireMon, tt.defender, tt.eff))

			e, logger := newTestEngine(t)
			setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Hit", 50, tt.eff)))
			def := setActive(e, CPU, tt.defender)
			require.True(t, e.Attack(Player, 0))
			assert.Equal(t, tt.want, def.Damage())
			if t.Failed() {
				dumpLog(t, logger)
			}
		})
	}
}

func TestResistanceNeverHeals(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Poke", 10, nil)))
	tough := pokemonTemplate("tough", Water, 100)
	tough.Resistance = Fire
	def := setActive(e, CPU, tough)
	def.TakeDamage(40)

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 60, def.CurrentHP)
}

func TestAttack_RejectsWithoutEnergy(t *testing.T) {
	e, logger := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Flame", 50, nil, Fire, Colorless)), energies(Fire, 1)...)
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	assert.False(t, e.Attack(Player, 0))
	assert.False(t, e.Attack(Player, 5))
	assert.Zero(t, def.Damage())
	assert.Equal(t, PhaseMain, e.State.Phase)
	assert.Len(t, logger.EventsOfType(log.EventIllegal), 2)
}

func TestAttack_MovesToBetweenTurns(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Poke", 10, nil)))
	setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, PhaseBetweenTurns, e.State.Phase)
	assert.False(t, e.Attack(Player, 0), "only one attack per turn")
}

func TestMultiCoinFlip_UsesHeadsCount(t *testing.T) {
	e, logger := newTestEngine(t, Heads, Heads, Tails)
	barrage := attack("Barrage", 20, MultiCoinFlip{Flips: 3, PerHead: 20})
	setActive(e, Player, pokemonTemplate("attacker", Colorless, 100, barrage))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 40, def.Damage())
	assert.Len(t, logger.EventsOfType(log.EventCoinFlip), 3)
}

func TestMultiCoinFlip_AllTailsDealsNothing(t *testing.T) {
	e, _ := newTestEngine(t, Tails, Tails)
	setActive(e, Player, pokemonTemplate("attacker", Colorless, 100, attack("Double Slap", 30, MultiCoinFlip{Flips: 2, PerHead: 30})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Zero(t, def.Damage())
}

func TestConfusion_TailsHurtsSelf(t *testing.T) {
	e, logger := newTestEngine(t, Tails)
	att := setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Hit", 50, nil)))
	att.ApplyStatus(StatusConfused)
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 30, att.Damage())
	assert.Zero(t, def.Damage())
	assert.Equal(t, PhaseBetweenTurns, e.State.Phase)
	assert.Len(t, logger.EventsOfType(log.EventFizzle), 1)
	assert.Empty(t, logger.EventsOfType(log.EventAttack))
}

func TestConfusion_HeadsAttacksNormally(t *testing.T) {
	e, _ := newTestEngine(t, Heads)
	att := setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Hit", 50, nil)))
	att.ApplyStatus(StatusConfused)
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Zero(t, att.Damage())
	assert.Equal(t, 50, def.Damage())
}

func TestSmokescreen(t *testing.T) {
	// Player's Smokescreen, then CPU attacks next turn and flips tails.
	e, logger := newTestEngine(t, Tails)
	smoke := attack("Smokescreen", 10, Smokescreen{})
	setActive(e, Player, pokemonTemplate("koffing", Grass, 100, smoke))
	cpuMon := setActive(e, CPU, pokemonTemplate("defender", Water, 100, attack("Splash", 40, nil)))

	require.True(t, e.Attack(Player, 0))
	require.True(t, cpuMon.Smokescreened)
	require.True(t, e.EndTurn())
	require.True(t, cpuMon.Smokescreened, "smokescreen survives until the CPU's own turn ends")

	require.True(t, e.StartTurn())
	require.True(t, e.Attack(CPU, 0))
	assert.Zero(t, e.State.Players[Player].Active.Damage(), "tails: the attack misses")
	assert.Len(t, logger.EventsOfType(log.EventFizzle), 1)

	require.True(t, e.EndTurn())
	assert.False(t, cpuMon.Smokescreened)
}

func TestInvulnerable_BlocksDamageButNotEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("attacker", Grass, 100, attack("Poison Sting", 30, Poison{})))
	def := setActive(e, CPU, pokemonTemplate("defender", Psychic, 100))
	def.Invulnerable = true

	require.True(t, e.Attack(Player, 0))
	assert.Zero(t, def.Damage())
	assert.Equal(t, StatusPoisoned, def.Status)
}

func TestCoinFlipInvulnerable_ProtectsDuringOpponentsTurn(t *testing.T) {
	e, _ := newTestEngine(t, Heads)
	agility := attack("Agility", 20, CoinFlipInvulnerable{})
	att := setActive(e, Player, pokemonTemplate("raichu", Electric, 100, agility))
	setActive(e, CPU, pokemonTemplate("defender", Water, 100, attack("Splash", 40, nil)))

	require.True(t, e.Attack(Player, 0))
	require.True(t, e.EndTurn())
	require.True(t, att.Invulnerable)

	require.True(t, e.StartTurn())
	require.True(t, e.Attack(CPU, 0))
	assert.Zero(t, att.Damage())

	require.True(t, e.EndTurn())
	assert.False(t, att.Invulnerable)
}

func TestReduceDamage(t *testing.T) {
	e, _ := newTestEngine(t)
	att := setActive(e, Player, pokemonTemplate("onix", Fighting, 100, attack("Harden", 0, ReduceDamage{Amount: 30})))
	setActive(e, CPU, pokemonTemplate("defender", Water, 100, attack("Splash", 40, nil)))

	require.True(t, e.Attack(Player, 0))
	require.True(t, e.EndTurn())
	require.True(t, e.StartTurn())
	require.True(t, e.Attack(CPU, 0))
	assert.Equal(t, 10, att.Damage())
}

func TestCoinFlipBonus(t *testing.T) {
	punch := attack("Thunderpunch", 30, CoinFlipBonus{Bonus: 10, SelfDamageOnTails: 10})

	e, _ := newTestEngine(t, Heads)
	att := setActive(e, Player, pokemonTemplate("electabuzz", Electric, 70, punch))
	def := setActive(e, CPU, pokemonTemplate("defender", Grass, 100))
	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 40, def.Damage())
	assert.Zero(t, att.Damage())

	e, _ = newTestEngine(t, Tails)
	att = setActive(e, Player, pokemonTemplate("electabuzz", Electric, 70, punch))
	def = setActive(e, CPU, pokemonTemplate("defender", Grass, 100))
	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 30, def.Damage())
	assert.Equal(t, 10, att.Damage())
}

func TestCoinFlipStatus(t *testing.T) {
	e, _ := newTestEngine(t, Heads, Tails)
	setActive(e, Player, pokemonTemplate("attacker", Electric, 100,
		attack("Thunder Wave", 10, CoinFlipParalyze{}),
		attack("Supersonic", 0, CoinFlipConfuse{})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, StatusParalyzed, def.Status)

	e.State.Phase = PhaseMain
	require.True(t, e.Attack(Player, 1))
	assert.Equal(t, StatusParalyzed, def.Status, "tails leaves the status alone")
}

func TestBenchDamageAndRecoil(t *testing.T) {
	e, _ := newTestEngine(t)
	blizzard := attack("Blizzard", 50, BenchDamage{Amount: 10})
	att := setActive(e, Player, pokemonTemplate("lapras", Water, 100, blizzard, attack("Take Down", 40, SelfDamage{Amount: 20})))
	addBench(e, Player, pokemonTemplate("own-bench", Water, 60))
	setActive(e, CPU, pokemonTemplate("defender", Fire, 200))
	b1 := addBench(e, CPU, pokemonTemplate("b1", Fire, 60))
	b2 := addBench(e, CPU, pokemonTemplate("b2", Fire, 60))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 10, b1.Damage())
	assert.Equal(t, 10, b2.Damage())
	assert.Zero(t, e.State.Players[Player].Bench[0].Damage())

	e.State.Phase = PhaseMain
	require.True(t, e.Attack(Player, 1))
	assert.Equal(t, 20, att.Damage())
}

func TestSelfDestruct_HitsBothBenches(t *testing.T) {
	e, _ := newTestEngine(t)
	setPrizes(e, Player, 6)
	setPrizes(e, CPU, 6)
	boom := attack("Self-Destruct", 100, SelfDestruct{SelfDamage: 100, BenchDamage: 20})
	setActive(e, Player, pokemonTemplate("electrode", Electric, 80, boom))
	own := addBench(e, Player, pokemonTemplate("own", Electric, 60))
	setActive(e, CPU, pokemonTemplate("defender", Water, 200))
	theirs := addBench(e, CPU, pokemonTemplate("theirs", Water, 60))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 20, own.Damage())
	assert.Equal(t, 20, theirs.Damage())

	ps := e.State.Players[Player]
	assert.Nil(t, ps.Active, "Electrode knocked itself out")
	assert.True(t, ps.NeedsPromotion())
	assert.Len(t, e.State.Players[CPU].Prizes, 5)
}

func TestAttack_KnockoutDiscardsAndTakesPrize(t *testing.T) {
	basic := pokemonTemplate("squirtle", Water, 60)
	stage1 := evolutionTemplate("wartortle", basic, 90)

	// knockOut evolves the CPU's active, attaches energy, and knocks it out
	// with a 100 damage attack while the player has prizes left.
	knockOut := func(t *testing.T, prizes int) (*Engine, *log.MemoryLogger, *ActivePokemon, *Instance) {
		e, logger := newTestEngine(t)
		setPrizes(e, Player, prizes)
		setPrizes(e, CPU, 6)
		setActive(e, Player, pokemonTemplate("attacker", Fire, 100, attack("Flamethrower", 100, nil)))
		defender := setActive(e, CPU, basic, energies(Water, 2)...)
		defender.EvolveTo(instance(stage1))
		addBench(e, CPU, pokemonTemplate("backup", Water, 60))
		prize := e.State.Players[Player].Prizes[prizes-1]

		require.True(t, e.Attack(Player, 0))
		return e, logger, defender, prize
	}

	t.Run("cards go to the discard pile", func(t *testing.T) {
		e, logger, defender, prize := knockOut(t, 6)
		cpu, player := e.State.Players[CPU], e.State.Players[Player]

		assert.Nil(t, cpu.Active)
		assert.True(t, cpu.NeedsPromotion())
		require.Len(t, cpu.Discard, 4, "stage 1, basic and two energy")
		for _, c := range defender.Cards() {
			assert.True(t, containsCard(cpu.Discard, c), "%s is in the discard pile", c.Name())
		}
		assert.Len(t, player.Prizes, 5)
		assert.True(t, containsCard(player.Hand, prize), "the taken prize goes to hand")
		assert.False(t, containsCard(player.Prizes, prize))
		assert.Len(t, logger.EventsOfType(log.EventKnockout), 1)
		assert.Len(t, logger.EventsOfType(log.EventPrizeTaken), 1)
		assert.False(t, e.State.GameOver)
	})

	t.Run("last prize wins", func(t *testing.T) {
		e, logger, _, prize := knockOut(t, 1)
		player := e.State.Players[Player]

		assert.Empty(t, player.Prizes)
		assert.True(t, containsCard(player.Hand, prize))
		assert.True(t, e.State.GameOver)
		assert.Equal(t, Player, e.State.Winner)
		assert.Equal(t, PhaseGameOver, e.State.Phase)
		assert.Len(t, logger.EventsOfType(log.EventWin), 1)
	})
}

func TestBlockTrainers_LastsThroughOpponentsTurn(t *testing.T) {
	e, logger := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("attacker", Grass, 100, attack("Ingrain", 10, BlockTrainers{})))
	setActive(e, CPU, pokemonTemplate("defender", Water, 100))
	potion := trainerTemplate("potion", TrainerItem, Heal{Amount: 30})

	require.True(t, e.Attack(Player, 0))
	require.True(t, e.EndTurn())
	require.True(t, e.StartTurn())

	e.State.Players[CPU].Active.TakeDamage(20)
	card := addToHand(e, CPU, potion)
	assert.False(t, e.PlayTrainer(CPU, card.ID, ActiveSlot))
	assert.NotEmpty(t, logger.EventsOfType(log.EventIllegal))
	for _, a := range e.AvailableActions(CPU) {
		assert.NotEqual(t, ActionPlayTrainer, a.Type)
	}

	require.True(t, e.EndTurn())
	require.True(t, e.StartTurn())
	assert.False(t, e.State.TrainersBlocked(CPU), "cleared once the player's next turn starts")
}

func TestDreamEater(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("haunter", Psychic, 100, attack("Dream Eater", 60, DreamEater{})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Zero(t, def.Damage(), "awake defender takes nothing")

	e.State.Phase = PhaseMain
	def.ApplyStatus(StatusAsleep)
	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 60, def.Damage())
}

func TestDamageFormulas(t *testing.T) {
	e, _ := newTestEngine(t)
	att := setActive(e, Player, pokemonTemplate("attacker", Colorless, 100,
		attack("Psychic", 20, EnergyBonus{PerEnergy: 20}),
		attack("Super Fang", 0, HalfRemainingHP{}),
		attack("Karate Chop", 60, DamageMinusCounters{})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 200), energies(Water, 2)...)

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 60, def.Damage(), "20 + 20 per defending energy")

	e.State.Phase = PhaseMain
	def.CurrentHP = 70
	require.True(t, e.Attack(Player, 1))
	assert.Equal(t, 30, def.CurrentHP, "half of 70 rounds up to 40")

	e.State.Phase = PhaseMain
	def.CurrentHP = 200
	att.TakeDamage(40)
	require.True(t, e.Attack(Player, 2))
	assert.Equal(t, 20, def.Damage())
}

func TestDiscardEnergyEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	fire := energies(Fire, 3)
	att := setActive(e, Player, pokemonTemplate("charizard", Fire, 150,
		attack("Fire Spin", 100, DiscardEnergy{Amount: 2, Type: Fire}, Fire, Fire, Fire)), fire...)
	setActive(e, CPU, pokemonTemplate("defender", Water, 200))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, []*Instance{fire[2]}, att.Energy)
	ps := e.State.Players[Player]
	assert.True(t, containsCard(ps.Discard, fire[0]))
	assert.True(t, containsCard(ps.Discard, fire[1]))
}

func TestDiscardHealAndBarrier(t *testing.T) {
	e, _ := newTestEngine(t)
	att := setActive(e, Player, pokemonTemplate("mewtwo", Psychic, 120,
		attack("Recover", 0, DiscardHeal{Discard: 1, Amount: 80}),
		attack("Barrier", 0, DiscardEnergyInvulnerable{Discard: 1})), energies(Psychic, 1)...)
	setActive(e, CPU, pokemonTemplate("defender", Water, 100))
	att.TakeDamage(50)

	require.True(t, e.Attack(Player, 0))
	assert.Zero(t, att.Damage())
	assert.Empty(t, att.Energy)

	e.State.Phase = PhaseMain
	require.True(t, e.Attack(Player, 1))
	assert.False(t, att.Invulnerable, "nothing left to discard")
}

func TestHealSelfAndStatusAttacks(t *testing.T) {
	e, _ := newTestEngine(t)
	att := setActive(e, Player, pokemonTemplate("oddish", Grass, 60,
		attack("Absorb", 10, HealSelf{Amount: 10}),
		attack("Hypnosis", 0, Sleep{})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))
	att.TakeDamage(30)

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 20, att.Damage())
	assert.Equal(t, 10, def.Damage())

	e.State.Phase = PhaseMain
	require.True(t, e.Attack(Player, 1))
	assert.Equal(t, StatusAsleep, def.Status)
}

func TestInertEffectStillDealsDamage(t *testing.T) {
	e, _ := newTestEngine(t)
	setActive(e, Player, pokemonTemplate("alakazam", Psychic, 100, attack("Confuse Ray", 30, Inert{Kind: "damageSwap"})))
	def := setActive(e, CPU, pokemonTemplate("defender", Water, 100))

	require.True(t, e.Attack(Player, 0))
	assert.Equal(t, 30, def.Damage())
}

// Damage never heals and never exceeds the weakness-doubled base.
func TestEffectiveDamage_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dmg := rapid.IntRange(0, 300).Draw(rt, "damage")
		atk := pokemonTemplate("a", rapid.SampledFrom(typedElements).Draw(rt, "attackerType"), 100)
		def := pokemonTemplate("d", Water, 100)
		def.Weakness = rapid.SampledFrom(append([]ElementType{TypeNone}, typedElements...)).Draw(rt, "weakness")
		def.Resistance = rapid.SampledFrom(append([]ElementType{TypeNone}, typedElements...)).Draw(rt, "resistance")

		got := EffectiveDamage(dmg, atk, def, nil)
		assert.GreaterOrEqual(rt, got, 0)
		assert.LessOrEqual(rt, got, dmg*WeaknessMultiplier)
		assert.Equal(rt, dmg, EffectiveDamage(dmg, atk, def, Swift{}))
	})
}
