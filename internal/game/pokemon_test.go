package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestActivePokemon_HPStaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(10, 340).Draw(rt, "maxHP")
		pk := NewActivePokemon(instance(pokemonTemplate("mon", Fire, maxHP)))
		coin := NewCoin(NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil)

		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 40).Draw(rt, "ops")
		for i, op := range ops {
			amount := rapid.IntRange(-50, 400).Draw(rt, "amount")
			switch op {
			case 0:
				pk.TakeDamage(amount)
			case 1:
				pk.Heal(amount)
			case 2:
				pk.ApplyStatus(StatusCondition(rapid.IntRange(0, 5).Draw(rt, "status")))
				pk.ProcessBetweenTurns(coin, i%2 == 0)
			case 3:
				pk.EvolveTo(instance(pokemonTemplate("evo", Fire, rapid.IntRange(10, 340).Draw(rt, "evoHP"))))
			}
			if pk.CurrentHP < 0 || pk.CurrentHP > pk.MaxHP() {
				rt.Fatalf("HP %d outside [0, %d] after op %d", pk.CurrentHP, pk.MaxHP(), op)
			}
			assert.Equal(rt, pk.MaxHP()-pk.CurrentHP, pk.Damage())
		}
	})
}

func TestActivePokemon_TakeDamageReportsKnockout(t *testing.T) {
	pk := NewActivePokemon(instance(pokemonTemplate("mon", Water, 60)))
	assert.False(t, pk.TakeDamage(50))
	assert.Equal(t, 10, pk.CurrentHP)
	assert.True(t, pk.TakeDamage(30))
	assert.Equal(t, 0, pk.CurrentHP)
}

func TestActivePokemon_HealClampsAtMax(t *testing.T) {
	pk := NewActivePokemon(instance(pokemonTemplate("mon", Water, 60)))
	pk.TakeDamage(20)
	assert.Equal(t, 20, pk.Heal(30))
	assert.Equal(t, 60, pk.CurrentHP)
}

func TestActivePokemon_EvolutionPreservesDamage(t *testing.T) {
	basic := pokemonTemplate("charmander", Fire, 70)
	stage1 := evolutionTemplate("charmeleon", basic, 90)

	pk := NewActivePokemon(instance(basic))
	pk.TakeDamage(30)
	require.Equal(t, 40, pk.CurrentHP)
	pk.ApplyStatus(StatusPoisoned)
	pk.Invulnerable = true
	pk.Smokescreened = true

	before := pk.Card
	pk.EvolveTo(instance(stage1))

	assert.Equal(t, 90, pk.MaxHP())
	assert.Equal(t, 60, pk.CurrentHP)
	assert.Equal(t, StatusNone, pk.Status)
	assert.False(t, pk.Invulnerable)
	assert.False(t, pk.Smokescreened)
	assert.Equal(t, []*Instance{before}, pk.Evolutions)
}

func TestActivePokemon_EvolutionNeverKnocksOut(t *testing.T) {
	basic := pokemonTemplate("big", Fire, 70)
	tiny := evolutionTemplate("tiny", basic, 20)

	pk := NewActivePokemon(instance(basic))
	pk.TakeDamage(30)
	pk.EvolveTo(instance(tiny))

	assert.Equal(t, 1, pk.CurrentHP)
	assert.False(t, pk.IsKnockedOut())
}

func TestActivePokemon_RemoveEnergyOldestFirst(t *testing.T) {
	fire := energies(Fire, 2)
	water := energies(Water, 2)
	pk := NewActivePokemon(instance(pokemonTemplate("mon", Fire, 60)))
	for _, e := range []*Instance{fire[0], water[0], fire[1], water[1]} {
		pk.AttachEnergy(e)
	}

	removed := pk.RemoveEnergy(Water, 1)
	assert.Equal(t, []*Instance{water[0]}, removed)

	// Colorless takes any type, oldest first.
	removed = pk.RemoveEnergy(Colorless, 2)
	assert.Equal(t, []*Instance{fire[0], fire[1]}, removed)

	// Asking for more than attached returns what is there.
	removed = pk.RemoveEnergy(Fire, 3)
	assert.Empty(t, removed)
	assert.Equal(t, []*Instance{water[1]}, pk.Energy)
}

func TestActivePokemon_CountEnergy(t *testing.T) {
	pk := NewActivePokemon(instance(pokemonTemplate("mon", Fire, 60)))
	pk.Energy = append(energies(Fire, 2), energies(Grass, 1)...)
	assert.Equal(t, 2, pk.CountEnergy(Fire))
	assert.Equal(t, 0, pk.CountEnergy(Water))
	assert.Equal(t, 3, pk.CountEnergy(Colorless))
}

func TestActivePokemon_StatusBlocksAttacks(t *testing.T) {
	tmpl := pokemonTemplate("mon", Fire, 60, attack("Ember", 30, nil, Fire))
	pk := NewActivePokemon(instance(tmpl))
	pk.AttachEnergy(energies(Fire, 1)[0])
	require.Equal(t, []int{0}, pk.UsableAttacks())

	for _, s := range []StatusCondition{StatusAsleep, StatusParalyzed} {
		pk.ApplyStatus(s)
		assert.Empty(t, pk.UsableAttacks(), s.String())
	}
	for _, s := range []StatusCondition{StatusPoisoned, StatusBurned, StatusConfused} {
		pk.ApplyStatus(s)
		assert.Equal(t, []int{0}, pk.UsableAttacks(), s.String())
	}
}

func TestActivePokemon_ApplyStatusOverwrites(t *testing.T) {
	pk := NewActivePokemon(instance(pokemonTemplate("mon", Fire, 60)))
	pk.ApplyStatus(StatusPoisoned)
	pk.ApplyStatus(StatusBurned)
	assert.Equal(t, StatusBurned, pk.Status)
}

func TestProcessBetweenTurns(t *testing.T) {
	tmpl := pokemonTemplate("mon", Fire, 60)

	t.Run("poison always hits", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.ApplyStatus(StatusPoisoned)
		r := pk.ProcessBetweenTurns(NewCoin(NewScriptedSource(nil), nil), false)
		assert.Equal(t, 10, r.PoisonDamage)
		assert.Equal(t, 50, pk.CurrentHP)
		assert.Equal(t, StatusPoisoned, pk.Status)
	})

	t.Run("burn hits on tails only", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.ApplyStatus(StatusBurned)
		coin := NewCoin(NewScriptedSource(nil, Heads, Tails), nil)

		r := pk.ProcessBetweenTurns(coin, true)
		assert.True(t, r.BurnAvoided)
		assert.Equal(t, 60, pk.CurrentHP)

		r = pk.ProcessBetweenTurns(coin, true)
		assert.Equal(t, 20, r.BurnDamage)
		assert.Equal(t, 40, pk.CurrentHP)
	})

	t.Run("poison can knock out", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.TakeDamage(50)
		pk.ApplyStatus(StatusPoisoned)
		r := pk.ProcessBetweenTurns(NewCoin(NewScriptedSource(nil), nil), true)
		assert.True(t, r.KnockedOut)
	})

	t.Run("sleep wakes on heads", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.ApplyStatus(StatusAsleep)
		coin := NewCoin(NewScriptedSource(nil, Tails, Heads), nil)

		r := pk.ProcessBetweenTurns(coin, false)
		assert.True(t, r.StillAsleep)
		assert.Equal(t, StatusAsleep, pk.Status)

		r = pk.ProcessBetweenTurns(coin, true)
		assert.True(t, r.WokeUp)
		assert.Equal(t, StatusNone, pk.Status)
	})

	t.Run("paralysis lasts through the owner's next turn", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.ApplyStatus(StatusParalyzed)
		coin := NewCoin(NewScriptedSource(nil), nil)

		// End of the attacker's turn: still paralyzed for the owner's turn.
		pk.ProcessBetweenTurns(coin, false)
		assert.Equal(t, StatusParalyzed, pk.Status)

		r := pk.ProcessBetweenTurns(coin, true)
		assert.True(t, r.ParalysisCleared)
		assert.Equal(t, StatusNone, pk.Status)
	})

	t.Run("protection expires after the opponent's turn", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.Invulnerable = true
		pk.DamageReduction = 30
		coin := NewCoin(NewScriptedSource(nil), nil)

		pk.ProcessBetweenTurns(coin, true)
		assert.True(t, pk.Invulnerable)
		assert.Equal(t, 30, pk.DamageReduction)

		pk.ProcessBetweenTurns(coin, false)
		assert.False(t, pk.Invulnerable)
		assert.Zero(t, pk.DamageReduction)
	})

	t.Run("smokescreen expires after the owner's turn", func(t *testing.T) {
		pk := NewActivePokemon(instance(tmpl))
		pk.Smokescreened = true
		coin := NewCoin(NewScriptedSource(nil), nil)

		pk.ProcessBetweenTurns(coin, false)
		assert.True(t, pk.Smokescreened)
		pk.ProcessBetweenTurns(coin, true)
		assert.False(t, pk.Smokescreened)
	})
}

func TestActivePokemon_CardsListsEverything(t *testing.T) {
	basic := pokemonTemplate("a", Fire, 50)
	evo := evolutionTemplate("b", basic, 80)
	first := instance(basic)
	pk := NewActivePokemon(first)
	e := energies(Fire, 2)
	pk.Energy = e
	top := instance(evo)
	pk.EvolveTo(top)

	assert.Equal(t, []*Instance{first, top, e[0], e[1]}, pk.Cards())
}
