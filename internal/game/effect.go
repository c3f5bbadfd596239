package game

// AttackEffect is the closed set of attack effects. Resolution is a type
// switch in attack.go; adding a kind without a case there is a bug.
type AttackEffect interface {
	attackEffect()
}

// TrainerEffect is the closed set of trainer effects, resolved in trainer.go.
type TrainerEffect interface {
	trainerEffect()
}

// --- Attack effects ---

// DiscardEnergy discards Amount energy of Type from the attacker after the attack.
type DiscardEnergy struct {
	Amount int
	Type   ElementType
}

// CoinFlipBonus adds Bonus damage on heads. On tails the attacker takes
// SelfDamageOnTails (0 for most cards).
type CoinFlipBonus struct {
	Bonus             int
	SelfDamageOnTails int
}

type CoinFlipParalyze struct{}

type CoinFlipConfuse struct{}

// CoinFlipInvulnerable protects the attacker during the opponent's next turn on heads.
type CoinFlipInvulnerable struct{}

// Smokescreen makes the defender's next attack need a heads to land.
type Smokescreen struct{}

// MultiCoinFlip replaces the base damage with PerHead times the number of heads.
type MultiCoinFlip struct {
	Flips   int
	PerHead int
}

// BenchDamage also hits every benched Pokemon of the defending side.
type BenchDamage struct {
	Amount int
}

// SelfDamage is recoil the attacker takes after damage resolution.
type SelfDamage struct {
	Amount int
}

// BlockTrainers stops the opponent from playing Trainers during their next turn.
type BlockTrainers struct{}

// Swift skips weakness and resistance.
type Swift struct{}

type HealSelf struct {
	Amount int
}

type Poison struct{}

type Sleep struct{}

// SelfDestruct damages the attacker and every benched Pokemon on both sides.
type SelfDestruct struct {
	SelfDamage  int
	BenchDamage int
}

// DiscardHeal discards energy from the attacker and heals it.
type DiscardHeal struct {
	Discard int
	Amount  int
}

type IgnoreResistance struct{}

// DreamEater only deals damage to an Asleep defender.
type DreamEater struct{}

// EnergyBonus adds PerEnergy damage for each energy attached to the defender.
type EnergyBonus struct {
	PerEnergy int
}

// HalfRemainingHP deals half the defender's remaining HP, rounded up.
type HalfRemainingHP struct{}

// DamageMinusCounters deals base damage minus 10 per damage counter on the attacker.
type DamageMinusCounters struct{}

// ReduceDamage lowers damage taken by the attacker during the opponent's next turn.
type ReduceDamage struct {
	Amount int
}

// DiscardEnergyInvulnerable discards energy to become invulnerable for the opponent's next turn.
type DiscardEnergyInvulnerable struct {
	Discard int
}

// Inert is an effect that needs a choice the action API does not model.
// It resolves with no side effect.
type Inert struct {
	Kind string
}

func (DiscardEnergy) attackEffect()             {}
func (CoinFlipBonus) attackEffect()             {}
func (CoinFlipParalyze) attackEffect()          {}
func (CoinFlipConfuse) attackEffect()           {}
func (CoinFlipInvulnerable) attackEffect()      {}
func (Smokescreen) attackEffect()               {}
func (MultiCoinFlip) attackEffect()             {}
func (BenchDamage) attackEffect()               {}
func (SelfDamage) attackEffect()                {}
func (BlockTrainers) attackEffect()             {}
func (Swift) attackEffect()                     {}
func (HealSelf) attackEffect()                  {}
func (Poison) attackEffect()                    {}
func (Sleep) attackEffect()                     {}
func (SelfDestruct) attackEffect()              {}
func (DiscardHeal) attackEffect()               {}
func (IgnoreResistance) attackEffect()          {}
func (DreamEater) attackEffect()                {}
func (EnergyBonus) attackEffect()               {}
func (HalfRemainingHP) attackEffect()           {}
func (DamageMinusCounters) attackEffect()       {}
func (ReduceDamage) attackEffect()              {}
func (DiscardEnergyInvulnerable) attackEffect() {}
func (Inert) attackEffect()                     {}

// --- Trainer effects ---

// Heal restores Amount HP to a damaged Pokemon.
type Heal struct {
	Amount int
}

// SuperHeal discards Discard energy from the target, then heals Amount.
type SuperHeal struct {
	Discard int
	Amount  int
}

// Switch swaps the active Pokemon with a benched one.
type Switch struct{}

// DiscardAndDraw discards the rest of the hand and draws Draw cards.
type DiscardAndDraw struct {
	Draw int
}

// SearchPokemon flips a coin; on heads the first Basic in the deck goes to hand.
type SearchPokemon struct{}

// RetrieveEnergy moves up to Amount energy from the discard pile to hand.
type RetrieveEnergy struct {
	Amount int
}

// ShuffleAndDraw shuffles both hands into their decks; the player draws
// Draw and the opponent draws OpponentDraw.
type ShuffleAndDraw struct {
	Draw         int
	OpponentDraw int
}

// Gust brings an opponent's benched Pokemon to the active slot.
type Gust struct{}

func (Heal) trainerEffect()           {}
func (SuperHeal) trainerEffect()      {}
func (Switch) trainerEffect()         {}
func (DiscardAndDraw) trainerEffect() {}
func (SearchPokemon) trainerEffect()  {}
func (RetrieveEnergy) trainerEffect() {}
func (ShuffleAndDraw) trainerEffect() {}
func (Gust) trainerEffect()           {}

// HasSelfDamage reports whether an attack hurts its user.
func HasSelfDamage(e AttackEffect) bool {
	switch e := e.(type) {
	case SelfDamage:
		return e.Amount > 0
	case SelfDestruct:
		return e.SelfDamage > 0
	case CoinFlipBonus:
		return e.SelfDamageOnTails > 0
	}
	return false
}
