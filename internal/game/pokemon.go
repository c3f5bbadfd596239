package game

import "fmt"

// ActivePokemon wraps a Pokemon card while it is in play, in the active slot
// or on the bench.
//
// Invariant: 0 <= CurrentHP <= MaxHP().
type ActivePokemon struct {
	Card        *Instance // current top card
	CurrentHP   int
	Energy      []*Instance // attach order, oldest first
	Status      StatusCondition
	StatusTurns int
	Evolutions  []*Instance // previous stages, oldest first

	// Transient protection and handicaps from the last attack.
	Invulnerable    bool
	Smokescreened   bool
	DamageReduction int
}

// NewActivePokemon puts a Pokemon card into play at full HP.
func NewActivePokemon(card *Instance) *ActivePokemon {
	return &ActivePokemon{Card: card, CurrentHP: card.Template.HP}
}

func (p *ActivePokemon) String() string {
	if p == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (%d/%d HP)", p.Card.Name(), p.CurrentHP, p.MaxHP())
}

// Template returns the current card's template.
func (p *ActivePokemon) Template() *Template {
	return p.Card.Template
}

// Name returns the current card's display name.
func (p *ActivePokemon) Name() string {
	return p.Card.Template.Name
}

func (p *ActivePokemon) MaxHP() int {
	return p.Card.Template.HP
}

// Damage returns the absolute damage taken, MaxHP - CurrentHP.
func (p *ActivePokemon) Damage() int {
	return p.MaxHP() - p.CurrentHP
}

func (p *ActivePokemon) IsKnockedOut() bool {
	return p.CurrentHP <= 0
}

// TakeDamage lowers HP, clamped at 0. Returns true if this knocked the Pokemon out.
func (p *ActivePokemon) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	p.CurrentHP -= amount
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}
	return p.CurrentHP == 0
}

// Heal restores HP, clamped at MaxHP. Returns the amount actually healed.
func (p *ActivePokemon) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := p.CurrentHP
	p.CurrentHP += amount
	if p.CurrentHP > p.MaxHP() {
		p.CurrentHP = p.MaxHP()
	}
	return p.CurrentHP - before
}

func (p *ActivePokemon) AttachEnergy(energy *Instance) {
	p.Energy = append(p.Energy, energy)
}

// RemoveEnergy detaches up to count energy of type t, oldest first.
// Colorless matches any type. May return fewer than requested.
func (p *ActivePokemon) RemoveEnergy(t ElementType, count int) []*Instance {
	var removed []*Instance
	kept := p.Energy[:0:0]
	for _, e := range p.Energy {
		if len(removed) < count && (t == Colorless || e.Template.Type == t) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	p.Energy = kept
	return removed
}

// CountEnergy counts attached energy of type t. Colorless counts everything.
func (p *ActivePokemon) CountEnergy(t ElementType) int {
	if t == Colorless {
		return len(p.Energy)
	}
	n := 0
	for _, e := range p.Energy {
		if e.Template.Type == t {
			n++
		}
	}
	return n
}

// CanUseAttack reports whether the attack's cost is covered and the
// Pokemon is able to act.
func (p *ActivePokemon) CanUseAttack(a Attack) bool {
	if p.Status == StatusAsleep || p.Status == StatusParalyzed {
		return false
	}
	return MissingEnergy(p.Energy, a.Cost) == 0
}

// UsableAttacks returns the indices of attacks CanUseAttack allows.
func (p *ActivePokemon) UsableAttacks() []int {
	var usable []int
	for i, a := range p.Template().Attacks {
		if p.CanUseAttack(a) {
			usable = append(usable, i)
		}
	}
	return usable
}

// EvolveTo places card on top. Absolute damage carries over, but the result
// never drops below 1 HP. Status and transient flags are cleared.
func (p *ActivePokemon) EvolveTo(card *Instance) {
	damage := p.Damage()
	p.Evolutions = append(p.Evolutions, p.Card)
	p.Card = card
	p.CurrentHP = max(1, p.MaxHP()-damage)
	p.Status = StatusNone
	p.StatusTurns = 0
	p.Invulnerable = false
	p.Smokescreened = false
	p.DamageReduction = 0
}

// ApplyStatus overwrites the current status condition.
func (p *ActivePokemon) ApplyStatus(s StatusCondition) {
	p.Status = s
	p.StatusTurns = 0
}

// Cards returns every card that makes up this Pokemon in play: evolution
// history, the current card, then attached energy.
func (p *ActivePokemon) Cards() []*Instance {
	cards := make([]*Instance, 0, len(p.Evolutions)+1+len(p.Energy))
	cards = append(cards, p.Evolutions...)
	cards = append(cards, p.Card)
	cards = append(cards, p.Energy...)
	return cards
}

// BetweenTurnsReport describes what status processing did to one Pokemon.
type BetweenTurnsReport struct {
	PoisonDamage     int
	BurnDamage       int
	BurnAvoided      bool
	ParalysisCleared bool
	WokeUp           bool
	StillAsleep      bool
	KnockedOut       bool
}

// ProcessBetweenTurns applies status upkeep at the end of a turn. It runs for
// both active Pokemon after every turn; ownersTurn is true when the turn that
// just ended belonged to this Pokemon's owner.
//
// Poison and burn tick every turn and sleep rolls every turn. Paralysis and
// smokescreen cover their owner's next turn, so they expire when that turn
// ends. Invulnerability and damage reduction cover the opponent's turn and
// expire when it ends.
//
// This is not a blanket clear after one tick: clearing paralysis,
// invulnerability and smokescreen on every call would expire them before the
// turn they are meant to affect.
func (p *ActivePokemon) ProcessBetweenTurns(coin *Coin, ownersTurn bool) BetweenTurnsReport {
	var r BetweenTurnsReport

	switch p.Status {
	case StatusPoisoned:
		r.PoisonDamage = 10
		r.KnockedOut = p.TakeDamage(10)
	case StatusBurned:
		if coin.Flip("burn") {
			r.BurnAvoided = true
		} else {
			r.BurnDamage = 20
			r.KnockedOut = p.TakeDamage(20)
		}
	case StatusParalyzed:
		if ownersTurn {
			p.StatusTurns++
			if p.StatusTurns >= 1 {
				p.Status = StatusNone
				p.StatusTurns = 0
				r.ParalysisCleared = true
			}
		}
	case StatusAsleep:
		if coin.Flip("wake up") {
			p.Status = StatusNone
			r.WokeUp = true
		} else {
			r.StillAsleep = true
		}
	}

	if ownersTurn {
		p.Smokescreened = false
	} else {
		p.Invulnerable = false
		p.DamageReduction = 0
	}
	return r
}
