package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/log"
)

const (
	ConfusionSelfDamage = 30
	ResistanceReduction = 30
	WeaknessMultiplier  = 2
)

// hit is the outcome of effect resolution, before weakness and resistance.
type hit struct {
	damage          int
	applyWeakness   bool
	applyResistance bool

	oppBenchDamage int
	ownBenchDamage int
	recoil         int
}

// Attack resolves who's active Pokemon using attack index. The turn moves to
// the between-turns phase on success, including fizzles.
func (e *Engine) Attack(who Owner, index int) bool {
	if !e.checkTurn(who) {
		return false
	}
	gs := e.State
	ps := gs.PlayerState(who)
	opp := gs.Opponent(who)
	attacker := ps.Active

	attacks := attacker.Template().Attacks
	if index < 0 || index >= len(attacks) {
		return e.illegal(who, "%s has no attack #%d", attacker.Name(), index+1)
	}
	atk := attacks[index]
	if attacker.Status == StatusAsleep || attacker.Status == StatusParalyzed {
		return e.illegal(who, "%s can't attack while %s", attacker.Name(), attacker.Status)
	}
	if !attacker.CanUseAttack(atk) {
		return e.illegal(who, "not enough energy for %s", atk.Name)
	}

	if attacker.Status == StatusConfused && !e.flip(who, "confusion") {
		e.log(log.NewFizzleEvent(gs.TurnNumber, e.phase(), int(who), attacker.Name(), "hurt itself in confusion"))
		e.damage(who, attacker, ConfusionSelfDamage)
		e.sweepKnockouts(who)
		e.afterAttack()
		return true
	}
	if attacker.Smokescreened && !e.flip(who, "smokescreen") {
		e.log(log.NewFizzleEvent(gs.TurnNumber, e.phase(), int(who), attacker.Name(), "missed because of Smokescreen"))
		e.afterAttack()
		return true
	}

	e.log(log.NewAttackEvent(gs.TurnNumber, e.phase(), int(who), attacker.Name(), atk.Name))
	h := e.resolveAttackEffect(who, atk)

	if defender := opp.Active; defender != nil {
		dmg := h.damage
		if defender.Invulnerable {
			e.log(log.NewTurnEffectEvent(gs.TurnNumber, e.phase(), int(opp.Owner), fmt.Sprintf("%s is protected", defender.Name())))
			dmg = 0
		}
		dmg = applyWeaknessResistance(dmg, attacker.Template().Type, defender.Template(), h.applyWeakness, h.applyResistance)
		dmg -= defender.DamageReduction
		if dmg > 0 {
			e.damage(opp.Owner, defender, dmg)
		}
	}
	if h.oppBenchDamage > 0 {
		for _, b := range opp.Bench {
			e.damage(opp.Owner, b, h.oppBenchDamage)
		}
	}
	if h.ownBenchDamage > 0 {
		for _, b := range ps.Bench {
			e.damage(who, b, h.ownBenchDamage)
		}
	}
	if h.recoil > 0 {
		e.damage(who, attacker, h.recoil)
	}

	e.sweepKnockouts(who)
	e.afterAttack()
	return true
}

// applyWeaknessResistance doubles for weakness, then subtracts for
// resistance, and never returns a negative amount.
func applyWeaknessResistance(dmg int, attackerType ElementType, defender *Template, weakness, resistance bool) int {
	if weakness && defender.Weakness != TypeNone && defender.Weakness == attackerType {
		dmg *= WeaknessMultiplier
	}
	if resistance && defender.Resistance != TypeNone && defender.Resistance == attackerType {
		dmg -= ResistanceReduction
	}
	return max(dmg, 0)
}

// EffectiveDamage is the damage a plain hit of dmg from attacker would deal
// to defender after weakness and resistance, ignoring coins and protection.
func EffectiveDamage(dmg int, attacker, defender *Template, eff AttackEffect) int {
	weakness, resistance := true, true
	switch eff.(type) {
	case Swift:
		weakness, resistance = false, false
	case IgnoreResistance:
		resistance = false
	}
	return applyWeaknessResistance(dmg, attacker.Type, defender, weakness, resistance)
}

func (e *Engine) afterAttack() {
	if !e.State.GameOver {
		e.State.Phase = PhaseBetweenTurns
	}
}

// resolveAttackEffect applies the side effects of atk and returns the damage
// plan. Every AttackEffect kind must have a case here.
func (e *Engine) resolveAttackEffect(who Owner, atk Attack) hit {
	gs := e.State
	ps := gs.PlayerState(who)
	opp := gs.Opponent(who)
	attacker := ps.Active
	defender := opp.Active
	turn, phase := gs.TurnNumber, e.phase()

	h := hit{damage: atk.Damage, applyWeakness: true, applyResistance: true}

	inflict := func(s StatusCondition) {
		if defender == nil {
			return
		}
		defender.ApplyStatus(s)
		e.log(log.NewStatusEvent(turn, phase, int(opp.Owner), defender.Name(), s.String()))
	}
	discard := func(t ElementType, n int) int {
		removed := attacker.RemoveEnergy(t, n)
		ps.SendToDiscard(removed...)
		for _, c := range removed {
			e.log(log.NewDiscardEvent(turn, phase, int(who), c.Name()))
		}
		return len(removed)
	}
	heal := func(amount int) {
		if healed := attacker.Heal(amount); healed > 0 {
			e.log(log.NewHealEvent(turn, phase, int(who), attacker.Name(), healed))
		}
	}

	switch eff := atk.Effect.(type) {
	case nil:
	case DiscardEnergy:
		discard(eff.Type, eff.Amount)
	case CoinFlipBonus:
		if e.flip(who, atk.Name) {
			h.damage += eff.Bonus
		} else {
			h.recoil += eff.SelfDamageOnTails
		}
	case CoinFlipParalyze:
		if e.flip(who, atk.Name) {
			inflict(StatusParalyzed)
		}
	case CoinFlipConfuse:
		if e.flip(who, atk.Name) {
			inflict(StatusConfused)
		}
	case CoinFlipInvulnerable:
		if e.flip(who, atk.Name) {
			attacker.Invulnerable = true
			e.log(log.NewTurnEffectEvent(turn, phase, int(who),
				fmt.Sprintf("%s is protected during the opponent's next turn", attacker.Name())))
		}
	case Smokescreen:
		if defender != nil {
			defender.Smokescreened = true
			e.log(log.NewTurnEffectEvent(turn, phase, int(who),
				fmt.Sprintf("%s must flip heads to attack next turn", defender.Name())))
		}
	case MultiCoinFlip:
		heads := 0
		for range eff.Flips {
			if e.flip(who, atk.Name) {
				heads++
			}
		}
		h.damage = eff.PerHead * heads
	case BenchDamage:
		h.oppBenchDamage = eff.Amount
	case SelfDamage:
		h.recoil += eff.Amount
	case BlockTrainers:
		gs.TurnEffects[who].OpponentCannotPlayTrainers = true
		e.log(log.NewTurnEffectEvent(turn, phase, int(who),
			fmt.Sprintf("%s can't play Trainer cards next turn", log.PlayerName(int(opp.Owner)))))
	case Swift:
		h.applyWeakness, h.applyResistance = false, false
	case HealSelf:
		heal(eff.Amount)
	case Poison:
		inflict(StatusPoisoned)
	case Sleep:
		inflict(StatusAsleep)
	case SelfDestruct:
		h.recoil += eff.SelfDamage
		h.oppBenchDamage = eff.BenchDamage
		h.ownBenchDamage = eff.BenchDamage
	case DiscardHeal:
		if discard(attacker.Template().Type, eff.Discard) == eff.Discard {
			heal(eff.Amount)
		}
	case IgnoreResistance:
		h.applyResistance = false
	case DreamEater:
		if defender == nil || defender.Status != StatusAsleep {
			h.damage = 0
		}
	case EnergyBonus:
		if defender != nil {
			h.damage += eff.PerEnergy * len(defender.Energy)
		}
	case HalfRemainingHP:
		h.damage = 0
		if defender != nil {
			h.damage = halfRoundedUp(defender.CurrentHP)
		}
	case DamageMinusCounters:
		h.damage = max(0, h.damage-attacker.Damage()/10*10)
	case ReduceDamage:
		attacker.DamageReduction = eff.Amount
		e.log(log.NewTurnEffectEvent(turn, phase, int(who),
			fmt.Sprintf("damage to %s is reduced by %d next turn", attacker.Name(), eff.Amount)))
	case DiscardEnergyInvulnerable:
		if discard(attacker.Template().Type, eff.Discard) == eff.Discard {
			attacker.Invulnerable = true
			e.log(log.NewTurnEffectEvent(turn, phase, int(who),
				fmt.Sprintf("%s is protected during the opponent's next turn", attacker.Name())))
		}
	case Inert:
		e.logger.Debug("attack effect has no engine support", zap.String("attack", atk.Name), zap.String("kind", eff.Kind))
	default:
		panic(fmt.Sprintf("unhandled attack effect %T", eff))
	}
	return h
}

// halfRoundedUp halves hp and rounds up to a whole damage counter.
func halfRoundedUp(hp int) int {
	half := (hp + 1) / 2
	return (half + 9) / 10 * 10
}

// damage applies amount to pk and logs it. Knockouts are resolved later by
// sweepKnockouts so that every hit of an attack lands first.
func (e *Engine) damage(owner Owner, pk *ActivePokemon, amount int) {
	pk.TakeDamage(amount)
	e.log(log.NewDamageEvent(e.State.TurnNumber, e.phase(), int(owner), pk.Name(), amount, pk.CurrentHP))
}
