package cpu

import (
	"fmt"
	"math"
	"slices"

	"github.com/peterkuimelis/pokecg/internal/game"
)

// noise returns uniform noise in [-spread/2, spread/2) where spread shrinks
// to 0 at difficulty 1.
func (a *Agent) noise(scale float64) float64 {
	spread := (1 - a.difficulty) * scale
	return a.rng.Float64()*spread - spread/2
}

func stageBonus(s game.Stage) float64 {
	switch s {
	case game.Stage1:
		return 5
	case game.Stage2:
		return 10
	}
	return 0
}

// scoreEnergyTarget rates pk as the receiver of energy.
func (a *Agent) scoreEnergyTarget(pk *game.ActivePokemon, energy *game.Instance, isActive bool) float64 {
	t := pk.Template()
	score := 0.0
	if t.Type == energy.Template.Type {
		score += 10
	}
	for _, atk := range t.Attacks {
		switch game.MissingEnergy(pk.Energy, atk.Cost) {
		case 1:
			score += 20
		case 2:
			score += 10
		}
	}
	if isActive {
		score += 5
	}
	score += float64(t.HP) / 20
	score += stageBonus(t.Stage)
	return score + a.noise(20)
}

// scoreBenchCandidate rates pk as the next active Pokemon.
func (a *Agent) scoreBenchCandidate(pk *game.ActivePokemon) float64 {
	score := 0.0
	if len(pk.UsableAttacks()) > 0 {
		score += 20
	}
	score += float64(pk.CurrentHP) / 10
	if pk.Status == game.StatusNone {
		score += 10
	}
	score += stageBonus(pk.Template().Stage)
	return score + a.noise(15)
}

// bestBenchIndex returns the highest scoring bench index, or -1.
func (a *Agent) bestBenchIndex(bench []*game.ActivePokemon) int {
	best, bestScore := -1, math.Inf(-1)
	for i, pk := range bench {
		if score := a.scoreBenchCandidate(pk); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// shouldRetreat reports whether the active Pokemon is worth pulling back:
// badly hurt, confused or poisoned, or unable to attack while a benched
// Pokemon can.
func shouldRetreat(ps *game.PlayerState) (string, bool) {
	active := ps.Active
	switch {
	case active.CurrentHP*4 < active.MaxHP():
		return "low HP", true
	case active.Status == game.StatusConfused || active.Status == game.StatusPoisoned:
		return active.Status.String(), true
	}
	if len(active.UsableAttacks()) > 0 {
		return "", false
	}
	for _, b := range ps.Bench {
		if len(b.UsableAttacks()) > 0 {
			return "a benched Pokemon can attack", true
		}
	}
	return "", false
}

// evaluateTrainer decides whether t is worth playing right now.
func (a *Agent) evaluateTrainer(gs *game.GameState, who game.Owner, t *game.Template) (string, bool) {
	ps := gs.PlayerState(who)
	opp := gs.Opponent(who)
	active := ps.Active

	switch eff := t.Effect.(type) {
	case game.Heal:
		return "active is hurt", active != nil && active.Damage() >= 30
	case game.SuperHeal:
		return "active is badly hurt", active != nil && active.Damage() >= 50 &&
			len(active.Energy) > active.Template().RetreatCost && len(active.Energy) >= eff.Discard
	case game.Switch:
		return "active is in trouble", active != nil && len(ps.Bench) > 0 &&
			(float64(active.CurrentHP) < float64(active.MaxHP())*0.3 || active.Status != game.StatusNone)
	case game.DiscardAndDraw:
		return "small hand", len(ps.Hand) <= 3
	case game.SearchPokemon:
		return "bench has room", len(ps.Bench) < 3
	case game.RetrieveEnergy:
		return "energy in discard", slices.ContainsFunc(ps.Discard, func(c *game.Instance) bool {
			return c.Template.IsEnergy()
		})
	case game.ShuffleAndDraw:
		return "hand sizes call for a reshuffle", len(ps.Hand) <= 2 || len(opp.Hand) >= 7
	case game.Gust:
		return "weak target on the opponent's bench", gustTarget(opp) >= 0
	}
	return "", false
}

// gustTarget picks the opponent's weakest benched Pokemon that is hurt or
// has no energy, or -1.
func gustTarget(opp *game.PlayerState) int {
	best := -1
	for i, b := range opp.Bench {
		if b.CurrentHP >= 60 && len(b.Energy) > 0 {
			continue
		}
		if best < 0 || b.CurrentHP < opp.Bench[best].CurrentHP {
			best = i
		}
	}
	return best
}

// trainerAction builds the action for playing c, choosing its target.
func (a *Agent) trainerAction(gs *game.GameState, who game.Owner, c *game.Instance) game.Action {
	ps := gs.PlayerState(who)
	act := game.Action{
		Type: game.ActionPlayTrainer, Player: who, Card: c, Target: game.ActiveSlot, Bench: -1,
		Desc: fmt.Sprintf("Play %s", c.Name()),
	}
	switch c.Template.Effect.(type) {
	case game.Heal, game.SuperHeal:
		most := ps.Active.Damage()
		for i, b := range ps.Bench {
			if b.Damage() > most {
				most = b.Damage()
				act.Target = game.Slot(i)
			}
		}
		act.Desc = fmt.Sprintf("Play %s on %s", c.Name(), ps.InPlay(act.Target).Name())
	case game.Switch:
		act.Bench = a.bestBenchIndex(ps.Bench)
	case game.Gust:
		act.Bench = gustTarget(gs.Opponent(who))
	}
	return act
}

// chooseAttack scores each usable attack: raw damage, +100 for a knockout
// after weakness and resistance (never against an invulnerable defender),
// -10 for recoil, +15 paralyze, +10 confuse.
// With probability 1-difficulty it swaps the best for a random other one.
func (a *Agent) chooseAttack(gs *game.GameState, who game.Owner, usable []int) int {
	attacker := gs.PlayerState(who).Active
	defender := gs.Opponent(who).Active
	attacks := attacker.Template().Attacks

	best, bestScore := usable[0], math.Inf(-1)
	for _, i := range usable {
		score := attackScore(attacker, defender, attacks[i])
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if len(usable) > 1 && a.rng.Float64() > a.difficulty {
		others := slices.DeleteFunc(slices.Clone(usable), func(i int) bool { return i == best })
		best = others[a.rng.IntN(len(others))]
	}
	return best
}

func attackScore(attacker, defender *game.ActivePokemon, atk game.Attack) float64 {
	score := float64(atk.Damage)
	if defender != nil && !defender.Invulnerable {
		dmg := game.EffectiveDamage(atk.Damage, attacker.Template(), defender.Template(), atk.Effect)
		if dmg >= defender.CurrentHP {
			score += 100
		}
	}
	if game.HasSelfDamage(atk.Effect) {
		score -= 10
	}
	switch atk.Effect.(type) {
	case game.CoinFlipParalyze:
		score += 15
	case game.CoinFlipConfuse:
		score += 10
	}
	return score
}
