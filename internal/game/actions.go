package game

import (
	"fmt"
	"strings"
)

// --- Action types ---

type ActionType int

const (
	ActionSetActive ActionType = iota
	ActionBenchBasic
	ActionFinishSetup
	ActionAttachEnergy
	ActionEvolve
	ActionPlayTrainer
	ActionRetreat
	ActionAttack
	ActionEndTurn
	ActionPromote
)

func (a ActionType) String() string {
	switch a {
	case ActionSetActive:
		return "Set Active"
	case ActionBenchBasic:
		return "Bench Basic"
	case ActionFinishSetup:
		return "Finish Setup"
	case ActionAttachEnergy:
		return "Attach Energy"
	case ActionEvolve:
		return "Evolve"
	case ActionPlayTrainer:
		return "Play Trainer"
	case ActionRetreat:
		return "Retreat"
	case ActionAttack:
		return "Attack"
	case ActionEndTurn:
		return "End Turn"
	case ActionPromote:
		return "Promote"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details.
type Action struct {
	Type   ActionType
	Player Owner
	Card   *Instance // card played from hand
	Target Slot      // own Pokemon receiving energy, evolution or healing
	Bench  int       // bench index for retreat, promote and switch/gust swaps; -1 if unused
	Attack int       // attack index
	Desc   string    // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// AvailableActions lists every legal action for who right now: setup
// placements, promotions after a knockout, or the main-phase menu. The menu
// always ends with End Turn when who is on turn.
func (e *Engine) AvailableActions(who Owner) []Action {
	gs := e.State
	ps := gs.PlayerState(who)
	if gs.GameOver {
		return nil
	}
	if !ps.Ready {
		return e.SetupActions(who)
	}
	if ps.NeedsPromotion() {
		return promoteActions(ps)
	}
	if who != gs.CurrentTurn {
		return nil
	}
	end := Action{Type: ActionEndTurn, Player: who, Bench: -1, Desc: "End turn"}
	if gs.Phase == PhaseBetweenTurns {
		return []Action{end}
	}
	if gs.Phase != PhaseMain || ps.Active == nil {
		return nil
	}

	var actions []Action
	if e.pendingSwap != NoOwner {
		// A Switch or Gust is half played; only the swap may follow.
		return swapActions(gs.PlayerState(e.pendingSwap), who)
	}

	actions = append(actions, e.benchActions(ps)...)
	actions = append(actions, e.evolveActions(ps)...)
	actions = append(actions, e.attachActions(ps)...)
	actions = append(actions, e.trainerActions(ps)...)
	actions = append(actions, e.retreatActions(ps)...)
	actions = append(actions, attackActions(ps)...)
	return append(actions, end)
}

func promoteActions(ps *PlayerState) []Action {
	var actions []Action
	for i, b := range ps.Bench {
		actions = append(actions, Action{
			Type: ActionPromote, Player: ps.Owner, Bench: i,
			Desc: fmt.Sprintf("Promote %s to active", b),
		})
	}
	return actions
}

func swapActions(side *PlayerState, who Owner) []Action {
	var actions []Action
	for i, b := range side.Bench {
		actions = append(actions, Action{
			Type: ActionPlayTrainer, Player: who, Target: ActiveSlot, Bench: i,
			Desc: fmt.Sprintf("Bring %s to the active spot", b),
		})
	}
	return actions
}

// uniqueByTemplate keeps the first card of each template, so the menu offers
// one choice per distinct card.
func uniqueByTemplate(cards []*Instance, keep func(*Instance) bool) []*Instance {
	seen := make(map[string]bool)
	var out []*Instance
	for _, c := range cards {
		if seen[c.Template.ID] || !keep(c) {
			continue
		}
		seen[c.Template.ID] = true
		out = append(out, c)
	}
	return out
}

func slots(ps *PlayerState) []Slot {
	var s []Slot
	if ps.Active != nil {
		s = append(s, ActiveSlot)
	}
	for i := range ps.Bench {
		s = append(s, Slot(i))
	}
	return s
}

func (e *Engine) benchActions(ps *PlayerState) []Action {
	if len(ps.Bench) >= MaxBench {
		return nil
	}
	var actions []Action
	for _, c := range uniqueByTemplate(ps.Hand, func(c *Instance) bool { return c.Template.IsBasic() }) {
		actions = append(actions, Action{
			Type: ActionBenchBasic, Player: ps.Owner, Card: c, Bench: -1,
			Desc: fmt.Sprintf("Bench %s (%d HP)", c.Name(), c.Template.HP),
		})
	}
	return actions
}

func (e *Engine) evolveActions(ps *PlayerState) []Action {
	if ps.IsFirstTurn {
		return nil
	}
	var actions []Action
	evos := uniqueByTemplate(ps.Hand, func(c *Instance) bool {
		return c.Template.IsPokemon() && c.Template.EvolvesFrom != ""
	})
	for _, c := range evos {
		for _, s := range slots(ps) {
			pk := ps.InPlay(s)
			if pk.Template().ID != c.Template.EvolvesFrom || ps.PlayedThisTurn[pk.Card.ID] {
				continue
			}
			actions = append(actions, Action{
				Type: ActionEvolve, Player: ps.Owner, Card: c, Target: s, Bench: -1,
				Desc: fmt.Sprintf("Evolve %s (%s) into %s", pk.Name(), s, c.Name()),
			})
		}
	}
	return actions
}

func (e *Engine) attachActions(ps *PlayerState) []Action {
	if e.State.Flags.HasAttachedEnergy {
		return nil
	}
	var actions []Action
	for _, c := range uniqueByTemplate(ps.Hand, func(c *Instance) bool { return c.Template.IsEnergy() }) {
		for _, s := range slots(ps) {
			actions = append(actions, Action{
				Type: ActionAttachEnergy, Player: ps.Owner, Card: c, Target: s, Bench: -1,
				Desc: fmt.Sprintf("Attach %s to %s (%s)", c.Name(), ps.InPlay(s).Name(), s),
			})
		}
	}
	return actions
}

func (e *Engine) trainerActions(ps *PlayerState) []Action {
	gs := e.State
	if gs.TrainersBlocked(ps.Owner) {
		return nil
	}
	opp := gs.Opponent(ps.Owner)
	var actions []Action
	trainers := uniqueByTemplate(ps.Hand, func(c *Instance) bool {
		return c.Template.IsTrainer() && !(c.Template.IsSupporter() && gs.Flags.HasPlayedSupporter)
	})
	for _, c := range trainers {
		base := Action{Type: ActionPlayTrainer, Player: ps.Owner, Card: c, Target: ActiveSlot, Bench: -1}
		switch eff := c.Template.Effect.(type) {
		case Heal, SuperHeal:
			need := 0
			if sh, ok := eff.(SuperHeal); ok {
				need = sh.Discard
			}
			for _, s := range slots(ps) {
				pk := ps.InPlay(s)
				if pk.Damage() == 0 || len(pk.Energy) < need {
					continue
				}
				a := base
				a.Target = s
				a.Desc = fmt.Sprintf("Play %s on %s (%d/%d HP)", c.Name(), pk.Name(), pk.CurrentHP, pk.MaxHP())
				actions = append(actions, a)
			}
		case Switch:
			for i, b := range ps.Bench {
				a := base
				a.Bench = i
				a.Desc = fmt.Sprintf("Play %s: switch in %s", c.Name(), b.Name())
				actions = append(actions, a)
			}
		case Gust:
			for i, b := range opp.Bench {
				a := base
				a.Bench = i
				a.Desc = fmt.Sprintf("Play %s: drag out opponent's %s", c.Name(), b.Name())
				actions = append(actions, a)
			}
		default:
			a := base
			a.Desc = fmt.Sprintf("Play %s (%s)", c.Name(), c.Template.Trainer)
			actions = append(actions, a)
		}
	}
	return actions
}

func (e *Engine) retreatActions(ps *PlayerState) []Action {
	active := ps.Active
	if e.State.Flags.HasRetreated || active.Status == StatusAsleep || active.Status == StatusParalyzed ||
		len(active.Energy) < active.Template().RetreatCost {
		return nil
	}
	var actions []Action
	for i, b := range ps.Bench {
		actions = append(actions, Action{
			Type: ActionRetreat, Player: ps.Owner, Bench: i,
			Desc: fmt.Sprintf("Retreat %s for %s (discard %d energy)", active.Name(), b.Name(), active.Template().RetreatCost),
		})
	}
	return actions
}

func attackActions(ps *PlayerState) []Action {
	var actions []Action
	attacks := ps.Active.Template().Attacks
	for _, i := range ps.Active.UsableAttacks() {
		atk := attacks[i]
		actions = append(actions, Action{
			Type: ActionAttack, Player: ps.Owner, Attack: i, Bench: -1,
			Desc: fmt.Sprintf("Attack: %s (%d damage) [%s]", atk.Name, atk.Damage, costString(atk.Cost)),
		})
	}
	return actions
}

func costString(cost []ElementType) string {
	parts := make([]string, len(cost))
	for i, t := range cost {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// Apply performs an action from AvailableActions. A PlayTrainer action with
// a bench index plays Switch or Gust and then completes the swap; with no
// card it completes a swap that is already pending.
func (e *Engine) Apply(a Action) bool {
	who := a.Player
	switch a.Type {
	case ActionSetActive:
		return a.Card != nil && e.SetActiveFromHand(who, a.Card.ID)
	case ActionBenchBasic:
		return a.Card != nil && e.PlayBasicToBench(who, a.Card.ID)
	case ActionFinishSetup:
		return e.FinishSetup(who)
	case ActionAttachEnergy:
		return a.Card != nil && e.AttachEnergy(who, a.Card.ID, a.Target)
	case ActionEvolve:
		return a.Card != nil && e.EvolvePokemon(who, a.Card.ID, a.Target)
	case ActionPlayTrainer:
		return e.applyTrainer(a)
	case ActionRetreat:
		return e.Retreat(who, a.Bench)
	case ActionAttack:
		return e.Attack(who, a.Attack)
	case ActionEndTurn:
		if who != e.State.CurrentTurn {
			return e.illegal(who, "it is not your turn")
		}
		return e.EndTurn()
	case ActionPromote:
		return e.SetActiveFromBench(who, a.Bench)
	default:
		return e.illegal(who, "unknown action %v", a.Type)
	}
}

func (e *Engine) applyTrainer(a Action) bool {
	who := a.Player
	if a.Card == nil {
		if e.pendingSwap == NoOwner {
			return e.illegal(who, "no trainer card given")
		}
		return e.SwitchActive(e.pendingSwap, a.Bench)
	}
	swapSide := NoOwner
	switch a.Card.Template.Effect.(type) {
	case Switch:
		swapSide = who
	case Gust:
		swapSide = who.Other()
	}
	if swapSide != NoOwner {
		bench := e.State.PlayerState(swapSide).Bench
		if a.Bench < 0 || a.Bench >= len(bench) {
			return e.illegal(who, "choose a benched Pokemon for %s", a.Card.Name())
		}
	}
	if !e.PlayTrainer(who, a.Card.ID, a.Target) {
		return false
	}
	if swapSide != NoOwner {
		return e.SwitchActive(swapSide, a.Bench)
	}
	return true
}
