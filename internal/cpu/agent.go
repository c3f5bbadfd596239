// Package cpu implements the computer opponent: a heuristic agent that reads
// the game state and plans its moves through the same action API a human uses.
package cpu

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/game"
)

const (
	// DefaultDifficulty plays well but not perfectly.
	DefaultDifficulty = 0.6

	// MaxMainActions bounds the main-phase loop of a single plan.
	MaxMainActions = 20
)

// Rand is the randomness behind the agent's scoring noise and gates. It also
// drives coin flips and shuffles while a turn is simulated.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Step is one action the agent intends to take.
type Step struct {
	Action game.Action
	Reason string

	// Uncertain steps shuffle a deck or flip a coin. A plan ends at its first
	// uncertain step; whatever follows depends on the outcome.
	Uncertain bool
}

func (s Step) String() string {
	if s.Reason == "" {
		return s.Action.String()
	}
	return fmt.Sprintf("%s (%s)", s.Action, s.Reason)
}

// Plan is an ordered list of steps, computed in one go and executed later.
type Plan struct {
	Steps []Step
}

func (p Plan) Len() int {
	return len(p.Steps)
}

func (p Plan) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

func (p *Plan) add(a game.Action, reason string) {
	p.Steps = append(p.Steps, Step{Action: a, Reason: reason})
}

// Agent decides the CPU's moves. Difficulty in [0, 1] scales how often it
// deviates from the best scored choice; 1 always plays the top score.
type Agent struct {
	difficulty float64
	rng        Rand
	logger     *zap.Logger
}

// New creates an agent. difficulty is clamped to [0, 1]. A nil rng is seeded
// from runtime entropy and a nil logger discards.
func New(difficulty float64, rng Rand, logger *zap.Logger) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		difficulty: min(max(difficulty, 0), 1),
		rng:        rng,
		logger:     logger,
	}
}

func (a *Agent) Difficulty() float64 {
	return a.difficulty
}

// ChooseSetup places the highest-HP Basic in hand as the active Pokemon,
// benches the other Basics, and finishes setup.
func (a *Agent) ChooseSetup(gs *game.GameState, who game.Owner) Plan {
	ps := gs.PlayerState(who)
	var basics []*game.Instance
	for _, c := range ps.Hand {
		if c.Template.IsBasic() {
			basics = append(basics, c)
		}
	}
	slices.SortStableFunc(basics, func(x, y *game.Instance) int {
		return cmp.Compare(y.Template.HP, x.Template.HP)
	})

	var plan Plan
	if ps.Active == nil && len(basics) > 0 {
		c := basics[0]
		basics = basics[1:]
		plan.add(game.Action{
			Type: game.ActionSetActive, Player: who, Card: c, Bench: -1,
			Desc: fmt.Sprintf("Set %s as the active Pokemon", c.Name()),
		}, "highest HP")
	}
	room := game.MaxBench - len(ps.Bench)
	for _, c := range basics[:min(room, len(basics))] {
		plan.add(game.Action{
			Type: game.ActionBenchBasic, Player: who, Card: c, Bench: -1,
			Desc: fmt.Sprintf("Bench %s", c.Name()),
		}, "")
	}
	plan.add(game.Action{Type: game.ActionFinishSetup, Player: who, Bench: -1, Desc: "Done placing Pokemon"}, "")
	return plan
}

// PlanTurn plans who's main phase on a sandbox copy of the game: benching,
// evolving, attaching, trainers and retreating in that priority, repeated
// until nothing applies, then an attack or the end of the turn.
//
// Precondition: it is who's main phase.
// Postcondition: the plan ends with an attack, End Turn, or an uncertain step.
func (a *Agent) PlanTurn(e *game.Engine, who game.Owner) Plan {
	sb := e.Sandbox(a.rng)
	t := &turn{agent: a, sb: sb, gs: sb.State, who: who}

	for range MaxMainActions {
		if t.gs.GameOver || t.stopped() {
			break
		}
		if !(t.tryBench() || t.tryEvolve() || t.tryAttach() || t.tryTrainer() || t.tryRetreat()) {
			break
		}
	}
	if !t.stopped() && !t.gs.GameOver {
		t.attackOrPass()
	}

	a.logger.Debug("planned turn",
		zap.Stringer("side", who),
		zap.Int("steps", t.plan.Len()),
		zap.String("plan", t.plan.String()),
	)
	return t.plan
}

// ChooseNewActive returns the bench index to promote after a knockout, or
// -1 if the bench is empty.
func (a *Agent) ChooseNewActive(gs *game.GameState, who game.Owner) int {
	return a.bestBenchIndex(gs.PlayerState(who).Bench)
}

// turn is the planning state of one PlanTurn call.
type turn struct {
	agent *Agent
	sb    *game.Engine
	gs    *game.GameState
	who   game.Owner
	plan  Plan
}

func (t *turn) me() *game.PlayerState { return t.gs.PlayerState(t.who) }

func (t *turn) stopped() bool {
	n := len(t.plan.Steps)
	return n > 0 && t.plan.Steps[n-1].Uncertain
}

// try applies act in the sandbox and records it on success.
func (t *turn) try(act game.Action, reason string, uncertain bool) bool {
	if !t.sb.Apply(act) {
		return false
	}
	t.plan.Steps = append(t.plan.Steps, Step{Action: act, Reason: reason, Uncertain: uncertain})
	return true
}

func (t *turn) tryBench() bool {
	ps := t.me()
	if len(ps.Bench) >= game.MaxBench {
		return false
	}
	for _, c := range ps.Hand {
		if c.Template.IsBasic() {
			return t.try(game.Action{
				Type: game.ActionBenchBasic, Player: t.who, Card: c, Bench: -1,
				Desc: fmt.Sprintf("Bench %s", c.Name()),
			}, "", false)
		}
	}
	return false
}

func (t *turn) tryEvolve() bool {
	ps := t.me()
	if ps.IsFirstTurn {
		return false
	}
	for _, c := range ps.Hand {
		if !c.Template.IsPokemon() || c.Template.EvolvesFrom == "" {
			continue
		}
		for _, slot := range inPlaySlots(ps) {
			pk := ps.InPlay(slot)
			if pk.Template().ID != c.Template.EvolvesFrom || ps.PlayedThisTurn[pk.Card.ID] {
				continue
			}
			act := game.Action{
				Type: game.ActionEvolve, Player: t.who, Card: c, Target: slot, Bench: -1,
				Desc: fmt.Sprintf("Evolve %s into %s", pk.Name(), c.Name()),
			}
			if t.try(act, "", false) {
				return true
			}
		}
	}
	return false
}

func (t *turn) tryAttach() bool {
	if t.gs.Flags.HasAttachedEnergy {
		return false
	}
	ps := t.me()
	i := slices.IndexFunc(ps.Hand, func(c *game.Instance) bool { return c.Template.IsEnergy() })
	if i < 0 {
		return false
	}
	energy := ps.Hand[i]

	best, bestScore := game.ActiveSlot, 0.0
	for n, slot := range inPlaySlots(ps) {
		score := t.agent.scoreEnergyTarget(ps.InPlay(slot), energy, slot == game.ActiveSlot)
		if n == 0 || score > bestScore {
			best, bestScore = slot, score
		}
	}
	target := ps.InPlay(best)
	return t.try(game.Action{
		Type: game.ActionAttachEnergy, Player: t.who, Card: energy, Target: best, Bench: -1,
		Desc: fmt.Sprintf("Attach %s to %s", energy.Name(), target.Name()),
	}, fmt.Sprintf("score %.1f", bestScore), false)
}

func (t *turn) tryTrainer() bool {
	if t.gs.TrainersBlocked(t.who) {
		return false
	}
	ps := t.me()
	gate := 0.4 + 0.6*t.agent.difficulty
	for _, c := range slices.Clone(ps.Hand) {
		if !c.Template.IsTrainer() {
			continue
		}
		if c.Template.IsSupporter() && t.gs.Flags.HasPlayedSupporter {
			continue
		}
		reason, ok := t.agent.evaluateTrainer(t.gs, t.who, c.Template)
		if !ok || t.agent.rng.Float64() >= gate {
			continue
		}
		act := t.agent.trainerAction(t.gs, t.who, c)
		_, uncertain := c.Template.Effect.(game.SearchPokemon)
		if _, shuffles := c.Template.Effect.(game.ShuffleAndDraw); shuffles {
			uncertain = true
		}
		if t.try(act, reason, uncertain) {
			return true
		}
	}
	return false
}

func (t *turn) tryRetreat() bool {
	if t.gs.Flags.HasRetreated {
		return false
	}
	ps := t.me()
	active := ps.Active
	if active == nil || len(ps.Bench) == 0 {
		return false
	}
	reason, ok := shouldRetreat(ps)
	if !ok || len(active.Energy) < active.Template().RetreatCost {
		return false
	}
	i := t.agent.bestBenchIndex(ps.Bench)
	if i < 0 {
		return false
	}
	return t.try(game.Action{
		Type: game.ActionRetreat, Player: t.who, Bench: i,
		Desc: fmt.Sprintf("Retreat %s for %s", active.Name(), ps.Bench[i].Name()),
	}, reason, false)
}

func (t *turn) attackOrPass() {
	ps := t.me()
	if ps.Active != nil && t.gs.Phase == game.PhaseMain {
		if usable := ps.Active.UsableAttacks(); len(usable) > 0 {
			i := t.agent.chooseAttack(t.gs, t.who, usable)
			atk := ps.Active.Template().Attacks[i]
			t.plan.add(game.Action{
				Type: game.ActionAttack, Player: t.who, Attack: i, Bench: -1,
				Desc: fmt.Sprintf("Attack: %s", atk.Name),
			}, "")
			return
		}
	}
	t.plan.add(game.Action{Type: game.ActionEndTurn, Player: t.who, Bench: -1, Desc: "End turn"}, "no usable attack")
}

func inPlaySlots(ps *game.PlayerState) []game.Slot {
	var slots []game.Slot
	if ps.Active != nil {
		slots = append(slots, game.ActiveSlot)
	}
	for i := range ps.Bench {
		slots = append(slots, game.Slot(i))
	}
	return slots
}
