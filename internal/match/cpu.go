package match

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/cpu"
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
)

// CPUController plays one side with a cpu.Agent. It asks the agent for a
// whole plan and hands it out one step per ChooseAction, waiting on the
// Pacer before each. A rejected step, a new turn or an uncertain step
// drops what is left and the next call plans again.
type CPUController struct {
	who    game.Owner
	engine *game.Engine
	agent  *cpu.Agent
	pacer  *Pacer
	logger *zap.Logger

	queue []cpu.Step
}

// NewCPUController creates a controller for who. The engine is only read,
// to let the agent simulate its turn.
func NewCPUController(who game.Owner, e *game.Engine, agent *cpu.Agent, pacer *Pacer, logger *zap.Logger) *CPUController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CPUController{who: who, engine: e, agent: agent, pacer: pacer, logger: logger}
}

// ChooseAction implements Controller.
func (c *CPUController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	if len(actions) == 0 {
		return game.Action{}, fmt.Errorf("no actions offered to %s", c.who)
	}

	switch actions[0].Type {
	case game.ActionPromote:
		c.queue = nil
		i := c.agent.ChooseNewActive(state, c.who)
		if err := c.pacer.Wait(ctx); err != nil {
			return game.Action{}, err
		}
		for _, a := range actions {
			if a.Bench == i {
				return a, nil
			}
		}
		return actions[0], nil
	case game.ActionSetActive, game.ActionBenchBasic, game.ActionFinishSetup:
		if len(c.queue) == 0 {
			c.queue = c.agent.ChooseSetup(state, c.who).Steps
		}
	default:
		if len(c.queue) == 0 {
			plan := c.agent.PlanTurn(c.engine, c.who)
			c.logger.Debug("cpu plan", zap.Stringer("side", c.who), zap.Stringer("plan", plan))
			c.queue = plan.Steps
		}
	}

	if len(c.queue) == 0 {
		return actions[len(actions)-1], nil
	}
	step := c.queue[0]
	c.queue = c.queue[1:]
	if err := c.pacer.Wait(ctx); err != nil {
		return game.Action{}, err
	}
	return step.Action, nil
}

// Notify implements Controller.
func (c *CPUController) Notify(ctx context.Context, event log.GameEvent) error {
	switch {
	case event.Type == log.EventNewTurn:
		c.queue = nil
	case event.Type == log.EventIllegal && event.Player == int(c.who):
		c.logger.Debug("plan step rejected, replanning", zap.String("reason", event.Details))
		c.queue = nil
	}
	return nil
}

// Pending returns how many planned steps are still queued.
func (c *CPUController) Pending() int {
	return len(c.queue)
}
