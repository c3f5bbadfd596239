package mcp

import (
	"context"

	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
	pokenet "github.com/peterkuimelis/pokecg/internal/net"
)

// ActionResponse answers a choose_action decision.
type ActionResponse struct {
	Index int
}

// MCPController implements match.Controller by sending decisions to the
// session's pending channel and blocking on a response channel.
type MCPController struct {
	who        game.Owner
	session    *GameSession
	responseCh chan ActionResponse
}

// NewMCPController creates a controller for the given side.
func NewMCPController(who game.Owner, session *GameSession) *MCPController {
	return &MCPController{
		who:        who,
		session:    session,
		responseCh: make(chan ActionResponse),
	}
}

// ChooseAction implements match.Controller.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		State:   pokenet.BuildStateView(state, c.who),
		Actions: pokenet.BuildActionViews(actions),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var ar ActionResponse
	select {
	case ar = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	// take_action validates the index; this guards direct callers.
	if ar.Index < 0 || ar.Index >= len(actions) {
		return actions[0], nil
	}
	return actions[ar.Index], nil
}

// Notify implements match.Controller.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(pokenet.BuildEventView(event))
	return nil
}

// respond hands the chosen index to a blocked ChooseAction.
func (c *MCPController) respond(ctx context.Context, index int) error {
	select {
	case c.responseCh <- ActionResponse{Index: index}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
