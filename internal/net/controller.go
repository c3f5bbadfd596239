package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
)

// StreamController implements match.Controller over a stream of JSON
// messages: an in-memory pipe to the terminal client or a websocket.
type StreamController struct {
	enc *json.Encoder
	dec *json.Decoder
	who game.Owner // which side this controller plays
	mu  sync.Mutex
}

// NewStreamController creates a controller for who on rw.
func NewStreamController(rw io.ReadWriter, who game.Owner) *StreamController {
	return &StreamController{
		enc: json.NewEncoder(rw),
		dec: json.NewDecoder(rw),
		who: who,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (sc *StreamController) send(msg ServerMessage) error {
	return sc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (sc *StreamController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := sc.dec.Decode(&msg)
	return msg, err
}

// Recv reads one client message, such as the "start" handshake.
func (sc *StreamController) Recv() (ClientMessage, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.recv()
}

// ChooseAction implements match.Controller. Out-of-range answers are
// reported to the client and asked again.
func (sc *StreamController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:    "choose_action",
		Actions: BuildActionViews(actions),
		State:   BuildStateView(state, sc.who),
	}
	if err := sc.send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return game.Action{}, err
		}
		resp, err := sc.recv()
		if err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}
		if resp.Type == "action" && resp.Index >= 0 && resp.Index < len(actions) {
			return actions[resp.Index], nil
		}
		errMsg := ServerMessage{
			Type:   "error",
			Result: fmt.Sprintf("expected an action index between 0 and %d", len(actions)-1),
		}
		if err := sc.send(errMsg); err != nil {
			return game.Action{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// Notify implements match.Controller.
func (sc *StreamController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	ev := BuildEventView(event)
	return sc.send(ServerMessage{Type: "event", Event: &ev})
}

// SendGameOver sends the final state and a game_over message.
func (sc *StreamController) SendGameOver(state *game.GameState) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	msg := ServerMessage{
		Type:   "game_over",
		State:  BuildStateView(state, sc.who),
		Result: state.Result,
	}
	if state.Winner != game.NoOwner {
		msg.Winner = log.PlayerName(int(state.Winner))
	}
	return sc.send(msg)
}

// SendError reports a failure to the client.
func (sc *StreamController) SendError(err error) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ServerMessage{Type: "error", Result: err.Error()})
}
