package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/cpu"
	"github.com/peterkuimelis/pokecg/internal/game"
	"github.com/peterkuimelis/pokecg/internal/log"
	"github.com/peterkuimelis/pokecg/internal/match"
	pokenet "github.com/peterkuimelis/pokecg/internal/net"
)

// DecisionType identifies what kind of decision the game is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game is waiting for.
type PendingDecision struct {
	Type    DecisionType         `json:"type"`
	State   *pokenet.StateView   `json:"state"`
	Actions []pokenet.ActionView `json:"actions,omitempty"`
}

// ToolResponse is the JSON envelope returned by all game tools.
type ToolResponse struct {
	SessionID string              `json:"session_id"`
	Events    []pokenet.EventView `json:"events"`
	State     *pokenet.StateView  `json:"state,omitempty"`
	Pending   *PendingDecision    `json:"pending,omitempty"`
	GameOver  bool                `json:"game_over"`
	Winner    string              `json:"winner,omitempty"`
	Result    string              `json:"result,omitempty"`
}

// SessionOptions configures a new game session.
type SessionOptions struct {
	PlayerDeck game.ElementType
	CPUDeck    game.ElementType
	Difficulty float64
	MaxTurns   int
	Seed       uint64 // 0 seeds from runtime entropy
	Catalog    *game.Catalog
	Logger     *zap.Logger
}

// GameSession is one human-vs-CPU game played through MCP tool calls. The
// match runs in its own goroutine and blocks on the human controller until
// a tool call answers.
type GameSession struct {
	ID string

	engine    *game.Engine
	humanCtrl *MCPController
	cancel    context.CancelFunc
	logger    *zap.Logger

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []pokenet.EventView
	gameOver bool
	winner   string
	result   string
}

// NewGameSession creates a session and starts its match.
func NewGameSession(opts SessionOptions) *GameSession {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	logger = logger.With(zap.String("session", id))

	var deckSrc, coinSrc game.Source
	var agentRng cpu.Rand
	if opts.Seed != 0 {
		deckSrc = game.NewSeededSource(opts.Seed)
		coinSrc = game.NewSeededSource(opts.Seed + 1)
		agentRng = rand.New(rand.NewPCG(opts.Seed, opts.Seed+2))
	}
	e := game.NewEngine(game.EngineConfig{
		Catalog:    opts.Catalog,
		DeckSource: deckSrc,
		CoinSource: coinSrc,
		Logger:     logger.Named("engine"),
		EventLog:   log.NewZapLogger(logger.Named("events")),
	})

	ctx, cancel := context.WithCancel(context.Background())
	sess := &GameSession{
		ID:        id,
		engine:    e,
		cancel:    cancel,
		logger:    logger,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.humanCtrl = NewMCPController(game.Player, sess)

	agent := cpu.New(opts.Difficulty, agentRng, logger.Named("cpu"))
	cpuCtrl := match.NewCPUController(game.CPU, e, agent, nil, logger)
	m := match.New(e, match.Config{
		PlayerDeck: opts.PlayerDeck,
		CPUDeck:    opts.CPUDeck,
		MaxTurns:   opts.MaxTurns,
		Logger:     logger,
	}, sess.humanCtrl, cpuCtrl)

	go func() {
		_, err := m.Run(ctx)
		state := e.State

		sess.mu.Lock()
		sess.gameOver = true
		sess.result = state.Result
		if err != nil {
			sess.result = fmt.Sprintf("error: %v", err)
		}
		if state.GameOver && state.Winner != game.NoOwner {
			sess.winner = log.PlayerName(int(state.Winner))
		}
		sess.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		sess.pendingCh <- &PendingDecision{
			Type:  DecisionGameOver,
			State: pokenet.BuildStateView(state, game.Player),
		}
	}()

	return sess
}

// Close stops the match goroutine.
func (s *GameSession) Close() {
	s.cancel()
}

// Over reports whether the match has finished.
func (s *GameSession) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev pokenet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []pokenet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []pokenet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the match,
// then builds a ToolResponse with accumulated events and the decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending
	return s.response(pending), nil
}

func (s *GameSession) response(pending *PendingDecision) *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
	}
	if pending == nil {
		return resp
	}
	resp.State = pending.State
	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}
	resp.Pending = pending
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
