package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/game"
	pokenet "github.com/peterkuimelis/pokecg/internal/net"
)

// DeckInfo describes a prebuilt deck for list_decks.
type DeckInfo struct {
	Type  string   `json:"type"`
	Name  string   `json:"name"`
	Size  int      `json:"size"`
	Cards []string `json:"cards"`
}

// Handler owns the game tools and the one session a stdio process plays.
type Handler struct {
	defaults SessionOptions
	logger   *zap.Logger

	mu      sync.Mutex
	session *GameSession
}

// NewHandler creates a handler. defaults fills in whatever start_game
// leaves out; a nil Catalog uses the embedded one.
func NewHandler(defaults SessionOptions) *Handler {
	if defaults.Catalog == nil {
		defaults.Catalog = game.DefaultCatalog()
	}
	logger := defaults.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{defaults: defaults, logger: logger}
}

// Register adds all game tools to the MCP server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(listDecksTool(), h.handleListDecks)
	s.AddTool(startGameTool(h.deckNames()), h.handleStartGame)
	s.AddTool(takeActionTool(), h.handleTakeAction)
	s.AddTool(getGameStateTool(), h.handleGetGameState)
}

// Close stops the running session, if any.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		h.session.Close()
		h.session = nil
	}
}

func (h *Handler) deckNames() []string {
	var names []string
	for _, d := range h.defaults.Catalog.Decks() {
		names = append(names, d.Type.String())
	}
	return names
}

// --- Tool definitions ---

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the prebuilt decks. Each deck is named by its energy type."),
	)
}

func startGameTool(decks []string) mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new game against the CPU. You always go first as the player. "+
			"Returns the initial state and the first pending decision."),
		mcp.WithString("deck", mcp.Required(), mcp.Enum(decks...), mcp.Description("Your deck type")),
		mcp.WithString("cpu_deck", mcp.Enum(decks...), mcp.Description("The CPU's deck type; omitted picks one at random")),
		mcp.WithNumber("difficulty", mcp.Description("CPU difficulty from 0 (loose) to 1 (always plays its best score)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Blocks through the CPU's turn "+
			"and returns the events since your last call with your next decision."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Handler) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decks := []DeckInfo{}
	for _, d := range h.defaults.Catalog.Decks() {
		di := DeckInfo{Type: d.Type.String(), Name: d.Name, Size: d.Size()}
		for _, e := range d.Entries {
			di.Cards = append(di.Cards, e.Template.Name)
		}
		decks = append(decks, di)
	}
	data, err := json.Marshal(decks)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal decks: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *Handler) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session != nil {
		if !h.session.Over() {
			return mcp.NewToolResultError("A game is already running. Finish it before starting another."), nil
		}
		h.session.Close()
		h.session = nil
	}

	opts := h.defaults
	deck, err := h.parseDeck(request.GetString("deck", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts.PlayerDeck = deck

	cpuDeck := opts.CPUDeck
	if name := request.GetString("cpu_deck", ""); name != "" {
		if cpuDeck, err = h.parseDeck(name); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if cpuDeck == game.TypeNone {
		decks := h.defaults.Catalog.Decks()
		cpuDeck = decks[rand.IntN(len(decks))].Type
	}
	opts.CPUDeck = cpuDeck

	difficulty := request.GetFloat("difficulty", opts.Difficulty)
	if difficulty < 0 || difficulty > 1 {
		return mcp.NewToolResultErrorf("difficulty must be between 0 and 1, got %g", difficulty), nil
	}
	opts.Difficulty = difficulty

	sess := NewGameSession(opts)
	h.session = sess
	h.logger.Info("game started",
		zap.String("session", sess.ID),
		zap.Stringer("deck", opts.PlayerDeck),
		zap.Stringer("cpu_deck", opts.CPUDeck),
		zap.Float64("difficulty", opts.Difficulty))

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess := h.session
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Type != DecisionChooseAction {
		return mcp.NewToolResultError("The game is over. Use start_game to play again."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	if err := sess.humanCtrl.respond(ctx, index); err != nil {
		return mcp.NewToolResultErrorf("Error submitting action: %v", err), nil
	}
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		h.logger.Info("game over",
			zap.String("session", sess.ID),
			zap.String("winner", resp.Winner),
			zap.String("result", resp.Result))
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess := h.session
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	// The match goroutine is parked on a decision, so the state is stable.
	resp := sess.response(sess.currentPending)
	if resp.State == nil {
		resp.State = pokenet.BuildStateView(sess.engine.State, game.Player)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) parseDeck(name string) (game.ElementType, error) {
	t, err := game.ParseElementType(name)
	if err != nil {
		return game.TypeNone, err
	}
	if _, ok := h.defaults.Catalog.Deck(t); !ok {
		return game.TypeNone, fmt.Errorf("no deck of type %q", name)
	}
	return t, nil
}
