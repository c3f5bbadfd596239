package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/pokecg/internal/log"
)

// EngineConfig holds the collaborators of an Engine.
type EngineConfig struct {
	Catalog *Catalog // nil uses DefaultCatalog()

	// DeckSource drives shuffles, CoinSource drives coin flips. Keeping them
	// apart lets tests script coins without caring how many shuffles ran.
	// nil sources are seeded from runtime entropy.
	DeckSource Source
	CoinSource Source

	Logger   *zap.Logger     // operational log; nil discards
	EventLog log.EventLogger // game log; nil keeps events in memory
}

// Engine applies the rules to a GameState. It is synchronous: every call
// either fully applies and returns true, or changes nothing, logs the
// reason and returns false.
type Engine struct {
	State   *GameState
	catalog *Catalog
	deckSrc Source
	coin    *Coin
	logger  *zap.Logger
	events  log.EventLogger

	// Side whose active may be swapped by SwitchActive after a Switch or
	// Gust trainer resolved. Cleared at the end of the turn.
	pendingSwap Owner
}

// NewEngine creates an engine with a fresh state in the setup phase.
func NewEngine(cfg EngineConfig) *Engine {
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deckSrc := cfg.DeckSource
	if deckSrc == nil {
		deckSrc = NewRandomSource()
	}
	coinSrc := cfg.CoinSource
	if coinSrc == nil {
		coinSrc = NewRandomSource()
	}
	events := cfg.EventLog
	if events == nil {
		events = log.NewMemoryLogger()
	}
	return &Engine{
		State:   NewGameState(events),
		catalog: cat,
		deckSrc: deckSrc,
		coin:    NewCoin(coinSrc, logger.Named("coin")),
		logger:  logger,
		events:  events,

		pendingSwap: NoOwner,
	}
}

// Catalog returns the card catalog the engine builds decks from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

func (e *Engine) log(event log.GameEvent) {
	e.State.Log.Log(event)
}

func (e *Engine) phase() string {
	return e.State.Phase.String()
}

// illegal logs a rejected action and returns false.
func (e *Engine) illegal(who Owner, format string, args ...any) bool {
	reason := fmt.Sprintf(format, args...)
	e.logger.Debug("illegal action", zap.Stringer("side", who), zap.String("reason", reason))
	e.log(log.NewIllegalEvent(e.State.TurnNumber, e.phase(), int(who), reason))
	return false
}

// flip flips a coin on behalf of who and records it in the game log.
func (e *Engine) flip(who Owner, reason string) bool {
	heads := e.coin.Flip(reason)
	e.log(log.NewCoinFlipEvent(e.State.TurnNumber, e.phase(), int(who), reason, heads))
	return heads
}

func (e *Engine) shuffle(who Owner, cards []*Instance) {
	shuffleCards(e.deckSrc, cards)
	e.log(log.NewShuffleEvent(e.State.TurnNumber, e.phase(), int(who)))
}

// checkTurn rejects actions by the side not on turn, in the wrong phase,
// or after the game ended.
func (e *Engine) checkTurn(who Owner) bool {
	gs := e.State
	switch {
	case gs.GameOver:
		return e.illegal(who, "the game is over")
	case !gs.Players[Player].Ready || !gs.Players[CPU].Ready:
		return e.illegal(who, "setup is not finished")
	case who != gs.CurrentTurn:
		return e.illegal(who, "it is not %s's turn", log.PlayerName(int(who)))
	case gs.Phase != PhaseMain:
		return e.illegal(who, "actions are only allowed in the main phase (now %s)", gs.Phase)
	case gs.PlayerState(who).Active == nil:
		return e.illegal(who, "choose a new active Pokemon first")
	}
	return true
}
