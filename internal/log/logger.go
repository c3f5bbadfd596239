package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- ZapLogger: keeps events in memory and mirrors them to a zap logger ---

// ZapLogger records events like MemoryLogger and also emits each one at
// debug level, so game traces land in the same sink as operational logs.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	e := l.LastEvent()
	l.z.Debug("game event",
		zap.Int("seq", e.Seq),
		zap.Int("turn", e.Turn),
		zap.String("phase", e.Phase),
		zap.String("side", PlayerName(e.Player)),
		zap.Stringer("type", e.Type),
		zap.String("card", e.Card),
		zap.String("details", e.Details),
	)
}

// --- Formatting ---

// PlayerName returns "Player" or "CPU" for display.
func PlayerName(p int) string {
	if p == 1 {
		return "CPU"
	}
	return "Player"
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 14 chars for alignment
	for len(phase) < 14 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameStartEvent(playerDeck, cpuDeck string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventNewGame,
		Details: fmt.Sprintf("New game: %s vs %s", playerDeck, cpuDeck),
	}
}

func NewDeckSelectedEvent(player int, deckName string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventDeckSelected,
		Details: fmt.Sprintf("%s plays the %s", PlayerName(player), deckName),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles their deck", PlayerName(player)),
	}
}

func NewMulliganEvent(player int, count int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventMulligan,
		Details: fmt.Sprintf("%s has no Basic Pokemon and mulligans (%d)", PlayerName(player), count),
	}
}

func NewPrizesSetEvent(player int, count int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventPrizesSet,
		Details: fmt.Sprintf("%s sets aside %d prize cards", PlayerName(player), count),
	}
}

func NewCoinFlipEvent(turn int, phase string, player int, reason string, heads bool) GameEvent {
	side := "tails"
	if heads {
		side = "heads"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCoinFlip,
		Details: fmt.Sprintf("Coin flip (%s): %s", reason, side),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

// NewDrawEvent logs a draw. CPU draws are not revealed.
func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	if player == 1 {
		return GameEvent{
			Turn:    turn,
			Phase:   phase,
			Player:  player,
			Type:    EventDraw,
			Details: "CPU draws a card",
		}
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("Player draws %s", cardName),
	}
}

func NewSetActiveEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSetActive,
		Card:    cardName,
		Details: fmt.Sprintf("%s sets %s as the Active Pokemon", PlayerName(player), cardName),
	}
}

func NewBenchEvent(turn int, phase string, player int, cardName string, benchSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBench,
		Card:    cardName,
		Details: fmt.Sprintf("%s puts %s on the Bench (%d/5)", PlayerName(player), cardName, benchSize),
	}
}

func NewAttachEnergyEvent(turn int, phase string, player int, energyName, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttachEnergy,
		Card:    energyName,
		Details: fmt.Sprintf("%s attaches %s to %s", PlayerName(player), energyName, target),
	}
}

func NewEvolveEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEvolve,
		Card:    to,
		Details: fmt.Sprintf("%s evolves %s into %s", PlayerName(player), from, to),
	}
}

func NewRetreatEvent(turn int, phase string, player int, oldActive, newActive string, discarded int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetreat,
		Card:    oldActive,
		Details: fmt.Sprintf("%s retreats %s (discarding %d Energy); %s is now Active", PlayerName(player), oldActive, discarded, newActive),
	}
}

func NewSwitchEvent(turn int, phase string, player int, oldActive, newActive string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSwitch,
		Card:    newActive,
		Details: fmt.Sprintf("%s's %s is switched out; %s is now Active", PlayerName(player), oldActive, newActive),
	}
}

func NewPlayTrainerEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayTrainer,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s", PlayerName(player), cardName),
	}
}

func NewHealEvent(turn int, phase string, player int, cardName string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeal,
		Card:    cardName,
		Details: fmt.Sprintf("%s heals %d damage", cardName, amount),
	}
}

// NewSearchEvent logs a deck search. cardName is empty when nothing was found.
func NewSearchEvent(turn int, phase string, player int, cardName string) GameEvent {
	details := fmt.Sprintf("%s searches their deck but finds no Basic Pokemon", PlayerName(player))
	if cardName != "" {
		details = fmt.Sprintf("%s finds %s in their deck", PlayerName(player), cardName)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSearch,
		Card:    cardName,
		Details: details,
	}
}

func NewRetrieveEvent(turn int, phase string, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetrieve,
		Details: fmt.Sprintf("%s returns %d Energy from the discard pile to their hand", PlayerName(player), count),
	}
}

func NewAttackEvent(turn int, phase string, player int, attacker, attack string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s's %s uses %s", PlayerName(player), attacker, attack),
	}
}

func NewFizzleEvent(turn int, phase string, player int, attacker, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFizzle,
		Card:    attacker,
		Details: fmt.Sprintf("%s's attack fails: %s", attacker, reason),
	}
}

// NewDamageEvent logs damage dealt to a Pokemon owned by player.
func NewDamageEvent(turn int, phase string, player int, cardName string, amount, remainingHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes %d damage (%d HP left)", cardName, amount, remainingHP),
	}
}

func NewStatusEvent(turn int, phase string, player int, cardName, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatus,
		Card:    cardName,
		Details: fmt.Sprintf("%s is now %s", cardName, status),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

func NewTurnEffectEvent(turn int, phase string, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTurnEffect,
		Details: details,
	}
}

func NewBetweenTurnsEvent(turn int, phase string, player int, cardName, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBetweenTurns,
		Card:    cardName,
		Details: details,
	}
}

func NewKnockoutEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventKnockout,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is knocked out!", PlayerName(player), cardName),
	}
}

func NewPrizeTakenEvent(turn int, phase string, player int, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPrizeTaken,
		Details: fmt.Sprintf("%s takes a prize card (%d left)", PlayerName(player), remaining),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins: %s", PlayerName(winner), reason),
	}
}

func NewDrawGameEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDrawGame,
		Details: fmt.Sprintf("Game ends in a draw: %s", reason),
	}
}

func NewIllegalEvent(turn int, phase string, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventIllegal,
		Details: reason,
	}
}
