package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewGame EventType = iota
	EventDeckSelected
	EventShuffle
	EventMulligan
	EventPrizesSet
	EventCoinFlip
	EventNewTurn
	EventDraw
	EventSetActive
	EventBench
	EventAttachEnergy
	EventEvolve
	EventRetreat
	EventSwitch
	EventPlayTrainer
	EventHeal
	EventSearch
	EventRetrieve
	EventAttack
	EventFizzle
	EventDamage
	EventStatus
	EventDiscard
	EventTurnEffect
	EventBetweenTurns
	EventKnockout
	EventPrizeTaken
	EventWin
	EventDrawGame
	EventIllegal // rejected action; state unchanged
)

func (e EventType) String() string {
	switch e {
	case EventNewGame:
		return "NewGame"
	case EventDeckSelected:
		return "DeckSelected"
	case EventShuffle:
		return "Shuffle"
	case EventMulligan:
		return "Mulligan"
	case EventPrizesSet:
		return "PrizesSet"
	case EventCoinFlip:
		return "CoinFlip"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventSetActive:
		return "SetActive"
	case EventBench:
		return "Bench"
	case EventAttachEnergy:
		return "AttachEnergy"
	case EventEvolve:
		return "Evolve"
	case EventRetreat:
		return "Retreat"
	case EventSwitch:
		return "Switch"
	case EventPlayTrainer:
		return "PlayTrainer"
	case EventHeal:
		return "Heal"
	case EventSearch:
		return "Search"
	case EventRetrieve:
		return "Retrieve"
	case EventAttack:
		return "Attack"
	case EventFizzle:
		return "Fizzle"
	case EventDamage:
		return "Damage"
	case EventStatus:
		return "Status"
	case EventDiscard:
		return "Discard"
	case EventTurnEffect:
		return "TurnEffect"
	case EventBetweenTurns:
		return "BetweenTurns"
	case EventKnockout:
		return "Knockout"
	case EventPrizeTaken:
		return "PrizeTaken"
	case EventWin:
		return "Win"
	case EventDrawGame:
		return "DrawGame"
	case EventIllegal:
		return "Illegal"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn number (increments when the turn returns to the human player)
	Phase   string    // current phase name (e.g. "Main")
	Player  int       // acting side (0 = player, 1 = cpu)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
