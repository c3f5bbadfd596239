package game

import (
	"github.com/peterkuimelis/pokecg/internal/log"
)

const (
	DeckSize        = 60
	InitialHandSize = 7
	PrizeCount      = 6
	MaxBench        = 5
)

// PlayerState represents one side's entire state.
type PlayerState struct {
	Owner   Owner
	Deck    []*Instance // top of deck is last element (pop from end)
	Hand    []*Instance
	Discard []*Instance // insertion order
	Prizes  []*Instance

	Active *ActivePokemon
	Bench  []*ActivePokemon // dense, order = bench position

	// Instance IDs placed or evolved this turn; they cannot evolve again.
	PlayedThisTurn map[string]bool
	IsFirstTurn    bool
	Mulligans      int

	// Ready is set once setup placement is finished.
	Ready bool
}

func newPlayerState(owner Owner) *PlayerState {
	return &PlayerState{
		Owner:          owner,
		PlayedThisTurn: make(map[string]bool),
		IsFirstTurn:    true,
	}
}

// DrawCard pops the top card of the deck into the hand.
// Returns nil if the deck is empty.
func (p *PlayerState) DrawCard() *Instance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card
}

// HandCard finds a card in hand by instance ID.
func (p *PlayerState) HandCard(id string) (*Instance, bool) {
	for _, c := range p.Hand {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *PlayerState) RemoveFromHand(id string) *Instance {
	for i, c := range p.Hand {
		if c.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c
		}
	}
	return nil
}

// SendToDiscard appends cards to the discard pile.
func (p *PlayerState) SendToDiscard(cards ...*Instance) {
	p.Discard = append(p.Discard, cards...)
}

// InPlay returns the Pokemon at slot, or nil.
func (p *PlayerState) InPlay(slot Slot) *ActivePokemon {
	if slot == ActiveSlot {
		return p.Active
	}
	if int(slot) < 0 || int(slot) >= len(p.Bench) {
		return nil
	}
	return p.Bench[slot]
}

// AllInPlay returns the active Pokemon (if any) followed by the bench.
func (p *PlayerState) AllInPlay() []*ActivePokemon {
	var all []*ActivePokemon
	if p.Active != nil {
		all = append(all, p.Active)
	}
	return append(all, p.Bench...)
}

// RemoveFromBench removes and returns the benched Pokemon at index,
// shifting the rest down.
func (p *PlayerState) RemoveFromBench(index int) *ActivePokemon {
	pk := p.Bench[index]
	p.Bench = append(p.Bench[:index], p.Bench[index+1:]...)
	return pk
}

// HasBasicInHand reports whether the hand holds a Basic Pokemon.
func (p *PlayerState) HasBasicInHand() bool {
	for _, c := range p.Hand {
		if c.Template.IsBasic() {
			return true
		}
	}
	return false
}

// HasPokemonInPlay reports whether anything is in the active slot or on the bench.
func (p *PlayerState) HasPokemonInPlay() bool {
	return p.Active != nil || len(p.Bench) > 0
}

// NeedsPromotion reports whether the active slot is empty while the bench is not.
func (p *PlayerState) NeedsPromotion() bool {
	return p.Active == nil && len(p.Bench) > 0
}

// --- GameState ---

// TurnFlags are the single-use locks of the current turn.
type TurnFlags struct {
	HasDrawn           bool
	HasAttachedEnergy  bool
	HasPlayedSupporter bool
	HasRetreated       bool
}

// TurnEffects are effects applied by one side that constrain the other
// side's next turn. They are cleared when the applying side's turn starts.
type TurnEffects struct {
	OpponentCannotPlayTrainers bool
}

// GameState holds the complete state of a game.
type GameState struct {
	Players     [2]*PlayerState
	CurrentTurn Owner
	TurnNumber  int // increments each time the turn returns to Player
	Phase       Phase
	Flags       TurnFlags

	// Indexed by the side that applied the effect.
	TurnEffects [2]TurnEffects

	GameOver bool
	Winner   Owner // NoOwner while running or on a draw
	Result   string

	Log log.EventLogger
}

// NewGameState creates a fresh game state.
func NewGameState(logger log.EventLogger) *GameState {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &GameState{
		Players:     [2]*PlayerState{newPlayerState(Player), newPlayerState(CPU)},
		CurrentTurn: NoOwner,
		TurnNumber:  1,
		Phase:       PhaseSetup,
		Winner:      NoOwner,
		Log:         logger,
	}
}

// PlayerState returns the state of one side.
func (gs *GameState) PlayerState(who Owner) *PlayerState {
	return gs.Players[who]
}

// CurrentPlayer returns the state of the side whose turn it is.
func (gs *GameState) CurrentPlayer() *PlayerState {
	return gs.Players[gs.CurrentTurn]
}

// OpponentPlayer returns the state of the side waiting for its turn.
func (gs *GameState) OpponentPlayer() *PlayerState {
	return gs.Players[gs.CurrentTurn.Other()]
}

// Opponent returns the state of who's opponent.
func (gs *GameState) Opponent(who Owner) *PlayerState {
	return gs.Players[who.Other()]
}

// TrainersBlocked reports whether who is barred from playing Trainers by
// an effect the opponent applied.
func (gs *GameState) TrainersBlocked(who Owner) bool {
	return gs.TurnEffects[who.Other()].OpponentCannotPlayTrainers
}

// SwitchTurn hands the turn to the other side. Bookkeeping only: no rule
// validation happens here.
func (gs *GameState) SwitchTurn() {
	out := gs.CurrentPlayer()
	clear(out.PlayedThisTurn)
	out.IsFirstTurn = false

	gs.CurrentTurn = gs.CurrentTurn.Other()
	if gs.CurrentTurn == Player {
		gs.TurnNumber++
	}
	gs.Flags = TurnFlags{}
	gs.Phase = PhaseDraw
	gs.TurnEffects[gs.CurrentTurn] = TurnEffects{}

	gs.Log.Log(log.NewTurnEvent(gs.TurnNumber, int(gs.CurrentTurn)))
}

// EndGame records the result. A NoOwner winner is a draw.
func (gs *GameState) EndGame(winner Owner, reason string) {
	if gs.GameOver {
		return
	}
	gs.GameOver = true
	gs.Winner = winner
	gs.Result = reason
	gs.Phase = PhaseGameOver
	if winner == NoOwner {
		gs.Log.Log(log.NewDrawGameEvent(gs.TurnNumber, reason))
		return
	}
	gs.Log.Log(log.NewWinEvent(gs.TurnNumber, gs.Phase.String(), int(winner), reason))
}
