package net

// Message types for the JSON line protocol between a match and a human
// client (terminal pipe or websocket).

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "event", "choose_action", "state", "error" or "game_over"

	// For "event"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action" and "state"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over" and "error"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// CardView describes a card in hand.
type CardView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type,omitempty"`
	HP       int    `json:"hp,omitempty"`
}

// AttackView describes one attack of a Pokemon in play.
type AttackView struct {
	Name    string   `json:"name"`
	Cost    []string `json:"cost"`
	Damage  int      `json:"damage"`
	Missing int      `json:"missing"` // energy still needed
	Text    string   `json:"text,omitempty"`
}

// PokemonView describes a Pokemon in play.
type PokemonView struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Stage       string       `json:"stage"`
	HP          int          `json:"hp"`
	MaxHP       int          `json:"max_hp"`
	Energy      []string     `json:"energy"`
	Status      string       `json:"status,omitempty"`
	Weakness    string       `json:"weakness,omitempty"`
	Resistance  string       `json:"resistance,omitempty"`
	RetreatCost int          `json:"retreat_cost"`
	Attacks     []AttackView `json:"attacks"`
}

// StateView is the game state from one side's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
	GameOver   bool       `json:"game_over,omitempty"`
	Winner     string     `json:"winner,omitempty"`
	Result     string     `json:"result,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name         string        `json:"name"`
	Active       *PokemonView  `json:"active,omitempty"`
	Bench        []PokemonView `json:"bench"`
	Hand         []CardView    `json:"hand,omitempty"` // only for "you"
	HandCount    int           `json:"hand_count"`
	DeckCount    int           `json:"deck_count"`
	DiscardCount int           `json:"discard_count"`
	PrizesLeft   int           `json:"prizes_left"`
	TrainersLock bool          `json:"trainers_blocked,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "start" or "action"

	// For "action"
	Index int `json:"index"`

	// For "start" (initial handshake)
	Deck       string   `json:"deck,omitempty"`
	CPUDeck    string   `json:"cpu_deck,omitempty"`
	Difficulty *float64 `json:"difficulty,omitempty"`
}
