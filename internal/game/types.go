package game

import "fmt"

// --- Enums ---

// Owner identifies one side of the table.
type Owner int

const (
	NoOwner Owner = -1
	Player  Owner = 0
	CPU     Owner = 1
)

func (o Owner) String() string {
	switch o {
	case Player:
		return "player"
	case CPU:
		return "cpu"
	default:
		return "none"
	}
}

// Other returns the opposing side.
func (o Owner) Other() Owner {
	if o == Player {
		return CPU
	}
	return Player
}

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDraw
	PhaseMain
	PhaseBetweenTurns
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseDraw:
		return "Draw"
	case PhaseMain:
		return "Main"
	case PhaseBetweenTurns:
		return "Between Turns"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "None"
	}
}

type Category int

const (
	CategoryPokemon Category = iota
	CategoryEnergy
	CategoryTrainer
)

func (c Category) String() string {
	switch c {
	case CategoryPokemon:
		return "Pokemon"
	case CategoryEnergy:
		return "Energy"
	case CategoryTrainer:
		return "Trainer"
	default:
		return "Unknown"
	}
}

// ElementType is both a Pokemon's type and an Energy card's type.
// Colorless in an attack cost is satisfied by any Energy.
type ElementType int

const (
	TypeNone ElementType = iota
	Fire
	Water
	Grass
	Electric
	Psychic
	Fighting
	Colorless
)

var elementNames = map[ElementType]string{
	Fire:      "fire",
	Water:     "water",
	Grass:     "grass",
	Electric:  "electric",
	Psychic:   "psychic",
	Fighting:  "fighting",
	Colorless: "colorless",
}

func (t ElementType) String() string {
	if name, ok := elementNames[t]; ok {
		return name
	}
	return "none"
}

// ParseElementType maps a lower-case type name to its ElementType.
// "" and "none" map to TypeNone.
func ParseElementType(s string) (ElementType, error) {
	if s == "" || s == "none" {
		return TypeNone, nil
	}
	for t, name := range elementNames {
		if name == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown element type %q", s)
}

// DeckTypes lists the elemental types that have a prebuilt deck, in menu order.
var DeckTypes = []ElementType{Fire, Water, Grass, Electric, Psychic, Fighting, Colorless}

type Stage int

const (
	StageBasic Stage = iota
	Stage1
	Stage2
)

func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "Basic"
	case Stage1:
		return "Stage 1"
	case Stage2:
		return "Stage 2"
	default:
		return "Unknown"
	}
}

type TrainerKind int

const (
	TrainerItem TrainerKind = iota
	TrainerSupporter
)

func (k TrainerKind) String() string {
	if k == TrainerSupporter {
		return "Supporter"
	}
	return "Item"
}

// StatusCondition is a single scalar: applying a new one replaces the old.
type StatusCondition int

const (
	StatusNone StatusCondition = iota
	StatusPoisoned
	StatusBurned
	StatusAsleep
	StatusParalyzed
	StatusConfused
)

func (s StatusCondition) String() string {
	switch s {
	case StatusPoisoned:
		return "Poisoned"
	case StatusBurned:
		return "Burned"
	case StatusAsleep:
		return "Asleep"
	case StatusParalyzed:
		return "Paralyzed"
	case StatusConfused:
		return "Confused"
	default:
		return "None"
	}
}

// Slot addresses a Pokemon in play: ActiveSlot or a bench index 0..MaxBench-1.
type Slot int

const ActiveSlot Slot = -1

func (s Slot) String() string {
	if s == ActiveSlot {
		return "Active"
	}
	return fmt.Sprintf("Bench %d", int(s)+1)
}
