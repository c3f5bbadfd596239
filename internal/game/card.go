package game

import "fmt"

// --- Card definition (static, from the catalog) ---

// Template is an immutable card definition shared by every copy of the card.
// Only the fields of its Category are meaningful.
type Template struct {
	ID          string
	Name        string
	Category    Category
	Description string

	// Pokemon (Type is also the Energy type for Energy cards)
	Type        ElementType
	Stage       Stage
	HP          int
	EvolvesFrom string // template ID, "" for Basics
	Weakness    ElementType
	Resistance  ElementType
	RetreatCost int
	Attacks     []Attack

	// Trainer
	Trainer TrainerKind
	Effect  TrainerEffect
}

func (t *Template) String() string {
	return t.Name
}

func (t *Template) IsPokemon() bool { return t.Category == CategoryPokemon }
func (t *Template) IsEnergy() bool  { return t.Category == CategoryEnergy }
func (t *Template) IsTrainer() bool { return t.Category == CategoryTrainer }

// IsBasic reports whether t is a Basic Pokemon.
func (t *Template) IsBasic() bool {
	return t.Category == CategoryPokemon && t.Stage == StageBasic
}

// IsSupporter reports whether t is a Supporter trainer.
func (t *Template) IsSupporter() bool {
	return t.Category == CategoryTrainer && t.Trainer == TrainerSupporter
}

// Attack is one entry of a Pokemon's attack list.
type Attack struct {
	Name        string
	Cost        []ElementType
	Damage      int
	Effect      AttackEffect // nil for plain damage
	Description string
}

// --- Instance (one physical copy) ---

// Instance is one physical copy of a card. It holds no mutable state:
// whichever zone holds the pointer owns the card.
type Instance struct {
	Template *Template
	ID       string // "<template-id>-<index>"
}

// NewInstance creates the index-th copy of t.
func NewInstance(t *Template, index int) *Instance {
	return &Instance{Template: t, ID: fmt.Sprintf("%s-%d", t.ID, index)}
}

func (c *Instance) String() string {
	if c == nil {
		return "(empty)"
	}
	return c.Template.Name
}

// Name returns the card's display name.
func (c *Instance) Name() string {
	return c.Template.Name
}
