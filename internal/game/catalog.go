package game

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/cards.yaml catalog/decks.yaml
var catalogFiles embed.FS

// cardFile represents the top-level cards YAML structure.
type cardFile struct {
	Cards []cardSpec `yaml:"cards"`
}

type cardSpec struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Category    string       `yaml:"category"`
	Type        string       `yaml:"type"`
	Stage       string       `yaml:"stage"`
	HP          int          `yaml:"hp"`
	EvolvesFrom string       `yaml:"evolves_from"`
	Weakness    string       `yaml:"weakness"`
	Resistance  string       `yaml:"resistance"`
	RetreatCost int          `yaml:"retreat_cost"`
	Attacks     []attackSpec `yaml:"attacks"`
	Trainer     string       `yaml:"trainer"`
	Effect      *effectSpec  `yaml:"effect"`
	Description string       `yaml:"description"`
}

type attackSpec struct {
	Name        string      `yaml:"name"`
	Cost        []string    `yaml:"cost"`
	Damage      int         `yaml:"damage"`
	Effect      *effectSpec `yaml:"effect"`
	Description string      `yaml:"description"`
}

// effectSpec is the flat YAML form of every effect kind; each kind reads
// only the parameters it needs.
type effectSpec struct {
	Kind              string `yaml:"kind"`
	Amount            int    `yaml:"amount"`
	Energy            string `yaml:"energy"`
	Bonus             int    `yaml:"bonus"`
	SelfDamageOnTails int    `yaml:"self_damage_on_tails"`
	Flips             int    `yaml:"flips"`
	SelfDamage        int    `yaml:"self_damage"`
	BenchDamage       int    `yaml:"bench_damage"`
	Discard           int    `yaml:"discard"`
	Draw              int    `yaml:"draw"`
	OpponentDraw      int    `yaml:"opponent_draw"`
}

// inertKinds are attack effects that need a player choice mid-attack.
var inertKinds = map[string]bool{
	"damageSwap":           true,
	"moveDamage":           true,
	"opponentSwitch":       true,
	"selfOpponentSwitch":   true,
	"switch":               true,
	"copyLastAttackDamage": true,
}

// Catalog holds every card template and prebuilt deck. It is read-only
// after loading and safe to share between games.
type Catalog struct {
	templates map[string]*Template
	order     []*Template
	decks     []DeckList
}

// LoadCatalog parses card and deck YAML.
func LoadCatalog(cardsYAML, decksYAML []byte) (*Catalog, error) {
	var cf cardFile
	if err := yaml.Unmarshal(cardsYAML, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}

	c := &Catalog{templates: make(map[string]*Template)}
	for _, spec := range cf.Cards {
		t, err := spec.template()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", spec.ID, err)
		}
		if _, dup := c.templates[t.ID]; dup {
			return nil, fmt.Errorf("card %q defined twice", t.ID)
		}
		c.templates[t.ID] = t
		c.order = append(c.order, t)
	}
	for _, t := range c.order {
		if t.EvolvesFrom == "" {
			continue
		}
		if _, ok := c.templates[t.EvolvesFrom]; !ok {
			return nil, fmt.Errorf("card %q evolves from unknown card %q", t.ID, t.EvolvesFrom)
		}
	}

	decks, err := ParseDeckFile(decksYAML, c.templates)
	if err != nil {
		return nil, err
	}
	c.decks = decks
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	cards, err := catalogFiles.ReadFile("catalog/cards.yaml")
	if err != nil {
		return nil, err
	}
	decks, err := catalogFiles.ReadFile("catalog/decks.yaml")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(cards, decks)
})

// DefaultCatalog returns the embedded catalog.
// Panics if the embedded data is malformed.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded card catalog: %v", err))
	}
	return c
}

// Template looks up a card template by ID.
func (c *Catalog) Template(id string) (*Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []*Template {
	return c.order
}

// Decks returns every prebuilt deck in catalog order.
func (c *Catalog) Decks() []DeckList {
	return c.decks
}

// Deck returns the prebuilt deck for an elemental type.
func (c *Catalog) Deck(t ElementType) (DeckList, bool) {
	for _, d := range c.decks {
		if d.Type == t {
			return d, true
		}
	}
	return DeckList{}, false
}

// GenerateDeck returns fresh instances for the deck of type t, in
// deck-build order (unshuffled). Returns nil for a type without a deck.
func (c *Catalog) GenerateDeck(t ElementType) []*Instance {
	d, ok := c.Deck(t)
	if !ok {
		return nil
	}
	return d.Instances()
}

func (s cardSpec) template() (*Template, error) {
	if s.ID == "" || s.Name == "" {
		return nil, fmt.Errorf("id and name are required")
	}
	t := &Template{ID: s.ID, Name: s.Name, Description: s.Description}

	switch s.Category {
	case "pokemon":
		t.Category = CategoryPokemon
		return t, s.fillPokemon(t)
	case "energy":
		t.Category = CategoryEnergy
		et, err := ParseElementType(s.Type)
		if err != nil {
			return nil, err
		}
		t.Type = et
		return t, nil
	case "trainer":
		t.Category = CategoryTrainer
		switch s.Trainer {
		case "item":
			t.Trainer = TrainerItem
		case "supporter":
			t.Trainer = TrainerSupporter
		default:
			return nil, fmt.Errorf("unknown trainer kind %q", s.Trainer)
		}
		if s.Effect == nil {
			return nil, fmt.Errorf("trainer has no effect")
		}
		eff, err := s.Effect.trainerEffect()
		if err != nil {
			return nil, err
		}
		t.Effect = eff
		return t, nil
	default:
		return nil, fmt.Errorf("unknown category %q", s.Category)
	}
}

func (s cardSpec) fillPokemon(t *Template) error {
	var err error
	if t.Type, err = ParseElementType(s.Type); err != nil {
		return err
	}
	if t.Weakness, err = ParseElementType(s.Weakness); err != nil {
		return err
	}
	if t.Resistance, err = ParseElementType(s.Resistance); err != nil {
		return err
	}
	switch s.Stage {
	case "basic":
		t.Stage = StageBasic
	case "stage1":
		t.Stage = Stage1
	case "stage2":
		t.Stage = Stage2
	default:
		return fmt.Errorf("unknown stage %q", s.Stage)
	}
	if t.Stage != StageBasic && s.EvolvesFrom == "" {
		return fmt.Errorf("%s Pokemon must name evolves_from", t.Stage)
	}
	if s.HP <= 0 {
		return fmt.Errorf("hp must be positive, got %d", s.HP)
	}
	if s.RetreatCost < 0 {
		return fmt.Errorf("retreat_cost must be >= 0, got %d", s.RetreatCost)
	}
	t.HP = s.HP
	t.EvolvesFrom = s.EvolvesFrom
	t.RetreatCost = s.RetreatCost

	for _, as := range s.Attacks {
		a := Attack{Name: as.Name, Damage: as.Damage, Description: as.Description}
		if a.Damage < 0 {
			return fmt.Errorf("attack %q: negative damage", as.Name)
		}
		for _, c := range as.Cost {
			et, err := ParseElementType(c)
			if err != nil || et == TypeNone {
				return fmt.Errorf("attack %q: invalid cost %q", as.Name, c)
			}
			a.Cost = append(a.Cost, et)
		}
		if as.Effect != nil {
			eff, err := as.Effect.attackEffect(a.Damage)
			if err != nil {
				return fmt.Errorf("attack %q: %w", as.Name, err)
			}
			a.Effect = eff
		}
		t.Attacks = append(t.Attacks, a)
	}
	return nil
}

func (e *effectSpec) attackEffect(damage int) (AttackEffect, error) {
	switch e.Kind {
	case "discardEnergy":
		et, err := ParseElementType(e.Energy)
		if err != nil {
			return nil, err
		}
		return DiscardEnergy{Amount: e.Amount, Type: et}, nil
	case "coinFlipBonus":
		return CoinFlipBonus{Bonus: e.Bonus, SelfDamageOnTails: e.SelfDamageOnTails}, nil
	case "coinFlipParalyze":
		return CoinFlipParalyze{}, nil
	case "coinFlipConfuse":
		return CoinFlipConfuse{}, nil
	case "coinFlipInvulnerable":
		return CoinFlipInvulnerable{}, nil
	case "smokescreen":
		return Smokescreen{}, nil
	case "multiCoinFlip":
		if e.Flips < 1 {
			return nil, fmt.Errorf("multiCoinFlip needs flips >= 1")
		}
		return MultiCoinFlip{Flips: e.Flips, PerHead: damage}, nil
	case "benchDamage":
		return BenchDamage{Amount: e.Amount}, nil
	case "selfDamage":
		return SelfDamage{Amount: e.Amount}, nil
	case "blockTrainers":
		return BlockTrainers{}, nil
	case "swift":
		return Swift{}, nil
	case "healSelf":
		return HealSelf{Amount: e.Amount}, nil
	case "poison":
		return Poison{}, nil
	case "sleep":
		return Sleep{}, nil
	case "selfDestruct":
		return SelfDestruct{SelfDamage: e.SelfDamage, BenchDamage: e.BenchDamage}, nil
	case "discardHeal":
		return DiscardHeal{Discard: e.Discard, Amount: e.Amount}, nil
	case "ignoreResistance":
		return IgnoreResistance{}, nil
	case "dreamEater":
		return DreamEater{}, nil
	case "energyBonus":
		return EnergyBonus{PerEnergy: e.Bonus}, nil
	case "halfRemainingHP":
		return HalfRemainingHP{}, nil
	case "damageMinusCounters":
		return DamageMinusCounters{}, nil
	case "reduceDamage":
		return ReduceDamage{Amount: e.Amount}, nil
	case "discardEnergyInvulnerable":
		return DiscardEnergyInvulnerable{Discard: e.Discard}, nil
	}
	if inertKinds[e.Kind] {
		return Inert{Kind: e.Kind}, nil
	}
	return nil, fmt.Errorf("unknown attack effect %q", e.Kind)
}

func (e *effectSpec) trainerEffect() (TrainerEffect, error) {
	switch e.Kind {
	case "heal":
		return Heal{Amount: e.Amount}, nil
	case "superHeal":
		return SuperHeal{Discard: e.Discard, Amount: e.Amount}, nil
	case "switch":
		return Switch{}, nil
	case "discardAndDraw":
		return DiscardAndDraw{Draw: e.Draw}, nil
	case "searchPokemon":
		return SearchPokemon{}, nil
	case "retrieveEnergy":
		return RetrieveEnergy{Amount: e.Amount}, nil
	case "shuffleAndDraw":
		return ShuffleAndDraw{Draw: e.Draw, OpponentDraw: e.OpponentDraw}, nil
	case "gust":
		return Gust{}, nil
	default:
		return nil, fmt.Errorf("unknown trainer effect %q", e.Kind)
	}
}
