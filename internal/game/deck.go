package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level decks YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single prebuilt deck in the YAML file.
type DeckEntry struct {
	Type  string      `yaml:"type"`
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// DeckList is a resolved prebuilt deck.
type DeckList struct {
	Type    ElementType
	Name    string
	Entries []DeckListEntry
}

// DeckListEntry is one card line of a resolved deck.
type DeckListEntry struct {
	Template *Template
	Count    int
}

// Size returns the number of cards the deck list produces.
func (d DeckList) Size() int {
	n := 0
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}

// ParseDeckFile parses decks YAML against already-loaded templates.
func ParseDeckFile(data []byte, templates map[string]*Template) ([]DeckList, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	var decks []DeckList
	for _, deck := range df.Decks {
		t, err := ParseElementType(deck.Type)
		if err != nil || t == TypeNone {
			return nil, fmt.Errorf("deck %q: invalid type %q", deck.Name, deck.Type)
		}
		dl := DeckList{Type: t, Name: deck.Name}
		for _, entry := range deck.Cards {
			tmpl, ok := templates[entry.ID]
			if !ok {
				return nil, fmt.Errorf("deck %q: card %q not found", deck.Name, entry.ID)
			}
			if entry.Count < 1 {
				return nil, fmt.Errorf("deck %q: card %q has count %d", deck.Name, entry.ID, entry.Count)
			}
			dl.Entries = append(dl.Entries, DeckListEntry{Template: tmpl, Count: entry.Count})
		}
		decks = append(decks, dl)
	}
	return decks, nil
}

// Instances builds one Instance per physical copy, in deck-build order.
// IDs are "<template-id>-<index>", index counting copies of that template.
func (d DeckList) Instances() []*Instance {
	cards := make([]*Instance, 0, d.Size())
	copies := make(map[string]int)
	for _, e := range d.Entries {
		for i := 0; i < e.Count; i++ {
			cards = append(cards, NewInstance(e.Template, copies[e.Template.ID]))
			copies[e.Template.ID]++
		}
	}
	return cards
}
