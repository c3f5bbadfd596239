package web

import (
	"encoding/json"
	"net/http"

	"github.com/peterkuimelis/pokecg/internal/game"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Type        string       `json:"type,omitempty"`
	Stage       string       `json:"stage,omitempty"`
	HP          int          `json:"hp,omitempty"`
	EvolvesFrom string       `json:"evolvesFrom,omitempty"`
	Weakness    string       `json:"weakness,omitempty"`
	Resistance  string       `json:"resistance,omitempty"`
	RetreatCost int          `json:"retreatCost,omitempty"`
	Attacks     []AttackInfo `json:"attacks,omitempty"`
	Trainer     string       `json:"trainer,omitempty"`
}

// AttackInfo is one attack of a CardInfo.
type AttackInfo struct {
	Name   string   `json:"name"`
	Cost   []string `json:"cost"`
	Damage int      `json:"damage"`
	Text   string   `json:"text,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Type  string   `json:"type"`
	Name  string   `json:"name"`
	Size  int      `json:"size"`
	Cards []string `json:"cards"`
}

func cardInfo(t *game.Template) CardInfo {
	ci := CardInfo{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category.String(),
	}
	switch t.Category {
	case game.CategoryPokemon:
		ci.Type = t.Type.String()
		ci.Stage = t.Stage.String()
		ci.HP = t.HP
		ci.EvolvesFrom = t.EvolvesFrom
		ci.RetreatCost = t.RetreatCost
		if t.Weakness != game.TypeNone {
			ci.Weakness = t.Weakness.String()
		}
		if t.Resistance != game.TypeNone {
			ci.Resistance = t.Resistance.String()
		}
		for _, a := range t.Attacks {
			ai := AttackInfo{Name: a.Name, Damage: a.Damage, Text: a.Description, Cost: []string{}}
			for _, c := range a.Cost {
				ai.Cost = append(ai.Cost, c.String())
			}
			ci.Attacks = append(ci.Attacks, ai)
		}
	case game.CategoryEnergy:
		ci.Type = t.Type.String()
	case game.CategoryTrainer:
		ci.Trainer = t.Trainer.String()
	}
	return ci
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := []CardInfo{}
	for _, t := range s.opts.Catalog.Templates() {
		cards = append(cards, cardInfo(t))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := []DeckInfo{}
	for _, d := range s.opts.Catalog.Decks() {
		di := DeckInfo{
			Type: d.Type.String(),
			Name: d.Name,
			Size: d.Size(),
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, e := range d.Entries {
			if !seen[e.Template.Name] {
				di.Cards = append(di.Cards, e.Template.Name)
				seen[e.Template.Name] = true
			}
		}
		decks = append(decks, di)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}
