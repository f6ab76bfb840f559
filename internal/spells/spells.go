// Package spells validates spell-casting attempts against the static spell
// book.
package spells

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ihno999/avanced-ai-semester-project/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed spells.yaml
var spellsYAML []byte

// Spell is one entry of the spell book.
type Spell struct {
	Name                 string `yaml:"name"`
	ManaCost             int    `yaml:"mana_cost"`
	RequiredIntelligence int    `yaml:"required_intelligence"`
	Effect               string `yaml:"effect"`
}

// Table is the spell book in matching order.
var Table []Spell

func init() {
	if err := yaml.Unmarshal(spellsYAML, &Table); err != nil {
		panic(fmt.Sprintf("spells: bad spells.yaml: %v", err))
	}
}

// CastError reports a failed casting attempt. No mana is consumed on
// failure.
type CastError struct {
	Spell  Spell
	Reason string // "intelligence" or "mana"
	Have   int
}

func (e *CastError) Error() string {
	switch e.Reason {
	case "intelligence":
		return fmt.Sprintf("You need at least %d intelligence to cast %s. You have %d.",
			e.Spell.RequiredIntelligence, e.Spell.Name, e.Have)
	default:
		return fmt.Sprintf("Not enough mana to cast %s! You need %d, but only have %d.",
			e.Spell.Name, e.Spell.ManaCost, e.Have)
	}
}

// CastResult reports a successful cast.
type CastResult struct {
	Spell         Spell
	ManaRemaining int
}

// Message formats the success line shown to the player.
func (r *CastResult) Message() string {
	return fmt.Sprintf("You cast %s!\nEffect: %s\nMana remaining: %d",
		r.Spell.Name, r.Spell.Effect, r.ManaRemaining)
}

// Attempt scans the player's input for a spell name (case-insensitive
// substring, table order). A matched spell is gated on intelligence first,
// then mana; success deducts the mana cost. (nil, nil) means no spell was
// attempted at all.
func Attempt(playerInput string, stats *models.PlayerStats) (*CastResult, error) {
	input := strings.ToLower(playerInput)
	for _, spell := range Table {
		if !strings.Contains(input, strings.ToLower(spell.Name)) {
			continue
		}
		if stats.Intelligence < spell.RequiredIntelligence {
			return nil, &CastError{Spell: spell, Reason: "intelligence", Have: stats.Intelligence}
		}
		if stats.Mana < spell.ManaCost {
			return nil, &CastError{Spell: spell, Reason: "mana", Have: stats.Mana}
		}
		stats.Mana -= spell.ManaCost
		return &CastResult{Spell: spell, ManaRemaining: stats.Mana}, nil
	}
	return nil, nil
}

// Available lists the spells castable at the given intelligence, with
// their mana costs.
func Available(intelligence int) []string {
	var out []string
	for _, spell := range Table {
		if intelligence >= spell.RequiredIntelligence {
			out = append(out, fmt.Sprintf("%s (Mana Cost: %d)", spell.Name, spell.ManaCost))
		}
	}
	return out
}
