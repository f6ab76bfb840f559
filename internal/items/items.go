// Package items holds the static item reference table. Items grant stat
// boosts while equipped; the table also serves as the allow-list of items
// the narrator may hand out.
package items

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed boosts.yaml
var boostsYAML []byte

// StatBoosts maps item name -> stat name -> bonus.
var StatBoosts map[string]map[string]int

func init() {
	if err := yaml.Unmarshal(boostsYAML, &StatBoosts); err != nil {
		panic(fmt.Sprintf("items: bad boosts.yaml: %v", err))
	}
}

// Names returns all known item names in a stable order.
func Names() []string {
	names := make([]string, 0, len(StatBoosts))
	for name := range StatBoosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Boost returns the bonus an item grants to a stat. Unknown items grant
// nothing.
func Boost(item, stat string) int {
	boosts, ok := StatBoosts[item]
	if !ok {
		return 0
	}
	return boosts[stat]
}

// Describe formats an item with its boosts, e.g. "Iron Sword (strength+5)".
func Describe(item string) string {
	boosts, ok := StatBoosts[item]
	if !ok || len(boosts) == 0 {
		return item
	}
	stats := make([]string, 0, len(boosts))
	for stat := range boosts {
		stats = append(stats, stat)
	}
	sort.Strings(stats)
	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		parts = append(parts, fmt.Sprintf("%s+%d", stat, boosts[stat]))
	}
	return fmt.Sprintf("%s (%s)", item, strings.Join(parts, ", "))
}
