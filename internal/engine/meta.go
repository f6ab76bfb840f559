package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ihno999/avanced-ai-semester-project/internal/models"
)

// The META block is the trust boundary between the generator's free-form
// reply and authoritative game state. Every field is individually decoded,
// validated and clamped; a malformed payload applies nothing.

const (
	metaOpen  = "<META>"
	metaClose = "</META>"
)

// metaKeys is the fixed application order. Unrecognized keys are ignored.
var metaKeys = []string{
	"health", "gold", "xp", "inventory_add", "inventory_remove", "equip", "unequip",
}

// MetaResult reports what a reconciliation did.
type MetaResult struct {
	Story     string // narrative with the META block stripped, possibly annotated
	LeveledUp bool   // an XP grant crossed a level boundary
}

// extractMeta locates the first <META>...</META> block. Returns the inner
// payload, the surrounding text with the block removed, and whether a
// block was found. The scan is non-greedy and spans newlines.
func extractMeta(text string) (payload, stripped string, found bool) {
	start := strings.Index(text, metaOpen)
	if start < 0 {
		return "", text, false
	}
	rest := text[start+len(metaOpen):]
	end := strings.Index(rest, metaClose)
	if end < 0 {
		return "", text, false
	}
	payload = rest[:end]
	stripped = strings.TrimSpace(text[:start] + rest[end+len(metaClose):])
	return payload, stripped, true
}

// ApplyMetaUpdates reconciles the generator's raw reply against the game
// state. The returned story text has the META block stripped and carries
// inline annotations for any recoverable faults. Absence of a block means
// no updates and is not an error.
func ApplyMetaUpdates(state *models.GameState, text string) MetaResult {
	payload, story, found := extractMeta(text)
	if !found {
		return MetaResult{Story: text}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		// Fail closed: a malformed payload must never corrupt state.
		story += "\n\nError parsing meta update: invalid JSON format."
		return MetaResult{Story: story}
	}

	res := MetaResult{}
	for _, key := range metaKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		warnings, err := applyMetaField(state, key, raw, &res)
		for _, w := range warnings {
			story += "\n\n" + w
		}
		if err != nil {
			// Fields applied before the fault remain applied.
			story += fmt.Sprintf("\n\nError applying meta update: %v", err)
			break
		}
	}
	res.Story = story
	return res
}

// applyMetaField decodes and applies one recognized key. It returns
// non-fatal per-item warnings (e.g. unresolvable equip slots) and an error
// when the field's value cannot be decoded at all.
func applyMetaField(state *models.GameState, key string, raw json.RawMessage, res *MetaResult) ([]string, error) {
	switch key {
	case "health":
		var delta int
		if err := json.Unmarshal(raw, &delta); err != nil {
			return nil, fmt.Errorf("health: %w", err)
		}
		if delta < 0 {
			delta = models.MitigateDamage(delta, state.Stats.Defense)
		}
		state.Stats.Health = models.Clamp(state.Stats.Health+delta, 0, state.Stats.MaxHealth)

	case "gold":
		var delta int
		if err := json.Unmarshal(raw, &delta); err != nil {
			return nil, fmt.Errorf("gold: %w", err)
		}
		state.Stats.Gold = max(0, state.Stats.Gold+delta)

	case "xp":
		var gain int
		if err := json.Unmarshal(raw, &gain); err != nil {
			return nil, fmt.Errorf("xp: %w", err)
		}
		state.Stats.XP += gain
		if state.Stats.CheckLevelUp() {
			res.LeveledUp = true
		}

	case "inventory_add":
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, fmt.Errorf("inventory_add: %w", err)
		}
		for _, item := range names {
			if !contains(state.Inventory, item) {
				state.Inventory = append(state.Inventory, item)
			}
		}

	case "inventory_remove":
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, fmt.Errorf("inventory_remove: %w", err)
		}
		for _, item := range names {
			state.Inventory = removeFirst(state.Inventory, item)
		}

	case "equip":
		pairs, err := decodeOrderedStringMap(raw)
		if err != nil {
			return nil, fmt.Errorf("equip: %w", err)
		}
		var warnings []string
		for _, pair := range pairs {
			slotOrItem, item := pair[0], pair[1]
			slot := slotOrItem
			if !state.Equipment.IsSlot(slot) {
				resolved, ok := models.DetectSlot(item, state.Equipment)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("Couldn't determine correct slot for '%s'.", item))
					continue
				}
				slot = resolved
			}
			if displaced := state.Equipment[slot]; displaced != "" && displaced != item {
				state.Inventory = append(state.Inventory, displaced)
			}
			state.Equipment[slot] = item
			state.Inventory = removeFirst(state.Inventory, item)
		}
		return warnings, nil

	case "unequip":
		var slots []string
		if err := json.Unmarshal(raw, &slots); err != nil {
			return nil, fmt.Errorf("unequip: %w", err)
		}
		for _, slot := range slots {
			if state.Equipment.IsSlot(slot) && state.Equipment[slot] != "" {
				state.Inventory = append(state.Inventory, state.Equipment[slot])
				state.Equipment[slot] = ""
			}
		}
	}
	return nil, nil
}

// decodeOrderedStringMap decodes a JSON object of string values as a slice
// of key/value pairs, preserving the payload's key order. Go maps would
// randomize it, and equip pairs must apply in the order the narrator wrote
// them so accessory placement and displacement are deterministic.
func decodeOrderedStringMap(raw json.RawMessage) ([][2]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}
	var pairs [][2]string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func removeFirst(list []string, item string) []string {
	for i, v := range list {
		if v == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
