package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ihno999/avanced-ai-semester-project/internal/models"
)

func snapshot(t *testing.T, g *models.GameState) string {
	t.Helper()
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApplyMetaNoBlock(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	before := snapshot(t, g)

	text := "The corridor stretches into darkness. What do you do?"
	res := ApplyMetaUpdates(g, text)
	if res.Story != text {
		t.Errorf("story = %q, want input unchanged", res.Story)
	}
	if snapshot(t, g) != before {
		t.Error("state changed without a META block")
	}
}

func TestApplyMetaEmptyIsIdempotent(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	before := snapshot(t, g)

	res := ApplyMetaUpdates(g, "You rest by the fire.\n<META>{}</META>")
	if res.Story != "You rest by the fire." {
		t.Errorf("story = %q", res.Story)
	}
	if snapshot(t, g) != before {
		t.Error("empty META mutated state")
	}
}

func TestApplyMetaMalformedFailsClosed(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	before := snapshot(t, g)

	res := ApplyMetaUpdates(g, `A trap springs!<META>{"health": }</META>`)
	if snapshot(t, g) != before {
		t.Error("malformed META mutated state")
	}
	if !strings.Contains(res.Story, "Error parsing meta update") {
		t.Errorf("story missing parse annotation: %q", res.Story)
	}
	if strings.Contains(res.Story, "<META>") {
		t.Errorf("META block not stripped: %q", res.Story)
	}
}

func TestApplyMetaHealthDamageMitigated(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Stats.Health, g.Stats.MaxHealth, g.Stats.Defense = 100, 100, 10

	ApplyMetaUpdates(g, `Ouch.<META>{"health": -50}</META>`)
	// round(-50 * 0.7) = -35
	if g.Stats.Health != 65 {
		t.Errorf("health = %d, want 65", g.Stats.Health)
	}
}

func TestApplyMetaHealthDamageNeverHeals(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Stats.Health, g.Stats.MaxHealth, g.Stats.Defense = 50, 100, 40

	ApplyMetaUpdates(g, `A glancing blow.<META>{"health": -10}</META>`)
	if g.Stats.Health != 50 {
		t.Errorf("health = %d, over-mitigated damage must not heal", g.Stats.Health)
	}
}

func TestApplyMetaHealthClamps(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Stats.Health, g.Stats.MaxHealth, g.Stats.Defense = 95, 100, 0

	ApplyMetaUpdates(g, `You feel great.<META>{"health": 20}</META>`)
	if g.Stats.Health != 100 {
		t.Errorf("health = %d, want clamp at max 100", g.Stats.Health)
	}

	ApplyMetaUpdates(g, `Everything goes dark.<META>{"health": -1000}</META>`)
	if g.Stats.Health != 0 {
		t.Errorf("health = %d, want clamp at 0", g.Stats.Health)
	}
}

func TestApplyMetaGoldFloor(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Stats.Gold = 5

	ApplyMetaUpdates(g, `The thief laughs.<META>{"gold": -10}</META>`)
	if g.Stats.Gold != 0 {
		t.Errorf("gold = %d, want floor 0", g.Stats.Gold)
	}
}

func TestApplyMetaXPTriggersLevelUp(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)

	res := ApplyMetaUpdates(g, `The ogre falls.<META>{"xp": 25}</META>`)
	if !res.LeveledUp {
		t.Error("expected a level up")
	}
	if g.Stats.Level != 2 {
		t.Errorf("level = %d, want 2", g.Stats.Level)
	}
	if g.Stats.XP != 5 {
		t.Errorf("xp = %d, want 5 carried over", g.Stats.XP)
	}
	if g.Stats.UnassignedStatPoints != 1 {
		t.Errorf("points = %d, want 1", g.Stats.UnassignedStatPoints)
	}
}

func TestApplyMetaInventory(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Inventory = []string{"Torch", "Rope", "Rope"}

	ApplyMetaUpdates(g, `Loot!<META>{"inventory_add": ["Torch", "Iron Sword"], "inventory_remove": ["Rope", "Ghost Item"]}</META>`)
	want := []string{"Torch", "Rope", "Iron Sword"}
	if !reflect.DeepEqual(g.Inventory, want) {
		t.Errorf("inventory = %v, want %v", g.Inventory, want)
	}
}

func TestApplyMetaEquipBySlotName(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Inventory = []string{"Iron Sword"}

	ApplyMetaUpdates(g, `You draw the blade.<META>{"equip": {"right_hand": "Iron Sword"}}</META>`)
	if g.Equipment[models.SlotRightHand] != "Iron Sword" {
		t.Errorf("right_hand = %q", g.Equipment[models.SlotRightHand])
	}
	if len(g.Inventory) != 0 {
		t.Errorf("inventory = %v, equipped item should leave it", g.Inventory)
	}
}

func TestApplyMetaEquipResolvesSlot(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Inventory = []string{"Iron Helmet"}

	ApplyMetaUpdates(g, `You don it.<META>{"equip": {"headwear": "Iron Helmet"}}</META>`)
	if g.Equipment[models.SlotHelmet] != "Iron Helmet" {
		t.Errorf("helmet = %q", g.Equipment[models.SlotHelmet])
	}
}

func TestApplyMetaEquipPairsApplyInPayloadOrder(t *testing.T) {
	// Two jewelry items in a single block must fill the accessory slots
	// in the order the payload lists them, every time.
	for i := 0; i < 50; i++ {
		g := models.NewGame("Hero", models.Medium)
		ApplyMetaUpdates(g, `Gifts.<META>{"equip": {"Silver Ring": "Silver Ring", "Jade Pendant": "Jade Pendant"}}</META>`)
		if g.Equipment[models.SlotAccessory1] != "Silver Ring" {
			t.Fatalf("accessory_1 = %q, want Silver Ring", g.Equipment[models.SlotAccessory1])
		}
		if g.Equipment[models.SlotAccessory2] != "Jade Pendant" {
			t.Fatalf("accessory_2 = %q, want Jade Pendant", g.Equipment[models.SlotAccessory2])
		}
	}
}

func TestDecodeOrderedStringMap(t *testing.T) {
	pairs, err := decodeOrderedStringMap([]byte(`{"b": "1", "a": "2", "c": "3"}`))
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"b", "1"}, {"a", "2"}, {"c", "3"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("pairs = %v, want %v", pairs, want)
	}

	if _, err := decodeOrderedStringMap([]byte(`"notamap"`)); err == nil {
		t.Error("expected an error for a non-object value")
	}
	if _, err := decodeOrderedStringMap([]byte(`{"a": 1}`)); err == nil {
		t.Error("expected an error for a non-string value")
	}
}

func TestApplyMetaEquipUnresolvableSlot(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	before := g.Equipment[models.SlotRightHand]

	res := ApplyMetaUpdates(g, `Strange gift.<META>{"equip": {"thing": "Mysterious Orb"}}</META>`)
	if !strings.Contains(res.Story, "Couldn't determine correct slot for 'Mysterious Orb'") {
		t.Errorf("story missing slot warning: %q", res.Story)
	}
	if g.Equipment[models.SlotRightHand] != before {
		t.Error("unresolvable equip mutated equipment")
	}
}

func TestApplyMetaEquipReturnsDisplacedItem(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Equipment[models.SlotRightHand] = "Wooden Sword"
	g.Inventory = []string{"Iron Sword"}

	ApplyMetaUpdates(g, `An upgrade.<META>{"equip": {"right_hand": "Iron Sword"}}</META>`)
	if g.Equipment[models.SlotRightHand] != "Iron Sword" {
		t.Errorf("right_hand = %q", g.Equipment[models.SlotRightHand])
	}
	if !reflect.DeepEqual(g.Inventory, []string{"Wooden Sword"}) {
		t.Errorf("inventory = %v, displaced item should return", g.Inventory)
	}
}

func TestApplyMetaUnequipRoundTrip(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Inventory = []string{"Iron Sword"}

	ApplyMetaUpdates(g, `Drawn.<META>{"equip": {"right_hand": "Iron Sword"}}</META>`)
	ApplyMetaUpdates(g, `Sheathed.<META>{"unequip": ["right_hand", "helmet", "not_a_slot"]}</META>`)

	if g.Equipment[models.SlotRightHand] != "" {
		t.Errorf("right_hand = %q, want empty", g.Equipment[models.SlotRightHand])
	}
	if !reflect.DeepEqual(g.Inventory, []string{"Iron Sword"}) {
		t.Errorf("inventory = %v, want the exact item back", g.Inventory)
	}
}

func TestApplyMetaUnknownKeysIgnored(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	before := snapshot(t, g)

	res := ApplyMetaUpdates(g, `Hmm.<META>{"mystery": 5, "mood": "tense"}</META>`)
	if snapshot(t, g) != before {
		t.Error("unrecognized keys mutated state")
	}
	if strings.Contains(res.Story, "Error") {
		t.Errorf("unrecognized keys should be silent: %q", res.Story)
	}
}

func TestApplyMetaPartialApplication(t *testing.T) {
	g := models.NewGame("Hero", models.Medium)
	g.Stats.Health, g.Stats.Defense = 100, 0
	xpBefore := g.Stats.XP

	// health decodes and applies; gold's value is the wrong type, so the
	// update aborts there and xp is never reached.
	res := ApplyMetaUpdates(g, `Chaos.<META>{"health": -10, "gold": "lots", "xp": 50}</META>`)
	if g.Stats.Health != 90 {
		t.Errorf("health = %d, prior field should stay applied", g.Stats.Health)
	}
	if g.Stats.XP != xpBefore {
		t.Errorf("xp = %d, later field should not apply", g.Stats.XP)
	}
	if !strings.Contains(res.Story, "Error applying meta update") {
		t.Errorf("story missing apply annotation: %q", res.Story)
	}
}

func TestExtractMetaSpansNewlines(t *testing.T) {
	payload, stripped, found := extractMeta("Story.\n<META>{\n  \"gold\": 3\n}</META>\nMore.")
	if !found {
		t.Fatal("block not found")
	}
	if !strings.Contains(payload, `"gold": 3`) {
		t.Errorf("payload = %q", payload)
	}
	if strings.Contains(stripped, "META") {
		t.Errorf("stripped = %q", stripped)
	}
}
