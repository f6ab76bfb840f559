package models

import (
	"fmt"

	"github.com/ihno999/avanced-ai-semester-project/internal/items"
)

// PlayerStats holds the player's numeric attributes. Health, stamina and
// mana are always kept within [0, max].
type PlayerStats struct {
	Health               int `json:"health"`
	MaxHealth            int `json:"max_health"`
	Stamina              int `json:"stamina"`
	MaxStamina           int `json:"max_stamina"`
	Mana                 int `json:"mana"`
	MaxMana              int `json:"max_mana"`
	Strength             int `json:"strength"`
	Defense              int `json:"defense"`
	Intelligence         int `json:"intelligence"`
	Endurance            int `json:"endurance"`
	Magic                int `json:"magic"`
	XP                   int `json:"xp"`
	MaxXP                int `json:"max_xp"`
	Level                int `json:"level"`
	Gold                 int `json:"gold"`
	UnassignedStatPoints int `json:"unassigned_stat_points"`
}

// Equipment maps each of the 8 fixed slots to the equipped item name.
// An empty string means the slot is empty.
type Equipment map[string]string

// Slots lists the fixed equipment slots in display order.
var Slots = []string{
	SlotRightHand,
	SlotLeftHand,
	SlotHelmet,
	SlotChestplate,
	SlotLeggings,
	SlotBoots,
	SlotAccessory1,
	SlotAccessory2,
}

const (
	SlotRightHand  = "right_hand"
	SlotLeftHand   = "left_hand"
	SlotHelmet     = "helmet"
	SlotChestplate = "chestplate"
	SlotLeggings   = "leggings"
	SlotBoots      = "boots"
	SlotAccessory1 = "accessory_1"
	SlotAccessory2 = "accessory_2"
)

// NewEquipment returns an equipment set with all slots empty.
func NewEquipment() Equipment {
	eq := make(Equipment, len(Slots))
	for _, slot := range Slots {
		eq[slot] = ""
	}
	return eq
}

// IsSlot reports whether name is one of the fixed slot identifiers.
func (eq Equipment) IsSlot(name string) bool {
	_, ok := eq[name]
	return ok
}

// Difficulty selects a starting preset.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Valid reports whether d is one of the three presets.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// GameState aggregates everything a running game owns. The turn loop is the
// sole mutator; components receive it explicitly rather than sharing
// globals.
type GameState struct {
	PlayerName string      `json:"player_name"`
	Context    string      `json:"context"`
	GameMemory []string    `json:"game_memory"`
	Stats      PlayerStats `json:"player_stats"`
	Inventory  []string    `json:"inventory"`
	Difficulty Difficulty  `json:"difficulty"`
	Equipment  Equipment   `json:"equipment"`
}

// MemoryWindow is how many recent memory entries are fed back to the
// narrator for continuity.
const MemoryWindow = 6

// NewGame creates a fresh state for the chosen difficulty.
func NewGame(playerName string, difficulty Difficulty) *GameState {
	stats := PlayerStats{
		Strength:     10,
		Defense:      0,
		Intelligence: 1,
		Endurance:    1,
		Magic:        1,
		XP:           0,
		Level:        1,
		MaxXP:        20,
		Gold:         5,
		MaxHealth:    100,
		MaxStamina:   80,
		MaxMana:      30,
	}
	var inventory []string

	switch difficulty {
	case Easy:
		stats.MaxHealth, stats.Strength, stats.Defense = 200, 15, 5
		stats.MaxMana, stats.MaxStamina = 50, 100
		inventory = []string{"Torch", "Wooden Sword"}
	case Hard:
		stats.MaxHealth, stats.Strength, stats.Defense = 50, 5, 0
		stats.MaxMana, stats.MaxStamina = 10, 50
		inventory = []string{"Torch"}
	default:
		difficulty = Medium
		stats.MaxHealth, stats.Strength, stats.Defense = 100, 10, 2
		stats.MaxMana, stats.MaxStamina = 30, 80
		inventory = []string{"Torch", "Wooden Stick"}
	}
	stats.Health = stats.MaxHealth
	stats.Stamina = stats.MaxStamina
	stats.Mana = stats.MaxMana

	opening := fmt.Sprintf("%s awakens in a dark forest. A mysterious figure approaches.", playerName)
	return &GameState{
		PlayerName: playerName,
		Context:    opening,
		GameMemory: []string{opening},
		Stats:      stats,
		Inventory:  inventory,
		Difficulty: difficulty,
		Equipment:  NewEquipment(),
	}
}

// RecentContext joins the last MemoryWindow memory entries.
func (g *GameState) RecentContext() string {
	entries := g.GameMemory
	if len(entries) > MemoryWindow {
		entries = entries[len(entries)-MemoryWindow:]
	}
	out := ""
	for i, entry := range entries {
		if i > 0 {
			out += "\n"
		}
		out += entry
	}
	return out
}

// GearLine is one row of the equipped-gear listing.
type GearLine struct {
	Slot string
	Item string // formatted with boosts, or "None"
}

// View is a read-only render of the current state.
type View struct {
	HealthStr    string
	StaminaStr   string
	ManaStr      string
	Strength     int
	Defense      int
	Intelligence int
	Endurance    int
	Magic        int
	Level        int
	XPStr        string
	Gold         int
	Difficulty   string
	Inventory    []string
	Gear         []GearLine
}

// Render produces the read-only view shown after every turn. It never
// mutates state.
func (g *GameState) Render() View {
	s := g.Stats
	gear := make([]GearLine, 0, len(Slots))
	for _, slot := range Slots {
		item := "None"
		if equipped := g.Equipment[slot]; equipped != "" {
			item = items.Describe(equipped)
		}
		gear = append(gear, GearLine{Slot: slot, Item: item})
	}
	return View{
		HealthStr:    fmt.Sprintf("%d/%d", s.Health, s.MaxHealth),
		StaminaStr:   fmt.Sprintf("%d/%d", s.Stamina, s.MaxStamina),
		ManaStr:      fmt.Sprintf("%d/%d", s.Mana, s.MaxMana),
		Strength:     g.TotalStat("strength"),
		Defense:      g.TotalStat("defense"),
		Intelligence: g.TotalStat("intelligence"),
		Endurance:    g.TotalStat("endurance"),
		Magic:        g.TotalStat("magic"),
		Level:        s.Level,
		XPStr:        fmt.Sprintf("%d/%d", s.XP, s.MaxXP),
		Gold:         s.Gold,
		Difficulty:   g.Difficulty.String(),
		Inventory:    append([]string(nil), g.Inventory...),
		Gear:         gear,
	}
}
