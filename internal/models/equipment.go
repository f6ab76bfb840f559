package models

import "strings"

// slotRule maps keyword substrings to an equipment slot. Rules are checked
// in order; the first category with a matching keyword wins.
type slotRule struct {
	slot     string
	keywords []string
}

var slotRules = []slotRule{
	{SlotRightHand, []string{"sword", "dagger", "mace", "axe", "blade", "stick", "staff", "spear", "whip", "wand"}},
	{SlotLeftHand, []string{"shield", "buckler", "torch", "lamp", "light", "torchlight"}},
	{SlotHelmet, []string{"helmet", "helm", "hood", "cap", "mask", "headgear", "crown", "headpiece"}},
	{SlotChestplate, []string{"chestplate", "armor", "robe", "shirt", "tunic", "vest", "plate", "body armor"}},
	{SlotLeggings, []string{"leggings", "pants", "greaves", "trousers", "shorts", "skirt", "bottoms"}},
	{SlotBoots, []string{"boots", "shoes", "sandals", "footwear", "slippers", "sneakers", "kicks"}},
	{slotAccessory, []string{"ring", "amulet", "necklace", "charm", "locket", "brooch", "bracelet", "trinket", "talisman", "pendant", "earring", "gemstone", "jewel"}},
}

// slotAccessory is a pseudo-slot resolved against the current equipment:
// accessory_1 if free, else accessory_2, else accessory_1 again (the last
// jewelry item wins when both are occupied).
const slotAccessory = "accessory"

// DetectSlot resolves an item name to an equipment slot by keyword match,
// case-insensitively. Returns false if no category matches.
func DetectSlot(itemName string, eq Equipment) (string, bool) {
	name := strings.ToLower(itemName)
	for _, rule := range slotRules {
		for _, kw := range rule.keywords {
			if !strings.Contains(name, kw) {
				continue
			}
			if rule.slot != slotAccessory {
				return rule.slot, true
			}
			if eq[SlotAccessory1] == "" {
				return SlotAccessory1, true
			}
			if eq[SlotAccessory2] == "" {
				return SlotAccessory2, true
			}
			return SlotAccessory1, true
		}
	}
	return "", false
}
