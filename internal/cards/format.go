package cards

import (
	"strconv"
	"strings"
)

// FormatBonus renders a bonus value for the card badge. A bare positive
// integer gets a leading "+", a negative keeps its sign, and a "low/high"
// range gets "+" applied to its first segment only. Zero, empty and
// non-numeric scalars render as nothing.
func FormatBonus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		lo := strings.TrimSpace(parts[0])
		hi := strings.TrimSpace(parts[1])
		if _, err := strconv.Atoi(lo); err != nil {
			return s
		}
		if _, err := strconv.Atoi(hi); err != nil {
			return s
		}
		return signed(lo) + "/" + hi
	}
	if _, err := strconv.Atoi(s); err != nil {
		return ""
	}
	if v, _ := strconv.Atoi(s); v == 0 {
		return ""
	}
	return signed(s)
}

func signed(s string) string {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return s
	}
	return "+" + s
}

// FormatPrice renders an item's gold-piece value for the bottom-right
// corner label. Zero or negative prices produce no label.
func FormatPrice(price int) string {
	if price <= 0 {
		return ""
	}
	return strconv.Itoa(price) + " Pièces d'Or"
}

// SlotLabel renders the bottom-left corner label for an equipment slot.
func SlotLabel(slot string, big bool) string {
	var label string
	switch slot {
	case SlotOneHand:
		label = "1 Main"
	case SlotTwoHands:
		label = "2 Mains"
	case SlotHead:
		label = "Couvre-Chef"
	case SlotFeet:
		label = "Chaussures"
	case SlotArmor:
		label = "Armure"
	default:
		label = ""
	}
	if big {
		if label != "" {
			label += " - Gros"
		} else {
			label = "Gros"
		}
	}
	return label
}
