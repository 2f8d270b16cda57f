// Package layout maps a card record to its template asset and back
// category.
package layout

import (
	"image"
	"os"
	"path/filepath"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
)

// Template asset names in the template directory.
const (
	TemplateClass        = "class.png"
	TemplateRace         = "race.png"
	TemplateCurse        = "curse.png"
	TemplateItem         = "item.png"
	TemplateEquippedItem = "equipped_item.png"
	TemplateLevelUp      = "level_up.png"
	TemplateMonster      = "monster.png"
)

// Back categories. They select the back art and back-page background of
// the printed reverse side.
const (
	BackDonjon = "donjon"
	BackTresor = "tresor"
)

// TemplateFor resolves the template file name for a card. Per-category
// overrides from the configuration win over the decision table.
func TemplateFor(c cards.Card, cfg config.Config) string {
	if name, ok := cfg.TemplateOverrides[string(c.Category)]; ok && name != "" {
		return name
	}
	switch c.Category {
	case cards.CategoryClass:
		return TemplateClass
	case cards.CategoryRace:
		return TemplateRace
	case cards.CategoryCurse:
		return TemplateCurse
	case cards.CategoryItem:
		if c.Slot == cards.SlotEnhancement {
			return TemplateCurse
		}
		if c.Slot != "" || c.Big {
			return TemplateEquippedItem
		}
		return TemplateItem
	case cards.CategoryLevelUp:
		return TemplateLevelUp
	case cards.CategoryFaithfulServant, cards.CategoryDungeonTrap,
		cards.CategoryDungeonBonus, cards.CategoryTreasureTrap:
		return TemplateCurse
	default:
		return TemplateMonster
	}
}

// BackFor classifies a card into one of the two back categories.
func BackFor(c cards.Card) string {
	switch c.Category {
	case cards.CategoryItem, cards.CategoryLevelUp, cards.CategoryTreasureTrap:
		return BackTresor
	default:
		return BackDonjon
	}
}

// State of a template resolution.
type State int

const (
	StateResolved State = iota
	StateMissing
)

// Resolution is the tagged outcome of the candidate path chain. Missing is
// terminal and non-fatal: the card is composited with placeholder styling.
type Resolution struct {
	State State
	Path  string
	Tried []string
}

// Candidates returns the ordered path conventions for a template asset:
// the configured template directory, the bare file name, then an
// absolute-rooted path.
func Candidates(name string, cfg config.Config) []string {
	return []string{
		filepath.Join(cfg.TemplateDir, name),
		name,
		string(filepath.Separator) + name,
	}
}

// Load walks the candidate chain with the caller's open function. A
// candidate that exists but fails to open or decode falls through to the
// next convention; only after all three fail is the asset Missing. img is
// whatever open returned for the winning candidate.
func Load(name string, cfg config.Config, open func(path string) (image.Image, error)) (image.Image, Resolution) {
	var tried []string
	for _, p := range Candidates(name, cfg) {
		tried = append(tried, p)
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			continue
		}
		img, err := open(p)
		if err != nil {
			continue
		}
		return img, Resolution{State: StateResolved, Path: p, Tried: tried}
	}
	return nil, Resolution{State: StateMissing, Tried: tried}
}
