package cards

// Category is the card-type taxonomy used by the layout resolver.
type Category string

const (
	CategoryClass           Category = "class"
	CategoryRace            Category = "race"
	CategoryCurse           Category = "curse"
	CategoryItem            Category = "item"
	CategoryLevelUp         Category = "level_up"
	CategoryFaithfulServant Category = "faithful_servant"
	CategoryDungeonTrap     Category = "dungeon_trap"
	CategoryDungeonBonus    Category = "dungeon_bonus"
	CategoryTreasureTrap    Category = "treasure_trap"
	CategoryMonster         Category = "monster"
)

// Equipment slots an item card can occupy. SlotEnhancement marks item
// enhancers ("+X to an item") which render on the curse-style template.
const (
	SlotOneHand     = "1_hand"
	SlotTwoHands    = "2_hands"
	SlotHead        = "head"
	SlotFeet        = "feet"
	SlotArmor       = "armor"
	SlotEnhancement = "enhancement"
)

// Card is one card record as produced by the external editor. It is an
// immutable input to rendering; the pipeline never writes it back.
type Card struct {
	CardID       string   `json:"card_id"`
	Title        string   `json:"title"`
	Category     Category `json:"category"`
	Level        int      `json:"level"`
	Bonus        string   `json:"bonus"`
	Price        int      `json:"price"`
	Treasures    int      `json:"treasures"`
	Description  string   `json:"description"`
	BadStuff     string   `json:"bad_stuff"`
	Restrictions string   `json:"restrictions"`
	Slot         string   `json:"slot"`
	Big          bool     `json:"big"`
	ArtURL       string   `json:"art_url"`
	ArtScale     float64  `json:"art_scale"`
	ArtOffsetX   float64  `json:"art_offset_x"`
	ArtOffsetY   float64  `json:"art_offset_y"`
	TextScale    float64  `json:"text_scale"`
}

// ArtScaleOrDefault returns the user art scale with 100 (%) as the default.
func (c Card) ArtScaleOrDefault() float64 {
	if c.ArtScale <= 0 {
		return 100
	}
	return c.ArtScale
}

// TextScaleOrDefault returns the text-box scale with 100 (%) as the default.
func (c Card) TextScaleOrDefault() float64 {
	if c.TextScale <= 0 {
		return 100
	}
	return c.TextScale
}
