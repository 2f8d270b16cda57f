package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Deck is an ordered list of cards as handed over by the editor. Order is
// significant: export numbering follows it.
type Deck struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// LoadDeck reads a deck JSON file. It accepts both the {"name":...,
// "cards":[...]} shape and a bare card array.
func LoadDeck(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, err
	}
	var d Deck
	if err := json.Unmarshal(data, &d); err == nil && len(d.Cards) > 0 {
		if d.Name == "" {
			d.Name = deckNameFromPath(path)
		}
		return d, nil
	}
	var list []Card
	if err := json.Unmarshal(data, &list); err != nil {
		return Deck{}, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	return Deck{Name: deckNameFromPath(path), Cards: list}, nil
}

// LoadDecksFromDataDir loads every *.json deck in a data directory
// (best-effort; missing directory is not an error when optional startup
// data is absent).
func LoadDecksFromDataDir(dataDir string) ([]Deck, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var decks []Deck
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		d, err := LoadDeck(filepath.Join(dataDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", e.Name(), err)
		}
		decks = append(decks, d)
	}
	if len(decks) == 0 {
		return nil, fmt.Errorf("no deck JSON files found in %s", dataDir)
	}
	return decks, nil
}

func deckNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
