package splitting

import (
	"fmt"
	"strconv"
	"strings"
)

// UnitCard is a single assignable unit of a line item. An item with quantity
// three produces three cards with ordinals 0, 1 and 2. Cards are derived from
// the item table and recomputed whenever the table changes.
type UnitCard struct {
	Item    int `json:"item"`    // Index into the item table
	Ordinal int `json:"ordinal"` // 0..quantity-1 within the item
}

// Key is the card's stable identity, e.g. "2_0" for the first unit of the
// item at index 2. Keys are what the assignment mapping and the UI refer to.
func (c UnitCard) Key() string {
	return fmt.Sprintf("%d_%d", c.Item, c.Ordinal)
}

// ParseCardKey parses a card key back into a UnitCard.
func ParseCardKey(key string) (UnitCard, error) {
	itemPart, ordinalPart, ok := strings.Cut(key, "_")
	if !ok {
		return UnitCard{}, fmt.Errorf("malformed card key: %q", key)
	}
	item, err := strconv.Atoi(itemPart)
	if err != nil {
		return UnitCard{}, fmt.Errorf("malformed card key: %q", key)
	}
	ordinal, err := strconv.Atoi(ordinalPart)
	if err != nil {
		return UnitCard{}, fmt.Errorf("malformed card key: %q", key)
	}
	return UnitCard{Item: item, Ordinal: ordinal}, nil
}

// ExpandUnits produces one card per purchasable unit, preserving the table's
// item order and ordinal order. Pure function of the table.
func ExpandUnits(items ItemTable) []UnitCard {
	var cards []UnitCard
	for i, item := range items {
		for ordinal := 0; ordinal < item.Quantity; ordinal++ {
			cards = append(cards, UnitCard{Item: i, Ordinal: ordinal})
		}
	}
	return cards
}
