package splitting

import (
	"fmt"
	"strings"
)

// Assignment maps unit card keys to the member who claimed the unit. A card
// that is absent from the map (or mapped to the empty string) is unassigned.
// The mapping is mutated by the interaction layer and read here.
type Assignment map[string]string

// AssignedQuantity counts how many units of the item at the given index a
// person has claimed.
func (a Assignment) AssignedQuantity(item int, person string) int {
	count := 0
	for key, owner := range a {
		if owner != person {
			continue
		}
		card, err := ParseCardKey(key)
		if err != nil {
			continue
		}
		if card.Item == item {
			count++
		}
	}
	return count
}

// Summarize renders the per-person cost breakdown for a receipt.
//
// For every person, in caller order, it tallies the units they claimed per
// item and prices them at the item's unit price. Units left unassigned are
// excluded from every total: the grand total reflects allocated cost only,
// not the receipt total. That exclusion is a deliberate policy carried over
// from the product's behavior, not an accounting bug.
//
// An empty people list degenerates to a header and a zero grand total.
func Summarize(items ItemTable, assignment Assignment, people []string, orderDate string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%s:\n\n", orderDate)

	var grandTotal float64
	for _, person := range people {
		var personTotal float64
		costs := make([]float64, len(items))
		quantities := make([]int, len(items))
		for i, item := range items {
			quantities[i] = assignment.AssignedQuantity(i, person)
			costs[i] = float64(quantities[i]) * item.UnitPrice()
			personTotal += costs[i]
		}

		fmt.Fprintf(&out, "%s: $%.2f\n", person, personTotal)
		for i, item := range items {
			if quantities[i] > 0 {
				fmt.Fprintf(&out, "%d× %s – $%.2f\n", quantities[i], item.Name, costs[i])
			}
		}
		out.WriteString("\n")

		grandTotal += personTotal
	}

	fmt.Fprintf(&out, "Grand Total = $%.2f\n", grandTotal)
	return out.String()
}
