package splitting

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// DateNotFound is the order date sentinel used when the receipt text does not
// carry a recognizable order date.
const DateNotFound = "Date Not Found"

var (
	// Order dates appear as e.g. "Oct 5, 2023 order" in Walmart receipts.
	orderDatePattern = regexp.MustCompile(`([A-Z][a-z]{2,8} \d{1,2}, \d{4}) order`)

	// Item lines look like "Bananas Qty 3 $1.50". The name capture is
	// non-greedy so it stops at the nearest "Qty" token.
	itemPattern = regexp.MustCompile(`(.+?)\s+Qty\s+(\d+)\s+\$?(\d+\.\d{2})`)
)

// Parse extracts the order date and line items from receipt text.
//
// Zero matches yield an empty table, not an error; the caller decides how to
// surface that. Matches with a literal quantity of zero are skipped so a
// malformed receipt can never produce a division by zero downstream. Parsing
// is deterministic: the same text always yields the same table and date.
func Parse(text string) (ItemTable, string) {
	orderDate := DateNotFound
	if m := orderDatePattern.FindStringSubmatch(text); m != nil {
		orderDate = m[1]
	}

	var items ItemTable
	for _, m := range itemPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		quantity, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		total, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}

		item, err := NewLineItem(name, quantity, total)
		if err != nil {
			slog.Warn("Skipping invalid receipt line", "name", name, "quantity", quantity, "total", total, "error", err)
			continue
		}
		items = items.Append(item)
	}

	return items, orderDate
}
