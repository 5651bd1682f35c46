package service

import (
	"strings"
	"time"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

// MatchingItems returns the items whose month and day equal today's. The
// stored year is ignored, so a single date recurs annually (birthdays,
// anniversaries). Items with a missing or unparseable date are skipped, not
// errors. A Feb 29 item matches only on an actual Feb 29, never on Mar 1 of
// a non-leap year.
func MatchingItems(today time.Time, items []model.DatedItem) []model.DatedItem {
	var matched []model.DatedItem
	for _, item := range items {
		d, err := time.Parse(model.DateLayout, strings.TrimSpace(item.Date))
		if err != nil {
			continue
		}
		if d.Month() == today.Month() && d.Day() == today.Day() {
			matched = append(matched, item)
		}
	}
	return matched
}
