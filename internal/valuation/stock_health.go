package valuation

import (
	"sort"
	"time"

	"clinic_backoffice/internal/models"
)

// DefaultStaleWindowDays is the trailing window with no observed activity
// after which held stock is considered slow-moving.
const DefaultStaleWindowDays = 90

// SlowMoving returns items holding stock with no restock and no usage
// activity inside the trailing window ending at now. A missing activity date
// counts as stale. Results are ranked by descending total value so the most
// capital-intensive laggards surface first.
func SlowMoving(valued []models.ValuedItem, now time.Time, windowDays int) []models.ValuedItem {
	if windowDays <= 0 {
		windowDays = DefaultStaleWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	var slow []models.ValuedItem
	for _, v := range valued {
		if v.QuantityOnHand <= 0 {
			continue
		}
		if staleOrMissing(v.LastRestockedDate, cutoff) && staleOrMissing(v.LastUsedDate, cutoff) {
			slow = append(slow, v)
		}
	}
	sortByValueDesc(slow)
	return slow
}

// DeadStock returns items holding stock that have never been used at all:
// a zero cumulative usage counter and no last-used date. This is a stricter
// question than slow-moving (ever-used vs. recently active); the two sets
// are computed independently and may overlap.
func DeadStock(valued []models.ValuedItem) []models.ValuedItem {
	var dead []models.ValuedItem
	for _, v := range valued {
		if v.QuantityOnHand <= 0 {
			continue
		}
		if v.UsageCount == 0 && v.TotalUsed == 0 && v.LastUsedDate == nil {
			dead = append(dead, v)
		}
	}
	sortByValueDesc(dead)
	return dead
}

func staleOrMissing(t *time.Time, cutoff time.Time) bool {
	return t == nil || t.Before(cutoff)
}

func sortByValueDesc(items []models.ValuedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalValue > items[j].TotalValue
	})
}
