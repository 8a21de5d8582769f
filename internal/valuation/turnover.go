package valuation

import (
	"sort"
	"time"

	"clinic_backoffice/internal/models"
)

// DefaultTurnoverWindowDays is the trailing consumption window used when the
// caller does not override it.
const DefaultTurnoverWindowDays = 365

// Turnover rating band labels. Boundaries are inclusive on the lower bound,
// exclusive on the upper.
const (
	RatingVeryLow = "very_low" // ratio < 1
	RatingLow     = "low"      // 1 <= ratio < 3
	RatingNormal  = "normal"   // 3 <= ratio < 6
	RatingGood    = "good"     // ratio >= 6
)

// Rating maps a turnover ratio onto its qualitative band. This is purely a
// presentation rule; the ratio itself is the stored figure.
func Rating(ratio float64) string {
	switch {
	case ratio < 1:
		return RatingVeryLow
	case ratio < 3:
		return RatingLow
	case ratio < 6:
		return RatingNormal
	default:
		return RatingGood
	}
}

// Turnover computes per-item annualized consumption against the current
// valuation. Events inside the trailing window are joined to items by name
// (the consumption feed carries no stable item identifier, a known
// limitation), summed into an annual quantity, and priced at the item's
// current method unit value — a known approximation that conflates
// present-day pricing with past consumption.
//
// Items with stock but zero valuation are included with a ratio of 0 rather
// than dropped; items with no stock are omitted. Records come back sorted by
// ascending ratio: the items most at risk of obsolescence first.
func Turnover(valued []models.ValuedItem, events []models.ConsumptionEvent, now time.Time, windowDays int) []models.TurnoverRecord {
	if windowDays <= 0 {
		windowDays = DefaultTurnoverWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	consumedByName := make(map[string]float64)
	for _, ev := range events {
		if ev.Date.Before(cutoff) || ev.Date.After(now) {
			continue
		}
		if ev.Quantity <= 0 {
			continue
		}
		consumedByName[ev.ItemName] += ev.Quantity
	}

	var records []models.TurnoverRecord
	for _, v := range valued {
		if v.QuantityOnHand <= 0 {
			continue
		}
		annualQty := consumedByName[v.Name]
		annualCost := annualQty * v.UnitValue

		var ratio float64
		if v.TotalValue > 0 {
			ratio = annualCost / v.TotalValue
		}

		records = append(records, models.TurnoverRecord{
			ItemID:              v.ID,
			ItemName:            v.Name,
			AnnualQuantity:      annualQty,
			EstimatedAnnualCost: annualCost,
			CurrentValue:        v.TotalValue,
			TurnoverRatio:       ratio,
			Rating:              Rating(ratio),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TurnoverRatio < records[j].TurnoverRatio
	})
	return records
}
