package valuation

import (
	"sort"

	"clinic_backoffice/internal/models"
)

// CompareAll values every item under all supported methods at once and
// reports how sensitive each valuation is to the choice of method. Rows are
// sorted by descending MaxDiff so the items an auditor should inspect first
// surface at the top. The totals row carries each method's portfolio sum and
// the spread between the largest and smallest of the three.
func CompareAll(items []models.InventoryItem) ([]models.ComparisonRow, models.ComparisonTotals) {
	avgValued := Valuate(items, MethodWeightedAverage)
	fifoValued := Valuate(items, MethodFIFO)
	lastValued := Valuate(items, MethodLastCost)

	rows := make([]models.ComparisonRow, 0, len(items))
	var totals models.ComparisonTotals

	for i := range items {
		row := models.ComparisonRow{
			ItemID:      items[i].ID,
			ItemName:    items[i].Name,
			WeightedAvg: avgValued[i].TotalValue,
			Fifo:        fifoValued[i].TotalValue,
			LastCost:    lastValued[i].TotalValue,
		}
		row.MaxDiff = spread(row.WeightedAvg, row.Fifo, row.LastCost)

		totals.WeightedAvg += row.WeightedAvg
		totals.Fifo += row.Fifo
		totals.LastCost += row.LastCost

		rows = append(rows, row)
	}
	totals.MaxDiff = spread(totals.WeightedAvg, totals.Fifo, totals.LastCost)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MaxDiff > rows[j].MaxDiff
	})
	return rows, totals
}

func spread(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
