package valuation

import (
	"testing"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAll_AstragalusScenario(t *testing.T) {
	rows, totals := CompareAll([]models.InventoryItem{
		{ID: 1, Name: "Astragalus", Category: models.CategoryRawHerb, QuantityOnHand: 1000,
			AvgCost: fptr(0.5), FifoCost: fptr(0.6), LastCost: fptr(0.55)},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 500.0, rows[0].WeightedAvg)
	assert.Equal(t, 600.0, rows[0].Fifo)
	assert.Equal(t, 550.0, rows[0].LastCost)
	assert.Equal(t, 100.0, rows[0].MaxDiff)

	assert.Equal(t, 500.0, totals.WeightedAvg)
	assert.Equal(t, 600.0, totals.Fifo)
	assert.Equal(t, 550.0, totals.LastCost)
	assert.Equal(t, 100.0, totals.MaxDiff)
}

func TestCompareAll_SortsByMaxDiffDesc(t *testing.T) {
	rows, _ := CompareAll([]models.InventoryItem{
		{ID: 1, Name: "stable", QuantityOnHand: 10, AvgCost: fptr(1), FifoCost: fptr(1), LastCost: fptr(1)},
		{ID: 2, Name: "volatile", QuantityOnHand: 10, AvgCost: fptr(1), FifoCost: fptr(5), LastCost: fptr(2)},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "volatile", rows[0].ItemName)
	assert.Equal(t, 40.0, rows[0].MaxDiff)
	assert.Zero(t, rows[1].MaxDiff)
}

func TestCompareAll_RowConsistency(t *testing.T) {
	items := []models.InventoryItem{
		{ID: 1, Name: "A", QuantityOnHand: 3, AvgCost: fptr(2), FifoCost: fptr(4)},
		{ID: 2, Name: "B", QuantityOnHand: 7, UnitCost: fptr(1.5)},
		{ID: 3, Name: "C", QuantityOnHand: 5},
	}
	rows, totals := CompareAll(items)
	require.Len(t, rows, 3)

	var sumAvg, sumFifo, sumLast float64
	for _, row := range rows {
		assert.Equal(t, spread(row.WeightedAvg, row.Fifo, row.LastCost), row.MaxDiff)
		sumAvg += row.WeightedAvg
		sumFifo += row.Fifo
		sumLast += row.LastCost
	}
	assert.Equal(t, sumAvg, totals.WeightedAvg)
	assert.Equal(t, sumFifo, totals.Fifo)
	assert.Equal(t, sumLast, totals.LastCost)
	assert.Equal(t, spread(totals.WeightedAvg, totals.Fifo, totals.LastCost), totals.MaxDiff)
}

func TestCompareAll_EmptyInventory(t *testing.T) {
	rows, totals := CompareAll(nil)
	assert.Empty(t, rows)
	assert.Equal(t, models.ComparisonTotals{}, totals)
}
