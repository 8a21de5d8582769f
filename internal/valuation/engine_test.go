package valuation

import (
	"testing"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuate_AstragalusScenario(t *testing.T) {
	items := []models.InventoryItem{
		{
			Name:           "Astragalus",
			Category:       models.CategoryRawHerb,
			QuantityOnHand: 1000,
			AvgCost:        fptr(0.5),
			FifoCost:       fptr(0.6),
			LastCost:       fptr(0.55),
		},
	}

	tests := []struct {
		method        Method
		expectedUnit  float64
		expectedTotal float64
	}{
		{MethodWeightedAverage, 0.5, 500},
		{MethodFIFO, 0.6, 600},
		{MethodLastCost, 0.55, 550},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			valued := Valuate(items, tt.method)
			require.Len(t, valued, 1)
			assert.Equal(t, tt.expectedUnit, valued[0].UnitValue)
			assert.Equal(t, tt.expectedTotal, valued[0].TotalValue)
		})
	}
}

func TestValuate_PreservesOrderAndLength(t *testing.T) {
	items := []models.InventoryItem{
		{ID: 3, Name: "C", QuantityOnHand: 1, UnitCost: fptr(1)},
		{ID: 1, Name: "A", QuantityOnHand: 2, UnitCost: fptr(2)},
		{ID: 2, Name: "B"},
	}
	valued := Valuate(items, MethodWeightedAverage)
	require.Len(t, valued, len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, valued[i].ID)
	}
}

func TestValuate_NegativeQuantityNormalizesToZero(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "Ginseng", QuantityOnHand: -40, UnitCost: fptr(12)},
	}, MethodWeightedAverage)
	require.Len(t, valued, 1)
	assert.Zero(t, valued[0].QuantityOnHand)
	assert.Zero(t, valued[0].TotalValue)
}

func TestValuate_DefaultsUnit(t *testing.T) {
	valued := Valuate([]models.InventoryItem{{Name: "Licorice"}}, MethodFIFO)
	require.Len(t, valued, 1)
	assert.Equal(t, models.DefaultUnit, valued[0].Unit)
}

func TestSummarize(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "A", QuantityOnHand: 100, UnitCost: fptr(2)},
		{Name: "B", QuantityOnHand: 50, UnitCost: fptr(4)},
		{Name: "C", QuantityOnHand: 0, UnitCost: fptr(10)},
	}, MethodWeightedAverage)

	summary := Summarize(valued)
	assert.Equal(t, 3, summary.SKUCount, "zero-stock SKUs still count as tracked items")
	assert.Equal(t, 150.0, summary.TotalQuantity)
	assert.Equal(t, 400.0, summary.TotalValue)
}

func TestSummarize_EmptyInventory(t *testing.T) {
	summary := Summarize(Valuate(nil, MethodLastCost))
	assert.Zero(t, summary.SKUCount)
	assert.Zero(t, summary.TotalQuantity)
	assert.Zero(t, summary.TotalValue)
}
