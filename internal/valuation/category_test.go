package valuation

import (
	"testing"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByCategory_TwoCategoryScenario(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "Astragalus", Category: models.CategoryRawHerb, QuantityOnHand: 500, UnitCost: fptr(1)},
		{Name: "Angelica", Category: models.CategoryRawHerb, QuantityOnHand: 300, UnitCost: fptr(1)},
		{Name: "Gauze", Category: models.CategoryConsumable, QuantityOnHand: 200, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	buckets := AggregateByCategory(valued)
	require.Len(t, buckets, 2)

	assert.Equal(t, models.CategoryRawHerb, buckets[0].Category)
	assert.Equal(t, 800.0, buckets[0].Value)
	assert.Equal(t, 2, buckets[0].ItemCount)
	assert.Equal(t, 0.8, buckets[0].Percentage)

	assert.Equal(t, models.CategoryConsumable, buckets[1].Category)
	assert.Equal(t, 200.0, buckets[1].Value)
	assert.Equal(t, 0.2, buckets[1].Percentage)
}

func TestAggregateByCategory_PartitionInvariant(t *testing.T) {
	items := []models.InventoryItem{
		{Name: "A", Category: models.CategoryRawHerb, QuantityOnHand: 10, UnitCost: fptr(3)},
		{Name: "B", Category: models.CategoryGranule, QuantityOnHand: 4, UnitCost: fptr(7)},
		{Name: "C", Category: "Mystery", QuantityOnHand: 2, UnitCost: fptr(5)},
		{Name: "D", QuantityOnHand: 6, UnitCost: fptr(2)},
	}
	for _, method := range Methods {
		valued := Valuate(items, method)
		var bucketSum float64
		for _, b := range AggregateByCategory(valued) {
			bucketSum += b.Value
		}
		assert.Equal(t, Summarize(valued).TotalValue, bucketSum, "method %s", method)
	}
}

func TestAggregateByCategory_UnrecognizedMergesIntoOther(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "A", Category: "Elixir", QuantityOnHand: 1, UnitCost: fptr(1)},
		{Name: "B", Category: "", QuantityOnHand: 1, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	buckets := AggregateByCategory(valued)
	require.Len(t, buckets, 1)
	assert.Equal(t, models.CategoryOther, buckets[0].Category)
	assert.Equal(t, 2, buckets[0].ItemCount)
}

func TestAggregateByCategory_ZeroGrandTotal(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "A", Category: models.CategoryRawHerb, QuantityOnHand: 10},
		{Name: "B", Category: models.CategoryEquipment, QuantityOnHand: 5},
	}, MethodWeightedAverage)

	buckets := AggregateByCategory(valued)
	require.Len(t, buckets, 2)
	for _, b := range buckets {
		assert.Zero(t, b.Percentage)
	}
	// deterministic tie-break: canonical category order, value 0 all around
	assert.Equal(t, models.CategoryRawHerb, buckets[0].Category)
	assert.Equal(t, models.CategoryEquipment, buckets[1].Category)
}

func TestAggregateByCategory_OtherSortsLastOnTies(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "A", Category: "Unknown", QuantityOnHand: 10, UnitCost: fptr(1)},
		{Name: "B", Category: models.CategoryEquipment, QuantityOnHand: 10, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	buckets := AggregateByCategory(valued)
	require.Len(t, buckets, 2)
	assert.Equal(t, models.CategoryEquipment, buckets[0].Category)
	assert.Equal(t, models.CategoryOther, buckets[1].Category)
}

func TestAggregateByCategory_EmptyInventory(t *testing.T) {
	assert.Empty(t, AggregateByCategory(nil))
}
