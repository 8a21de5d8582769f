package valuation

import (
	"testing"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestParseMethod(t *testing.T) {
	assert.Equal(t, MethodFIFO, ParseMethod("fifo"))
	assert.Equal(t, MethodLastCost, ParseMethod("last_cost"))
	assert.Equal(t, MethodWeightedAverage, ParseMethod("weighted_average"))
	assert.Equal(t, DefaultMethod, ParseMethod(""))
	assert.Equal(t, DefaultMethod, ParseMethod("lifo"))
}

func TestUnitValue_ResolutionOrder(t *testing.T) {
	tests := []struct {
		name     string
		item     models.InventoryItem
		method   Method
		expected float64
	}{
		{
			name:   "weighted average prefers avg cost",
			item:   models.InventoryItem{AvgCost: fptr(0.5), UnitCost: fptr(9)},
			method: MethodWeightedAverage, expected: 0.5,
		},
		{
			name:   "fifo prefers fifo cost",
			item:   models.InventoryItem{FifoCost: fptr(0.6), UnitCost: fptr(9)},
			method: MethodFIFO, expected: 0.6,
		},
		{
			name:   "last cost prefers last cost",
			item:   models.InventoryItem{LastCost: fptr(0.55), UnitCost: fptr(9)},
			method: MethodLastCost, expected: 0.55,
		},
		{
			name:   "missing method field falls back to unit cost",
			item:   models.InventoryItem{UnitCost: fptr(1.25)},
			method: MethodFIFO, expected: 1.25,
		},
		{
			name:   "negative stored cost clamps to zero",
			item:   models.InventoryItem{AvgCost: fptr(-3)},
			method: MethodWeightedAverage, expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnitValue(tt.item, tt.method))
		})
	}
}

func TestUnitValue_NoCostFieldsIsZeroUnderEveryMethod(t *testing.T) {
	item := models.InventoryItem{Name: "Uncosted", QuantityOnHand: 50}
	for _, method := range Methods {
		assert.Zero(t, UnitValue(item, method), "method %s", method)
	}
}
