package valuation

import (
	"testing"
	"time"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var healthNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := healthNow.AddDate(0, 0, -n)
	return &t
}

func TestSlowMoving(t *testing.T) {
	tests := []struct {
		name     string
		item     models.InventoryItem
		expected bool
	}{
		{
			name:     "no activity dates at all",
			item:     models.InventoryItem{Name: "A", QuantityOnHand: 200, UnitCost: fptr(2)},
			expected: true,
		},
		{
			name: "both dates stale",
			item: models.InventoryItem{Name: "B", QuantityOnHand: 10, UnitCost: fptr(1),
				LastRestockedDate: daysAgo(120), LastUsedDate: daysAgo(100)},
			expected: true,
		},
		{
			name: "recent restock keeps it active",
			item: models.InventoryItem{Name: "C", QuantityOnHand: 10, UnitCost: fptr(1),
				LastRestockedDate: daysAgo(5)},
			expected: false,
		},
		{
			name: "recent usage keeps it active",
			item: models.InventoryItem{Name: "D", QuantityOnHand: 10, UnitCost: fptr(1),
				LastRestockedDate: daysAgo(200), LastUsedDate: daysAgo(30)},
			expected: false,
		},
		{
			name:     "zero stock never flags",
			item:     models.InventoryItem{Name: "E", QuantityOnHand: 0, UnitCost: fptr(1)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valued := Valuate([]models.InventoryItem{tt.item}, MethodWeightedAverage)
			slow := SlowMoving(valued, healthNow, DefaultStaleWindowDays)
			if tt.expected {
				assert.Len(t, slow, 1)
			} else {
				assert.Empty(t, slow)
			}
		})
	}
}

func TestSlowMoving_RankedByValueDesc(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "cheap", QuantityOnHand: 10, UnitCost: fptr(1)},
		{Name: "dear", QuantityOnHand: 10, UnitCost: fptr(50)},
	}, MethodWeightedAverage)

	slow := SlowMoving(valued, healthNow, 90)
	require.Len(t, slow, 2)
	assert.Equal(t, "dear", slow[0].Name)
}

func TestDeadStock(t *testing.T) {
	used := daysAgo(400)
	valued := Valuate([]models.InventoryItem{
		{Name: "never used", QuantityOnHand: 5, UnitCost: fptr(2)},
		{Name: "used long ago", QuantityOnHand: 5, UnitCost: fptr(2), UsageCount: 3, LastUsedDate: used},
		{Name: "counter but no date", QuantityOnHand: 5, UnitCost: fptr(2), UsageCount: 1},
		{Name: "empty shelf", QuantityOnHand: 0, UnitCost: fptr(2)},
	}, MethodWeightedAverage)

	dead := DeadStock(valued)
	require.Len(t, dead, 1)
	assert.Equal(t, "never used", dead[0].Name)
}

// An item with stock, no activity dates, and a zero usage counter appears in
// both reports; they are independent classifications.
func TestStockHealth_NeverTouchedItemFlagsInBoth(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "Forgotten", QuantityOnHand: 200, AvgCost: fptr(2)},
	}, MethodWeightedAverage)

	slow := SlowMoving(valued, healthNow, 90)
	dead := DeadStock(valued)
	require.Len(t, slow, 1)
	require.Len(t, dead, 1)
	assert.Equal(t, 400.0, slow[0].TotalValue)
	assert.Equal(t, 400.0, dead[0].TotalValue)
}

// Stale usage keeps an item slow-moving without making it dead stock;
// the ever-used question is evaluated on its own.
func TestStockHealth_SlowButNotDead(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "Stale", QuantityOnHand: 10, UnitCost: fptr(1),
			UsageCount: 7, LastUsedDate: daysAgo(180), LastRestockedDate: daysAgo(180)},
	}, MethodWeightedAverage)

	assert.Len(t, SlowMoving(valued, healthNow, 90), 1)
	assert.Empty(t, DeadStock(valued))
}

// A freshly restocked item that has never been used is dead stock without
// being slow-moving.
func TestStockHealth_DeadButNotSlow(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "NewBuy", QuantityOnHand: 10, UnitCost: fptr(1), LastRestockedDate: daysAgo(3)},
	}, MethodWeightedAverage)

	assert.Empty(t, SlowMoving(valued, healthNow, 90))
	assert.Len(t, DeadStock(valued), 1)
}

func TestSlowMoving_WindowOverride(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{Name: "A", QuantityOnHand: 1, UnitCost: fptr(1), LastUsedDate: daysAgo(40), LastRestockedDate: daysAgo(40)},
	}, MethodWeightedAverage)

	assert.Empty(t, SlowMoving(valued, healthNow, 90))
	assert.Len(t, SlowMoving(valued, healthNow, 30), 1)
}
