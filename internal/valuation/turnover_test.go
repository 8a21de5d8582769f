package valuation

import (
	"testing"
	"time"

	"clinic_backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var turnoverNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func eventOn(name string, qty float64, daysBack int) models.ConsumptionEvent {
	return models.ConsumptionEvent{
		ItemName: name,
		Quantity: qty,
		Date:     turnoverNow.AddDate(0, 0, -daysBack),
	}
}

func TestTurnover_JoinsByNameWithinWindow(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "Astragalus", QuantityOnHand: 100, AvgCost: fptr(0.5)},
	}, MethodWeightedAverage)

	events := []models.ConsumptionEvent{
		eventOn("Astragalus", 200, 30),
		eventOn("Astragalus", 100, 200),
		eventOn("Astragalus", 500, 400), // outside the year window
		eventOn("Angelica", 50, 10),     // different item
	}

	records := Turnover(valued, events, turnoverNow, DefaultTurnoverWindowDays)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 300.0, rec.AnnualQuantity)
	assert.Equal(t, 150.0, rec.EstimatedAnnualCost) // 300 * 0.5, priced at current unit value
	assert.Equal(t, 50.0, rec.CurrentValue)
	assert.Equal(t, 3.0, rec.TurnoverRatio)
	assert.Equal(t, RatingNormal, rec.Rating)
}

func TestTurnover_ZeroValuationYieldsZeroRatio(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "Uncosted", QuantityOnHand: 40},
	}, MethodWeightedAverage)

	records := Turnover(valued, []models.ConsumptionEvent{eventOn("Uncosted", 90, 5)}, turnoverNow, 365)
	require.Len(t, records, 1, "item with stock stays in the report")
	assert.Zero(t, records[0].TurnoverRatio)
	assert.Equal(t, RatingVeryLow, records[0].Rating)
}

func TestTurnover_SkipsItemsWithoutStock(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "Gone", QuantityOnHand: 0, UnitCost: fptr(2)},
	}, MethodWeightedAverage)

	assert.Empty(t, Turnover(valued, nil, turnoverNow, 365))
}

func TestTurnover_SortedAscendingByRatio(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "fast", QuantityOnHand: 10, UnitCost: fptr(1)},
		{ID: 2, Name: "slow", QuantityOnHand: 10, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	events := []models.ConsumptionEvent{
		eventOn("fast", 80, 10),
		eventOn("slow", 5, 10),
	}

	records := Turnover(valued, events, turnoverNow, 365)
	require.Len(t, records, 2)
	assert.Equal(t, "slow", records[0].ItemName, "lowest turnover first")
	assert.Equal(t, "fast", records[1].ItemName)
}

func TestTurnover_WindowOverride(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "A", QuantityOnHand: 10, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	events := []models.ConsumptionEvent{eventOn("A", 30, 60)}

	require.Len(t, Turnover(valued, events, turnoverNow, 90), 1)
	assert.Equal(t, 30.0, Turnover(valued, events, turnoverNow, 90)[0].AnnualQuantity)
	assert.Zero(t, Turnover(valued, events, turnoverNow, 30)[0].AnnualQuantity)
}

func TestTurnover_IgnoresMalformedEvents(t *testing.T) {
	valued := Valuate([]models.InventoryItem{
		{ID: 1, Name: "A", QuantityOnHand: 10, UnitCost: fptr(1)},
	}, MethodWeightedAverage)

	events := []models.ConsumptionEvent{
		{ItemName: "A", Quantity: -5, Date: turnoverNow.AddDate(0, 0, -1)},
		{ItemName: "A", Quantity: 20, Date: turnoverNow.AddDate(0, 0, 10)}, // future-dated
	}

	records := Turnover(valued, events, turnoverNow, 365)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].AnnualQuantity)
}

func TestRating_Bands(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected string
	}{
		{0, RatingVeryLow},
		{0.99, RatingVeryLow},
		{1, RatingLow},
		{2.9, RatingLow},
		{3, RatingNormal},
		{5.9, RatingNormal},
		{6, RatingGood},
		{40, RatingGood},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Rating(tt.ratio), "ratio %v", tt.ratio)
	}
}
