package models

import "time"

// ItemCategory is the closed set of inventory categories the clinic tracks.
// Anything outside this set is reported under CategoryOther.
type ItemCategory string

const (
	CategoryRawHerb        ItemCategory = "RawHerb"
	CategoryGranule        ItemCategory = "Granule"
	CategoryPatentMedicine ItemCategory = "PatentMedicine"
	CategoryConsumable     ItemCategory = "Consumable"
	CategoryEquipment      ItemCategory = "Equipment"
	CategoryOther          ItemCategory = "Other"
)

// KnownCategories lists the recognized categories in their canonical display
// order. CategoryOther is deliberately excluded; it is the fallback bucket.
var KnownCategories = []ItemCategory{
	CategoryRawHerb,
	CategoryGranule,
	CategoryPatentMedicine,
	CategoryConsumable,
	CategoryEquipment,
}

// Normalize maps an arbitrary category value onto the closed set,
// routing unrecognized or empty values to CategoryOther.
func (c ItemCategory) Normalize() ItemCategory {
	for _, known := range KnownCategories {
		if c == known {
			return known
		}
	}
	return CategoryOther
}

// DefaultUnit is assumed when an item does not declare its own unit.
const DefaultUnit = "g"

// InventoryItem represents a catalog entry of the clinic inventory.
// Cost fields are independently optional; the resolution order per valuation
// method is fixed in the valuation package (method field, then UnitCost, then 0).
type InventoryItem struct {
	ID             int64        `json:"id" db:"id"`
	Name           string       `json:"name" db:"name" binding:"required"`
	Category       ItemCategory `json:"category" db:"category"`
	QuantityOnHand float64      `json:"quantity_on_hand" db:"quantity_on_hand"`
	Unit           string       `json:"unit" db:"unit"`

	UnitCost *float64 `json:"unit_cost,omitempty" db:"unit_cost"`
	AvgCost  *float64 `json:"avg_cost,omitempty" db:"avg_cost"`
	FifoCost *float64 `json:"fifo_cost,omitempty" db:"fifo_cost"`
	LastCost *float64 `json:"last_cost,omitempty" db:"last_cost"`

	LastRestockedDate *time.Time `json:"last_restocked_date,omitempty" db:"last_restocked_date"`
	LastUsedDate      *time.Time `json:"last_used_date,omitempty" db:"last_used_date"`
	TotalUsed         float64    `json:"total_used" db:"total_used"`
	UsageCount        int64      `json:"usage_count" db:"usage_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StockMovement is one row of the stock ledger: a restock or a dispense
// applied to an inventory item.
type StockMovement struct {
	ID              int64     `json:"id" db:"id"`
	InventoryItemID int64     `json:"inventory_item_id" db:"inventory_item_id" binding:"required"`
	StaffID         *int64    `json:"staff_id,omitempty" db:"staff_id"`
	MovementType    string    `json:"movement_type" db:"movement_type"` // restock, dispense, adjustment
	Quantity        float64   `json:"quantity" db:"quantity" binding:"required"`
	UnitCost        *float64  `json:"unit_cost,omitempty" db:"unit_cost"` // purchase cost, restocks only
	Reason          *string   `json:"reason,omitempty" db:"reason"`
	MovementDate    time.Time `json:"movement_date" db:"movement_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ConsumptionEvent links an item name to a quantity consumed on a date.
// Events are written by the dispense flow (sourced from prescription and
// consultation records) and read back by the turnover report.
// The join to InventoryItem is by name, a limitation inherited from the
// upstream records which carry no stable item identifier.
type ConsumptionEvent struct {
	ID       int64     `json:"id" db:"id"`
	ItemName string    `json:"item_name" db:"item_name"`
	Quantity float64   `json:"quantity" db:"quantity"`
	Date     time.Time `json:"date" db:"consumed_on"`
}
