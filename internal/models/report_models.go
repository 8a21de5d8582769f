package models

// ValuedItem is an InventoryItem projected through one valuation method.
// It is recomputed on demand and never persisted.
type ValuedItem struct {
	InventoryItem
	UnitValue  float64 `json:"unit_value"`
	TotalValue float64 `json:"total_value"`
}

// ValuationSummary holds portfolio-level aggregates for one valuation run.
// SKUCount counts tracked items whether or not they currently hold stock.
type ValuationSummary struct {
	SKUCount      int     `json:"sku_count"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}

// CategoryBucket aggregates valued items sharing a category.
// Percentage is a fraction of the grand total value (0 when the grand total is 0).
type CategoryBucket struct {
	Category   ItemCategory `json:"category"`
	ItemCount  int          `json:"item_count"`
	Quantity   float64      `json:"quantity"`
	Value      float64      `json:"value"`
	Percentage float64      `json:"percentage"`
}

// TurnoverRecord reports annualized consumption against current valuation for
// one item. Ratio is 0 (never Inf) when the current valuation is 0.
type TurnoverRecord struct {
	ItemID              int64   `json:"item_id"`
	ItemName            string  `json:"item_name"`
	AnnualQuantity      float64 `json:"annual_quantity"`
	EstimatedAnnualCost float64 `json:"estimated_annual_cost"`
	CurrentValue        float64 `json:"current_value"`
	TurnoverRatio       float64 `json:"turnover_ratio"`
	Rating              string  `json:"rating"`
}

// ComparisonRow carries one item's valuation under every supported method.
// MaxDiff is the spread between the highest and lowest method value.
type ComparisonRow struct {
	ItemID      int64   `json:"item_id"`
	ItemName    string  `json:"item_name"`
	WeightedAvg float64 `json:"weighted_avg_value"`
	Fifo        float64 `json:"fifo_value"`
	LastCost    float64 `json:"last_cost_value"`
	MaxDiff     float64 `json:"max_diff"`
}

// ComparisonTotals is the grand-total row of a method comparison.
type ComparisonTotals struct {
	WeightedAvg float64 `json:"weighted_avg_total"`
	Fifo        float64 `json:"fifo_total"`
	LastCost    float64 `json:"last_cost_total"`
	MaxDiff     float64 `json:"max_diff"`
}

// StockHealthReport pairs the two independent at-risk classifications.
// The lists may overlap; they answer different operational questions.
type StockHealthReport struct {
	SlowMoving []ValuedItem `json:"slow_moving"`
	DeadStock  []ValuedItem `json:"dead_stock"`
}
