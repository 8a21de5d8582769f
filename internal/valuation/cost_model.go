// Package valuation implements the inventory valuation engine: competing
// cost-accounting methods applied over an immutable inventory snapshot, plus
// the derived analytics built on top of them (category breakdown, stock
// health, turnover, method comparison).
//
// Every function in this package is pure and total. Callers supply snapshot
// slices and must not mutate them while a computation is in flight; nothing
// here performs I/O, caches across calls, or raises on malformed data —
// missing or negative numeric fields degrade to 0 instead.
package valuation

import "clinic_backoffice/internal/models"

// Method selects which cost field prices a unit of stock.
type Method string

const (
	MethodWeightedAverage Method = "weighted_average"
	MethodFIFO            Method = "fifo"
	MethodLastCost        Method = "last_cost"
)

// DefaultMethod matches the system's historical default.
const DefaultMethod = MethodWeightedAverage

// Methods lists all supported methods in canonical order.
var Methods = []Method{MethodWeightedAverage, MethodFIFO, MethodLastCost}

// ParseMethod maps a caller-supplied string onto a Method,
// falling back to DefaultMethod for anything unrecognized.
func ParseMethod(s string) Method {
	switch Method(s) {
	case MethodFIFO:
		return MethodFIFO
	case MethodLastCost:
		return MethodLastCost
	case MethodWeightedAverage:
		return MethodWeightedAverage
	}
	return DefaultMethod
}

// UnitValue resolves the per-unit value of an item under a method.
// Resolution order is fixed: the method-specific cost field, then the generic
// UnitCost, then 0. An item carrying no cost fields at all values at 0 under
// every method; that is valid data, not an error. Negative stored costs are
// clamped to 0.
func UnitValue(item models.InventoryItem, method Method) float64 {
	var preferred *float64
	switch method {
	case MethodFIFO:
		preferred = item.FifoCost
	case MethodLastCost:
		preferred = item.LastCost
	default:
		preferred = item.AvgCost
	}
	if preferred == nil {
		preferred = item.UnitCost
	}
	if preferred == nil || *preferred < 0 {
		return 0
	}
	return *preferred
}
