package valuation

import "clinic_backoffice/internal/models"

// Valuate projects every item through the given method. The result has the
// same length and order as the input; callers re-sort as needed. Quantity is
// clamped to >= 0 on read, so TotalValue is never negative.
func Valuate(items []models.InventoryItem, method Method) []models.ValuedItem {
	valued := make([]models.ValuedItem, 0, len(items))
	for _, item := range items {
		qty := item.QuantityOnHand
		if qty < 0 {
			qty = 0
		}
		unitValue := UnitValue(item, method)
		v := models.ValuedItem{
			InventoryItem: item,
			UnitValue:     unitValue,
			TotalValue:    qty * unitValue,
		}
		v.QuantityOnHand = qty
		if v.Unit == "" {
			v.Unit = models.DefaultUnit
		}
		valued = append(valued, v)
	}
	return valued
}

// Summarize reduces a valuation to portfolio totals. Zero-stock SKUs still
// count toward SKUCount; they are tracked items even when empty.
func Summarize(valued []models.ValuedItem) models.ValuationSummary {
	summary := models.ValuationSummary{SKUCount: len(valued)}
	for _, v := range valued {
		summary.TotalQuantity += v.QuantityOnHand
		summary.TotalValue += v.TotalValue
	}
	return summary
}
