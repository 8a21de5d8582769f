package valuation

import (
	"sort"

	"clinic_backoffice/internal/models"
)

// AggregateByCategory groups valued items into category buckets. Unrecognized
// or empty categories merge into the synthetic Other bucket, so the buckets
// partition the input exactly and their values sum to the grand total.
// Percentages are fractions of the grand total, reported as 0 for every
// bucket when the grand total is 0. Buckets are ordered by descending value;
// ties break on the canonical category order with Other last.
func AggregateByCategory(valued []models.ValuedItem) []models.CategoryBucket {
	byCategory := make(map[models.ItemCategory]*models.CategoryBucket)
	var grandTotal float64

	for _, v := range valued {
		cat := v.Category.Normalize()
		bucket, ok := byCategory[cat]
		if !ok {
			bucket = &models.CategoryBucket{Category: cat}
			byCategory[cat] = bucket
		}
		bucket.ItemCount++
		bucket.Quantity += v.QuantityOnHand
		bucket.Value += v.TotalValue
		grandTotal += v.TotalValue
	}

	buckets := make([]models.CategoryBucket, 0, len(byCategory))
	for _, bucket := range byCategory {
		if grandTotal > 0 {
			bucket.Percentage = bucket.Value / grandTotal
		}
		buckets = append(buckets, *bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return categoryRank(buckets[i].Category) < categoryRank(buckets[j].Category)
	})
	return buckets
}

// categoryRank places a category by its position in the canonical order,
// with Other after every recognized category.
func categoryRank(cat models.ItemCategory) int {
	for i, known := range models.KnownCategories {
		if cat == known {
			return i
		}
	}
	return len(models.KnownCategories)
}
