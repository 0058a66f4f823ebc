package categories

import "fmt"

// priceThresholds are the ascending bucket boundaries in 萬 (10k TWD).
// Buckets are half-open [lower, upper): a 1200萬 listing lands in 1200-1600萬.
var priceThresholds = []int{800, 1200, 1600, 2000, 3000}

// BucketUnpriced is the bucket for listings with no stated numeric price.
const BucketUnpriced = "價格未定"

// PriceBucket returns the price bucket for a listing. An explicit non-empty
// bucket value wins verbatim; otherwise the bucket is derived from the numeric
// price, with BucketUnpriced when no numeric price exists.
func PriceBucket(explicit string, priceNumeric *int) string {
	if explicit != "" {
		return explicit
	}
	if priceNumeric == nil {
		return BucketUnpriced
	}

	price := *priceNumeric
	if price < priceThresholds[0] {
		return fmt.Sprintf("%d萬以下", priceThresholds[0])
	}
	for i := 0; i < len(priceThresholds)-1; i++ {
		if price >= priceThresholds[i] && price < priceThresholds[i+1] {
			return fmt.Sprintf("%d-%d萬", priceThresholds[i], priceThresholds[i+1])
		}
	}
	return fmt.Sprintf("%d萬以上", priceThresholds[len(priceThresholds)-1])
}
