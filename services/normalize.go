package services

import (
	"math"

	"realestate-api/models"
)

// NormalizeListing converts a stored row into its read model: missing,
// NaN, infinite and negative numbers become 0 and the rest are truncated
// toward zero.
func NormalizeListing(l models.Listing) models.Property {
	var price float64
	if l.Price != nil {
		price = *l.Price
	}
	return models.Property{
		PropertyID: l.PropertyID,
		Price:      toCount(price),
		Bedrooms:   toCount(l.Bedrooms),
		Bathrooms:  toCount(l.Bathrooms),
		SquareFeet: toCount(l.SquareFeet),
		City:       l.City,
		DateListed: l.DateListed,
	}
}

func NormalizeListings(listings []models.Listing) []models.Property {
	out := make([]models.Property, 0, len(listings))
	for _, l := range listings {
		out = append(out, NormalizeListing(l))
	}
	return out
}

func toCount(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
