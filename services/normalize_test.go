package services

import (
	"math"
	"testing"

	"realestate-api/models"
)

func TestToCount(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{3, 3},
		{2.9, 2},
		{0, 0},
		{-4, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{1e300, math.MaxInt64},
	}
	for _, tt := range tests {
		if got := toCount(tt.in); got != tt.want {
			t.Errorf("toCount(%v) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeListingNilPrice(t *testing.T) {
	p := NormalizeListing(models.Listing{PropertyID: "P9", Bedrooms: 2.5, City: "Reno"})
	if p.Price != 0 || p.Bedrooms != 2 || p.City != "Reno" || p.PropertyID != "P9" {
		t.Errorf("unexpected property: %+v", p)
	}
}

func TestNormalizeListingsEmpty(t *testing.T) {
	got := NormalizeListings(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
