package storage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"realestate-api/models"
)

func ptr[T any](v T) *T { return &v }

func TestBuildListingsQuery(t *testing.T) {
	const base = "SELECT " + listingColumns + " FROM listings WHERE 1=1"

	tests := []struct {
		name     string
		ph       placeholderFunc
		filter   models.Filter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "no filters",
			ph:       questionPlaceholder,
			wantSQL:  base,
			wantArgs: []interface{}{},
		},
		{
			name: "all filters sqlite",
			ph:   questionPlaceholder,
			filter: models.Filter{
				PriceMin: ptr(100000.0), PriceMax: ptr(500000.0),
				Bedrooms: ptr(3), Bathrooms: ptr(2), City: ptr("Miami"),
			},
			wantSQL:  base + " AND price BETWEEN ? AND ? AND bedrooms >= ? AND bathrooms >= ? AND city = ?",
			wantArgs: []interface{}{100000.0, 500000.0, 3, 2, "Miami"},
		},
		{
			name: "all filters postgres",
			ph:   dollarPlaceholder,
			filter: models.Filter{
				PriceMin: ptr(1.0), PriceMax: ptr(2.0),
				Bedrooms: ptr(1), Bathrooms: ptr(1), City: ptr("Austin"),
			},
			wantSQL:  base + " AND price BETWEEN $1 AND $2 AND bedrooms >= $3 AND bathrooms >= $4 AND city = $5",
			wantArgs: []interface{}{1.0, 2.0, 1, 1, "Austin"},
		},
		{
			name:     "price min only",
			ph:       dollarPlaceholder,
			filter:   models.Filter{PriceMin: ptr(50.0)},
			wantSQL:  base + " AND price >= $1",
			wantArgs: []interface{}{50.0},
		},
		{
			name:     "price max only",
			ph:       questionPlaceholder,
			filter:   models.Filter{PriceMax: ptr(75.0)},
			wantSQL:  base + " AND price <= ?",
			wantArgs: []interface{}{75.0},
		},
		{
			name:     "zero bedrooms is still applied",
			ph:       questionPlaceholder,
			filter:   models.Filter{Bedrooms: ptr(0)},
			wantSQL:  base + " AND bedrooms >= ?",
			wantArgs: []interface{}{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := buildListingsQuery(tt.ph, tt.filter)
			if gotSQL != tt.wantSQL {
				t.Errorf("sql:\n got  %s\n want %s", gotSQL, tt.wantSQL)
			}
			if diff := cmp.Diff(tt.wantArgs, gotArgs); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildListingsQueryNeverInterpolatesCity(t *testing.T) {
	city := "Miami' OR '1'='1"
	sql, args := buildListingsQuery(questionPlaceholder, models.Filter{City: &city})

	if strings.Contains(sql, "Miami") || strings.Contains(sql, "'1'='1") {
		t.Errorf("city value leaked into query text: %s", sql)
	}
	if len(args) != 1 || args[0] != city {
		t.Errorf("city should be the only bound arg, got %v", args)
	}
}
