package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"realestate-api/apperrors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCSVReaderParsesRows(t *testing.T) {
	path := writeCSV(t, "\ufeffPropertyID,Price,Bedrooms,Bathrooms,SquareFeet,City,DateListed\n"+
		"101, 250000,3,2,1500,Miami,2023-01-10\n"+
		"102,,1,1,600,\"Fort Lauderdale\",\n")

	r, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	rows, err := r.ReadRaw()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].PropertyID != "101" || rows[0].Price != "250000" || rows[0].DateListed != "2023-01-10" {
		t.Errorf("row 0: %+v", rows[0])
	}
	if rows[1].Price != "" || rows[1].City != "Fort Lauderdale" || rows[1].Line != 3 {
		t.Errorf("row 1: %+v", rows[1])
	}
}

func TestCanonicalHeader(t *testing.T) {
	tests := map[string]string{
		"property_id":  colPropertyID,
		"Property ID":  colPropertyID,
		"PROPERTYID":   colPropertyID,
		"id":           colPropertyID,
		"square_feet":  colSquareFeet,
		"sqft":         colSquareFeet,
		"date-listed":  colDateListed,
		" City ":       colCity,
		"listing_type": "listingtype",
	}
	for raw, want := range tests {
		if got := canonicalHeader(raw); got != want {
			t.Errorf("canonicalHeader(%q) = %q; want %q", raw, got, want)
		}
	}
}

func TestCSVReaderMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing id column", "price,city\n1,Miami\n"},
		{"ragged row", "property_id,price\n1,100\n2,200,extra\n"},
		{"broken quote", "property_id,city\n1,\"Miami\n"},
		{"invalid utf8", "property_id,city\n1,\xff\xfe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := OpenCSV(writeCSV(t, tt.content))
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer r.Close()

			_, err = r.ReadRaw()
			if !errors.Is(err, apperrors.ErrParse) {
				t.Errorf("expected parse error, got %v", err)
			}
		})
	}
}

func TestOpenCSVMissingFile(t *testing.T) {
	_, err := OpenCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "nope.csv") {
		t.Errorf("error should name the path: %v", err)
	}
}
