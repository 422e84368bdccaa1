package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"realestate-api/apperrors"
	"realestate-api/models"
)

// column keys after header canonicalisation
const (
	colPropertyID = "propertyid"
	colPrice      = "price"
	colBedrooms   = "bedrooms"
	colBathrooms  = "bathrooms"
	colSquareFeet = "squarefeet"
	colCity       = "city"
	colDateListed = "datelisted"
)

var headerAliases = map[string]string{
	"id":   colPropertyID,
	"sqft": colSquareFeet,
}

var _ RawListingReader = (*CSVReader)(nil)

// CSVReader reads raw listings from a CSV file with a header row.
type CSVReader struct {
	file *os.File
	path string
}

// OpenCSV opens the CSV file at path. The returned error wraps
// fs.ErrNotExist when the file is missing.
func OpenCSV(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	return &CSVReader{file: f, path: path}, nil
}

// ReadRaw parses every data row. Structural problems (ragged rows, broken
// quoting, invalid UTF-8, no property id column) are reported as parse errors.
func (c *CSVReader) ReadRaw() ([]*models.RawListing, error) {
	return parseRawListings(c.file, c.path)
}

func (c *CSVReader) Close() error {
	return c.file.Close()
}

func parseRawListings(r io.Reader, name string) ([]*models.RawListing, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.Parse(nil, "csv %q: empty file", name)
	}
	if err != nil {
		return nil, apperrors.Parse(err, "csv %q: read header", name)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if !utf8.ValidString(h) {
			return nil, apperrors.Parse(nil, "csv %q: header is not valid UTF-8", name)
		}
		key := canonicalHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index[colPropertyID]; !ok {
		return nil, apperrors.Parse(nil, "csv %q: missing property_id column", name)
	}

	cell := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var listings []*models.RawListing
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Parse(err, "csv %q", name)
		}

		line, _ := reader.FieldPos(0)
		for _, v := range row {
			if !utf8.ValidString(v) {
				return nil, apperrors.Parse(nil, "csv %q: line %d is not valid UTF-8", name, line)
			}
		}

		listings = append(listings, &models.RawListing{
			Line:       line,
			PropertyID: cell(row, colPropertyID),
			Price:      cell(row, colPrice),
			Bedrooms:   cell(row, colBedrooms),
			Bathrooms:  cell(row, colBathrooms),
			SquareFeet: cell(row, colSquareFeet),
			City:       cell(row, colCity),
			DateListed: cell(row, colDateListed),
		})
	}
	return listings, nil
}

// canonicalHeader lowercases h and drops separators so "Property ID",
// "property_id" and "PropertyID" all map to the same key.
func canonicalHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	key := b.String()
	if alias, ok := headerAliases[key]; ok {
		return alias
	}
	return key
}
