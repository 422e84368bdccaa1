package services

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"realestate-api/config"
	"realestate-api/models"
	"realestate-api/storage"
	"realestate-api/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithConfig(utils.LoggerConfig{Writer: io.Discard, NoColor: true})
}

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T) *storage.SQLStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "listings.db")
	s, err := storage.Open(context.Background(), config.DriverSQLite, dsn, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fakeStore is an in-memory ListingReader/ListingReplacer. It ignores the
// filter and returns every row.
type fakeStore struct {
	mu       sync.Mutex
	rows     []models.Listing
	err      error
	replaced int
	lastF    models.Filter
}

func (f *fakeStore) Query(_ context.Context, filter models.Filter) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastF = filter
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Listing(nil), f.rows...), nil
}

func (f *fakeStore) Replace(_ context.Context, rows []models.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append([]models.Listing(nil), rows...)
	f.replaced++
	return nil
}

func listing(id string, price, sqft float64) models.Listing {
	return models.Listing{
		PropertyID: id,
		Price:      ptr(price),
		Bedrooms:   2,
		Bathrooms:  1,
		SquareFeet: sqft,
		City:       "Springfield",
		DateListed: "2024-01-15",
	}
}
