package storage

import (
	"context"

	"realestate-api/models"
)

// ListingStore is the interface any listings backend must satisfy.
type ListingStore interface {
	// Replace swaps the whole table contents for listings in one transaction.
	Replace(ctx context.Context, listings []models.Listing) error
	// Query returns the rows matching every non-nil predicate of f.
	Query(ctx context.Context, f models.Filter) ([]models.Listing, error)
	Close() error
}

// RawListingReader is the interface for reading unprocessed source rows.
type RawListingReader interface {
	ReadRaw() ([]*models.RawListing, error)
	Close() error
}
