package services

import (
	"context"

	"realestate-api/models"
	"realestate-api/storage"
)

// ListingReader is the read side of the listing store.
type ListingReader interface {
	Query(ctx context.Context, f models.Filter) ([]models.Listing, error)
}

// ListingReplacer is the write side of the listing store.
type ListingReplacer interface {
	Replace(ctx context.Context, listings []models.Listing) error
}

// SourceOpener opens a raw listing source by path.
type SourceOpener func(path string) (storage.RawListingReader, error)

// Ingester runs one ingestion cycle from path and reports the rows written.
type Ingester interface {
	Ingest(ctx context.Context, path string) (int, error)
}
