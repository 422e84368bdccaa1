package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"realestate-api/apperrors"
	"realestate-api/storage"
	"realestate-api/utils"
)

// IngestService loads a CSV source and replaces the store contents with it.
type IngestService struct {
	store   ListingReplacer
	open    SourceOpener
	cleaner *Cleaner
	logger  *utils.Logger
}

func NewIngestService(store ListingReplacer, logger *utils.Logger) *IngestService {
	return &IngestService{
		store: store,
		open: func(path string) (storage.RawListingReader, error) {
			return storage.OpenCSV(path)
		},
		cleaner: NewCleaner(logger),
		logger:  logger,
	}
}

// Ingest reads csvPath and swaps it into the store in one transaction.
// The previous contents stay untouched unless the whole cycle succeeds.
func (s *IngestService) Ingest(ctx context.Context, csvPath string) (int, error) {
	start := time.Now()

	info, err := os.Stat(csvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, apperrors.SourceNotFound(err, "the input CSV file %q does not exist", csvPath)
		}
		return 0, apperrors.Unexpected(err, "stat %q", csvPath)
	}
	if info.IsDir() {
		return 0, apperrors.SourceNotFound(nil, "the input CSV path %q is a directory", csvPath)
	}

	src, err := s.open(csvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, apperrors.SourceNotFound(err, "the input CSV file %q does not exist", csvPath)
		}
		return 0, apperrors.Unexpected(err, "open %q", csvPath)
	}
	defer src.Close()

	raw, err := src.ReadRaw()
	if err != nil {
		return 0, apperrors.Classify(err, apperrors.ErrParse, "error reading the CSV file %q", csvPath)
	}

	listings, err := s.cleaner.Clean(raw)
	if err != nil {
		return 0, err
	}

	if err := s.store.Replace(ctx, listings); err != nil {
		return 0, apperrors.Classify(err, apperrors.ErrStore, "write listings")
	}

	s.logger.Info("[ingest] Data successfully ingested from %q: %d listings in %v",
		csvPath, len(listings), time.Since(start).Round(time.Millisecond))
	return len(listings), nil
}
