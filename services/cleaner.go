package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"realestate-api/apperrors"
	"realestate-api/models"
	"realestate-api/utils"
)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// Cleaner transforms RawListings into typed Listings ready for the store.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows. Rows without a property id are dropped and
// repeated ids keep their first occurrence. Every unparsable numeric cell is
// collected and reported together as a single parse error.
func (c *Cleaner) Clean(raw []*models.RawListing) ([]models.Listing, error) {
	seen := make(map[string]struct{}, len(raw))
	result := make([]models.Listing, 0, len(raw))
	var errs *multierror.Error

	for _, r := range raw {
		id := strings.TrimSpace(r.PropertyID)
		if id == "" {
			c.logger.Warn("[cleaner] Dropping line %d with empty property_id", r.Line)
			continue
		}
		if _, dup := seen[id]; dup {
			c.logger.Warn("[cleaner] Duplicate property_id %q on line %d skipped", id, r.Line)
			continue
		}
		seen[id] = struct{}{}

		listing := models.Listing{
			PropertyID: id,
			City:       strings.TrimSpace(r.City),
			DateListed: c.parseDate(r.DateListed),
		}

		price, ok, err := parseNumber(r.Price)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d price: %w", r.Line, err))
		} else if ok {
			listing.Price = &price
		}

		for _, f := range []struct {
			name string
			raw  string
			dst  *float64
		}{
			{"bedrooms", r.Bedrooms, &listing.Bedrooms},
			{"bathrooms", r.Bathrooms, &listing.Bathrooms},
			{"square_feet", r.SquareFeet, &listing.SquareFeet},
		} {
			v, _, err := parseNumber(f.raw)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("line %d %s: %w", r.Line, f.name, err))
				continue
			}
			*f.dst = v
		}

		result = append(result, listing)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, apperrors.Parse(err, "clean: %d invalid cells", len(errs.Errors))
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result, nil
}

// parseNumber reads a numeric cell. An empty cell reports ok=false.
// Currency symbols and thousands separators are ignored; NaN and Inf are
// accepted and left for read-time normalisation.
func parseNumber(raw string) (value float64, ok bool, err error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", raw)
	}
	return v, true, nil
}

// parseDate canonicalises a date to YYYY-MM-DD; unparsable input becomes "".
func (c *Cleaner) parseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	c.logger.Debug("[cleaner] Unparsable date %q treated as empty", raw)
	return ""
}
