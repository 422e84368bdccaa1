package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"realestate-api/apperrors"
	"realestate-api/models"
	"realestate-api/utils"
)

// QueryService validates filters, reads matching listings and normalises
// them. Store and unexpected errors are returned to the caller, not masked.
type QueryService struct {
	store    ListingReader
	validate *validator.Validate
	logger   *utils.Logger
}

func NewQueryService(store ListingReader, logger *utils.Logger) *QueryService {
	return &QueryService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Find returns every listing satisfying all predicates of f. No match is
// an empty slice.
func (s *QueryService) Find(ctx context.Context, f models.Filter) ([]models.Property, error) {
	if err := s.Validate(f); err != nil {
		return nil, err
	}

	rows, err := s.store.Query(ctx, f)
	if err != nil {
		s.logger.Error("[query] Reading listings failed: %v", err)
		return nil, apperrors.Classify(err, apperrors.ErrUnexpected, "find properties")
	}

	// Stored values may be fractional or non-finite, so a row can pass the
	// SQL predicate and still fail it once normalised.
	props := make([]models.Property, 0, len(rows))
	for _, l := range rows {
		if p := NormalizeListing(l); matchesFilter(p, f) {
			props = append(props, p)
		}
	}
	if len(props) == 0 {
		s.logger.Info("[query] No matching properties found")
	}
	return props, nil
}

// matchesFilter reports whether the normalised property satisfies every
// predicate set in f.
func matchesFilter(p models.Property, f models.Filter) bool {
	price := float64(p.Price)
	switch {
	case f.PriceMin != nil && price < *f.PriceMin:
		return false
	case f.PriceMax != nil && price > *f.PriceMax:
		return false
	case f.Bedrooms != nil && p.Bedrooms < int64(*f.Bedrooms):
		return false
	case f.Bathrooms != nil && p.Bathrooms < int64(*f.Bathrooms):
		return false
	case f.City != nil && p.City != *f.City:
		return false
	}
	return true
}

// Validate rejects out-of-domain filter values before any query is issued.
func (s *QueryService) Validate(f models.Filter) error {
	if err := s.validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return apperrors.Validation(nil, "invalid filter: %s", strings.Join(msgs, "; "))
		}
		return apperrors.Validation(err, "invalid filter")
	}

	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return apperrors.Validation(nil, "invalid filter: price_min %.2f is greater than price_max %.2f",
			*f.PriceMin, *f.PriceMax)
	}
	return nil
}

var filterFieldNames = map[string]string{
	"PriceMin":  "price_min",
	"PriceMax":  "price_max",
	"Bedrooms":  "bedrooms",
	"Bathrooms": "bathrooms",
	"City":      "city",
}

func describeFieldError(fe validator.FieldError) string {
	name, ok := filterFieldNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}
