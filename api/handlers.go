package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"realestate-api/apperrors"
	"realestate-api/models"
	"realestate-api/utils"
)

type PropertyFinder interface {
	Find(ctx context.Context, f models.Filter) ([]models.Property, error)
}

type StatisticsComputer interface {
	Compute(ctx context.Context) (*models.Statistics, error)
}

type PropertyHandler struct {
	finder PropertyFinder
	stats  StatisticsComputer
	logger *utils.Logger
}

func NewPropertyHandler(finder PropertyFinder, stats StatisticsComputer, logger *utils.Logger) *PropertyHandler {
	return &PropertyHandler{finder: finder, stats: stats, logger: logger}
}

// FindProperties handles GET /properties.
func (h *PropertyHandler) FindProperties(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), h.logger)

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respondError(w, logger, err)
		return
	}

	props, err := h.finder.Find(r.Context(), filter)
	if err != nil {
		respondError(w, logger, err)
		return
	}
	respondJSON(w, http.StatusOK, props)
}

// GetStatistics handles GET /properties/statistics. An empty store is {}.
func (h *PropertyHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), h.logger)

	stats, err := h.stats.Compute(r.Context())
	if err != nil {
		respondError(w, logger, err)
		return
	}
	if stats == nil {
		respondJSON(w, http.StatusOK, struct{}{})
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func parseFilter(q url.Values) (models.Filter, error) {
	var (
		f   models.Filter
		err error
	)
	if f.PriceMin, err = parseFloat(q, "price_min"); err != nil {
		return f, err
	}
	if f.PriceMax, err = parseFloat(q, "price_max"); err != nil {
		return f, err
	}
	if f.Bedrooms, err = parseInt(q, "bedrooms"); err != nil {
		return f, err
	}
	if f.Bathrooms, err = parseInt(q, "bathrooms"); err != nil {
		return f, err
	}
	if q.Has("city") {
		city := q.Get("city")
		f.City = &city
	}
	return f, nil
}

func parseFloat(q url.Values, key string) (*float64, error) {
	if !q.Has(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(q.Get(key))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Validation(nil, "%s must be a number, got %q", key, raw)
	}
	return &v, nil
}

func parseInt(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(q.Get(key))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Validation(nil, "%s must be an integer, got %q", key, raw)
	}
	return &v, nil
}
