package services

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"realestate-api/apperrors"
	"realestate-api/models"
	"realestate-api/utils"
)

// outlierThreshold is the IQR multiplier for the fences.
const outlierThreshold = 1.5

type StatisticsService struct {
	store  ListingReader
	logger *utils.Logger
}

func NewStatisticsService(store ListingReader, logger *utils.Logger) *StatisticsService {
	return &StatisticsService{store: store, logger: logger}
}

// Compute summarises the whole store. An empty store yields nil, nil.
func (s *StatisticsService) Compute(ctx context.Context) (*models.Statistics, error) {
	rows, err := s.store.Query(ctx, models.Filter{})
	if err != nil {
		s.logger.Error("[stats] Reading listings failed: %v", err)
		return nil, apperrors.Classify(err, apperrors.ErrUnexpected, "compute statistics")
	}
	if len(rows) == 0 {
		s.logger.Info("[stats] No data found in the store")
		return nil, nil
	}

	stats, err := Summarize(NormalizeListings(rows))
	if err != nil {
		s.logger.Error("[stats] %v", err)
		return nil, err
	}
	s.logger.Info("[stats] Total outliers: %d of %d", stats.OutliersCount, stats.TotalProperties)
	return stats, nil
}

// Summarize computes the statistics over normalised properties. Outliers
// lie outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]; lower outliers are listed
// first, then upper ones, each in input order.
func Summarize(props []models.Property) (*models.Statistics, error) {
	if len(props) == 0 {
		return nil, nil
	}

	prices := make([]float64, len(props))
	sqft := make([]float64, len(props))
	for i, p := range props {
		prices[i] = float64(p.Price)
		sqft[i] = float64(p.SquareFeet)
	}

	totalSqft := floats.Sum(sqft)
	if totalSqft == 0 {
		return nil, apperrors.Arithmetic(nil, "average price per sqft: total square footage is zero")
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lowerFence := q1 - outlierThreshold*iqr
	upperFence := q3 + outlierThreshold*iqr

	var lower, upper []models.Property
	for i, p := range props {
		switch {
		case prices[i] < lowerFence:
			lower = append(lower, p)
		case prices[i] > upperFence:
			upper = append(upper, p)
		}
	}
	outliers := make([]models.Property, 0, len(lower)+len(upper))
	outliers = append(outliers, lower...)
	outliers = append(outliers, upper...)

	return &models.Statistics{
		AveragePropertyPrice: int64(stat.Mean(prices, nil)),
		MedianPropertyPrice:  int64(quantile(sorted, 0.5)),
		AveragePricePerSqft:  round2(floats.Sum(prices) / totalSqft),
		TotalProperties:      len(props),
		OutliersCount:        len(outliers),
		Outliers:             outliers,
	}, nil
}

// quantile interpolates linearly between the closest ranks of sorted
// (Hyndman-Fan type 7).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
