package analytics

import (
	"context"
	"math"
	"sort"

	otelcodes "go.opentelemetry.io/otel/codes"

	"reviewlens-backend/services/sentiment"
)

// MonthlyPoint is one month of the review trend, keyed YYYY-MM.
type MonthlyPoint struct {
	Month            string  `json:"month"`
	Count            int     `json:"count"`
	AverageSentiment float64 `json:"average_sentiment"`
}

// Dashboard aggregates a brand's filtered review set for the overview
// view.
type Dashboard struct {
	TotalReviews          int            `json:"total_reviews"`
	AverageRating         float64        `json:"average_rating"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	RatingDistribution    map[int]int    `json:"rating_distribution"`
	CategoryCounts        map[string]int `json:"category_counts"`
	MonthlyTrend          []MonthlyPoint `json:"monthly_trend"`
}

// BuildDashboard computes aggregate statistics over the brand's reviews
// matching the filter.
func (s *Service) BuildDashboard(ctx context.Context, brand string, filter Filter) (Dashboard, error) {
	ctx, span := tracer.Start(ctx, "BuildDashboard")
	defer span.End()

	matched, err := s.filteredReviews(ctx, brand, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "build dashboard")
		return Dashboard{}, err
	}

	dash := Dashboard{
		TotalReviews: len(matched),
		SentimentDistribution: map[string]int{
			sentiment.CategoryPositive: 0,
			sentiment.CategoryNeutral:  0,
			sentiment.CategoryNegative: 0,
		},
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		CategoryCounts:     map[string]int{},
	}

	ratingSum := 0
	ratedCount := 0
	type monthAgg struct {
		count        int
		sentimentSum float64
	}
	months := map[string]*monthAgg{}

	for _, r := range matched {
		dash.SentimentDistribution[r.SentimentCategory]++
		if r.Rating >= 1 && r.Rating <= 5 {
			dash.RatingDistribution[r.Rating]++
			ratingSum += r.Rating
			ratedCount++
		}
		for _, category := range r.Categories {
			dash.CategoryCounts[category]++
		}
		if len(r.Date) >= 7 {
			month := r.Date[:7]
			agg := months[month]
			if agg == nil {
				agg = &monthAgg{}
				months[month] = agg
			}
			agg.count++
			agg.sentimentSum += r.SentimentScore
		}
	}

	if ratedCount > 0 {
		dash.AverageRating = round2(float64(ratingSum) / float64(ratedCount))
	}

	dash.MonthlyTrend = make([]MonthlyPoint, 0, len(months))
	for month, agg := range months {
		dash.MonthlyTrend = append(dash.MonthlyTrend, MonthlyPoint{
			Month:            month,
			Count:            agg.count,
			AverageSentiment: round2(agg.sentimentSum / float64(agg.count)),
		})
	}
	sort.Slice(dash.MonthlyTrend, func(i, j int) bool {
		return dash.MonthlyTrend[i].Month < dash.MonthlyTrend[j].Month
	})

	return dash, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
