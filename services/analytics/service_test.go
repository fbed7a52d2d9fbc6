package analytics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/testutil"
	"reviewlens-backend/services/keywords"

	_ "modernc.org/sqlite"
)

type seed struct {
	customer  string
	text      string
	date      string
	rating    int
	score     float64
	sentiment string
	cats      []string
	matched   []string
}

func setupAnalytics(t *testing.T, seeds []seed) (*Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/analytics",
		DbSchema: db.Schema,
	})

	qry := db.New(setup.DB)
	for i, s := range seeds {
		err := qry.CreateReview(context.Background(), db.CreateReviewParams{
			BrandName:         "acme",
			CustomerName:      s.customer,
			Review:            s.text,
			Date:              s.date,
			Rating:            sql.NullInt64{Int64: int64(s.rating), Valid: s.rating > 0},
			ReviewLink:        sql.NullString{String: s.customer, Valid: true},
			SentimentScore:    s.score,
			SentimentCategory: s.sentiment,
			Categories:        keywords.EncodeList(s.cats),
			MatchedKeywords:   keywords.EncodeList(s.matched),
		})
		require.NoError(t, err, "seed %d", i)
	}

	return NewService(setup.DB), cleanup
}

func defaultSeeds() []seed {
	return []seed{
		{"Alice", "Shoes runs small but lovely.", "2025-07-10", 4, 0.5, "positive",
			[]string{"Sizing & Fit"}, []string{"runs small"}},
		{"Bob", "Late delivery, very annoyed.", "2025-07-01", 1, -0.6, "negative",
			[]string{"Delivery"}, []string{"late"}},
		{"Carol", "It is fine I suppose.", "2025-06-15", 3, 0.0, "neutral", nil, nil},
		{"Dave", "Great sizing, fast delivery!", "2025-05-20", 5, 0.8, "positive",
			[]string{"Sizing & Fit", "Delivery"}, []string{"sizing", "delivery"}},
	}
}

func TestListReviewsSortsNewestFirst(t *testing.T) {
	service, cleanup := setupAnalytics(t, defaultSeeds())
	defer cleanup()

	page, err := service.ListReviews(context.Background(), "acme", Filter{}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 4, page.Total)

	var order []string
	for _, r := range page.Reviews {
		order = append(order, r.CustomerName)
	}
	require.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, order)
}

func TestListReviewsFilters(t *testing.T) {
	service, cleanup := setupAnalytics(t, defaultSeeds())
	defer cleanup()
	ctx := context.Background()

	page, err := service.ListReviews(ctx, "acme", Filter{Ratings: []int{4, 5}}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)

	page, err = service.ListReviews(ctx, "acme", Filter{Sentiment: "Negative"}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Bob", page.Reviews[0].CustomerName)

	// category matching ignores case
	page, err = service.ListReviews(ctx, "acme", Filter{Categories: []string{"delivery"}}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)

	page, err = service.ListReviews(ctx, "acme", Filter{
		DateFrom: "2025-06-01", DateTo: "2025-07-05",
	}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)

	page, err = service.ListReviews(ctx, "acme", Filter{
		Ratings: []int{5}, Categories: []string{"Sizing & Fit"},
	}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Dave", page.Reviews[0].CustomerName)
}

func TestListReviewsPagination(t *testing.T) {
	service, cleanup := setupAnalytics(t, defaultSeeds())
	defer cleanup()
	ctx := context.Background()

	page, err := service.ListReviews(ctx, "acme", Filter{}, 1, 3)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 3)
	require.Equal(t, 4, page.Total)
	require.Equal(t, 2, page.TotalPages)

	page, err = service.ListReviews(ctx, "acme", Filter{}, 2, 3)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	require.Equal(t, "Dave", page.Reviews[0].CustomerName)

	// pages past the end are empty, not errors
	page, err = service.ListReviews(ctx, "acme", Filter{}, 5, 3)
	require.NoError(t, err)
	require.Empty(t, page.Reviews)
}

func TestListReviewsHighlightsMatches(t *testing.T) {
	service, cleanup := setupAnalytics(t, defaultSeeds())
	defer cleanup()

	page, err := service.ListReviews(context.Background(), "acme",
		Filter{Categories: []string{"Sizing & Fit"}}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, "Shoes <mark>runs small</mark> but lovely.", hl(page.Reviews, "Alice"))
}

// hl finds a customer's highlighted text in a result page.
func hl(reviews []Review, customer string) string {
	for _, r := range reviews {
		if r.CustomerName == customer {
			return r.Text
		}
	}
	return ""
}

func TestBuildDashboard(t *testing.T) {
	service, cleanup := setupAnalytics(t, defaultSeeds())
	defer cleanup()

	dash, err := service.BuildDashboard(context.Background(), "acme", Filter{})
	require.NoError(t, err)

	require.Equal(t, 4, dash.TotalReviews)
	require.InDelta(t, 3.25, dash.AverageRating, 0.001)
	require.Equal(t, 2, dash.SentimentDistribution["positive"])
	require.Equal(t, 1, dash.SentimentDistribution["negative"])
	require.Equal(t, 1, dash.SentimentDistribution["neutral"])
	require.Equal(t, 1, dash.RatingDistribution[1])
	require.Equal(t, 1, dash.RatingDistribution[5])
	require.Equal(t, 2, dash.CategoryCounts["Sizing & Fit"])
	require.Equal(t, 2, dash.CategoryCounts["Delivery"])

	wantTrend := []MonthlyPoint{
		{Month: "2025-05", Count: 1, AverageSentiment: 0.8},
		{Month: "2025-06", Count: 1, AverageSentiment: 0},
		{Month: "2025-07", Count: 2, AverageSentiment: -0.05},
	}
	require.Empty(t, cmp.Diff(wantTrend, dash.MonthlyTrend))

	// filters narrow the aggregates too
	dash, err = service.BuildDashboard(context.Background(), "acme",
		Filter{Sentiment: "positive"})
	require.NoError(t, err)
	require.Equal(t, 2, dash.TotalReviews)
	require.InDelta(t, 4.5, dash.AverageRating, 0.001)
}
