package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/testutil"
	"reviewlens-backend/services/analytics"

	_ "modernc.org/sqlite"
)

func setupReports(t *testing.T, config Config) (*Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/reports",
		DbSchema: db.Schema,
	})

	qry := db.New(setup.DB)
	seeds := []struct {
		customer, text, date, sentiment string
		rating                          int
		score                           float64
	}{
		{"Alice", "Love these shoes, they fit perfectly.", "2025-07-10", "positive", 5, 0.8},
		{"Bob", "Delivery took three weeks.", "2025-07-01", "negative", 1, -0.5},
	}
	for _, s := range seeds {
		err := qry.CreateReview(context.Background(), db.CreateReviewParams{
			BrandName:         "acme",
			CustomerName:      s.customer,
			Review:            s.text,
			Date:              s.date,
			Rating:            sql.NullInt64{Int64: int64(s.rating), Valid: true},
			ReviewLink:        sql.NullString{String: s.customer, Valid: true},
			SentimentScore:    s.score,
			SentimentCategory: s.sentiment,
			Categories:        "[]",
			MatchedKeywords:   "[]",
		})
		require.NoError(t, err)
	}

	service := NewService(config, analytics.NewService(setup.DB))
	httpmock.ActivateNonDefault(service.client.GetClient())
	return service, func() {
		httpmock.DeactivateAndReset()
		cleanup()
	}
}

func TestGenerate(t *testing.T) {
	service, cleanup := setupReports(t, Config{
		BaseUrl: "https://llm.test/v1",
		Model:   "gpt-4o-mini",
		ApiKey:  "test-key",
	})
	defer cleanup()

	var gotPrompt string
	httpmock.RegisterResponder(http.MethodPost, "https://llm.test/v1/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			var body chatRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			require.Equal(t, "gpt-4o-mini", body.Model)
			require.Len(t, body.Messages, 2)
			gotPrompt = body.Messages[1].Content

			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{
						"role":    "assistant",
						"content": "Customers like the fit; delivery is the main complaint.",
					}},
				},
			})
		})

	summary, err := service.Generate(context.Background(), "acme", analytics.Filter{})
	require.NoError(t, err)
	require.Contains(t, summary, "delivery is the main complaint")

	require.Contains(t, gotPrompt, "Brand: acme")
	require.Contains(t, gotPrompt, "Total reviews in scope: 2")
	require.Contains(t, gotPrompt, "Love these shoes, they fit perfectly.")
	require.True(t, strings.Contains(gotPrompt, "positive: 1"))
}

func TestGenerateUpstreamError(t *testing.T) {
	service, cleanup := setupReports(t, Config{
		BaseUrl: "https://llm.test/v1",
		Model:   "gpt-4o-mini",
	})
	defer cleanup()

	httpmock.RegisterResponder(http.MethodPost, "https://llm.test/v1/chat/completions",
		httpmock.NewStringResponder(http.StatusTooManyRequests,
			`{"error": {"message": "rate limited"}}`))

	_, err := service.Generate(context.Background(), "acme", analytics.Filter{})
	require.ErrorContains(t, err, "rate limited")
}

func TestGenerateRequiresConfig(t *testing.T) {
	service, cleanup := setupReports(t, Config{})
	defer cleanup()

	_, err := service.Generate(context.Background(), "acme", analytics.Filter{})
	require.ErrorContains(t, err, "not configured")
}

func TestGenerateNoMatchingReviews(t *testing.T) {
	service, cleanup := setupReports(t, Config{
		BaseUrl: "https://llm.test/v1",
		Model:   "gpt-4o-mini",
	})
	defer cleanup()

	_, err := service.Generate(context.Background(), "acme",
		analytics.Filter{Sentiment: "neutral"})
	require.ErrorContains(t, err, "no reviews match")
}
